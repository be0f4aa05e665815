package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestContext(t *testing.T) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestGetUserID(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    uint64
		wantErr bool
	}{
		{name: "uint64", value: uint64(7), want: 7},
		{name: "int", value: int(8), want: 8},
		{name: "int64", value: int64(9), want: 9},
		{name: "float64", value: float64(10), want: 10},
		{name: "numeric string", value: "11", want: 11},
		{name: "junk string", value: "abc", wantErr: true},
		{name: "missing", value: nil, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext(t)
			if tt.value != nil {
				c.Set("user_id", tt.value)
			}
			got, err := getUserID(c)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("getUserID(%v) = %d, want error", tt.value, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("getUserID(%v): %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("getUserID(%v) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestPathID(t *testing.T) {
	e := echo.New()
	for _, tt := range []struct {
		raw  string
		want uint64
		ok   bool
	}{
		{raw: "5", want: 5, ok: true},
		{raw: "0", ok: false},
		{raw: "-1", ok: false},
		{raw: "abc", ok: false},
		{raw: "", ok: false},
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(tt.raw)
		got, ok := pathID(c, "id")
		if ok != tt.ok || got != tt.want {
			t.Errorf("pathID(%q) = (%d, %v), want (%d, %v)", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}
