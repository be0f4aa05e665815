package srs

import (
	"encoding/json"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		reps int
		ease float64
		want Stage
	}{
		{0, 2.5, New},
		{0, 3.0, New}, // repetitions == 0 wins over any ease
		{0, 1.3, New},
		{1, 2.6, Studying}, // boundary is strict
		{1, 2.61, Mastered},
		{1, 1.3, Studying},
		{5, 2.7, Mastered},
		{5, 2.0, Studying},
	}
	for _, tt := range tests {
		if got := Classify(tt.reps, tt.ease); got != tt.want {
			t.Errorf("Classify(%d, %v) = %v, want %v", tt.reps, tt.ease, got, tt.want)
		}
	}
}

func TestClassifyTotal(t *testing.T) {
	// Every valid state lands in exactly one of the three buckets.
	for reps := 0; reps <= 10; reps++ {
		for ease := MinEase; ease < 3.5; ease += 0.1 {
			s := Classify(reps, ease)
			if s != New && s != Studying && s != Mastered {
				t.Fatalf("Classify(%d, %v) = %v, not a valid stage", reps, ease, s)
			}
			if reps == 0 && s != New {
				t.Fatalf("Classify(0, %v) = %v, want New", ease, s)
			}
		}
	}
}

func TestStageString(t *testing.T) {
	tests := []struct {
		s    Stage
		want string
	}{
		{New, "new"},
		{Studying, "studying"},
		{Mastered, "mastered"},
		{Stage(0), "Stage(0)"},
		{Stage(9), "Stage(9)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Stage(%d).String() = %q, want %q", int(tt.s), got, tt.want)
		}
	}
}

func TestStageJSONRoundTrip(t *testing.T) {
	for _, s := range []Stage{New, Studying, Mastered} {
		data, err := json.Marshal(s)
		if err != nil {
			t.Fatalf("json.Marshal(%v): %v", s, err)
		}
		var back Stage
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("json.Unmarshal(%s): %v", data, err)
		}
		if back != s {
			t.Errorf("round trip %v -> %s -> %v", s, data, back)
		}
	}

	if _, err := json.Marshal(Stage(0)); err == nil {
		t.Error("json.Marshal(Stage(0)) should fail")
	}
	var s Stage
	if err := json.Unmarshal([]byte(`"learned"`), &s); err == nil {
		t.Error("unmarshal of unknown stage name should fail")
	}
}
