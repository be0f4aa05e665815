package srs

import "testing"

func TestGradeIsValid(t *testing.T) {
	for g := MinGrade; g <= MaxGrade; g++ {
		if !g.IsValid() {
			t.Errorf("Grade(%d).IsValid() = false, want true", int(g))
		}
	}
	for _, g := range []Grade{-1, 6, 42} {
		if g.IsValid() {
			t.Errorf("Grade(%d).IsValid() = true, want false", int(g))
		}
	}
}

func TestGradePassing(t *testing.T) {
	tests := []struct {
		g    Grade
		want bool
	}{
		{0, false},
		{1, false},
		{2, false},
		{3, true},
		{4, true},
		{5, true},
	}
	for _, tt := range tests {
		if got := tt.g.Passing(); got != tt.want {
			t.Errorf("Grade(%d).Passing() = %v, want %v", int(tt.g), got, tt.want)
		}
	}
}
