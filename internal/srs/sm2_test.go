package srs

import (
	"errors"
	"math"
	"testing"
	"time"
)

var t0 = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func assertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func mustUpdate(t *testing.T, s State, g Grade, today time.Time) State {
	t.Helper()
	next, err := Update(s, g, today)
	if err != nil {
		t.Fatalf("Update(%+v, %d): %v", s, g, err)
	}
	return next
}

func TestNewStateDefaults(t *testing.T) {
	s := NewState(t0)
	if s.Repetitions != 0 {
		t.Errorf("Repetitions = %d, want 0", s.Repetitions)
	}
	assertFloat(t, "EaseFactor", s.EaseFactor, InitialEase)
	if s.IntervalDays != 1 {
		t.Errorf("IntervalDays = %d, want 1", s.IntervalDays)
	}
	if !s.Due.Equal(t0) {
		t.Errorf("Due = %v, want %v", s.Due, t0)
	}
	if !s.IsDue(t0) {
		t.Error("a fresh card should be due immediately")
	}
}

func TestUpdateInvalidGrade(t *testing.T) {
	for _, g := range []Grade{-1, 6, 100} {
		next, err := Update(NewState(t0), g, t0)
		if !errors.Is(err, ErrInvalidGrade) {
			t.Errorf("Update(grade=%d) err = %v, want ErrInvalidGrade", g, err)
		}
		if next != (State{}) {
			t.Errorf("Update(grade=%d) returned non-zero state %+v on error", g, next)
		}
	}
}

func TestLapseResets(t *testing.T) {
	start := State{Repetitions: 7, EaseFactor: 2.9, IntervalDays: 42, Due: t0}
	for _, g := range []Grade{0, 1, 2} {
		next := mustUpdate(t, start, g, t0)
		if next.Repetitions != 0 {
			t.Errorf("grade %d: Repetitions = %d, want 0", g, next.Repetitions)
		}
		if next.IntervalDays != 1 {
			t.Errorf("grade %d: IntervalDays = %d, want 1", g, next.IntervalDays)
		}
		wantDue := t0.AddDate(0, 0, 1)
		if !next.Due.Equal(wantDue) {
			t.Errorf("grade %d: Due = %v, want %v", g, next.Due, wantDue)
		}
	}
}

func TestBootstrapIntervals(t *testing.T) {
	// First pass: 1 day regardless of grade.
	for _, g := range []Grade{3, 4, 5} {
		next := mustUpdate(t, NewState(t0), g, t0)
		if next.Repetitions != 1 {
			t.Errorf("grade %d: Repetitions = %d, want 1", g, next.Repetitions)
		}
		if next.IntervalDays != 1 {
			t.Errorf("grade %d: IntervalDays = %d, want 1", g, next.IntervalDays)
		}
	}

	// Second pass: 6 days.
	second := State{Repetitions: 1, EaseFactor: 2.6, IntervalDays: 1, Due: t0}
	next := mustUpdate(t, second, 4, t0)
	if next.IntervalDays != 6 {
		t.Errorf("IntervalDays = %d, want 6", next.IntervalDays)
	}
	if next.Repetitions != 2 {
		t.Errorf("Repetitions = %d, want 2", next.Repetitions)
	}
}

func TestIntervalGrowth(t *testing.T) {
	tests := []struct {
		interval int
		ease     float64
		want     int
	}{
		{6, 2.5, 15},  // round(15.0)
		{10, 2.5, 25}, // round(25.0)
		{6, 1.3, 8},   // round(7.8)
		{15, 2.7, 41}, // round(40.5) rounds half away from zero
	}
	for _, tt := range tests {
		s := State{Repetitions: 2, EaseFactor: tt.ease, IntervalDays: tt.interval, Due: t0}
		next := mustUpdate(t, s, 4, t0)
		if next.IntervalDays != tt.want {
			t.Errorf("interval %d * ease %v: IntervalDays = %d, want %d",
				tt.interval, tt.ease, next.IntervalDays, tt.want)
		}
	}
}

func TestEaseFloor(t *testing.T) {
	// Hammer a card with the worst grade; ease must never dip below MinEase.
	s := NewState(t0)
	for i := 0; i < 20; i++ {
		s = mustUpdate(t, s, 0, t0)
		if s.EaseFactor < MinEase {
			t.Fatalf("after %d lapses: EaseFactor = %v, below floor %v", i+1, s.EaseFactor, MinEase)
		}
	}
	assertFloat(t, "EaseFactor", s.EaseFactor, MinEase)
}

func TestDueDateArithmetic(t *testing.T) {
	for _, g := range []Grade{0, 2, 3, 5} {
		s := State{Repetitions: 3, EaseFactor: 2.5, IntervalDays: 10, Due: t0}
		next := mustUpdate(t, s, g, t0)
		wantDue := DateOf(t0).AddDate(0, 0, next.IntervalDays)
		if !next.Due.Equal(wantDue) {
			t.Errorf("grade %d: Due = %v, want today + %d days = %v", g, next.Due, next.IntervalDays, wantDue)
		}
	}
}

func TestUpdateNormalizesToday(t *testing.T) {
	// A timestamp mid-day in a non-UTC zone still lands on calendar dates.
	loc := time.FixedZone("UTC+3", 3*60*60)
	noon := time.Date(2025, 6, 15, 12, 30, 0, 0, loc)
	next := mustUpdate(t, NewState(noon), 5, noon)
	wantDue := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	if !next.Due.Equal(wantDue) {
		t.Errorf("Due = %v, want %v", next.Due, wantDue)
	}
}

func TestUpdateDoesNotMutateInput(t *testing.T) {
	s := State{Repetitions: 2, EaseFactor: 2.5, IntervalDays: 6, Due: t0}
	before := s
	_ = mustUpdate(t, s, 5, t0)
	if s != before {
		t.Errorf("input state mutated: %+v, want %+v", s, before)
	}
}

// TestReviewSequence walks a card through two perfect recalls and a lapse,
// checking every field after each step.
func TestReviewSequence(t *testing.T) {
	s := NewState(t0)

	s = mustUpdate(t, s, 5, t0)
	if s.Repetitions != 1 || s.IntervalDays != 1 {
		t.Fatalf("step 1: got (%d, %d), want (1, 1)", s.Repetitions, s.IntervalDays)
	}
	assertFloat(t, "step 1 ease", s.EaseFactor, 2.6)
	if !s.Due.Equal(t0.AddDate(0, 0, 1)) {
		t.Errorf("step 1: Due = %v, want %v", s.Due, t0.AddDate(0, 0, 1))
	}

	s = mustUpdate(t, s, 5, t0)
	if s.Repetitions != 2 || s.IntervalDays != 6 {
		t.Fatalf("step 2: got (%d, %d), want (2, 6)", s.Repetitions, s.IntervalDays)
	}
	assertFloat(t, "step 2 ease", s.EaseFactor, 2.7)

	// Lapse: repetitions and interval reset, ease still moves per formula.
	s = mustUpdate(t, s, 2, t0)
	if s.Repetitions != 0 || s.IntervalDays != 1 {
		t.Fatalf("step 3: got (%d, %d), want (0, 1)", s.Repetitions, s.IntervalDays)
	}
	assertFloat(t, "step 3 ease", s.EaseFactor, 2.38) // 2.7 + 0.1 - 3*(0.08 + 3*0.02)
	if !s.Due.Equal(t0.AddDate(0, 0, 1)) {
		t.Errorf("step 3: Due = %v, want %v", s.Due, t0.AddDate(0, 0, 1))
	}
}
