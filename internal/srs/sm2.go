package srs

import (
	"fmt"
	"math"
	"time"
)

const (
	// InitialEase is the ease factor assigned to a card that has never
	// been reviewed.
	InitialEase = 2.5

	// MinEase is the hard floor for the ease factor. Without it a run of
	// bad grades would shrink intervals forever; with it a card can
	// always recover.
	MinEase = 1.3
)

// State is the scheduling state of one (user, card) pair — the fields the
// SM-2 algorithm reads and writes. Due is a calendar date (midnight UTC).
type State struct {
	Repetitions  int       `json:"repetitions"`
	EaseFactor   float64   `json:"ease_factor"`
	IntervalDays int       `json:"interval_days"`
	Due          time.Time `json:"due"`
}

// NewState returns the default state for a card created or first reviewed
// today: zero repetitions, initial ease, one-day interval, due immediately.
func NewState(today time.Time) State {
	return State{
		Repetitions:  0,
		EaseFactor:   InitialEase,
		IntervalDays: 1,
		Due:          DateOf(today),
	}
}

// IsDue reports whether the card should be surfaced for review on asOf.
func (s State) IsDue(asOf time.Time) bool {
	return !DateOf(s.Due).After(DateOf(asOf))
}

// Update applies one SM-2 review step to s and returns the next state.
// today is caller-supplied so the function stays deterministic; the input
// state is not mutated. Grades outside [0,5] return ErrInvalidGrade and a
// zero State — the caller must not persist anything in that case.
//
// A grade below 3 is a lapse: the repetition streak resets and the card
// comes back tomorrow. A passing grade grows the interval through the
// classic bootstrap (1 day, then 6 days, then interval * ease). The ease
// factor moves in both branches, depending only on the grade.
func Update(s State, grade Grade, today time.Time) (State, error) {
	if !grade.IsValid() {
		return State{}, fmt.Errorf("%w: %d", ErrInvalidGrade, int(grade))
	}

	next := s
	if grade.Passing() {
		switch s.Repetitions {
		case 0:
			next.IntervalDays = 1
		case 1:
			next.IntervalDays = 6
		default:
			next.IntervalDays = int(math.Round(float64(s.IntervalDays) * s.EaseFactor))
		}
		next.Repetitions = s.Repetitions + 1
	} else {
		next.Repetitions = 0
		next.IntervalDays = 1
	}

	next.EaseFactor = nextEase(s.EaseFactor, grade)
	next.Due = DateOf(today).AddDate(0, 0, next.IntervalDays)
	return next, nil
}

// nextEase applies the SM-2 ease adjustment, floored at MinEase.
func nextEase(ease float64, grade Grade) float64 {
	q := float64(grade)
	ease += 0.1 - (5-q)*(0.08+(5-q)*0.02)
	if ease < MinEase {
		ease = MinEase
	}
	return ease
}
