package srs

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Stage is the learning-stage bucket of a card, derived from its
// scheduling state. It is never stored: a lapse can move a card back out
// of Mastered, so callers must classify fresh on every read.
type Stage int

const (
	New      Stage = iota + 1 // never successfully reviewed
	Studying                  // reviewed, retention still shaky
	Mastered                  // reviewed and comfortably retained
)

// MasteredEase is the ease-factor threshold separating Studying from
// Mastered. A single constant so the boundary cannot drift between
// call sites.
const MasteredEase = 2.6

// Classify derives the learning stage from a card's repetition count and
// ease factor. Total over all valid states: repetitions == 0 is always New.
func Classify(repetitions int, easeFactor float64) Stage {
	switch {
	case repetitions == 0:
		return New
	case easeFactor > MasteredEase:
		return Mastered
	default:
		return Studying
	}
}

var (
	stageNames = [...]string{New: "new", Studying: "studying", Mastered: "mastered"}
	stageByName = map[string]Stage{
		"new":      New,
		"studying": Studying,
		"mastered": Mastered,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Stage(0)
	_ json.Marshaler           = Stage(0)
	_ json.Unmarshaler         = (*Stage)(nil)
	_ encoding.TextMarshaler   = Stage(0)
	_ encoding.TextUnmarshaler = (*Stage)(nil)
)

func (s Stage) isValid() bool {
	return s >= New && s <= Mastered
}

// String returns the name of the stage ("new", "studying", "mastered").
// For invalid values it returns "Stage(n)".
func (s Stage) String() string {
	if s.isValid() {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Stage) MarshalText() ([]byte, error) {
	if !s.isValid() {
		return nil, fmt.Errorf("srs: invalid stage: %d", int(s))
	}
	return []byte(stageNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Stage) UnmarshalText(text []byte) error {
	v, ok := stageByName[string(text)]
	if !ok {
		return fmt.Errorf("srs: invalid stage: %q", text)
	}
	*s = v
	return nil
}

// MarshalJSON implements json.Marshaler. Stage serializes as a JSON string.
func (s Stage) MarshalJSON() ([]byte, error) {
	text, err := s.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("srs: invalid stage: %s", data)
	}
	return s.UnmarshalText([]byte(str))
}
