package srs

import "errors"

// Sentinel errors for the srs package.
// Use errors.Is to check: errors.Is(err, srs.ErrInvalidGrade)
var (
	ErrInvalidGrade = errors.New("srs: invalid grade")
)
