package srs

// Grade is the reviewer's quality score for a single review event,
// on the classic SM-2 scale: 0 = no recall, 5 = perfect recall.
type Grade int

const (
	// MinGrade and MaxGrade bound the valid quality scale.
	MinGrade Grade = 0
	MaxGrade Grade = 5

	// PassingGrade is the lowest grade that counts as a successful
	// recall. Anything below it is a lapse.
	PassingGrade Grade = 3
)

// IsValid reports whether g is within the [0,5] quality scale.
func (g Grade) IsValid() bool {
	return g >= MinGrade && g <= MaxGrade
}

// Passing reports whether g counts as a successful recall.
func (g Grade) Passing() bool {
	return g >= PassingGrade
}
