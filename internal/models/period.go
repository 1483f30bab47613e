package models

import "time"

// Period identifies one of the two market episodes being compared.
type Period string

const (
	// PeriodDotcom covers the dot-com bubble years.
	PeriodDotcom Period = "dotcom"
	// PeriodIA covers the AI investment narrative years.
	PeriodIA Period = "ia"
)

// Fixed, non-overlapping date ranges used to classify observations and events.
// Dates are inclusive on both ends and expressed in UTC.
var (
	DotcomStart = time.Date(1997, 1, 1, 0, 0, 0, 0, time.UTC)
	DotcomEnd   = time.Date(2002, 12, 31, 0, 0, 0, 0, time.UTC)
	IAStart     = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	IAEnd       = time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
)

var periodLabels = map[Period]string{
	PeriodDotcom: "Burbuja puntocom (1997–2002)",
	PeriodIA:     "Narrativa IA (2020–2025)",
}

// Valid reports whether p is one of the known period codes.
func (p Period) Valid() bool {
	_, ok := periodLabels[p]
	return ok
}

// Label returns the human-readable display name for the period,
// or the raw code if the period is unknown.
func (p Period) Label() string {
	if label, ok := periodLabels[p]; ok {
		return label
	}
	return string(p)
}
