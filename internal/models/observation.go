// Package models defines the core domain entities for the bubble comparison report.
// These models represent daily index observations, qualitative market events, and
// events aligned to the reference index. All models include built-in validation to
// ensure data integrity throughout the pipeline.
//
// Terminology (matching the processed dataset's own naming):
//   - Observation: one row of the time-series dataset, keyed by (index, period, date).
//   - Event: a dated qualitative milestone (product launch, bankruptcy, ...) before alignment.
//   - AlignedEvent: an event classified into a period and joined to the reference
//     index close at the nearest prior trading day.
package models

import (
	"errors"
	"time"
)

// Observation is one daily row of the processed time-series dataset for a
// single index within a single period. Close and Drawdown come straight from
// the input file; RollingVol30d is only defined after its 30-observation
// warm-up window, signalled by HasRollingVol.
//
// CloseIndexed and DrawdownPct start at zero and are filled in by the derive
// package; they are not part of the input contract.
type Observation struct {
	Date          time.Time `json:"date"`
	Index         string    `json:"index"`  // e.g. "NASDAQ", "SP500"
	Period        Period    `json:"period"` // episode the row belongs to
	Close         float64   `json:"close"`
	Drawdown      float64   `json:"drawdown"` // fraction in [-1, 0]
	RollingVol30d float64   `json:"rolling_vol_30d"`
	HasRollingVol bool      `json:"has_rolling_vol"`

	// Derived columns, populated by the derive package.
	CloseIndexed float64 `json:"close_indexed_100"`
	DrawdownPct  float64 `json:"drawdown_pct"`
}

// Validate checks that all observation fields are valid.
func (o *Observation) Validate() error {
	if o.Date.IsZero() {
		return errors.New("observation date must not be zero")
	}
	if o.Index == "" {
		return errors.New("observation index must not be empty")
	}
	if !o.Period.Valid() {
		return errors.New("observation period must be a known period code")
	}
	if o.Close <= 0 {
		return errors.New("observation close must be positive")
	}
	if o.Drawdown < -1.0 || o.Drawdown > 0.0 {
		return errors.New("observation drawdown must be a fraction in [-1, 0]")
	}
	return nil
}
