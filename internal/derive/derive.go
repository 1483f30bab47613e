// Package derive computes the chart-facing columns of the observation table:
// the price series rebased to 100 at each group's first observation, the
// drawdown expressed as a percentage, and the subset of rows where the 30-day
// rolling volatility is defined.
//
// All functions expect the slice to be sorted by (index, period, date), which
// is what the dataset loader guarantees; group boundaries are detected by
// scanning contiguous runs of the same (index, period) pair.
package derive

import "github.com/alvaro-gj/bubblereport/internal/models"

// Rebase fills CloseIndexed so that the first chronological close of every
// (index, period) group maps to exactly 100 and later values scale
// proportionally.
//
// Precondition: the first close of each group is positive. A zero anchor
// would produce ±Inf ratios; the loader already rejects non-positive closes,
// so this is not re-checked here.
func Rebase(obs []models.Observation) {
	for start := 0; start < len(obs); {
		end := groupEnd(obs, start)
		anchor := obs[start].Close
		for i := start; i < end; i++ {
			obs[i].CloseIndexed = obs[i].Close / anchor * 100
		}
		start = end
	}
}

// DrawdownPct converts the fractional drawdown column to a percentage for
// every row. Pure elementwise transform.
func DrawdownPct(obs []models.Observation) {
	for i := range obs {
		obs[i].DrawdownPct = obs[i].Drawdown * 100
	}
}

// WithRollingVol returns the rows whose 30-day rolling volatility is defined,
// i.e. past the warm-up window. The input is left untouched.
func WithRollingVol(obs []models.Observation) []models.Observation {
	out := make([]models.Observation, 0, len(obs))
	for _, o := range obs {
		if o.HasRollingVol {
			out = append(out, o)
		}
	}
	return out
}

// ForPeriod returns the rows belonging to the given period, preserving order.
func ForPeriod(obs []models.Observation, period models.Period) []models.Observation {
	out := make([]models.Observation, 0, len(obs))
	for _, o := range obs {
		if o.Period == period {
			out = append(out, o)
		}
	}
	return out
}

// ForIndex returns the rows belonging to the given index, preserving order.
func ForIndex(obs []models.Observation, index string) []models.Observation {
	out := make([]models.Observation, 0, len(obs))
	for _, o := range obs {
		if o.Index == index {
			out = append(out, o)
		}
	}
	return out
}

// groupEnd returns the index one past the last row sharing obs[start]'s
// (index, period) pair.
func groupEnd(obs []models.Observation, start int) int {
	end := start + 1
	for end < len(obs) && obs[end].Index == obs[start].Index && obs[end].Period == obs[start].Period {
		end++
	}
	return end
}
