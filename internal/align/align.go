// Package align classifies events into market periods and joins each one to
// the reference index at the nearest prior trading day.
//
// Classification uses the fixed, non-overlapping date ranges from the models
// package; events outside both ranges are dropped. The price join is a
// backward as-of match: each event takes the closing price of the latest
// reference observation dated on or before the event date, found by binary
// search over the date-sorted reference series. Events predating all
// reference data have no defined price and are dropped as well.
package align

import (
	"sort"
	"time"

	"github.com/alvaro-gj/bubblereport/internal/logger"
	"github.com/alvaro-gj/bubblereport/internal/models"
)

// InferPeriod classifies a date into one of the two episodes. The second
// return value is false when the date falls outside both ranges.
func InferPeriod(date time.Time) (models.Period, bool) {
	switch {
	case !date.Before(models.DotcomStart) && !date.After(models.DotcomEnd):
		return models.PeriodDotcom, true
	case !date.Before(models.IAStart) && !date.After(models.IAEnd):
		return models.PeriodIA, true
	}
	return "", false
}

// ReferenceSeries extracts the date-sorted observations of the reference
// index from the full observation table.
func ReferenceSeries(obs []models.Observation, index string) []models.Observation {
	series := make([]models.Observation, 0, len(obs))
	for _, o := range obs {
		if o.Index == index {
			series = append(series, o)
		}
	}
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})
	return series
}

// AlignEvents classifies each event and matches it backward against the
// reference series. Events outside both period ranges and events with no
// reference observation on or before their date are dropped; dropping is
// logged at debug level, never fatal.
//
// The reference slice must be sorted by date ascending (ReferenceSeries
// guarantees this).
func AlignEvents(events []models.Event, reference []models.Observation) []models.AlignedEvent {
	aligned := make([]models.AlignedEvent, 0, len(events))

	for _, event := range events {
		period, ok := InferPeriod(event.Date)
		if !ok {
			logger.Debug("Event %q (%s) is outside both period ranges, dropping",
				event.Name, event.Date.Format("2006-01-02"))
			continue
		}

		match, ok := asOf(reference, event.Date)
		if !ok {
			logger.Debug("Event %q (%s) predates all reference data, dropping",
				event.Name, event.Date.Format("2006-01-02"))
			continue
		}

		// The event's own date-inferred period wins; the matched row's period
		// is only a fallback and is unreachable while InferPeriod is total
		// over surviving events.
		if period == "" {
			period = match.Period
		}

		aligned = append(aligned, models.AlignedEvent{
			Event:       event,
			Period:      period,
			Close:       match.Close,
			MatchedDate: match.Date,
		})
	}

	return aligned
}

// asOf returns the reference observation with the latest date ≤ target.
// The second return value is false when every observation is later than
// target.
func asOf(reference []models.Observation, target time.Time) (models.Observation, bool) {
	// First index with date strictly after target; the match is the one before.
	i := sort.Search(len(reference), func(i int) bool {
		return reference[i].Date.After(target)
	})
	if i == 0 {
		return models.Observation{}, false
	}
	return reference[i-1], true
}
