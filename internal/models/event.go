package models

import (
	"errors"
	"time"
)

// Event is a dated qualitative market milestone as read from the event table,
// before period classification and price alignment.
type Event struct {
	Date        time.Time `json:"date"`
	Name        string    `json:"event_name"`
	Description string    `json:"description,omitempty"`
}

// Validate checks that all event fields are valid.
func (e *Event) Validate() error {
	if e.Date.IsZero() {
		return errors.New("event date must not be zero")
	}
	if e.Name == "" {
		return errors.New("event name must not be empty")
	}
	return nil
}

// AlignedEvent is an event that survived period classification and was joined
// to the reference index. Close is the reference index closing price at the
// most recent trading day on or before the event date; MatchedDate records
// which trading day that was.
type AlignedEvent struct {
	Event
	Period      Period    `json:"period"`
	Close       float64   `json:"close"`
	MatchedDate time.Time `json:"matched_date"`
}

// Validate checks that all aligned event fields are valid.
func (a *AlignedEvent) Validate() error {
	if err := a.Event.Validate(); err != nil {
		return err
	}
	if !a.Period.Valid() {
		return errors.New("aligned event period must be a known period code")
	}
	if a.MatchedDate.After(a.Date) {
		return errors.New("aligned event matched date must be on or before the event date")
	}
	return nil
}
