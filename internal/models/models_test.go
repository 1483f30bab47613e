package models

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestObservationValidate(t *testing.T) {
	tests := []struct {
		name    string
		obs     Observation
		wantErr bool
	}{
		{
			name: "valid observation",
			obs: Observation{
				Date:     date(1999, 3, 10),
				Index:    "NASDAQ",
				Period:   PeriodDotcom,
				Close:    2406.0,
				Drawdown: -0.12,
			},
			wantErr: false,
		},
		{
			name: "valid observation with rolling vol",
			obs: Observation{
				Date:          date(2023, 11, 29),
				Index:         "NASDAQ",
				Period:        PeriodIA,
				Close:         14200.0,
				Drawdown:      0.0,
				RollingVol30d: 0.011,
				HasRollingVol: true,
			},
			wantErr: false,
		},
		{
			name: "zero date",
			obs: Observation{
				Index:    "NASDAQ",
				Period:   PeriodDotcom,
				Close:    100.0,
				Drawdown: 0.0,
			},
			wantErr: true,
		},
		{
			name: "empty index",
			obs: Observation{
				Date:     date(1999, 3, 10),
				Period:   PeriodDotcom,
				Close:    100.0,
				Drawdown: 0.0,
			},
			wantErr: true,
		},
		{
			name: "unknown period",
			obs: Observation{
				Date:     date(1999, 3, 10),
				Index:    "NASDAQ",
				Period:   Period("tulips"),
				Close:    100.0,
				Drawdown: 0.0,
			},
			wantErr: true,
		},
		{
			name: "non-positive close",
			obs: Observation{
				Date:     date(1999, 3, 10),
				Index:    "NASDAQ",
				Period:   PeriodDotcom,
				Close:    0.0,
				Drawdown: 0.0,
			},
			wantErr: true,
		},
		{
			name: "drawdown below -1",
			obs: Observation{
				Date:     date(1999, 3, 10),
				Index:    "NASDAQ",
				Period:   PeriodDotcom,
				Close:    100.0,
				Drawdown: -1.5,
			},
			wantErr: true,
		},
		{
			name: "positive drawdown",
			obs: Observation{
				Date:     date(1999, 3, 10),
				Index:    "NASDAQ",
				Period:   PeriodDotcom,
				Close:    100.0,
				Drawdown: 0.05,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.obs.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestEventValidate(t *testing.T) {
	tests := []struct {
		name    string
		event   Event
		wantErr bool
	}{
		{
			name: "valid event",
			event: Event{
				Date:        date(2022, 11, 30),
				Name:        "Lanzamiento de ChatGPT",
				Description: "OpenAI publica ChatGPT",
			},
			wantErr: false,
		},
		{
			name:    "zero date",
			event:   Event{Name: "Quiebra de Pets.com"},
			wantErr: true,
		},
		{
			name:    "empty name",
			event:   Event{Date: date(2000, 11, 9)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestAlignedEventValidate(t *testing.T) {
	base := Event{Date: date(2023, 11, 30), Name: "Aniversario de ChatGPT"}

	tests := []struct {
		name    string
		aligned AlignedEvent
		wantErr bool
	}{
		{
			name: "valid aligned event",
			aligned: AlignedEvent{
				Event:       base,
				Period:      PeriodIA,
				Close:       14200.0,
				MatchedDate: date(2023, 11, 29),
			},
			wantErr: false,
		},
		{
			name: "matched date after event date",
			aligned: AlignedEvent{
				Event:       base,
				Period:      PeriodIA,
				Close:       14300.0,
				MatchedDate: date(2023, 12, 1),
			},
			wantErr: true,
		},
		{
			name: "unknown period",
			aligned: AlignedEvent{
				Event:       base,
				Period:      Period(""),
				Close:       14200.0,
				MatchedDate: date(2023, 11, 29),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.aligned.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestPeriodLabel(t *testing.T) {
	tests := []struct {
		period   Period
		expected string
	}{
		{PeriodDotcom, "Burbuja puntocom (1997–2002)"},
		{PeriodIA, "Narrativa IA (2020–2025)"},
		{Period("other"), "other"},
	}

	for _, tt := range tests {
		if got := tt.period.Label(); got != tt.expected {
			t.Errorf("Label(%q) = %q, expected %q", tt.period, got, tt.expected)
		}
	}
}

func TestPeriodValid(t *testing.T) {
	if !PeriodDotcom.Valid() || !PeriodIA.Valid() {
		t.Error("known period codes should be valid")
	}
	if Period("").Valid() || Period("tulips").Valid() {
		t.Error("unknown period codes should be invalid")
	}
}
