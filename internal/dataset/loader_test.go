package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alvaro-gj/bubblereport/internal/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validObservations = `date,index,period,close,drawdown,rolling_vol_30d
1999-01-04,NASDAQ,dotcom,2208.05,-0.02,0.012
1999-01-01,NASDAQ,dotcom,2192.69,0.0,
2021-01-04,SP500,ia,3700.65,-0.01,0.009
2021-01-05,SP500,ia,3726.86,0.0,NA
`

func TestLoadObservations(t *testing.T) {
	path := writeFile(t, "obs.csv", validObservations)

	obs, err := LoadObservations(path)
	if err != nil {
		t.Fatalf("LoadObservations failed: %v", err)
	}
	if len(obs) != 4 {
		t.Fatalf("Expected 4 observations, got %d", len(obs))
	}

	// Sorted by (index, period, date): NASDAQ rows come first, oldest first.
	if obs[0].Index != "NASDAQ" || !obs[0].Date.Equal(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected first row NASDAQ 1999-01-01, got %s %s", obs[0].Index, obs[0].Date)
	}
	if obs[1].Date.Before(obs[0].Date) {
		t.Error("Observations within a group should be date-ascending")
	}

	// Nullable rolling volatility.
	if obs[0].HasRollingVol {
		t.Error("Empty rolling_vol_30d cell should be null")
	}
	if !obs[1].HasRollingVol || obs[1].RollingVol30d != 0.012 {
		t.Errorf("Expected rolling vol 0.012, got %v (defined=%v)", obs[1].RollingVol30d, obs[1].HasRollingVol)
	}
	if obs[3].HasRollingVol {
		t.Error("NA rolling_vol_30d cell should be null")
	}

	if obs[2].Period != models.PeriodIA {
		t.Errorf("Expected period ia, got %s", obs[2].Period)
	}
}

func TestLoadObservationsHeaderOrderIndependent(t *testing.T) {
	content := `close,date,rolling_vol_30d,index,period,drawdown
2192.69,1999-01-01,,NASDAQ,dotcom,0.0
`
	path := writeFile(t, "obs.csv", content)

	obs, err := LoadObservations(path)
	if err != nil {
		t.Fatalf("LoadObservations failed: %v", err)
	}
	if obs[0].Close != 2192.69 {
		t.Errorf("Expected close 2192.69, got %v", obs[0].Close)
	}
}

func TestLoadObservationsUTF8BOM(t *testing.T) {
	path := writeFile(t, "obs.csv", "\xEF\xBB\xBF"+validObservations)

	obs, err := LoadObservations(path)
	if err != nil {
		t.Fatalf("LoadObservations with UTF-8 BOM failed: %v", err)
	}
	if len(obs) != 4 {
		t.Errorf("Expected 4 observations, got %d", len(obs))
	}
}

func TestLoadObservationsUTF16(t *testing.T) {
	// UTF-16 LE with BOM, as saved by spreadsheet exports.
	var buf []byte
	buf = append(buf, 0xFF, 0xFE)
	for _, r := range validObservations {
		buf = append(buf, byte(r), byte(r>>8))
	}
	path := filepath.Join(t.TempDir(), "obs16.csv")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatal(err)
	}

	obs, err := LoadObservations(path)
	if err != nil {
		t.Fatalf("LoadObservations with UTF-16 BOM failed: %v", err)
	}
	if len(obs) != 4 {
		t.Errorf("Expected 4 observations, got %d", len(obs))
	}
}

func TestLoadObservationsErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing required column",
			content: "date,index,period,close,drawdown\n1999-01-01,NASDAQ,dotcom,100,0\n",
			wantErr: "rolling_vol_30d",
		},
		{
			name:    "unparseable date",
			content: "date,index,period,close,drawdown,rolling_vol_30d\n01/04/1999,NASDAQ,dotcom,100,0,\n",
			wantErr: "invalid date",
		},
		{
			name:    "unparseable close",
			content: "date,index,period,close,drawdown,rolling_vol_30d\n1999-01-04,NASDAQ,dotcom,abc,0,\n",
			wantErr: "invalid close",
		},
		{
			name: "duplicate key",
			content: "date,index,period,close,drawdown,rolling_vol_30d\n" +
				"1999-01-04,NASDAQ,dotcom,100,0,\n" +
				"1999-01-04,NASDAQ,dotcom,101,0,\n",
			wantErr: "duplicate observation",
		},
		{
			name:    "empty file",
			content: "",
			wantErr: "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "obs.csv", tt.content)
			_, err := LoadObservations(path)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadObservationsMissingFile(t *testing.T) {
	_, err := LoadObservations(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("Expected error for missing file, got nil")
	}
}

func TestLoadEvents(t *testing.T) {
	content := `date,event_name,description
2000-03-10,Pico del Nasdaq,El Nasdaq alcanza su máximo de la era puntocom
2022-11-30,Lanzamiento de ChatGPT,OpenAI publica ChatGPT
`
	path := writeFile(t, "events.csv", content)

	events, err := LoadEvents(path)
	if err != nil {
		t.Fatalf("LoadEvents failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[0].Name != "Pico del Nasdaq" {
		t.Errorf("Unexpected event name: %q", events[0].Name)
	}
	if !events[1].Date.Equal(time.Date(2022, 11, 30, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected event date: %s", events[1].Date)
	}
}

func TestLoadEventsErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing column", "date,event_name\n2000-03-10,Pico\n"},
		{"bad date", "date,event_name,description\nmarch,Pico,desc\n"},
		{"empty name", "date,event_name,description\n2000-03-10,,desc\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "events.csv", tt.content)
			if _, err := LoadEvents(path); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}
