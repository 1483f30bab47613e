// Package dataset reads the processed time-series table and the event table
// from CSV files into validated in-memory slices.
//
// Both loaders tolerate byte-order marks: UTF-16 files (either endianness)
// are transparently decoded to UTF-8 and a plain UTF-8 BOM is skipped, since
// the event table is typically exported from a spreadsheet. Any row that
// fails to parse is a fatal load error; there is no row-level recovery.
package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/alvaro-gj/bubblereport/internal/models"
)

// dateLayout is the calendar-date format of both input files.
const dateLayout = "2006-01-02"

// observationColumns are the required header names of the time-series file.
var observationColumns = []string{"date", "index", "period", "close", "drawdown", "rolling_vol_30d"}

// eventColumns are the required header names of the event table.
var eventColumns = []string{"date", "event_name", "description"}

// LoadObservations reads the time-series dataset from path. The result is
// sorted by (index, period, date) and guaranteed unique on that triple, which
// the group-wise transforms downstream rely on.
func LoadObservations(path string) ([]models.Observation, error) {
	records, header, err := readTable(path, observationColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to load observations from %s: %w", path, err)
	}

	observations := make([]models.Observation, 0, len(records))
	for i, record := range records {
		row := i + 2 // 1-based, after the header line

		date, err := time.Parse(dateLayout, record[header["date"]])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid date: %w", path, row, err)
		}
		close, err := strconv.ParseFloat(record[header["close"]], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid close: %w", path, row, err)
		}
		drawdown, err := strconv.ParseFloat(record[header["drawdown"]], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid drawdown: %w", path, row, err)
		}

		obs := models.Observation{
			Date:     date,
			Index:    strings.TrimSpace(record[header["index"]]),
			Period:   models.Period(strings.TrimSpace(record[header["period"]])),
			Close:    close,
			Drawdown: drawdown,
		}

		// Rolling volatility is nullable: it needs a 30-observation warm-up.
		if raw := strings.TrimSpace(record[header["rolling_vol_30d"]]); !isMissing(raw) {
			vol, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: invalid rolling_vol_30d: %w", path, row, err)
			}
			obs.RollingVol30d = vol
			obs.HasRollingVol = true
		}

		if err := obs.Validate(); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, row, err)
		}
		observations = append(observations, obs)
	}

	sortObservations(observations)
	if err := checkUnique(observations); err != nil {
		return nil, fmt.Errorf("failed to load observations from %s: %w", path, err)
	}
	return observations, nil
}

// LoadEvents reads the event table from path.
func LoadEvents(path string) ([]models.Event, error) {
	records, header, err := readTable(path, eventColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to load events from %s: %w", path, err)
	}

	events := make([]models.Event, 0, len(records))
	for i, record := range records {
		row := i + 2

		date, err := time.Parse(dateLayout, record[header["date"]])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid date: %w", path, row, err)
		}

		event := models.Event{
			Date:        date,
			Name:        strings.TrimSpace(record[header["event_name"]]),
			Description: strings.TrimSpace(record[header["description"]]),
		}
		if err := event.Validate(); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, row, err)
		}
		events = append(events, event)
	}
	return events, nil
}

// readTable opens a CSV file, resolves its encoding, and returns the data
// records plus a map from required column name to field position.
func readTable(path string, required []string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	reader := csv.NewReader(decodeBOM(bufio.NewReader(f)))
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("file is empty")
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := header[name]; !ok {
			return nil, nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return rows[1:], header, nil
}

// decodeBOM sniffs UTF-16 and UTF-8 byte-order marks and returns a reader
// yielding plain UTF-8.
func decodeBOM(br *bufio.Reader) io.Reader {
	head, _ := br.Peek(3)
	if len(head) >= 2 {
		if (head[0] == 0xFF && head[1] == 0xFE) || (head[0] == 0xFE && head[1] == 0xFF) {
			enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
			if head[0] == 0xFE {
				enc = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
			}
			return transform.NewReader(br, enc.NewDecoder())
		}
	}
	if len(head) == 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		br.Discard(3)
	}
	return br
}

// isMissing reports whether a cell encodes a null value.
func isMissing(raw string) bool {
	switch strings.ToUpper(raw) {
	case "", "NA", "NAN", "NULL":
		return true
	}
	return false
}

// sortObservations orders by (index, period, date), the canonical order for
// all group-wise transforms.
func sortObservations(obs []models.Observation) {
	sort.SliceStable(obs, func(i, j int) bool {
		if obs[i].Index != obs[j].Index {
			return obs[i].Index < obs[j].Index
		}
		if obs[i].Period != obs[j].Period {
			return obs[i].Period < obs[j].Period
		}
		return obs[i].Date.Before(obs[j].Date)
	})
}

// checkUnique verifies the (index, period, date) uniqueness invariant on a
// sorted slice.
func checkUnique(obs []models.Observation) error {
	for i := 1; i < len(obs); i++ {
		prev, cur := obs[i-1], obs[i]
		if prev.Index == cur.Index && prev.Period == cur.Period && prev.Date.Equal(cur.Date) {
			return fmt.Errorf("duplicate observation for (%s, %s, %s)",
				cur.Index, cur.Period, cur.Date.Format(dateLayout))
		}
	}
	return nil
}
