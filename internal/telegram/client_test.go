package telegram

import (
	"strings"
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected string
	}{
		{1500 * time.Millisecond, "1.5s"},
		{2 * time.Second, "2.0s"},
		{250 * time.Millisecond, "250ms"},
		{0, "0ms"},
	}

	for _, tt := range tests {
		result := formatDuration(tt.duration)
		if result != tt.expected {
			t.Errorf("formatDuration(%v) = %s, expected %s", tt.duration, result, tt.expected)
		}
	}
}

func TestEscapeMarkdownV2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"index.html", "index\\.html"},
		{"out/report_v2.html", "out/report\\_v2\\.html"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		result := escapeMarkdownV2(tt.input)
		if result != tt.expected {
			t.Errorf("escapeMarkdownV2(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestFormatSummary(t *testing.T) {
	msg := formatSummary(Summary{
		OutputPath:    "index.html",
		Observations:  3120,
		Events:        14,
		AlignedEvents: 12,
		Duration:      820 * time.Millisecond,
		RunID:         "run-1",
	})

	for _, want := range []string{
		"Informe de burbujas generado",
		"index\\.html",
		"3120",
		"14 \\(12 alineados\\)",
		"820ms",
		"run\\-1",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("Message should contain %q, got:\n%s", want, msg)
		}
	}
}
