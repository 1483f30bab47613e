// Command bubblereport generates the dot-com vs AI bubble comparison page:
// it loads the processed index dataset and the event table, derives the
// chart columns, aligns events to the reference index, and writes a single
// HTML document with four interactive figures.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/alvaro-gj/bubblereport/internal/align"
	"github.com/alvaro-gj/bubblereport/internal/charts"
	"github.com/alvaro-gj/bubblereport/internal/config"
	"github.com/alvaro-gj/bubblereport/internal/dataset"
	"github.com/alvaro-gj/bubblereport/internal/derive"
	"github.com/alvaro-gj/bubblereport/internal/logger"
	"github.com/alvaro-gj/bubblereport/internal/report"
	"github.com/alvaro-gj/bubblereport/internal/telegram"
)

var configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Setup logging with level support
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	runID := uuid.NewString()
	start := time.Now()
	logger.Info("Starting report run %s", runID)

	// Load both input tables before any transform begins
	observations, err := dataset.LoadObservations(cfg.Dataset.ObservationsPath)
	if err != nil {
		logger.Fatal("Failed to load observations: %v", err)
	}
	logger.Info("Loaded %d observations from %s", len(observations), cfg.Dataset.ObservationsPath)

	events, err := dataset.LoadEvents(cfg.Dataset.EventsPath)
	if err != nil {
		logger.Fatal("Failed to load events: %v", err)
	}
	logger.Info("Loaded %d events from %s", len(events), cfg.Dataset.EventsPath)

	// Derive chart columns
	derive.Rebase(observations)
	derive.DrawdownPct(observations)
	volRows := derive.WithRollingVol(observations)
	logger.Info("Derived features (%d of %d rows have a defined rolling volatility)",
		len(volRows), len(observations))

	// Align events to the reference index
	reference := align.ReferenceSeries(observations, cfg.Dataset.ReferenceIndex)
	if len(reference) == 0 {
		logger.Warn("Reference index %s has no observations; the annotated chart will be empty",
			cfg.Dataset.ReferenceIndex)
	}
	aligned := align.AlignEvents(events, reference)
	logger.Info("Aligned %d of %d events to %s", len(aligned), len(events), cfg.Dataset.ReferenceIndex)

	// Build the four figure specifications
	builder := charts.NewBuilder(cfg.Dataset.Indices, charts.Options{
		PanelHeight:     cfg.Charts.PanelHeight,
		AnnotatedHeight: cfg.Charts.AnnotatedHeight,
		DrawdownMin:     cfg.Charts.DrawdownMin,
		DrawdownMax:     cfg.Charts.DrawdownMax,
	})
	figures := report.Figures{
		NormalizedPrice:    builder.NormalizedPrice(observations),
		Drawdown:           builder.Drawdown(observations),
		RollingVolatility:  builder.RollingVolatility(volRows),
		AnnotatedReference: builder.AnnotatedReference(reference, aligned, cfg.Dataset.ReferenceIndex),
	}

	// Render and write the page
	page, err := report.NewPage(cfg.Report.Title, cfg.Report.PlotlyURL, runID, time.Now(), figures)
	if err != nil {
		logger.Fatal("Failed to assemble report page: %v", err)
	}
	if err := report.WriteFile(cfg.Report.OutputPath, page); err != nil {
		logger.Fatal("Failed to write report: %v", err)
	}
	logger.Info("Report written to %s in %v", cfg.Report.OutputPath, time.Since(start))

	// Optional completion notification
	if cfg.Telegram.Enabled {
		client, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.MaxRetries)
		if err != nil {
			logger.Error("Failed to initialize Telegram client: %v", err)
		} else if err := client.Send(telegram.Summary{
			OutputPath:    cfg.Report.OutputPath,
			Observations:  len(observations),
			Events:        len(events),
			AlignedEvents: len(aligned),
			Duration:      time.Since(start),
			RunID:         runID,
		}); err != nil {
			logger.Error("Failed to send Telegram notification: %v", err)
		}
	}

	fmt.Printf("Visualización generada en %q\n", cfg.Report.OutputPath)
}
