// Package cmd implements the CLI application running the weekly stock-picking
// contest between LLM backends.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/etnz/llmbattle"
	"github.com/etnz/llmbattle/date"
	"github.com/etnz/llmbattle/eodhd"
	"github.com/etnz/llmbattle/store"
	"github.com/etnz/llmbattle/yahoo"
)

// Commands is the list of subcommands a main package registers.
var Commands = []subcommands.Command{
	&predictCmd{},
	&fetchDailyCmd{},
	&aggregateDailyCmd{},
	&reportMonthlyCmd{},
	&closedDatesCmd{},
	&scheduleCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var configFile = flag.String("config", "ltb.yaml", "Path to the configuration file")
var dataDir = flag.String("data", "", "Data directory (overrides the configuration)")

// priceFetcher is the one capability a price source must offer.
type priceFetcher interface {
	Daily(ctx context.Context, symbols []string, on date.Date) (llmbattle.SnapshotMap, error)
}

// app bundles everything a subcommand needs: configuration, the file store,
// the trading calendar built from the store's closure overrides, and the
// logger.
type app struct {
	cfg   *llmbattle.Config
	store *store.Store
	cal   *llmbattle.Calendar
	log   zerolog.Logger
}

// loadApp builds the application from the config file and flags. The fetch
// and aggregate paths share the calendar instance built here, so both sides
// always agree on what a trading day is.
func loadApp() (*app, error) {
	cfg, err := llmbattle.LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	st := store.New(cfg.DataDir)
	return &app{
		cfg:   cfg,
		store: st,
		cal:   llmbattle.NewCalendar(st.ClosedDates()),
		log:   log,
	}, nil
}

// fetcher returns the configured price source.
func (a *app) fetcher() (priceFetcher, error) {
	switch a.cfg.Provider {
	case "yahoo":
		return yahoo.New(a.log), nil
	case "eodhd":
		apiKey := os.Getenv("EODHD_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("price provider eodhd requires EODHD_API_KEY")
		}
		return eodhd.New(apiKey, a.log), nil
	default:
		return nil, fmt.Errorf("unknown price provider %q", a.cfg.Provider)
	}
}

// aggregator returns the return aggregator reading from the store.
func (a *app) aggregator() *llmbattle.Aggregator {
	return &llmbattle.Aggregator{Cal: a.cal, Prices: a.store}
}

// writeReport persists a rendered markdown report under the reports
// directory.
func (a *app) writeReport(name, md string) error {
	if err := os.MkdirAll(a.cfg.ReportsDir, 0o755); err != nil {
		return fmt.Errorf("cannot create reports folder: %w", err)
	}
	path := filepath.Join(a.cfg.ReportsDir, name)
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		return fmt.Errorf("cannot write report %q: %w", path, err)
	}
	a.log.Info().Str("report", path).Msg("report written")
	return nil
}

// parseDateFlag resolves an optional -date flag, defaulting to today in JST.
func parseDateFlag(flagValue string) (date.Date, error) {
	if flagValue == "" {
		return date.TodayIn(llmbattle.Tokyo), nil
	}
	return date.Parse(flagValue)
}
