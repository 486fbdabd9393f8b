package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/llmbattle"
	"github.com/etnz/llmbattle/date"
)

type fetchDailyCmd struct {
	date string
}

func (*fetchDailyCmd) Name() string     { return "fetch-daily" }
func (*fetchDailyCmd) Synopsis() string { return "fetch today's quotes for the current picks" }
func (*fetchDailyCmd) Usage() string {
	return `ltb fetch-daily [-date <date>]

  Fetches the day's OHLC quotes for every symbol in the current week's picks
  and merges them into the day's snapshot. On a non-trading day this is a
  no-op. Re-running never erases data a previous run fetched.
`
}

func (c *fetchDailyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "date", "", "Day to fetch (defaults to today in JST)")
}

func (c *fetchDailyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	target, err := parseDateFlag(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := runFetch(ctx, a, target); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func runFetch(ctx context.Context, a *app, target date.Date) error {
	if !a.cal.IsTradingDay(target) {
		a.log.Info().Stringer("date", target).Msg("not a trading day, nothing to fetch")
		return nil
	}

	week, picks, err := a.store.LoadCurrent()
	if err != nil {
		return err
	}
	if len(picks) == 0 {
		return fmt.Errorf("no current picks to fetch prices for: run 'ltb predict' first")
	}

	fetcher, err := a.fetcher()
	if err != nil {
		return err
	}
	symbols := llmbattle.Symbols(picks)
	a.log.Info().Stringer("date", target).Str("week", week).Strs("symbols", symbols).Msg("fetching quotes")

	snap, err := fetcher.Daily(ctx, symbols, target)
	if err != nil {
		return err
	}
	if err := a.store.SavePrices(target, snap); err != nil {
		return err
	}
	a.log.Info().Stringer("date", target).Int("symbols", len(snap)).Msg("snapshot saved")
	return nil
}
