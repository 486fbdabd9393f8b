package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/llmbattle"
	"github.com/etnz/llmbattle/date"
	"github.com/etnz/llmbattle/renderer"
)

type aggregateDailyCmd struct {
	date string
}

func (*aggregateDailyCmd) Name() string { return "aggregate-daily" }
func (*aggregateDailyCmd) Synopsis() string {
	return "compute the day's returns and refresh the reports"
}
func (*aggregateDailyCmd) Usage() string {
	return `ltb aggregate-daily [-date <date>]

  Computes every model's average return for the day from persisted picks and
  price snapshots, persists the daily result, rolls the week up on its final
  trading day, and recompiles the month's summary and reports. Re-running for
  an already processed day yields identical files.
`
}

func (c *aggregateDailyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "date", "", "Day to aggregate (defaults to today in JST)")
}

func (c *aggregateDailyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if err := runAggregate(ctx, a, target); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func runAggregate(ctx context.Context, a *app, target date.Date) error {
	if !a.cal.IsTradingDay(target) {
		a.log.Info().Stringer("date", target).Msg("not a trading day, nothing to aggregate")
		return nil
	}

	week := llmbattle.WeekStartFor(target).String()
	picks, err := a.store.LoadPicks(week)
	if err != nil {
		return err
	}
	if len(picks) == 0 {
		return fmt.Errorf("no picks saved for week %s: run 'ltb predict' first", week)
	}
	snap, err := a.store.Prices(target)
	if err != nil {
		return err
	}
	if snap == nil {
		return fmt.Errorf("no price snapshot for %s: run 'ltb fetch-daily' first", target)
	}

	agg := a.aggregator()
	daily, err := agg.Daily(target, picks)
	if err != nil {
		return err
	}
	if err := a.store.SaveDaily(daily); err != nil {
		return err
	}
	a.log.Info().Stringer("date", target).Bool("week_final", daily.WeekFinal).Msg("daily result saved")

	// The weekly artifact is computed whenever the day closes its week, even
	// when a daily result already existed for it.
	if daily.WeekFinal {
		final, err := agg.WeekFinal(target, picks)
		if err != nil {
			return err
		}
		if err := a.store.SaveWeekFinal(final); err != nil {
			return err
		}
		if err := a.writeReport(fmt.Sprintf("week-%s.md", final.Week), renderer.Weekly(final, picks)); err != nil {
			return err
		}
	}

	return compileMonth(a, target.YearMonth(), daily)
}

// compileMonth recomputes the month summary and report from persisted daily
// results, with fresh (when non-nil) winning over what was persisted for its
// date.
func compileMonth(a *app, month string, fresh *llmbattle.DailyResult) error {
	persisted, err := a.store.DailiesForMonth(month)
	if err != nil {
		return err
	}
	if len(persisted) == 0 && fresh == nil {
		return fmt.Errorf("no daily results for %s: run 'ltb aggregate-daily' first", month)
	}
	summary := llmbattle.CompileMonth(month, persisted, fresh)
	if err := a.store.SaveMonthly(summary); err != nil {
		return err
	}

	picksByWeek, err := a.store.PicksForMonth(month)
	if err != nil {
		return err
	}
	finals, err := a.store.WeekFinals()
	if err != nil {
		return err
	}
	overall := llmbattle.OverallAverages(llmbattle.WeeklySeries(finals))

	md := renderer.Monthly(summary, llmbattle.HoldingsForMonth(picksByWeek), overall)
	return a.writeReport(month+".md", md)
}
