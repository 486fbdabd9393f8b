package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"

	"github.com/etnz/llmbattle"
	"github.com/etnz/llmbattle/date"
	"github.com/etnz/llmbattle/llm"
)

type predictCmd struct {
	weekStart string
	llms      string
}

func (*predictCmd) Name() string     { return "predict" }
func (*predictCmd) Synopsis() string { return "ask every LLM backend for its picks of the week" }
func (*predictCmd) Usage() string {
	return `ltb predict [-week-start <date>] [-llms a,b,c]

  Asks every configured LLM backend for its Tokyo Stock Exchange picks of the
  week and saves them. Run on a weekend, it targets the coming Monday's week.
  A backend that fails is reported and skipped; the others' picks are saved.
`
}

func (c *predictCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.weekStart, "week-start", "", "Monday of the target week (defaults to the current or coming week)")
	f.StringVar(&c.llms, "llms", "", "Comma separated subset of model names to ask")
}

func (c *predictCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := runPredict(ctx, a, c.weekStart, c.llms); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// resolveWeekStart picks the contest week for a predict run: an explicit date
// is normalized to its Monday; without one, a weekend run targets the coming
// week and a weekday run the running one.
func resolveWeekStart(flagValue string) (date.Date, error) {
	if flagValue != "" {
		d, err := date.Parse(flagValue)
		if err != nil {
			return date.Date{}, err
		}
		return llmbattle.WeekStartFor(d), nil
	}
	today := date.TodayIn(llmbattle.Tokyo)
	switch today.Weekday() {
	case time.Saturday, time.Sunday:
		return llmbattle.NextMonday(today), nil
	default:
		return llmbattle.WeekStartFor(today), nil
	}
}

func runPredict(ctx context.Context, a *app, weekStartFlag, llmsFlag string) error {
	weekStart, err := resolveWeekStart(weekStartFlag)
	if err != nil {
		return err
	}
	week := weekStart.String()

	configs := a.cfg.Models
	if llmsFlag != "" {
		wanted := make(map[string]bool)
		for _, name := range strings.Split(llmsFlag, ",") {
			wanted[strings.TrimSpace(name)] = true
		}
		var kept []llmbattle.ModelConfig
		for _, mc := range configs {
			if wanted[mc.Name] {
				kept = append(kept, mc)
			}
		}
		if len(kept) == 0 {
			return fmt.Errorf("no configured model matches -llms %q", llmsFlag)
		}
		configs = kept
	}

	a.log.Info().Str("week", week).Int("models", len(configs)).Msg("generating picks")
	outcomes := llm.GenerateAll(ctx, configs, weekStart, a.cfg.MaxPicks, a.cfg.Universe, a.log)

	var picks []llmbattle.Pick
	var failed []string
	for _, o := range outcomes {
		if o.Err != nil {
			failed = append(failed, o.Model)
			continue
		}
		picks = append(picks, o.Pick)
	}
	if len(picks) == 0 {
		return fmt.Errorf("every model failed (%s)", strings.Join(failed, ", "))
	}
	if err := a.store.SavePicks(week, picks); err != nil {
		return err
	}
	a.log.Info().Str("week", week).Int("saved", len(picks)).Strs("failed", failed).Msg("picks saved")
	return nil
}
