package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/robfig/cron/v3"

	"github.com/etnz/llmbattle"
	"github.com/etnz/llmbattle/date"
)

type scheduleCmd struct{}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "run the contest on its weekly cadence" }
func (*scheduleCmd) Usage() string {
	return `ltb schedule

  Runs in the foreground and drives the contest on the configured cron
  expressions: predict on the weekend, fetch after the open and aggregate
  after the close on trading days. All times are JST.
`
}

func (*scheduleCmd) SetFlags(_ *flag.FlagSet) {}

func (c *scheduleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	runner := cron.New(cron.WithLocation(llmbattle.Tokyo))

	jobs := []struct {
		name string
		spec string
		run  func() error
	}{
		{"predict", a.cfg.Schedule.Predict, func() error {
			return runPredict(ctx, a, "", "")
		}},
		{"fetch", a.cfg.Schedule.Fetch, func() error {
			return runFetch(ctx, a, date.TodayIn(llmbattle.Tokyo))
		}},
		{"aggregate", a.cfg.Schedule.Aggregate, func() error {
			return runAggregate(ctx, a, date.TodayIn(llmbattle.Tokyo))
		}},
	}
	for _, job := range jobs {
		job := job
		if _, err := runner.AddFunc(job.spec, func() {
			a.log.Info().Str("job", job.name).Msg("scheduled run starting")
			if err := job.run(); err != nil {
				a.log.Error().Err(err).Str("job", job.name).Msg("scheduled run failed")
			}
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid cron %q for %s: %v\n", job.spec, job.name, err)
			return subcommands.ExitUsageError
		}
		a.log.Info().Str("job", job.name).Str("cron", job.spec).Msg("scheduled")
	}

	runner.Start()
	<-ctx.Done()
	<-runner.Stop().Done()
	return subcommands.ExitSuccess
}
