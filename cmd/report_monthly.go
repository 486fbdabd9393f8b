package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"github.com/etnz/llmbattle"
	"github.com/etnz/llmbattle/date"
)

type reportMonthlyCmd struct {
	month string
	print bool
}

func (*reportMonthlyCmd) Name() string     { return "report-monthly" }
func (*reportMonthlyCmd) Synopsis() string { return "recompile and render a month's report" }
func (*reportMonthlyCmd) Usage() string {
	return `ltb report-monthly [-month <YYYY-MM>] [-print]

  Recompiles the month summary from the persisted daily results and renders
  the monthly markdown report. With -print the report is also rendered to the
  terminal.
`
}

func (c *reportMonthlyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Month to report on (defaults to the current month in JST)")
	f.BoolVar(&c.print, "print", false, "Also render the report to the terminal")
}

func (c *reportMonthlyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	month := c.month
	if month == "" {
		month = date.TodayIn(llmbattle.Tokyo).YearMonth()
	}
	if err := compileMonth(a, month, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.print {
		md, err := os.ReadFile(filepath.Join(a.cfg.ReportsDir, month+".md"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(string(md))
	}
	return subcommands.ExitSuccess
}
