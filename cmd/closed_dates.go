package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/google/subcommands"

	"github.com/etnz/llmbattle/date"
)

type closedDatesCmd struct {
	add    string
	remove string
}

func (*closedDatesCmd) Name() string     { return "closed-dates" }
func (*closedDatesCmd) Synopsis() string { return "manage the manual exchange-closure overrides" }
func (*closedDatesCmd) Usage() string {
	return `ltb closed-dates [-add <date>] [-remove <date>]

  Lists the manual exchange-closure override dates. These mark days the Tokyo
  Stock Exchange is closed without being national holidays, like the New Year
  break on January 2nd and 3rd.
`
}

func (c *closedDatesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.add, "add", "", "Add a closed date")
	f.StringVar(&c.remove, "remove", "", "Remove a closed date")
}

func (c *closedDatesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	dates := a.store.ClosedDates()

	if c.add != "" {
		d, err := date.Parse(c.add)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		present := false
		for _, x := range dates {
			present = present || x == d
		}
		if !present {
			dates = append(dates, d)
		}
	}
	if c.remove != "" {
		d, err := date.Parse(c.remove)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		kept := dates[:0]
		for _, x := range dates {
			if x != d {
				kept = append(kept, x)
			}
		}
		dates = kept
	}

	if c.add != "" || c.remove != "" {
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
		if err := a.store.SaveClosedDates(dates); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	for _, d := range dates {
		fmt.Println(d)
	}
	return subcommands.ExitSuccess
}
