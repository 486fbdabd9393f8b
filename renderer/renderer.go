// Package renderer builds the contest's markdown reports: the weekly result
// table and the monthly summary.
package renderer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/etnz/llmbattle"
)

// notionalStake is the imaginary JPY amount each model "invests" per pick,
// used to translate percentage returns into a readable money column.
var notionalStake = decimal.NewFromInt(1_000_000)

// Weekly renders the markdown report for one finished week: one row per
// (model, symbol) with buy, close, return and notional outcome, then the
// per-model averages.
func Weekly(final *llmbattle.WeekFinalResult, picks []llmbattle.Pick) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Week %s\n\n", final.Week)
	fmt.Fprintf(&b, "Closed on %s.\n\n", final.ClosedOn)

	b.WriteString("## Picks\n\n")
	b.WriteString("| Model | Symbol | Buy | Close | Return | Stake Result |\n")
	b.WriteString("|---|---|---:|---:|---:|---:|\n")
	for _, p := range sortedPicks(picks) {
		for _, sym := range p.Symbols {
			d := final.Symbols[sym]
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				p.Model, sym, num(d.Buy), num(d.Close), pct(d.Return), stake(d.Return))
		}
	}

	b.WriteString("\n## Model averages\n\n")
	b.WriteString("| Model | Average Return |\n")
	b.WriteString("|---|---:|\n")
	for _, model := range sortedModels(final.Models) {
		fmt.Fprintf(&b, "| %s | %s |\n", model, pct(final.Models[model]))
	}
	return b.String()
}

// Monthly renders the markdown report for one month: the daily averages table,
// the overall ranking across finished weeks, and the holdings with each
// model's recorded rationale.
func Monthly(summary *llmbattle.MonthSummary, holdings []llmbattle.HoldingRow, overall map[string]float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Month %s\n\n", summary.Month)

	b.WriteString("## Daily averages\n\n")
	b.WriteString("| Date |")
	for _, model := range summary.Models {
		fmt.Fprintf(&b, " %s |", model)
	}
	b.WriteString(" Week |\n|---|")
	for range summary.Models {
		b.WriteString("---:|")
	}
	b.WriteString("---|\n")
	for _, row := range summary.Days {
		fmt.Fprintf(&b, "| %s |", row.Date)
		for _, model := range summary.Models {
			fmt.Fprintf(&b, " %s |", pct(row.Models[model]))
		}
		// week-final rows carry the week marker
		flag := ""
		if row.WeekFinal {
			flag = "W"
		}
		fmt.Fprintf(&b, " %s |\n", flag)
	}

	ConditionalBlock(&b, func(w *strings.Builder) bool {
		if len(overall) == 0 {
			return false
		}
		w.WriteString("\n## Overall ranking\n\n")
		w.WriteString("| Rank | Model | Average Weekly Return |\n")
		w.WriteString("|---:|---|---:|\n")
		for i, model := range rankedModels(overall) {
			fmt.Fprintf(w, "| %d | %s | %.2f%% |\n", i+1, model, overall[model]*100)
		}
		return true
	})

	ConditionalBlock(&b, func(w *strings.Builder) bool {
		if len(holdings) == 0 {
			return false
		}
		w.WriteString("\n## Holdings\n\n")
		w.WriteString("| Week | Model | Symbol | Method | Reason |\n")
		w.WriteString("|---|---|---|---|---|\n")
		for _, h := range holdings {
			fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n", h.Week, h.Model, h.Symbol, h.Method, h.Reason)
		}
		return true
	})

	return b.String()
}

func sortedPicks(picks []llmbattle.Pick) []llmbattle.Pick {
	sorted := append([]llmbattle.Pick(nil), picks...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Model < sorted[j].Model })
	return sorted
}

func sortedModels(models map[string]*decimal.Decimal) []string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// rankedModels sorts models by overall average, best first, name as
// tie-breaker so the ranking is stable.
func rankedModels(overall map[string]float64) []string {
	names := make([]string, 0, len(overall))
	for name := range overall {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if overall[names[i]] != overall[names[j]] {
			return overall[names[i]] > overall[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
