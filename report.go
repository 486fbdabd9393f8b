package llmbattle

import (
	"sort"
	"strings"

	"github.com/etnz/llmbattle/date"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// MonthRow is one day of a month summary: each model's average return that
// day, null when undefined.
type MonthRow struct {
	Date      string                      `json:"date"`
	WeekFinal bool                        `json:"week_final"`
	Models    map[string]*decimal.Decimal `json:"models"`
}

// MonthSummary is the persisted month-level aggregate: a dense, sorted-by-date
// table of per-model daily averages.
type MonthSummary struct {
	Month  string     `json:"month"`
	Models []string   `json:"models"`
	Days   []MonthRow `json:"days"`
}

// CompileMonth merges the month's persisted daily results with the freshly
// computed one into a MonthSummary.
//
// The compilation never mutates prior aggregate output: it always recomputes
// the summary from the daily results. For the one date being processed the
// fresh in-memory value wins over whatever was persisted; every other date
// comes from persisted history, so re-running for an already-recorded date
// yields the same summary as a clean run, and days outside the current
// recomputation window are never dropped.
//
// Days where every model's value is null are filtered out to keep the table
// dense; a day with at least one defined value stays, nulls and all.
func CompileMonth(month string, persisted []*DailyResult, fresh *DailyResult) *MonthSummary {
	byDate := make(map[string]*DailyResult, len(persisted)+1)
	for _, r := range persisted {
		if strings.HasPrefix(r.Date, month) {
			byDate[r.Date] = r
		}
	}
	if fresh != nil && strings.HasPrefix(fresh.Date, month) {
		byDate[fresh.Date] = fresh
	}

	// Union of model names across all included days.
	modelSet := make(map[string]bool)
	for _, r := range byDate {
		for m := range r.Models {
			modelSet[m] = true
		}
	}
	models := make([]string, 0, len(modelSet))
	for m := range modelSet {
		models = append(models, m)
	}
	sort.Strings(models)

	summary := &MonthSummary{Month: month, Models: models, Days: []MonthRow{}}
	for _, r := range byDate {
		row := MonthRow{Date: r.Date, WeekFinal: r.WeekFinal, Models: make(map[string]*decimal.Decimal, len(models))}
		defined := false
		for _, m := range models {
			v := r.Models[m] // nil for models absent that day
			row.Models[m] = v
			if v != nil {
				defined = true
			}
		}
		if !defined {
			continue // all-null day: filtered out
		}
		summary.Days = append(summary.Days, row)
	}
	sort.Slice(summary.Days, func(i, j int) bool { return summary.Days[i].Date < summary.Days[j].Date })
	return summary
}

// HoldingRow is one (week, model, symbol) entry of the auditable
// "who picked what and why" table.
type HoldingRow struct {
	Week   string `json:"week"`
	Model  string `json:"model"`
	Symbol string `json:"symbol"`
	Reason string `json:"reason"`
	Method string `json:"method"`
}

// HoldingsForMonth flattens the month's pick records, keyed by week id, into
// one row per (week, model, symbol) with the recorded rationale. Weeks with
// no realized returns yet are included: picks alone are enough.
func HoldingsForMonth(picksByWeek map[string][]Pick) []HoldingRow {
	var rows []HoldingRow
	for week, picks := range picksByWeek {
		for _, p := range picks {
			for i, sym := range p.Symbols {
				row := HoldingRow{Week: week, Model: p.Model, Symbol: sym}
				if i < len(p.Reasons) {
					row.Reason = p.Reasons[i]
				}
				if i < len(p.Methods) {
					row.Method = p.Methods[i]
				}
				rows = append(rows, row)
			}
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Week != b.Week {
			return a.Week < b.Week
		}
		if a.Model != b.Model {
			return a.Model < b.Model
		}
		return a.Symbol < b.Symbol
	})
	return rows
}

// WeeklySeries builds each model's chronological series of week-final average
// returns, keyed by model name. Weeks where a model's average is undefined are
// skipped in that model's series.
func WeeklySeries(finals []*WeekFinalResult) map[string]*date.History[float64] {
	series := make(map[string]*date.History[float64])
	for _, f := range finals {
		week, err := date.Parse(f.Week)
		if err != nil {
			continue // corrupt week id, nothing to chart it against
		}
		for model, avg := range f.Models {
			if avg == nil {
				continue
			}
			h, ok := series[model]
			if !ok {
				h = &date.History[float64]{}
				series[model] = h
			}
			h.Append(week, avg.InexactFloat64())
		}
	}
	return series
}

// OverallAverages ranks models by the mean of their defined week-final
// averages. Models with an empty series are absent from the result.
// This is a display-only statistic, never persisted.
func OverallAverages(series map[string]*date.History[float64]) map[string]float64 {
	overall := make(map[string]float64, len(series))
	for model, h := range series {
		if h.Len() == 0 {
			continue
		}
		overall[model] = stat.Mean(h.Raw(), nil)
	}
	return overall
}
