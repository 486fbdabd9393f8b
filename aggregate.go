package llmbattle

import (
	"fmt"

	"github.com/etnz/llmbattle/date"
	"github.com/shopspring/decimal"
)

// PriceReader gives the aggregator access to persisted daily snapshots.
// A day with no persisted snapshot yields a nil map and no error.
type PriceReader interface {
	Prices(on date.Date) (SnapshotMap, error)
}

// SymbolDetail carries the per-symbol numbers behind a result: the resolved
// buy price for the week, the close on the result's date, and the derived
// return. Any of them can be null when data is missing.
type SymbolDetail struct {
	Buy    *decimal.Decimal `json:"buy"`
	Close  *decimal.Decimal `json:"close"`
	Return *decimal.Decimal `json:"return"`
}

// DailyResult is the persisted aggregate for one trading day.
type DailyResult struct {
	Date      string                      `json:"date"`
	Week      string                      `json:"week"`
	WeekFinal bool                        `json:"week_final"`
	Models    map[string]*decimal.Decimal `json:"models"`
	Symbols   map[string]SymbolDetail     `json:"symbols"`
}

// WeekFinalResult is the week-level roll-up computed on the last trading day
// of a week. It is a separate artifact from that day's DailyResult: weekly
// granularity for the cumulative series, persisted under the week id.
type WeekFinalResult struct {
	Week     string                      `json:"week"`
	ClosedOn string                      `json:"closed_on"`
	Models   map[string]*decimal.Decimal `json:"models"`
	Symbols  map[string]SymbolDetail     `json:"symbols"`
}

// Aggregator computes returns for a week's picks from persisted daily
// snapshots. It is a pure reader: re-running any computation against unchanged
// snapshots produces identical results.
type Aggregator struct {
	Cal    *Calendar
	Prices PriceReader
}

// ResolveBuyPrices finds, for each symbol, the buy price for the week
// containing target: the open of the first trading day, from weekStart up to
// and including target, whose persisted snapshot has a non-null open for that
// symbol.
//
// The scan re-derives from persisted snapshots on every call, so a day-1
// fetch gap self-heals on later days: a symbol with no open yet simply stays
// undetermined (absent from the returned map) until some day in range
// provides one. The scan stops early once every symbol is resolved.
func (a *Aggregator) ResolveBuyPrices(weekStart, target date.Date, symbols []string) (map[string]*decimal.Decimal, error) {
	buys := make(map[string]*decimal.Decimal, len(symbols))
	for _, day := range a.Cal.TradingDaysInWeek(weekStart) {
		if day.After(target) {
			break
		}
		snap, err := a.Prices.Prices(day)
		if err != nil {
			return nil, fmt.Errorf("cannot read prices of %s: %w", day, err)
		}
		resolved := 0
		for _, sym := range symbols {
			if buys[sym] != nil {
				resolved++
				continue
			}
			if q, ok := snap[sym]; ok && q.Open != nil {
				buys[sym] = q.Open
				resolved++
			}
		}
		if resolved == len(symbols) {
			break
		}
	}
	return buys, nil
}

// Return computes (close-buy)/buy, or nil when either side is missing.
// A zero buy price is a defined-input violation and yields nil as well:
// infinities and NaNs never reach persisted output.
func Return(buy, close *decimal.Decimal) *decimal.Decimal {
	if buy == nil || close == nil || buy.IsZero() {
		return nil
	}
	r := close.Sub(*buy).Div(*buy)
	return &r
}

// ModelAverages computes each model's average over the defined per-symbol
// returns of its picks. A model whose picks all have undefined returns gets
// nil, never zero: "no data" and "zero return" are different answers.
func ModelAverages(picks []Pick, returns map[string]*decimal.Decimal) map[string]*decimal.Decimal {
	averages := make(map[string]*decimal.Decimal, len(picks))
	for _, p := range picks {
		sum := decimal.Zero
		n := 0
		for _, sym := range p.Symbols {
			if r := returns[sym]; r != nil {
				sum = sum.Add(*r)
				n++
			}
		}
		if n == 0 {
			averages[p.Model] = nil
			continue
		}
		avg := sum.Div(decimal.NewFromInt(int64(n)))
		averages[p.Model] = &avg
	}
	return averages
}

// Daily computes the aggregate for target given the picks of target's week.
// The target day's snapshot provides the closes; buy prices are resolved over
// the week so far.
func (a *Aggregator) Daily(target date.Date, picks []Pick) (*DailyResult, error) {
	weekStart := WeekStartFor(target)
	symbols := Symbols(picks)

	buys, err := a.ResolveBuyPrices(weekStart, target, symbols)
	if err != nil {
		return nil, err
	}
	snap, err := a.Prices.Prices(target)
	if err != nil {
		return nil, fmt.Errorf("cannot read prices of %s: %w", target, err)
	}

	details := make(map[string]SymbolDetail, len(symbols))
	returns := make(map[string]*decimal.Decimal, len(symbols))
	for _, sym := range symbols {
		var close *decimal.Decimal
		if q, ok := snap[sym]; ok {
			close = q.Close
		}
		r := Return(buys[sym], close)
		details[sym] = SymbolDetail{Buy: buys[sym], Close: close, Return: r}
		returns[sym] = r
	}

	return &DailyResult{
		Date:      target.String(),
		Week:      weekStart.String(),
		WeekFinal: a.Cal.IsWeekFinalTradingDay(target),
		Models:    ModelAverages(picks, returns),
		Symbols:   details,
	}, nil
}

// WeekFinal computes the week-level roll-up for the week ending on target.
// It uses the week's buy prices and target's closes, same as Daily, but is
// persisted under the week id. It must be computed whenever target is the
// week's final trading day, even when a daily result for target already
// exists.
func (a *Aggregator) WeekFinal(target date.Date, picks []Pick) (*WeekFinalResult, error) {
	daily, err := a.Daily(target, picks)
	if err != nil {
		return nil, err
	}
	return &WeekFinalResult{
		Week:     daily.Week,
		ClosedOn: daily.Date,
		Models:   daily.Models,
		Symbols:  daily.Symbols,
	}, nil
}
