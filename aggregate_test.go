package llmbattle

import (
	"testing"

	"github.com/etnz/llmbattle/date"
	"github.com/shopspring/decimal"
)

// memPrices is an in-memory PriceReader for tests.
type memPrices map[string]SnapshotMap

func (m memPrices) Prices(on date.Date) (SnapshotMap, error) { return m[on.String()], nil }

func TestReturn(t *testing.T) {
	tests := []struct {
		name       string
		buy, close *decimal.Decimal
		want       *decimal.Decimal
	}{
		{"regular", D(100), D(110), D(0.10)},
		{"loss", D(100), D(90), D(-0.10)},
		{"nil buy", nil, D(110), nil},
		{"nil close", D(100), nil, nil},
		{"zero buy", D(0), D(110), nil},
	}
	for _, tc := range tests {
		got := Return(tc.buy, tc.close)
		if (got == nil) != (tc.want == nil) {
			t.Errorf("%s: Return = %v, want %v", tc.name, got, tc.want)
			continue
		}
		if got != nil && !got.Equal(*tc.want) {
			t.Errorf("%s: Return = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestModelAverages(t *testing.T) {
	picks := []Pick{
		{Model: "gpt", Symbols: []string{"AAA.T", "BBB.T"}},
		{Model: "claude", Symbols: []string{"CCC.T", "DDD.T"}},
	}
	returns := map[string]*decimal.Decimal{
		"AAA.T": D(0.10),
		"BBB.T": nil, // undefined: excluded, not zero
		"CCC.T": nil,
		"DDD.T": nil,
	}
	avgs := ModelAverages(picks, returns)
	if avg := avgs["gpt"]; avg == nil || !avg.Equal(*D(0.10)) {
		t.Errorf("gpt average = %v, want 0.10 (undefined pick excluded)", avg)
	}
	if avg, ok := avgs["claude"]; !ok || avg != nil {
		t.Errorf("claude average = %v, %v; want explicit nil (no data is not zero)", avg, ok)
	}
}

func TestResolveBuyPricesSelfHeals(t *testing.T) {
	// AAA has no open on Tuesday (data outage) but one on Wednesday.
	prices := memPrices{
		"2024-01-02": {"BBB.T": {Open: D(50)}},
		"2024-01-03": {"AAA.T": {Open: D(200)}, "BBB.T": {Open: D(51)}},
	}
	agg := &Aggregator{Cal: NewCalendar(nil), Prices: prices}
	weekStart := date.MustParse("2024-01-01")

	// As of Tuesday AAA is still undetermined.
	buys, err := agg.ResolveBuyPrices(weekStart, date.MustParse("2024-01-02"), []string{"AAA.T", "BBB.T"})
	if err != nil {
		t.Fatal(err)
	}
	if buys["AAA.T"] != nil {
		t.Errorf("AAA buy on Tuesday = %v, want undetermined", buys["AAA.T"])
	}
	if buys["BBB.T"] == nil || !buys["BBB.T"].Equal(*D(50)) {
		t.Errorf("BBB buy = %v, want 50", buys["BBB.T"])
	}

	// A later run sees the Wednesday open; BBB keeps its Tuesday open.
	buys, err = agg.ResolveBuyPrices(weekStart, date.MustParse("2024-01-05"), []string{"AAA.T", "BBB.T"})
	if err != nil {
		t.Fatal(err)
	}
	if buys["AAA.T"] == nil || !buys["AAA.T"].Equal(*D(200)) {
		t.Errorf("AAA buy after self-heal = %v, want 200", buys["AAA.T"])
	}
	if buys["BBB.T"] == nil || !buys["BBB.T"].Equal(*D(50)) {
		t.Errorf("BBB buy = %v, want first available open 50, not 51", buys["BBB.T"])
	}
}

func TestResolveBuyPricesExcludesFutureDays(t *testing.T) {
	prices := memPrices{
		"2024-01-04": {"AAA.T": {Open: D(999)}},
	}
	agg := &Aggregator{Cal: NewCalendar(nil), Prices: prices}
	buys, err := agg.ResolveBuyPrices(date.MustParse("2024-01-01"), date.MustParse("2024-01-03"), []string{"AAA.T"})
	if err != nil {
		t.Fatal(err)
	}
	if buys["AAA.T"] != nil {
		t.Errorf("buy price %v came from a day after the target", buys["AAA.T"])
	}
}

// TestWeekFinalScenario is the canonical end-to-end case: week of Monday
// 2024-01-01 (a holiday), AAA opens Tuesday at 100 and closes Friday at 120,
// BBB has no data all week.
func TestWeekFinalScenario(t *testing.T) {
	prices := memPrices{
		"2024-01-02": {"AAA.T": {Open: D(100), Close: D(101)}, "BBB.T": {}},
		"2024-01-05": {"AAA.T": {Open: D(118), Close: D(120)}, "BBB.T": {}},
	}
	cal := NewCalendar(nil)
	agg := &Aggregator{Cal: cal, Prices: prices}
	picks := []Pick{{Model: "gpt", Symbols: []string{"AAA.T", "BBB.T"}}}

	friday := date.MustParse("2024-01-05")
	if !cal.IsWeekFinalTradingDay(friday) {
		t.Fatal("Friday 2024-01-05 should be the week's final trading day")
	}

	res, err := agg.WeekFinal(friday, picks)
	if err != nil {
		t.Fatal(err)
	}
	if res.Week != "2024-01-01" {
		t.Errorf("week id = %q, want 2024-01-01 even though Monday is a holiday", res.Week)
	}
	avg := res.Models["gpt"]
	if avg == nil || !avg.Equal(*D(0.20)) {
		t.Errorf("gpt average = %v, want 0.20 (=(120-100)/100, BBB excluded)", avg)
	}
	if d := res.Symbols["BBB.T"]; d.Buy != nil || d.Close != nil || d.Return != nil {
		t.Errorf("BBB detail = %+v, want all nulls", d)
	}
	if d := res.Symbols["AAA.T"]; d.Buy == nil || !d.Buy.Equal(*D(100)) {
		t.Errorf("AAA buy = %v, want the Tuesday open 100", d.Buy)
	}
}

func TestDailyMarksWeekFinal(t *testing.T) {
	prices := memPrices{"2024-01-05": {"AAA.T": {Open: D(100), Close: D(110)}}}
	agg := &Aggregator{Cal: NewCalendar(nil), Prices: prices}
	picks := []Pick{{Model: "gpt", Symbols: []string{"AAA.T"}}}

	res, err := agg.Daily(date.MustParse("2024-01-05"), picks)
	if err != nil {
		t.Fatal(err)
	}
	if !res.WeekFinal {
		t.Error("Friday daily result not marked week-final")
	}

	res, err = agg.Daily(date.MustParse("2024-01-04"), picks)
	if err != nil {
		t.Fatal(err)
	}
	if res.WeekFinal {
		t.Error("Thursday daily result marked week-final")
	}
}
