package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/etnz/llmbattle"
	"github.com/etnz/llmbattle/date"
	"github.com/shopspring/decimal"
)

func TestPicksRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	picks := []llmbattle.Pick{
		{
			Model:    "gpt",
			Symbols:  []string{"7203.T", "6758.T"},
			Reasons:  []string{"r1", "r2"},
			Methods:  []string{"fundamental", "technical"},
			PickedAt: time.Date(2024, 2, 4, 12, 0, 0, 0, time.UTC),
		},
		{
			Model:    "claude",
			Symbols:  []string{"9984.T", "8035.T"},
			PickedAt: time.Date(2024, 2, 4, 12, 0, 1, 0, time.UTC),
		},
	}
	if err := s.SavePicks("2024-02-05", picks); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.LoadPicks("2024-02-05")
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d picks, want 2", len(loaded))
	}
	// Persisted sorted by model name.
	if loaded[0].Model != "claude" || loaded[1].Model != "gpt" {
		t.Errorf("models = %s, %s; want claude, gpt", loaded[0].Model, loaded[1].Model)
	}
	gpt := loaded[1]
	if gpt.Symbols[0] != "7203.T" || gpt.Symbols[1] != "6758.T" {
		t.Errorf("gpt symbols = %v, order must round-trip", gpt.Symbols)
	}
	if gpt.Reasons[1] != "r2" || gpt.Methods[1] != "technical" {
		t.Errorf("gpt rationale = %v / %v, parallel lists must round-trip", gpt.Reasons, gpt.Methods)
	}
	if loaded[0].Reasons != nil || loaded[0].Methods != nil {
		t.Errorf("claude rationale = %v / %v, want nil when never provided", loaded[0].Reasons, loaded[0].Methods)
	}
}

func TestPicksOrderFromSeq(t *testing.T) {
	s := New(t.TempDir())
	// A picks file whose entries are stored out of order: seq must win.
	raw := `{
  "week": "2024-02-05",
  "picks": [
    {
      "model": "gpt",
      "picked_at_utc": "2024-02-04T12:00:00Z",
      "entries": [
        { "seq": 1, "symbol": "6758.T" },
        { "seq": 0, "symbol": "7203.T" }
      ]
    }
  ]
}`
	dir := filepath.Join(s.dir, picksDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "picks-2024-02-05.json"), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.LoadPicks("2024-02-05")
	if err != nil {
		t.Fatal(err)
	}
	if loaded[0].Symbols[0] != "7203.T" || loaded[0].Symbols[1] != "6758.T" {
		t.Errorf("symbols = %v, want order reconstructed from seq", loaded[0].Symbols)
	}
}

func TestCurrentPointer(t *testing.T) {
	s := New(t.TempDir())

	week, picks, err := s.LoadCurrent()
	if err != nil || week != "" || picks != nil {
		t.Fatalf("empty store current = %q, %v, %v; want empty", week, picks, err)
	}

	p := []llmbattle.Pick{{Model: "gpt", Symbols: []string{"7203.T", "6758.T"}}}
	if err := s.SavePicks("2024-02-05", p); err != nil {
		t.Fatal(err)
	}
	if err := s.SavePicks("2024-02-12", p); err != nil {
		t.Fatal(err)
	}

	week, picks, err = s.LoadCurrent()
	if err != nil {
		t.Fatal(err)
	}
	if week != "2024-02-12" {
		t.Errorf("current week = %q, want the most recently saved 2024-02-12", week)
	}
	if len(picks) != 1 || picks[0].Model != "gpt" {
		t.Errorf("current picks = %+v", picks)
	}
}

func TestSavePricesMergesOnWrite(t *testing.T) {
	s := New(t.TempDir())
	day := date.MustParse("2024-02-05")

	first := llmbattle.SnapshotMap{
		"7203.T": {Open: llmbattle.D(100), Close: llmbattle.D(101)},
	}
	if err := s.SavePrices(day, first); err != nil {
		t.Fatal(err)
	}
	// A later fetch that lost the open must not erase the persisted one.
	second := llmbattle.SnapshotMap{
		"7203.T": {Close: llmbattle.D(102)},
		"6758.T": {Open: llmbattle.D(50)},
	}
	if err := s.SavePrices(day, second); err != nil {
		t.Fatal(err)
	}

	snap, err := s.Prices(day)
	if err != nil {
		t.Fatal(err)
	}
	q := snap["7203.T"]
	if q.Open == nil || !q.Open.Equal(*llmbattle.D(100)) {
		t.Errorf("open = %v, want the surviving 100", q.Open)
	}
	if q.Close == nil || !q.Close.Equal(*llmbattle.D(102)) {
		t.Errorf("close = %v, want the fresher 102", q.Close)
	}
	if _, ok := snap["6758.T"]; !ok {
		t.Error("new symbol from the second fetch is missing")
	}
}

func TestPricesAbsentDay(t *testing.T) {
	s := New(t.TempDir())
	snap, err := s.Prices(date.MustParse("2024-02-05"))
	if err != nil {
		t.Fatal(err)
	}
	if snap != nil {
		t.Errorf("snapshot for an unfetched day = %v, want nil", snap)
	}
}

func TestSaveDailyIdempotentBytes(t *testing.T) {
	s := New(t.TempDir())
	r := &llmbattle.DailyResult{
		Date: "2024-02-05",
		Week: "2024-02-05",
		Models: map[string]*decimal.Decimal{
			"gpt":    llmbattle.D(0.05),
			"claude": nil,
		},
		Symbols: map[string]llmbattle.SymbolDetail{
			"7203.T": {Buy: llmbattle.D(100), Close: llmbattle.D(105), Return: llmbattle.D(0.05)},
		},
	}
	if err := s.SaveDaily(r); err != nil {
		t.Fatal(err)
	}
	a, err := os.ReadFile(s.dailyPath("2024-02-05"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveDaily(r); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(s.dailyPath("2024-02-05"))
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("re-saving the same result changed the file bytes")
	}

	loaded, err := s.Daily(date.MustParse("2024-02-05"))
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := loaded.Models["claude"]; !ok || v != nil {
		t.Errorf("claude average = %v, %v; explicit null must survive the round trip", v, ok)
	}
}

func TestDailiesForMonth(t *testing.T) {
	s := New(t.TempDir())
	for _, day := range []string{"2024-01-31", "2024-02-02", "2024-02-01"} {
		if err := s.SaveDaily(&llmbattle.DailyResult{Date: day, Week: day}); err != nil {
			t.Fatal(err)
		}
	}
	results, err := s.DailiesForMonth("2024-02")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 || results[0].Date != "2024-02-01" || results[1].Date != "2024-02-02" {
		t.Fatalf("results = %+v, want the two February days sorted", results)
	}
}

func TestClosedDates(t *testing.T) {
	s := New(t.TempDir())

	if got := s.ClosedDates(); len(got) != 0 {
		t.Errorf("absent override file yields %v, want empty", got)
	}

	dates := []date.Date{date.MustParse("2024-01-02"), date.MustParse("2024-01-03")}
	if err := s.SaveClosedDates(dates); err != nil {
		t.Fatal(err)
	}
	if got := s.ClosedDates(); len(got) != 2 || got[0] != dates[0] {
		t.Errorf("closed dates = %v, want %v", got, dates)
	}

	// A corrupt file must degrade to an empty set, never an error.
	if err := os.WriteFile(s.closedDatesPath(), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := s.ClosedDates(); len(got) != 0 {
		t.Errorf("corrupt override file yields %v, want empty", got)
	}
}
