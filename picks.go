package llmbattle

import (
	"fmt"
	"time"
)

// MaxPicks is the canonical number of tickers each model must pick per week.
const MaxPicks = 2

// Pick is one model's picks for a week: an ordered list of tickers with the
// parallel rationale and analysis-method labels the model returned.
//
// Identity is (week id, model): saving picks for a week overwrites any
// previous picks that model made for the same week.
type Pick struct {
	Model    string
	Symbols  []string
	Reasons  []string
	Methods  []string
	PickedAt time.Time
}

// Validate checks the parallel-list invariant: at least one symbol, and
// reasons/methods (when present) aligned with symbols.
func (p Pick) Validate() error {
	if p.Model == "" {
		return fmt.Errorf("pick has no model name")
	}
	if len(p.Symbols) == 0 {
		return fmt.Errorf("pick for %q has no symbols", p.Model)
	}
	if len(p.Reasons) > 0 && len(p.Reasons) != len(p.Symbols) {
		return fmt.Errorf("pick for %q has %d reasons for %d symbols", p.Model, len(p.Reasons), len(p.Symbols))
	}
	if len(p.Methods) > 0 && len(p.Methods) != len(p.Symbols) {
		return fmt.Errorf("pick for %q has %d methods for %d symbols", p.Model, len(p.Methods), len(p.Symbols))
	}
	return nil
}

// Symbols returns the deduplicated union of symbols across all picks,
// preserving first-seen order.
func Symbols(picks []Pick) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range picks {
		for _, s := range p.Symbols {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}
