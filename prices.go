package llmbattle

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Persisted records carry prices as JSON numbers, like the upstream
	// market APIs do.
	decimal.MarshalJSONWithoutQuotes = true
}

// Quote holds one day's prices for a symbol. A nil field means the market had
// no data for it: not yet opened, not traded that day, or delisted. Fields are
// always present in JSON, as explicit nulls.
type Quote struct {
	Open  *decimal.Decimal `json:"open"`
	High  *decimal.Decimal `json:"high"`
	Low   *decimal.Decimal `json:"low"`
	Close *decimal.Decimal `json:"close"`
}

// SnapshotMap is a per-day price snapshot, keyed by symbol.
type SnapshotMap map[string]Quote

// Merge combines a previously persisted snapshot with a freshly fetched one
// and returns the merged snapshot. It is a pure function: neither input is
// mutated.
//
// A day's snapshot may be partially populated early in the day (open known,
// close unknown) and completed later. The policy is per field: keep the
// existing known value when the fresh fetch returns null, prefer the fresh
// value otherwise.
func Merge(old, fresh SnapshotMap) SnapshotMap {
	merged := make(SnapshotMap, len(old)+len(fresh))
	for sym, q := range old {
		merged[sym] = q
	}
	for sym, f := range fresh {
		o := merged[sym]
		merged[sym] = Quote{
			Open:  pick(o.Open, f.Open),
			High:  pick(o.High, f.High),
			Low:   pick(o.Low, f.Low),
			Close: pick(o.Close, f.Close),
		}
	}
	return merged
}

// pick prefers the fresh value unless it is unknown.
func pick(old, fresh *decimal.Decimal) *decimal.Decimal {
	if fresh == nil {
		return old
	}
	return fresh
}

// D is a convenience for building a non-null price.
func D(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}
