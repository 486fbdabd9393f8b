package renderer

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// naCell fills any table slot whose value is undefined. Undefined is not zero:
// a day without data must never read as a 0.00% return.
const naCell = "N/A"

// pct formats a fractional return as a percentage cell.
func pct(v *decimal.Decimal) string {
	if v == nil {
		return naCell
	}
	return v.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// num formats a price cell.
func num(v *decimal.Decimal) string {
	if v == nil {
		return naCell
	}
	return v.String()
}

// stake formats the notional outcome of putting the stake on one pick,
// as formatted JPY.
func stake(ret *decimal.Decimal) string {
	if ret == nil {
		return naCell
	}
	value := notionalStake.Add(notionalStake.Mul(*ret))
	return jpy(value)
}

// jpy formats a JPY amount with the currency's own formatter. JPY has no
// fractional unit, so the decimal is truncated to whole yen.
func jpy(v decimal.Decimal) string {
	cur := money.New(0, money.JPY).Currency()
	return cur.Formatter().Format(v.IntPart())
}

// ConditionalBlock builds a whole section and decides at the end to keep it or
// not. If the block function returns false, nothing is written to b.
func ConditionalBlock(b *strings.Builder, block func(*strings.Builder) bool) {
	var section strings.Builder
	if block(&section) {
		b.WriteString(section.String())
	}
}
