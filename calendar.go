package llmbattle

import (
	"fmt"
	"time"

	"github.com/etnz/llmbattle/date"
	"github.com/etnz/llmbattle/jpholiday"
)

// maxScanDays bounds forward scans for a trading day. A longer non-trading
// stretch can only come from corrupt override data.
const maxScanDays = 30

// Calendar decides which dates are trading days on the Tokyo exchange:
// weekdays that are neither national holidays nor manually closed dates.
//
// The closed set covers exchange-specific closures that are not national
// holidays (the New Year break of Jan 2-3, Dec 31). It is loaded once from
// persisted configuration and passed here by reference; every call path that
// needs trading-day logic must share the same Calendar so that fetch and
// aggregate never disagree on what a trading day is.
type Calendar struct {
	closed map[date.Date]bool
}

// NewCalendar returns a Calendar with the given manually closed dates.
func NewCalendar(closed []date.Date) *Calendar {
	m := make(map[date.Date]bool, len(closed))
	for _, d := range closed {
		m[d] = true
	}
	return &Calendar{closed: m}
}

// IsTradingDay reports whether d is a trading day: a weekday that is neither
// a Japanese national holiday nor in the manual closed-dates override.
func (c *Calendar) IsTradingDay(d date.Date) bool {
	wd := d.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	if jpholiday.IsHoliday(d) {
		return false
	}
	return !c.closed[d]
}

// NextTradingDay returns the smallest trading day on or after d.
// It fails after a 30-day scan, which can only happen with corrupt
// closed-dates data.
func (c *Calendar) NextTradingDay(d date.Date) (date.Date, error) {
	for i := 0; i <= maxScanDays; i++ {
		if n := d.Add(i); c.IsTradingDay(n) {
			return n, nil
		}
	}
	return date.Date{}, fmt.Errorf("no trading day within %d days of %s: check the closed-dates override", maxScanDays, d)
}

// WeekStartFor returns the Monday of the ISO week containing d,
// regardless of trading-day status. Its ISO string is the week id.
func WeekStartFor(d date.Date) date.Date {
	offset := (int(d.Weekday()) - int(time.Monday) + 7) % 7
	return d.Add(-offset)
}

// WeekWindowFor returns the Monday-to-Friday window of the ISO week
// containing d.
func WeekWindowFor(d date.Date) date.Range {
	monday := WeekStartFor(d)
	return date.NewRange(monday, monday.Add(4))
}

// NextMonday returns the next strictly-future Monday. When d is itself a
// Monday it returns the Monday seven days later: weekend-triggered weekly
// prediction jobs rely on this always-advance semantic.
func NextMonday(d date.Date) date.Date {
	offset := (int(time.Monday) - int(d.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return d.Add(offset)
}

// TradingDaysInWeek returns every trading day in the 7-day window starting at
// weekStart, in ascending order.
func (c *Calendar) TradingDaysInWeek(weekStart date.Date) []date.Date {
	var days []date.Date
	for i := 0; i < 7; i++ {
		if d := weekStart.Add(i); c.IsTradingDay(d) {
			days = append(days, d)
		}
	}
	return days
}

// WeekFinalTradingDay returns the last trading day of the week starting at
// weekStart. ok is false only when the week has no trading day at all
// (a full holiday week).
func (c *Calendar) WeekFinalTradingDay(weekStart date.Date) (final date.Date, ok bool) {
	days := c.TradingDaysInWeek(weekStart)
	if len(days) == 0 {
		return date.Date{}, false
	}
	return days[len(days)-1], true
}

// IsWeekFinalTradingDay reports whether d is the last trading day of its week.
func (c *Calendar) IsWeekFinalTradingDay(d date.Date) bool {
	final, ok := c.WeekFinalTradingDay(WeekStartFor(d))
	return ok && final == d
}
