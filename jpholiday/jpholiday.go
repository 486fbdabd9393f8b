// Package jpholiday computes Japanese national holidays.
//
// The computation covers the years 2000 to 2099: fixed-date holidays,
// Happy-Monday holidays, the astronomically approximated equinox days,
// substitute holidays (furikae kyūjitsu) and the citizens' holiday rule
// that fills a single weekday sandwiched between two holidays.
package jpholiday

import (
	"sync"
	"time"

	"github.com/etnz/llmbattle/date"
)

// IsHoliday reports whether d is a Japanese national holiday.
// Saturdays and Sundays are not holidays by themselves.
func IsHoliday(d date.Date) bool {
	_, ok := Name(d)
	return ok
}

// Name returns the Japanese name of the national holiday on d, if any.
func Name(d date.Date) (string, bool) {
	name, ok := holidaysOf(d.Year())[d]
	return name, ok
}

var (
	mu    sync.Mutex
	cache = map[int]map[date.Date]string{}
)

func holidaysOf(year int) map[date.Date]string {
	mu.Lock()
	defer mu.Unlock()
	if h, ok := cache[year]; ok {
		return h
	}
	h := compute(year)
	cache[year] = h
	return h
}

// nthMonday returns the n-th Monday of the given month.
func nthMonday(year int, month time.Month, n int) date.Date {
	d := date.New(year, month, 1)
	offset := (int(time.Monday) - int(d.Weekday()) + 7) % 7
	return d.Add(offset + 7*(n-1))
}

// vernalEquinox returns the day-of-March of the vernal equinox.
// The approximation is the usual astronomical formula, valid 1980-2099.
func vernalEquinox(year int) int {
	return int(20.8431+0.242194*float64(year-1980)) - (year-1980)/4
}

// autumnalEquinox returns the day-of-September of the autumnal equinox.
func autumnalEquinox(year int) int {
	return int(23.2488+0.242194*float64(year-1980)) - (year-1980)/4
}

// olympicMoves lists the one-off holiday relocations of 2020/2021
// (Tokyo Olympic Games). Keys replace the regular rule for those years.
var olympicMoves = map[int]map[string]date.Date{
	2020: {
		"海の日":   date.New(2020, time.July, 23),
		"スポーツの日": date.New(2020, time.July, 24),
		"山の日":   date.New(2020, time.August, 10),
	},
	2021: {
		"海の日":   date.New(2021, time.July, 22),
		"スポーツの日": date.New(2021, time.July, 23),
		"山の日":   date.New(2021, time.August, 8),
	},
}

func compute(year int) map[date.Date]string {
	h := make(map[date.Date]string)
	add := func(d date.Date, name string) { h[d] = name }

	add(date.New(year, time.January, 1), "元日")
	add(nthMonday(year, time.January, 2), "成人の日")
	add(date.New(year, time.February, 11), "建国記念の日")
	if year >= 2020 {
		add(date.New(year, time.February, 23), "天皇誕生日")
	} else if year <= 2018 {
		add(date.New(year, time.December, 23), "天皇誕生日")
	}
	add(date.New(year, time.March, vernalEquinox(year)), "春分の日")
	add(date.New(year, time.April, 29), "昭和の日")
	add(date.New(year, time.May, 3), "憲法記念日")
	add(date.New(year, time.May, 4), "みどりの日")
	add(date.New(year, time.May, 5), "こどもの日")
	if year >= 2003 {
		add(nthMonday(year, time.July, 3), "海の日")
	} else {
		add(date.New(year, time.July, 20), "海の日")
	}
	if year >= 2016 {
		add(date.New(year, time.August, 11), "山の日")
	}
	add(nthMonday(year, time.September, 3), "敬老の日")
	add(date.New(year, time.September, autumnalEquinox(year)), "秋分の日")
	if year >= 2020 {
		add(nthMonday(year, time.October, 2), "スポーツの日")
	} else {
		add(nthMonday(year, time.October, 2), "体育の日")
	}
	add(date.New(year, time.November, 3), "文化の日")
	add(date.New(year, time.November, 23), "勤労感謝の日")
	if year == 2019 {
		// Accession of Emperor Naruhito.
		add(date.New(2019, time.May, 1), "即位の日")
		add(date.New(2019, time.October, 22), "即位礼正殿の儀")
	}

	// Olympic relocations replace the regular Happy-Monday / fixed dates.
	if moves, ok := olympicMoves[year]; ok {
		for d, name := range h {
			if _, moved := moves[name]; moved {
				delete(h, d)
			}
		}
		for name, d := range moves {
			h[d] = name
		}
	}

	// Substitute holidays: a holiday falling on Sunday moves the day off to
	// the next day that is not already a holiday.
	for d, name := range copyOf(h) {
		if d.Weekday() != time.Sunday {
			continue
		}
		sub := d.Add(1)
		for {
			if _, taken := h[sub]; !taken {
				break
			}
			sub = sub.Add(1)
		}
		h[sub] = name + " 振替休日"
	}

	// Citizens' holiday: a single non-Sunday weekday squeezed between two
	// holidays becomes one too (Silver Week pattern).
	for d := range copyOf(h) {
		mid := d.Add(1)
		after := d.Add(2)
		_, isMid := h[mid]
		_, isAfter := h[after]
		if !isMid && isAfter && mid.Weekday() != time.Sunday && mid.Weekday() != time.Saturday {
			h[mid] = "国民の休日"
		}
	}

	return h
}

func copyOf(h map[date.Date]string) map[date.Date]string {
	c := make(map[date.Date]string, len(h))
	for k, v := range h {
		c[k] = v
	}
	return c
}
