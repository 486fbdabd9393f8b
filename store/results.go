package store

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/etnz/llmbattle"
	"github.com/etnz/llmbattle/date"
)

func (s *Store) dailyPath(on string) string {
	return filepath.Join(s.dir, resultDir, fmt.Sprintf("result-%s.json", on))
}

func (s *Store) weekFinalPath(week string) string {
	return filepath.Join(s.dir, resultDir, fmt.Sprintf("weekly-%s.json", week))
}

func (s *Store) monthlyPath(month string) string {
	return filepath.Join(s.dir, resultDir, fmt.Sprintf("monthly-%s.json", month))
}

// SaveDaily overwrites the result for r's date.
func (s *Store) SaveDaily(r *llmbattle.DailyResult) error {
	return writeJSON(s.dailyPath(r.Date), r)
}

// Daily loads a persisted daily result, nil when absent.
func (s *Store) Daily(on date.Date) (*llmbattle.DailyResult, error) {
	var r llmbattle.DailyResult
	ok, err := readJSON(s.dailyPath(on.String()), &r)
	if err != nil || !ok {
		return nil, err
	}
	return &r, nil
}

// DailiesForMonth loads every persisted daily result of a "YYYY-MM" month,
// sorted by date.
func (s *Store) DailiesForMonth(month string) ([]*llmbattle.DailyResult, error) {
	pattern := filepath.Join(s.dir, resultDir, fmt.Sprintf("result-%s-*.json", month))
	filenames, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("load error: cannot scan %q: %w", pattern, err)
	}
	sort.Strings(filenames)
	results := make([]*llmbattle.DailyResult, 0, len(filenames))
	for _, filename := range filenames {
		var r llmbattle.DailyResult
		if _, err := readJSON(filename, &r); err != nil {
			return nil, err
		}
		results = append(results, &r)
	}
	return results, nil
}

// SaveWeekFinal overwrites the week-level roll-up for r's week.
func (s *Store) SaveWeekFinal(r *llmbattle.WeekFinalResult) error {
	return writeJSON(s.weekFinalPath(r.Week), r)
}

// WeekFinals loads every persisted week-level roll-up, sorted by week id.
func (s *Store) WeekFinals() ([]*llmbattle.WeekFinalResult, error) {
	pattern := filepath.Join(s.dir, resultDir, "weekly-*.json")
	filenames, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("load error: cannot scan %q: %w", pattern, err)
	}
	sort.Strings(filenames)
	finals := make([]*llmbattle.WeekFinalResult, 0, len(filenames))
	for _, filename := range filenames {
		var r llmbattle.WeekFinalResult
		if _, err := readJSON(filename, &r); err != nil {
			return nil, err
		}
		finals = append(finals, &r)
	}
	return finals, nil
}

// SaveMonthly overwrites the month summary for m's month.
func (s *Store) SaveMonthly(m *llmbattle.MonthSummary) error {
	return writeJSON(s.monthlyPath(m.Month), m)
}

// Monthly loads a persisted month summary, nil when absent.
func (s *Store) Monthly(month string) (*llmbattle.MonthSummary, error) {
	var m llmbattle.MonthSummary
	ok, err := readJSON(s.monthlyPath(month), &m)
	if err != nil || !ok {
		return nil, err
	}
	return &m, nil
}
