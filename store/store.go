// Package store persists the contest state as a folder of human-readable JSON
// files, git friendly and diffable. One file per artifact: picks per week,
// price snapshots per day, results per day, week and month roll-ups.
//
// All writes go through json.MarshalIndent so that re-saving unchanged state
// produces byte-identical files.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/llmbattle"
	"github.com/etnz/llmbattle/date"
)

const (
	picksDir    = "picks"
	pricesDir   = "prices"
	resultDir   = "result"
	calendarDir = "calendar"

	currentFilename     = "current.json"
	closedDatesFilename = "manual_closed_dates.json"
)

// Store is a folder-backed database rooted at a data directory.
type Store struct {
	dir string
}

// New returns a store rooted at dir. The directory tree is created lazily on
// first write.
func New(dir string) *Store { return &Store{dir: dir} }

// writeJSON persists v at path, creating parent directories as needed.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("persist error: cannot create folder for %q: %w", path, err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("persist error: cannot marshal %q: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("persist error: cannot write %q: %w", path, err)
	}
	return nil
}

// readJSON loads path into v. A missing file is not an error: it returns
// ok=false and leaves v untouched.
func readJSON(path string, v any) (ok bool, err error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load error: cannot read %q: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("load error: format error in %q: %w", path, err)
	}
	return true, nil
}

// pricesPath returns the snapshot file for a day.
func (s *Store) pricesPath(on date.Date) string {
	return filepath.Join(s.dir, pricesDir, fmt.Sprintf("prices-%s.json", on))
}

// SavePrices merges fresh into the persisted snapshot for that day and writes
// the result back. Known fields survive a null re-fetch; fresher non-null
// values win.
func (s *Store) SavePrices(on date.Date, fresh llmbattle.SnapshotMap) error {
	old, err := s.Prices(on)
	if err != nil {
		return err
	}
	return writeJSON(s.pricesPath(on), llmbattle.Merge(old, fresh))
}

// Prices loads the persisted snapshot for a day. A day that was never fetched
// yields a nil map and no error.
func (s *Store) Prices(on date.Date) (llmbattle.SnapshotMap, error) {
	var snap llmbattle.SnapshotMap
	ok, err := readJSON(s.pricesPath(on), &snap)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return snap, nil
}

func (s *Store) closedDatesPath() string {
	return filepath.Join(s.dir, calendarDir, closedDatesFilename)
}

// ClosedDates loads the manual exchange-closure override list. An absent or
// unparseable file is treated as an empty override set: the calendar must
// always be constructible.
func (s *Store) ClosedDates() []date.Date {
	var raw []string
	if ok, err := readJSON(s.closedDatesPath(), &raw); !ok || err != nil {
		return nil
	}
	var out []date.Date
	for _, txt := range raw {
		d, err := date.Parse(txt)
		if err != nil {
			continue // a bad entry does not poison the rest
		}
		out = append(out, d)
	}
	return out
}

// SaveClosedDates overwrites the manual closure override list.
func (s *Store) SaveClosedDates(dates []date.Date) error {
	raw := make([]string, 0, len(dates))
	for _, d := range dates {
		raw = append(raw, d.String())
	}
	return writeJSON(s.closedDatesPath(), raw)
}
