package store

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/etnz/llmbattle"
)

// The picks file format uses json proxy structs with tag annotations. Each
// (model, symbol) entry carries an explicit seq index: the storage layer must
// not be trusted to preserve array order, so order is reconstructed from seq
// on load.

type jpickEntry struct {
	Seq    int    `json:"seq"`
	Symbol string `json:"symbol"`
	Reason string `json:"reason,omitempty"`
	Method string `json:"method,omitempty"`
}

type jpick struct {
	Model    string       `json:"model"`
	PickedAt time.Time    `json:"picked_at_utc"`
	Entries  []jpickEntry `json:"entries"`
}

type jpicksFile struct {
	Week  string  `json:"week"`
	Picks []jpick `json:"picks"`
}

type jcurrent struct {
	Week string `json:"week"`
}

func (s *Store) picksPath(week string) string {
	return filepath.Join(s.dir, picksDir, fmt.Sprintf("picks-%s.json", week))
}

func (s *Store) currentPath() string {
	return filepath.Join(s.dir, picksDir, currentFilename)
}

// SavePicks overwrites the picks for a week and moves the current pointer to
// it. Picks are persisted sorted by model name so that saving the same set
// twice yields the same bytes.
func (s *Store) SavePicks(week string, picks []llmbattle.Pick) error {
	file := jpicksFile{Week: week, Picks: make([]jpick, 0, len(picks))}
	for _, p := range picks {
		jp := jpick{Model: p.Model, PickedAt: p.PickedAt.UTC(), Entries: make([]jpickEntry, 0, len(p.Symbols))}
		for i, sym := range p.Symbols {
			e := jpickEntry{Seq: i, Symbol: sym}
			if i < len(p.Reasons) {
				e.Reason = p.Reasons[i]
			}
			if i < len(p.Methods) {
				e.Method = p.Methods[i]
			}
			jp.Entries = append(jp.Entries, e)
		}
		file.Picks = append(file.Picks, jp)
	}
	sort.Slice(file.Picks, func(i, j int) bool { return file.Picks[i].Model < file.Picks[j].Model })

	if err := writeJSON(s.picksPath(week), file); err != nil {
		return err
	}
	return writeJSON(s.currentPath(), jcurrent{Week: week})
}

// LoadPicks loads the picks saved for a week. A week with no saved picks
// yields an empty list and no error.
func (s *Store) LoadPicks(week string) ([]llmbattle.Pick, error) {
	var file jpicksFile
	ok, err := readJSON(s.picksPath(week), &file)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	picks := make([]llmbattle.Pick, 0, len(file.Picks))
	for _, jp := range file.Picks {
		entries := append([]jpickEntry(nil), jp.Entries...)
		sort.Slice(entries, func(i, j int) bool { return entries[i].Seq < entries[j].Seq })

		p := llmbattle.Pick{Model: jp.Model, PickedAt: jp.PickedAt}
		hasReason, hasMethod := false, false
		for _, e := range entries {
			p.Symbols = append(p.Symbols, e.Symbol)
			p.Reasons = append(p.Reasons, e.Reason)
			p.Methods = append(p.Methods, e.Method)
			hasReason = hasReason || e.Reason != ""
			hasMethod = hasMethod || e.Method != ""
		}
		if !hasReason {
			p.Reasons = nil
		}
		if !hasMethod {
			p.Methods = nil
		}
		picks = append(picks, p)
	}
	return picks, nil
}

// LoadCurrent resolves the current pointer and loads that week's picks.
// An absent pointer yields an empty week id and no picks.
func (s *Store) LoadCurrent() (week string, picks []llmbattle.Pick, err error) {
	var cur jcurrent
	ok, err := readJSON(s.currentPath(), &cur)
	if err != nil || !ok {
		return "", nil, err
	}
	picks, err = s.LoadPicks(cur.Week)
	return cur.Week, picks, err
}

// PicksForMonth loads every persisted picks file whose week id falls in the
// given "YYYY-MM" month, keyed by week id.
func (s *Store) PicksForMonth(month string) (map[string][]llmbattle.Pick, error) {
	pattern := filepath.Join(s.dir, picksDir, "picks-*.json")
	filenames, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("load error: cannot scan %q: %w", pattern, err)
	}
	byWeek := make(map[string][]llmbattle.Pick)
	for _, filename := range filenames {
		week := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(filename), "picks-"), ".json")
		if !strings.HasPrefix(week, month) {
			continue
		}
		picks, err := s.LoadPicks(week)
		if err != nil {
			return nil, err
		}
		byWeek[week] = picks
	}
	return byWeek, nil
}
