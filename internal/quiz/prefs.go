package quiz

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/p-n-ai/pai-notes/internal/storage"
)

// FilterAll disables the chapter or difficulty filter.
const FilterAll = "all"

// SortMode selects the order of the question list.
type SortMode string

const (
	SortRandom         SortMode = "random"
	SortChapterAsc     SortMode = "chapter-asc"
	SortDifficultyAsc  SortMode = "difficulty-asc"
	SortDifficultyDesc SortMode = "difficulty-desc"
)

// Prefs are the visitor's filter controls.
type Prefs struct {
	Chapter    string   `json:"chapter"`
	Difficulty string   `json:"difficulty"`
	Sort       SortMode `json:"sort"`
	Search     string   `json:"search"`
}

// DefaultPrefs returns the unfiltered, randomly ordered preferences.
func DefaultPrefs() Prefs {
	return Prefs{Chapter: FilterAll, Difficulty: FilterAll, Sort: SortRandom, Search: ""}
}

// Stats are the visitor's cumulative quiz results.
type Stats struct {
	Attempts     int     `json:"attempts"`
	BestScore    int     `json:"bestScore"`
	LastScore    int     `json:"lastScore"`
	LastPlayedAt *string `json:"lastPlayedAt"`
}

// Record folds one finished session into the stats.
func (s Stats) Record(score int, at time.Time) Stats {
	ts := at.UTC().Format("2006-01-02T15:04:05.000Z")
	return Stats{
		Attempts:     s.Attempts + 1,
		BestScore:    max(s.BestScore, score),
		LastScore:    score,
		LastPlayedAt: &ts,
	}
}

// DecodePrefs parses a stored prefs blob. Each field that is missing or not a
// string falls back to its default; an unparsable blob yields DefaultPrefs.
func DecodePrefs(raw []byte) Prefs {
	p := DefaultPrefs()
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return p
	}
	stringField(fields, "chapter", &p.Chapter)
	stringField(fields, "difficulty", &p.Difficulty)
	var sort string
	if stringField(fields, "sort", &sort) {
		p.Sort = SortMode(sort)
	}
	stringField(fields, "search", &p.Search)
	return p
}

// DecodeStats parses a stored stats blob with the same per-field fallback as
// DecodePrefs. Counters must be integral numbers.
func DecodeStats(raw []byte) Stats {
	var s Stats
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return s
	}
	intField(fields, "attempts", &s.Attempts)
	intField(fields, "bestScore", &s.BestScore)
	intField(fields, "lastScore", &s.LastScore)
	var ts string
	if stringField(fields, "lastPlayedAt", &ts) {
		s.LastPlayedAt = &ts
	}
	return s
}

func stringField(fields map[string]json.RawMessage, name string, dst *string) bool {
	raw, ok := fields[name]
	if !ok || string(raw) == "null" {
		return false
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	*dst = v
	return true
}

func intField(fields map[string]json.RawMessage, name string, dst *int) bool {
	raw, ok := fields[name]
	if !ok || string(raw) == "null" {
		return false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return false
	}
	if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) || math.Abs(f) >= 1<<63 {
		return false
	}
	*dst = int(f)
	return true
}

// LoadPrefs reads the visitor's prefs, falling back to defaults.
func LoadPrefs(ctx context.Context, s storage.Store, visitorID string) Prefs {
	raw, ok := storage.LoadRaw(ctx, s, visitorID, storage.KeyQuizPrefs)
	if !ok {
		return DefaultPrefs()
	}
	return DecodePrefs(raw)
}

// LoadStats reads the visitor's stats, falling back to zero values.
func LoadStats(ctx context.Context, s storage.Store, visitorID string) Stats {
	raw, ok := storage.LoadRaw(ctx, s, visitorID, storage.KeyQuizStats)
	if !ok {
		return Stats{}
	}
	return DecodeStats(raw)
}
