// Package progress tracks which chapters a visitor has marked complete.
package progress

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"slices"
	"sync"

	"github.com/p-n-ai/pai-notes/internal/analytics"
	"github.com/p-n-ai/pai-notes/internal/storage"
	"github.com/p-n-ai/pai-notes/internal/visitor"
)

// Completed is a set of chapter indices (zero-based positions in the chapter list).
type Completed map[int]struct{}

// Decode parses a stored blob. Anything but a JSON array yields an empty set;
// entries that are not integers are dropped.
func Decode(raw []byte) Completed {
	set := Completed{}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return set
	}
	for _, item := range items {
		if string(item) == "null" {
			continue
		}
		var f float64
		if err := json.Unmarshal(item, &f); err != nil {
			continue
		}
		if f != math.Trunc(f) || math.IsInf(f, 0) || math.Abs(f) >= 1<<63 {
			continue
		}
		set[int(f)] = struct{}{}
	}
	return set
}

// Has reports whether idx is marked complete.
func (c Completed) Has(idx int) bool {
	_, ok := c[idx]
	return ok
}

// Sorted returns the members in ascending order.
func (c Completed) Sorted() []int {
	out := make([]int, 0, len(c))
	for idx := range c {
		out = append(out, idx)
	}
	slices.Sort(out)
	return out
}

// InRange returns the sorted members that index an existing chapter.
func (c Completed) InRange(total int) []int {
	out := make([]int, 0, len(c))
	for _, idx := range c.Sorted() {
		if idx >= 0 && idx < total {
			out = append(out, idx)
		}
	}
	return out
}

// Percent is round(completed/total*100), counting only existing chapters.
// It is 0 when there are no chapters.
func (c Completed) Percent(total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(len(c.InRange(total))) / float64(total) * 100))
}

// Tracker reads and writes visitors' completion sets.
type Tracker struct {
	store  storage.Store
	events analytics.EventLogger
	locks  *visitor.Registry[*sync.Mutex]
}

// NewTracker creates a tracker. events may be nil.
func NewTracker(store storage.Store, events analytics.EventLogger) *Tracker {
	if events == nil {
		events = analytics.NopEventLogger{}
	}
	return &Tracker{
		store:  store,
		events: events,
		locks: visitor.NewRegistry(visitor.DefaultMaxEntries, func(context.Context, string) *sync.Mutex {
			return &sync.Mutex{}
		}),
	}
}

// Load returns the visitor's set, empty when nothing valid is stored.
func (t *Tracker) Load(ctx context.Context, visitorID string) Completed {
	raw, ok := storage.LoadRaw(ctx, t.store, visitorID, storage.KeyCompletedChapters)
	if !ok {
		return Completed{}
	}
	return Decode(raw)
}

// Toggle flips idx and persists the set. It returns the new set and whether
// idx is now complete. A failed write is logged; the returned set still
// reflects the toggle. Toggles from one visitor are serialized.
func (t *Tracker) Toggle(ctx context.Context, visitorID string, idx int) (Completed, bool) {
	mu := t.locks.Get(ctx, visitorID)
	mu.Lock()
	defer mu.Unlock()

	set := t.Load(ctx, visitorID)

	done := !set.Has(idx)
	if done {
		set[idx] = struct{}{}
	} else {
		delete(set, idx)
	}

	if err := storage.SaveJSON(ctx, t.store, visitorID, storage.KeyCompletedChapters, set.Sorted()); err != nil {
		slog.Warn("failed to save completed chapters", "visitor_id", visitorID, "error", err)
	}

	analytics.Emit(ctx, t.events, analytics.Event{
		VisitorID: visitorID,
		EventType: analytics.EventChapterToggled,
		Data:      map[string]any{"chapter": idx, "done": done},
	})
	return set, done
}
