package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Blob keys. The _v1 suffix is the only schema versioning these blobs get.
const (
	KeyQuizStats         = "sic_quiz_stats_v1"
	KeyQuizPrefs         = "sic_quiz_prefs_v1"
	KeyCompletedChapters = "sic_completed_chapters_v1"
)

// LoadRaw returns the stored blob for key. Read errors are logged and treated
// as a missing value, so callers only ever deal with "have data" or "use default".
func LoadRaw(ctx context.Context, s Store, visitorID, key string) ([]byte, bool) {
	v, ok, err := s.Get(ctx, visitorID, key)
	if err != nil {
		slog.Warn("storage read failed, using default", "visitor_id", visitorID, "key", key, "error", err)
		return nil, false
	}
	if !ok || v == "" {
		return nil, false
	}
	return []byte(v), true
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(ctx context.Context, s Store, visitorID, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.Set(ctx, visitorID, key, string(data)); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}
