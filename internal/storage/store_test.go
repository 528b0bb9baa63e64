package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/p-n-ai/pai-notes/internal/storage"
)

func TestMemoryStore_SetGet(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, "v1", "sic_quiz_stats_v1", `{"attempts":1}`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := store.Get(ctx, "v1", "sic_quiz_stats_v1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() should find the stored value")
	}
	if got != `{"attempts":1}` {
		t.Errorf("Get() = %q", got)
	}
}

func TestMemoryStore_VisitorsAreIsolated(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	_ = store.Set(ctx, "v1", "k", "a")

	if _, ok, _ := store.Get(ctx, "v2", "k"); ok {
		t.Error("Get() should not see another visitor's value")
	}
}

func TestMemoryStore_Missing(t *testing.T) {
	store := storage.NewMemoryStore()

	_, ok, err := store.Get(context.Background(), "nobody", "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() should report a missing key")
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	_ = store.Set(ctx, "v1", "k", "a")
	if err := store.Delete(ctx, "v1", "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := store.Get(ctx, "v1", "k"); ok {
		t.Error("value should be gone after Delete()")
	}

	// Deleting an unknown visitor is a no-op.
	if err := store.Delete(ctx, "ghost", "k"); err != nil {
		t.Errorf("Delete() on unknown visitor error = %v", err)
	}
}

func TestMemoryStore_RequiresVisitor(t *testing.T) {
	store := storage.NewMemoryStore()

	if err := store.Set(context.Background(), "", "k", "v"); err == nil {
		t.Error("Set() should reject an empty visitor id")
	}
}

func TestPostgresStore_NilPool(t *testing.T) {
	if _, err := storage.NewPostgresStore(nil); err == nil {
		t.Fatal("expected error for nil pool")
	}
}

func TestRedisStore_UnreachableHost(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping unreachable host test in short mode")
	}

	client := redis.NewClient(&redis.Options{
		Addr:        "localhost:59999",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	store := storage.NewRedisStore(client, 0)
	if _, _, err := store.Get(t.Context(), "v1", "k"); err == nil {
		t.Fatal("Get() should return error for unreachable host")
	}
	if err := store.HealthCheck(t.Context()); err == nil {
		t.Fatal("HealthCheck() should return error for unreachable host")
	}
}

type brokenStore struct{ storage.MemoryStore }

func (*brokenStore) Get(context.Context, string, string) (string, bool, error) {
	return "", false, context.DeadlineExceeded
}

func TestLoadRaw(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	if _, ok := storage.LoadRaw(ctx, store, "v1", storage.KeyQuizStats); ok {
		t.Error("LoadRaw() should report a missing blob")
	}

	if err := storage.SaveJSON(ctx, store, "v1", storage.KeyQuizStats, map[string]int{"attempts": 2}); err != nil {
		t.Fatalf("SaveJSON() error = %v", err)
	}
	raw, ok := storage.LoadRaw(ctx, store, "v1", storage.KeyQuizStats)
	if !ok {
		t.Fatal("LoadRaw() should find the saved blob")
	}
	if string(raw) != `{"attempts":2}` {
		t.Errorf("LoadRaw() = %s", raw)
	}
}

func TestLoadRaw_ReadErrorIsMissing(t *testing.T) {
	if _, ok := storage.LoadRaw(context.Background(), &brokenStore{}, "v1", "k"); ok {
		t.Error("LoadRaw() should treat a read error as missing")
	}
}

func TestSaveJSON_RequiresVisitor(t *testing.T) {
	if err := storage.SaveJSON(context.Background(), storage.NewMemoryStore(), "", "k", 1); err == nil {
		t.Error("SaveJSON() should fail without a visitor id")
	}
}
