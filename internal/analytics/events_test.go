package analytics_test

import (
	"context"
	"testing"

	"github.com/p-n-ai/pai-notes/internal/analytics"
)

func TestMemoryEventLogger_LogEvent(t *testing.T) {
	logger := analytics.NewMemoryEventLogger()

	err := logger.LogEvent(context.Background(), analytics.Event{
		VisitorID: "visitor-1",
		EventType: analytics.EventQuizCompleted,
		Data: map[string]any{
			"score": 7,
		},
	})
	if err != nil {
		t.Fatalf("LogEvent() error = %v", err)
	}

	events := logger.Events()
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	if events[0].EventType != analytics.EventQuizCompleted {
		t.Errorf("EventType = %q, want quiz_completed", events[0].EventType)
	}
	if events[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestMemoryEventLogger_RequiresType(t *testing.T) {
	logger := analytics.NewMemoryEventLogger()

	if err := logger.LogEvent(context.Background(), analytics.Event{VisitorID: "v"}); err == nil {
		t.Fatal("expected error for empty event type")
	}
}

func TestPostgresEventLogger_LogEvent_NilPool(t *testing.T) {
	logger := analytics.NewPostgresEventLogger(nil)

	err := logger.LogEvent(context.Background(), analytics.Event{
		VisitorID: "visitor-1",
		EventType: analytics.EventChapterToggled,
	})
	if err == nil {
		t.Fatal("expected error for nil pool")
	}
}

func TestEmit_SwallowsErrors(t *testing.T) {
	// Must not panic with a failing logger or a nil logger.
	analytics.Emit(context.Background(), analytics.NewPostgresEventLogger(nil), analytics.Event{EventType: "x"})
	analytics.Emit(context.Background(), nil, analytics.Event{EventType: "x"})

	logger := analytics.NewMemoryEventLogger()
	analytics.Emit(context.Background(), logger, analytics.Event{VisitorID: "v", EventType: "x"})
	if len(logger.Events()) != 1 {
		t.Errorf("Emit() recorded %d events, want 1", len(logger.Events()))
	}
}
