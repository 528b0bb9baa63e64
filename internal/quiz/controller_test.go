package quiz_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/p-n-ai/pai-notes/internal/analytics"
	"github.com/p-n-ai/pai-notes/internal/platform/i18n"
	"github.com/p-n-ai/pai-notes/internal/quiz"
	"github.com/p-n-ai/pai-notes/internal/storage"
)

type fixture struct {
	store  *storage.MemoryStore
	events *analytics.MemoryEventLogger
	deps   quiz.Deps
}

func newFixture() *fixture {
	f := &fixture{
		store:  storage.NewMemoryStore(),
		events: analytics.NewMemoryEventLogger(),
	}
	f.deps = quiz.Deps{
		Bank:       quiz.NewBank(testDataset()),
		Store:      f.store,
		Events:     f.events,
		Translator: i18n.New("ko"),
		Rand:       firstRand{},
		Now:        func() time.Time { return time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC) },
	}
	return f
}

// playThrough answers every question with the option picked by choose.
func playThrough(t *testing.T, ctx context.Context, c *quiz.Controller, choose func(i int) int) quiz.View {
	t.Helper()
	v := c.Next(ctx)
	if v.Mode != quiz.ModeQuiz {
		t.Fatalf("Next() from setup mode = %s, want quiz", v.Mode)
	}
	for i := 0; !v.Finished; i++ {
		if _, err := c.Choose(ctx, choose(i)); err != nil {
			t.Fatalf("Choose() error = %v", err)
		}
		v = c.Next(ctx)
	}
	return v
}

func TestController_SetupView(t *testing.T) {
	f := newFixture()
	c := quiz.NewController(context.Background(), f.deps, "v1")

	v := c.Open(context.Background())
	if v.Mode != quiz.ModeSetup || !v.ToolbarVisible {
		t.Fatalf("Open() = %+v, want setup with toolbar", v)
	}
	if v.Preview != 4 {
		t.Errorf("Preview = %d, want 4", v.Preview)
	}
	if v.Progress != "퀴즈 설정" || v.NextLabel != "퀴즈 시작 →" {
		t.Errorf("setup labels = %q / %q", v.Progress, v.NextLabel)
	}
}

func TestController_QuestionView(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := quiz.NewController(ctx, f.deps, "v1")
	c.UpdatePrefs(ctx, quiz.Prefs{Chapter: "all", Difficulty: "all", Sort: quiz.SortChapterAsc})

	v := c.Next(ctx)
	if v.Progress != "문제 1 / 4 · CH 01 · 쉬움" {
		t.Errorf("Progress = %q", v.Progress)
	}
	if v.Feedback != "블록체인 기초" {
		t.Errorf("Feedback before answering = %q, want chapter title", v.Feedback)
	}
	for _, o := range v.Options {
		if o.State != "" {
			t.Fatalf("options should be unmarked before answering: %+v", v.Options)
		}
	}

	v, err := c.Choose(ctx, 2)
	if err != nil {
		t.Fatalf("Choose() error = %v", err)
	}
	if v.Options[0].State != quiz.OptionCorrect || v.Options[2].State != quiz.OptionWrong || v.Options[1].State != "" {
		t.Errorf("option states = %+v", v.Options)
	}
	if v.Feedback != "fb1" {
		t.Errorf("Feedback after answering = %q, want fb1", v.Feedback)
	}

	// A later click on the same question changes nothing.
	v, _ = c.Choose(ctx, 0)
	if v.Score != 0 || v.Options[2].State != quiz.OptionWrong {
		t.Errorf("second Choose() changed state: %+v", v)
	}
}

func TestController_UnknownChapterLabel(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := quiz.NewController(ctx, f.deps, "v1")
	c.UpdatePrefs(ctx, quiz.Prefs{Chapter: "99", Difficulty: "all", Sort: quiz.SortRandom})

	v := c.Next(ctx)
	if v.Feedback != "기타" {
		t.Errorf("Feedback = %q, want 기타", v.Feedback)
	}
	if !strings.Contains(v.Progress, "어려움") {
		t.Errorf("Progress = %q, want hard label", v.Progress)
	}
}

func TestController_CompletionRecordedOnce(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_ = storage.SaveJSON(ctx, f.store, "v1", storage.KeyQuizStats, quiz.Stats{Attempts: 2, BestScore: 3, LastScore: 3})

	c := quiz.NewController(ctx, f.deps, "v1")
	correct := []int{0, 1, 2, 0}

	// Sorted by chapter: q-001, q-002, q-003, q-004; answer half correctly.
	c.UpdatePrefs(ctx, quiz.Prefs{Chapter: "all", Difficulty: "all", Sort: quiz.SortChapterAsc})
	v := playThrough(t, ctx, c, func(i int) int {
		if i < 2 {
			return correct[i]
		}
		return (correct[i] + 1) % 3
	})

	if v.Score != 2 || v.Total != 4 || v.Passed {
		t.Errorf("finished view = score %d/%d passed %v", v.Score, v.Total, v.Passed)
	}
	if v.Question != "퀴즈 완료! 4문제 중 2개 정답" || v.Progress != "결과: 2 / 4" {
		t.Errorf("finished texts = %q / %q", v.Question, v.Progress)
	}
	if !strings.HasSuffix(v.Feedback, "(최고 점수: 3/4, 누적 시도: 3회)") {
		t.Errorf("Feedback = %q", v.Feedback)
	}

	// Re-rendering the finished screen must not count again.
	c.View(ctx)
	c.View(ctx)
	stats := quiz.LoadStats(ctx, f.store, "v1")
	if stats.Attempts != 3 || stats.BestScore != 3 || stats.LastScore != 2 {
		t.Errorf("stored stats = %+v, want attempts 3, best 3, last 2", stats)
	}
	if stats.LastPlayedAt == nil || *stats.LastPlayedAt != "2026-10-01T12:00:00.000Z" {
		t.Errorf("LastPlayedAt = %v", stats.LastPlayedAt)
	}
	if n := len(f.events.Events()); n != 1 {
		t.Errorf("events = %d, want 1", n)
	}

	// Back to setup, then a perfect run raises the best score.
	if v := c.Next(ctx); v.Mode != quiz.ModeSetup {
		t.Fatalf("Next() after finish = %s, want setup", v.Mode)
	}
	v = playThrough(t, ctx, c, func(i int) int { return correct[i] })
	if !v.Passed {
		t.Error("perfect run should pass")
	}
	if got := c.Stats(); got.Attempts != 4 || got.BestScore != 4 {
		t.Errorf("Stats() = %+v, want attempts 4, best 4", got)
	}
}

func TestController_EmptyFilterResets(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := quiz.NewController(ctx, f.deps, "v1")

	v := c.UpdatePrefs(ctx, quiz.Prefs{Chapter: "01", Difficulty: "hard", Sort: quiz.SortRandom, Search: "x"})
	if v.Preview != 0 || v.NextLabel != "필터 초기화" {
		t.Fatalf("empty setup = %+v", v)
	}

	v = c.Next(ctx)
	if v.Mode != quiz.ModeSetup {
		t.Fatalf("Next() with no matches = %s, want setup", v.Mode)
	}
	if v.Prefs != quiz.DefaultPrefs() {
		t.Errorf("Prefs = %+v, want defaults", v.Prefs)
	}
	if got := quiz.LoadPrefs(ctx, f.store, "v1"); got != quiz.DefaultPrefs() {
		t.Errorf("stored prefs = %+v, want defaults", got)
	}
}

func TestController_PrefsPersistAcrossControllers(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p := quiz.Prefs{Chapter: "02", Difficulty: "all", Sort: quiz.SortDifficultyAsc, Search: "Q"}
	quiz.NewController(ctx, f.deps, "v1").UpdatePrefs(ctx, p)

	if got := quiz.NewController(ctx, f.deps, "v1").Prefs(); got != p {
		t.Errorf("Prefs() = %+v, want %+v", got, p)
	}
}

func TestController_ChooseOutsideQuiz(t *testing.T) {
	f := newFixture()
	c := quiz.NewController(context.Background(), f.deps, "v1")

	if _, err := c.Choose(context.Background(), 0); !errors.Is(err, quiz.ErrNoQuestion) {
		t.Errorf("Choose() in setup error = %v, want ErrNoQuestion", err)
	}
}

func TestController_OpenReturnsToSetup(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := quiz.NewController(ctx, f.deps, "v1")

	c.Next(ctx)
	if v := c.Open(ctx); v.Mode != quiz.ModeSetup {
		t.Errorf("Open() = %s, want setup", v.Mode)
	}
}
