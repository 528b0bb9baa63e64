package quiz

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/p-n-ai/pai-notes/internal/analytics"
	"github.com/p-n-ai/pai-notes/internal/platform/i18n"
	"github.com/p-n-ai/pai-notes/internal/storage"
)

// Mode is the controller's current screen.
type Mode string

const (
	ModeSetup Mode = "setup"
	ModeQuiz  Mode = "quiz"
)

// Option states shown after a question is answered.
const (
	OptionCorrect = "correct"
	OptionWrong   = "wrong"
)

// Deps are the collaborators shared by every controller.
type Deps struct {
	Bank       *Bank
	Store      storage.Store
	Events     analytics.EventLogger
	Translator *i18n.Translator
	Rand       Rand             // nil uses math/rand/v2
	Now        func() time.Time // nil uses time.Now
}

// Controller is one visitor's quiz widget. Prefs and stats are persisted
// through the store; the session itself lives only in memory.
type Controller struct {
	deps      Deps
	visitorID string

	mu      sync.Mutex
	mode    Mode
	prefs   Prefs
	stats   Stats
	session *Session
}

// OptionView is one answer button.
type OptionView struct {
	Text  string `json:"text"`
	State string `json:"state,omitempty"`
}

// View is everything the quiz overlay displays.
type View struct {
	Mode           Mode         `json:"mode"`
	ToolbarVisible bool         `json:"toolbarVisible"`
	Progress       string       `json:"progress"`
	Question       string       `json:"question"`
	Options        []OptionView `json:"options"`
	Feedback       string       `json:"feedback"`
	NextLabel      string       `json:"nextLabel"`
	Prefs          Prefs        `json:"prefs"`
	Preview        int          `json:"preview"`
	Index          int          `json:"index"`
	Total          int          `json:"total"`
	Score          int          `json:"score"`
	Finished       bool         `json:"finished"`
	Passed         bool         `json:"passed"`
	Stats          Stats        `json:"stats"`
}

// NewController loads the visitor's prefs and stats and starts in setup mode.
func NewController(ctx context.Context, deps Deps, visitorID string) *Controller {
	if deps.Events == nil {
		deps.Events = analytics.NopEventLogger{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Translator == nil {
		deps.Translator = i18n.New("")
	}
	return &Controller{
		deps:      deps,
		visitorID: visitorID,
		mode:      ModeSetup,
		prefs:     LoadPrefs(ctx, deps.Store, visitorID),
		stats:     LoadStats(ctx, deps.Store, visitorID),
		session:   NewSession(nil),
	}
}

// Open shows the setup screen with the saved prefs.
func (c *Controller) Open(ctx context.Context) View {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mode = ModeSetup
	return c.render(ctx)
}

// View returns the current screen without changing state.
func (c *Controller) View(ctx context.Context) View {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.render(ctx)
}

// Prefs returns the current prefs.
func (c *Controller) Prefs() Prefs {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prefs
}

// Stats returns the current stats.
func (c *Controller) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// UpdatePrefs stores new filter values. The setup screen is re-rendered with
// the new preview; a running session is not affected.
func (c *Controller) UpdatePrefs(ctx context.Context, p Prefs) View {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setPrefs(ctx, p)
	return c.render(ctx)
}

// Next is the single button under the quiz. In setup it starts a session, or
// resets the filters when they match nothing. In a quiz it advances, and
// returns to setup when the session is empty or already finished.
func (c *Controller) Next(ctx context.Context) View {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == ModeSetup {
		if len(Filter(c.deps.Bank.Questions(), c.prefs)) == 0 {
			c.setPrefs(ctx, DefaultPrefs())
			return c.render(ctx)
		}
		c.session = NewSession(Select(c.deps.Bank.Questions(), c.prefs, c.deps.Rand))
		c.mode = ModeQuiz
		slog.Debug("quiz session started", "visitor_id", c.visitorID, "questions", c.session.Len())
		return c.render(ctx)
	}

	if c.session.Empty() || c.session.Finished() {
		c.mode = ModeSetup
		return c.render(ctx)
	}

	c.session.Advance()
	return c.render(ctx)
}

// Choose answers the current question with option i. Repeated choices on the
// same question are ignored.
func (c *Controller) Choose(ctx context.Context, i int) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != ModeQuiz {
		return c.render(ctx), ErrNoQuestion
	}
	if _, err := c.session.Answer(i); err != nil {
		return c.render(ctx), err
	}
	return c.render(ctx), nil
}

func (c *Controller) setPrefs(ctx context.Context, p Prefs) {
	c.prefs = p
	if err := storage.SaveJSON(ctx, c.deps.Store, c.visitorID, storage.KeyQuizPrefs, p); err != nil {
		slog.Warn("failed to save quiz prefs", "visitor_id", c.visitorID, "error", err)
	}
}

func (c *Controller) render(ctx context.Context) View {
	if c.mode == ModeSetup {
		return c.renderSetup()
	}
	return c.renderQuiz(ctx)
}

func (c *Controller) renderSetup() View {
	tr := c.deps.Translator
	preview := len(Filter(c.deps.Bank.Questions(), c.prefs))

	v := View{
		Mode:           ModeSetup,
		ToolbarVisible: true,
		Progress:       tr.T(i18n.QuizSetupTitle),
		Options:        []OptionView{},
		Prefs:          c.prefs,
		Preview:        preview,
		Stats:          c.stats,
	}
	if preview == 0 {
		v.Feedback = tr.T(i18n.QuizNoMatch)
		v.NextLabel = tr.T(i18n.QuizResetFilters)
		return v
	}
	v.Feedback = tr.T(i18n.QuizAutoSelected, preview)
	v.NextLabel = tr.T(i18n.QuizStart)
	return v
}

func (c *Controller) renderQuiz(ctx context.Context) View {
	tr := c.deps.Translator
	s := c.session

	v := View{
		Mode:    ModeQuiz,
		Options: []OptionView{},
		Prefs:   c.prefs,
		Index:   s.Index(),
		Total:   s.Len(),
		Score:   s.Score(),
	}

	if s.Empty() {
		v.Progress = tr.T(i18n.QuizEmptyProgress)
		v.Question = tr.T(i18n.QuizEmptyQuestion)
		v.Feedback = tr.T(i18n.QuizEmptyHint)
		v.NextLabel = tr.T(i18n.QuizGoToSetup)
		v.Stats = c.stats
		return v
	}

	if s.Finished() {
		c.finish(ctx)

		n := s.Len()
		v.Finished = true
		v.Passed = s.Passed()
		v.Question = tr.T(i18n.QuizFinished, n, s.Score())
		msg := i18n.QuizFailed
		if v.Passed {
			msg = i18n.QuizPassed
		}
		v.Feedback = tr.T(msg) + " " + tr.T(i18n.QuizBestSummary, c.stats.BestScore, max(n, 1), c.stats.Attempts)
		v.NextLabel = tr.T(i18n.QuizBackToSetup)
		v.Progress = tr.T(i18n.QuizResult, s.Score(), n)
		v.Stats = c.stats
		return v
	}

	q, _ := s.Current()
	v.Progress = tr.T(i18n.QuizProgress, s.Index()+1, s.Len(), q.Chapter, DifficultyLabel(tr, q.Difficulty))
	v.Question = q.Text
	v.NextLabel = tr.T(i18n.QuizNext)
	v.Stats = c.stats

	chosen, answered := s.Answered()
	for j, opt := range q.Options {
		ov := OptionView{Text: opt}
		if answered {
			switch j {
			case q.Answer:
				ov.State = OptionCorrect
			case chosen:
				ov.State = OptionWrong
			}
		}
		v.Options = append(v.Options, ov)
	}
	if answered {
		v.Feedback = q.Feedback
	} else {
		v.Feedback = c.deps.Bank.ChapterLabel(tr, q.Chapter)
	}
	return v
}

// finish records the session result once and persists the stats.
func (c *Controller) finish(ctx context.Context) {
	stats, recorded := c.session.Complete(c.stats, c.deps.Now())
	if !recorded {
		return
	}
	c.stats = stats

	if err := storage.SaveJSON(ctx, c.deps.Store, c.visitorID, storage.KeyQuizStats, stats); err != nil {
		slog.Warn("failed to save quiz stats", "visitor_id", c.visitorID, "error", err)
	}

	slog.Info("quiz completed",
		"visitor_id", c.visitorID,
		"score", c.session.Score(),
		"total", c.session.Len(),
		"attempts", stats.Attempts,
	)
	analytics.Emit(ctx, c.deps.Events, analytics.Event{
		VisitorID: c.visitorID,
		EventType: analytics.EventQuizCompleted,
		Data: map[string]any{
			"score":  c.session.Score(),
			"total":  c.session.Len(),
			"passed": c.session.Passed(),
			"best":   stats.BestScore,
		},
	})
}
