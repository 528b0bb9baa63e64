package quiz

import (
	"errors"
	"math"
	"time"
)

// ErrNoQuestion is returned when answering outside an active question.
var ErrNoQuestion = errors.New("no active question")

// ErrInvalidOption is returned for an option index outside the question.
var ErrInvalidOption = errors.New("invalid option index")

// PassRatio is the share of correct answers needed to pass.
const PassRatio = 0.7

// Session is one run through a question list fixed at start time.
type Session struct {
	questions []Question
	idx       int
	score     int
	answered  bool
	chosen    int
	recorded  bool
}

// NewSession starts a session over questions. The slice is copied.
func NewSession(questions []Question) *Session {
	return &Session{questions: append([]Question(nil), questions...)}
}

// Len returns the number of questions in the session.
func (s *Session) Len() int { return len(s.questions) }

// Index returns the zero-based cursor.
func (s *Session) Index() int { return s.idx }

// Score returns the number of correct answers so far.
func (s *Session) Score() int { return s.score }

// Empty reports whether the session has no questions.
func (s *Session) Empty() bool { return len(s.questions) == 0 }

// Finished reports whether the cursor has moved past the last question.
func (s *Session) Finished() bool { return s.idx >= len(s.questions) }

// Current returns the question under the cursor.
func (s *Session) Current() (Question, bool) {
	if s.Finished() {
		return Question{}, false
	}
	return s.questions[s.idx], true
}

// Answered reports whether the current question has been answered, and with
// which option.
func (s *Session) Answered() (int, bool) {
	return s.chosen, s.answered
}

// Answer records option i for the current question. Only the first answer per
// question counts; later calls are no-ops and return accepted=false.
func (s *Session) Answer(i int) (accepted bool, err error) {
	q, ok := s.Current()
	if !ok {
		return false, ErrNoQuestion
	}
	if i < 0 || i >= len(q.Options) {
		return false, ErrInvalidOption
	}
	if s.answered {
		return false, nil
	}
	s.answered = true
	s.chosen = i
	if i == q.Answer {
		s.score++
	}
	return true, nil
}

// Advance moves to the next question. It does nothing once finished.
func (s *Session) Advance() {
	if s.Finished() {
		return
	}
	s.idx++
	s.answered = false
	s.chosen = 0
}

// Passed reports whether the score meets the pass threshold of ceil(0.7*n).
func (s *Session) Passed() bool {
	return s.score >= int(math.Ceil(float64(len(s.questions))*PassRatio))
}

// Complete folds the result into stats exactly once per session. The second
// return is false when nothing was recorded: the session is empty, unfinished,
// or already recorded.
func (s *Session) Complete(stats Stats, at time.Time) (Stats, bool) {
	if s.Empty() || !s.Finished() || s.recorded {
		return stats, false
	}
	s.recorded = true
	return stats.Record(s.score, at), true
}
