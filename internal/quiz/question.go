// Package quiz implements the quiz widget: question normalization, the
// filter/sort pipeline, per-visitor sessions and the setup/quiz controller.
package quiz

import (
	"fmt"

	"github.com/p-n-ai/pai-notes/internal/content"
)

// Difficulty of a question.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Rank orders difficulties easy < medium < hard. Unknown values rank 0.
func (d Difficulty) Rank() int {
	switch d {
	case Easy:
		return 1
	case Medium:
		return 2
	case Hard:
		return 3
	default:
		return 0
	}
}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	return d.Rank() > 0
}

// UnassignedChapter is the chapter id given to questions without one.
const UnassignedChapter = "00"

// Question is a normalized quiz question. Every field is populated.
type Question struct {
	ID         string     `json:"id"`
	Chapter    string     `json:"chapter"`
	Difficulty Difficulty `json:"difficulty"`
	Text       string     `json:"q"`
	Options    []string   `json:"opts"`
	Answer     int        `json:"a"`
	Feedback   string     `json:"fb"`
}

// Normalize fills in missing metadata: id q-NNN by position, chapter "00",
// and difficulty medium when absent or unknown. Explicit empty ids and
// chapters are kept.
func Normalize(raw []content.RawQuestion) []Question {
	out := make([]Question, len(raw))
	for i, r := range raw {
		q := Question{
			ID:         r.ID,
			Chapter:    r.Chapter,
			Difficulty: Difficulty(r.Difficulty),
			Text:       r.Q,
			Options:    r.Opts,
			Answer:     r.A,
			Feedback:   r.FB,
		}
		if !r.HasID() {
			q.ID = fmt.Sprintf("q-%03d", i+1)
		}
		if !r.HasChapter() {
			q.Chapter = UnassignedChapter
		}
		if !q.Difficulty.Valid() {
			q.Difficulty = Medium
		}
		out[i] = q
	}
	return out
}
