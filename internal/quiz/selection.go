package quiz

import (
	"math/rand/v2"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Rand is the randomness used for shuffling. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Filter keeps the questions matching every active filter: chapter equality,
// difficulty equality, and a lowercased substring match of the trimmed
// search text against the question, its feedback or any option.
func Filter(questions []Question, p Prefs) []Question {
	fold := cases.Lower(language.Und)
	search := fold.String(strings.TrimSpace(p.Search))

	out := make([]Question, 0, len(questions))
	for _, q := range questions {
		if p.Chapter != FilterAll && q.Chapter != p.Chapter {
			continue
		}
		if p.Difficulty != FilterAll && string(q.Difficulty) != p.Difficulty {
			continue
		}
		if search != "" && !matches(fold, q, search) {
			continue
		}
		out = append(out, q)
	}
	return out
}

func matches(fold cases.Caser, q Question, search string) bool {
	if strings.Contains(fold.String(q.Text), search) || strings.Contains(fold.String(q.Feedback), search) {
		return true
	}
	for _, opt := range q.Options {
		if strings.Contains(fold.String(opt), search) {
			return true
		}
	}
	return false
}

// Sort returns a sorted copy of questions. Random mode reshuffles on every
// call. The other modes are stable and break ties by id, comparing digit runs
// numerically so that q-2 sorts before q-10. Unknown modes keep input order.
func Sort(questions []Question, mode SortMode, rng Rand) []Question {
	out := append([]Question(nil), questions...)

	if mode == SortRandom {
		shuffle(out, rng)
		return out
	}

	col := collate.New(language.English, collate.Numeric)
	byID := func(a, b Question) bool { return col.CompareString(a.ID, b.ID) < 0 }

	var less func(a, b Question) bool
	switch mode {
	case SortChapterAsc:
		less = func(a, b Question) bool {
			if c := col.CompareString(a.Chapter, b.Chapter); c != 0 {
				return c < 0
			}
			return byID(a, b)
		}
	case SortDifficultyAsc:
		less = func(a, b Question) bool {
			if a.Difficulty.Rank() != b.Difficulty.Rank() {
				return a.Difficulty.Rank() < b.Difficulty.Rank()
			}
			return byID(a, b)
		}
	case SortDifficultyDesc:
		less = func(a, b Question) bool {
			if a.Difficulty.Rank() != b.Difficulty.Rank() {
				return a.Difficulty.Rank() > b.Difficulty.Rank()
			}
			return byID(a, b)
		}
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// shuffle is a Fisher-Yates shuffle in place.
func shuffle(items []Question, rng Rand) {
	if rng == nil {
		rng = globalRand{}
	}
	for i := len(items) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// Select filters and then sorts.
func Select(questions []Question, p Prefs, rng Rand) []Question {
	return Sort(Filter(questions, p), p.Sort, rng)
}
