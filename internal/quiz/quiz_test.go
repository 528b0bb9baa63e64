package quiz_test

import (
	"github.com/p-n-ai/pai-notes/internal/content"
	"github.com/p-n-ai/pai-notes/internal/quiz"
)

// testQuestions covers every chapter/difficulty combination the filter tests need.
func testQuestions() []quiz.Question {
	return []quiz.Question{
		{ID: "q-10", Chapter: "10", Difficulty: quiz.Hard, Text: "Stablecoin peg?", Options: []string{"fiat", "algo"}, Answer: 0, Feedback: "Collateral matters"},
		{ID: "q-2", Chapter: "02", Difficulty: quiz.Easy, Text: "Hash output length?", Options: []string{"fixed", "variable"}, Answer: 0, Feedback: "SHA-256 is 256 bits"},
		{ID: "q-1", Chapter: "01", Difficulty: quiz.Easy, Text: "What links blocks?", Options: []string{"Previous HASH", "timestamp"}, Answer: 0, Feedback: "The header"},
		{ID: "q-3", Chapter: "02", Difficulty: quiz.Medium, Text: "Collision resistance?", Options: []string{"hard to find", "easy"}, Answer: 0, Feedback: "MD5 is broken"},
		{ID: "q-11", Chapter: "09", Difficulty: quiz.Medium, Text: "AMM formula?", Options: []string{"x*y=k", "x+y=k"}, Answer: 0, Feedback: "constant product"},
		{ID: "q-4", Chapter: "02", Difficulty: quiz.Hard, Text: "Length extension?", Options: []string{"double hash", "salt"}, Answer: 0, Feedback: "Bitcoin hashes twice"},
	}
}

func testDataset() *content.Dataset {
	return &content.Dataset{
		Chapters: []content.Chapter{
			{Num: "01", Title: "블록체인 기초"},
			{Num: "02", Title: "해시 함수"},
		},
		Quiz: []content.RawQuestion{
			{ID: "q-001", Chapter: "01", Difficulty: "easy", Q: "Q1", Opts: []string{"a", "b", "c"}, A: 0, FB: "fb1"},
			{ID: "q-002", Chapter: "02", Difficulty: "medium", Q: "Q2", Opts: []string{"a", "b", "c"}, A: 1, FB: "fb2"},
			{ID: "q-003", Chapter: "02", Difficulty: "hard", Q: "Q3", Opts: []string{"a", "b", "c"}, A: 2, FB: "fb3"},
			{ID: "q-004", Chapter: "99", Difficulty: "hard", Q: "Q4", Opts: []string{"a", "b", "c"}, A: 0, FB: "fb4"},
		},
	}
}

// firstRand always picks index 0, which makes the shuffle deterministic.
type firstRand struct{}

func (firstRand) IntN(int) int { return 0 }

func ids(qs []quiz.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}
