package content

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed fallback/*.yaml
var fallbackFS embed.FS

// Positional metadata for fallback quiz entries that carry none of their own.
var (
	fallbackChapterIDs   = []string{"01", "02", "03", "07", "06", "08", "09", "12", "13", "10"}
	fallbackDifficulties = []string{"easy", "easy", "medium", "medium", "medium", "medium", "medium", "hard", "hard", "hard"}
)

// Fallback returns the embedded dataset. Quiz entries without id, chapter or
// difficulty get them from the positional tables above; values already present win.
func Fallback() (*Dataset, error) {
	var (
		chapters []Chapter
		glossary []GlossaryTerm
		quiz     []RawQuestion
	)
	if err := readFallback("fallback/chapters.yaml", &chapters); err != nil {
		return nil, err
	}
	if err := readFallback("fallback/glossary.yaml", &glossary); err != nil {
		return nil, err
	}
	if err := readFallback("fallback/quiz.yaml", &quiz); err != nil {
		return nil, err
	}

	return newDataset(chapters, glossary, SynthesizeQuizMeta(quiz), OriginFallback), nil
}

// SynthesizeQuizMeta fills missing id/chapter/difficulty from position.
func SynthesizeQuizMeta(quiz []RawQuestion) []RawQuestion {
	out := make([]RawQuestion, len(quiz))
	for i, q := range quiz {
		if !q.HasID() {
			q.ID = fmt.Sprintf("q-%03d", i+1)
		}
		if !q.HasChapter() {
			q.Chapter = "00"
			if i < len(fallbackChapterIDs) {
				q.Chapter = fallbackChapterIDs[i]
			}
		}
		if q.Difficulty == "" {
			q.Difficulty = "medium"
			if i < len(fallbackDifficulties) {
				q.Difficulty = fallbackDifficulties[i]
			}
		}
		out[i] = q
	}
	return out
}

func readFallback(path string, dst any) error {
	raw, err := fallbackFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
