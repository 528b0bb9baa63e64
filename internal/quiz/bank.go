package quiz

import (
	"github.com/p-n-ai/pai-notes/internal/content"
	"github.com/p-n-ai/pai-notes/internal/platform/i18n"
)

// Bank is the normalized, read-only question set shared by every visitor.
type Bank struct {
	questions []Question
	chapters  []content.Chapter
	titles    map[string]string
}

// NewBank normalizes the dataset's questions.
func NewBank(ds *content.Dataset) *Bank {
	titles := make(map[string]string, len(ds.Chapters))
	for _, ch := range ds.Chapters {
		titles[ch.Num] = ch.Title
	}
	return &Bank{
		questions: Normalize(ds.Quiz),
		chapters:  ds.Chapters,
		titles:    titles,
	}
}

// Questions returns all questions in content order.
func (b *Bank) Questions() []Question {
	return b.questions
}

// ChapterLabel returns the chapter title, or the "other" label when the
// chapter does not exist.
func (b *Bank) ChapterLabel(tr *i18n.Translator, num string) string {
	if title, ok := b.titles[num]; ok {
		return title
	}
	return tr.T(i18n.ChapterOther)
}

// Choice is one entry of a filter dropdown.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FilterChoices are the dropdown entries for the quiz toolbar.
type FilterChoices struct {
	Chapters     []Choice `json:"chapters"`
	Difficulties []Choice `json:"difficulties"`
	Sorts        []Choice `json:"sorts"`
}

// Choices builds the toolbar dropdowns. Chapters are listed in content order.
func (b *Bank) Choices(tr *i18n.Translator) FilterChoices {
	chapters := []Choice{{Value: FilterAll, Label: tr.T(i18n.FilterAllChapters)}}
	for _, ch := range b.chapters {
		chapters = append(chapters, Choice{Value: ch.Num, Label: "CH " + ch.Num + " · " + ch.Title})
	}
	return FilterChoices{
		Chapters: chapters,
		Difficulties: []Choice{
			{Value: FilterAll, Label: tr.T(i18n.FilterAllDifficulty)},
			{Value: string(Easy), Label: DifficultyLabel(tr, Easy)},
			{Value: string(Medium), Label: DifficultyLabel(tr, Medium)},
			{Value: string(Hard), Label: DifficultyLabel(tr, Hard)},
		},
		Sorts: []Choice{
			{Value: string(SortRandom), Label: tr.T(i18n.SortRandom)},
			{Value: string(SortChapterAsc), Label: tr.T(i18n.SortChapterAsc)},
			{Value: string(SortDifficultyAsc), Label: tr.T(i18n.SortDifficultyAsc)},
			{Value: string(SortDifficultyDesc), Label: tr.T(i18n.SortDifficultyDesc)},
		},
	}
}

// DifficultyLabel returns the display name of d. Anything but easy and hard
// reads as medium.
func DifficultyLabel(tr *i18n.Translator, d Difficulty) string {
	switch d {
	case Easy:
		return tr.T(i18n.DifficultyEasy)
	case Hard:
		return tr.T(i18n.DifficultyHard)
	default:
		return tr.T(i18n.DifficultyMedium)
	}
}
