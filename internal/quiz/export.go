package quiz

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	questionsSheet = "Questions"
	chaptersSheet  = "Chapters"
)

// Export writes the question bank as an .xlsx workbook: one row per question
// on the first sheet, question counts per chapter and difficulty on the second.
func Export(w io.Writer, b *Bank) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", questionsSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	header := []any{"ID", "Chapter", "Difficulty", "Question", "Options", "Answer", "Feedback"}
	if err := f.SetSheetRow(questionsSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	type counts struct{ easy, medium, hard int }
	perChapter := map[string]*counts{}

	for i, q := range b.Questions() {
		answer := ""
		if q.Answer >= 0 && q.Answer < len(q.Options) {
			answer = q.Options[q.Answer]
		}
		row := []any{q.ID, q.Chapter, string(q.Difficulty), q.Text, joinOptions(q.Options), answer, q.Feedback}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(questionsSheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s: %w", q.ID, err)
		}

		c, ok := perChapter[q.Chapter]
		if !ok {
			c = &counts{}
			perChapter[q.Chapter] = c
		}
		switch q.Difficulty {
		case Easy:
			c.easy++
		case Hard:
			c.hard++
		default:
			c.medium++
		}
	}

	if _, err := f.NewSheet(chaptersSheet); err != nil {
		return fmt.Errorf("adding sheet: %w", err)
	}
	summary := []any{"Chapter", "Easy", "Medium", "Hard", "Total"}
	if err := f.SetSheetRow(chaptersSheet, "A1", &summary); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	chapters := make([]string, 0, len(perChapter))
	for ch := range perChapter {
		chapters = append(chapters, ch)
	}
	sort.Strings(chapters)

	for i, ch := range chapters {
		c := perChapter[ch]
		row := []any{ch, c.easy, c.medium, c.hard, c.easy + c.medium + c.hard}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(chaptersSheet, cell, &row); err != nil {
			return fmt.Errorf("writing chapter %s: %w", ch, err)
		}
	}

	if err := f.SetPanes(questionsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func joinOptions(opts []string) string {
	lines := make([]string, len(opts))
	for i, o := range opts {
		lines[i] = fmt.Sprintf("%d) %s", i+1, o)
	}
	return strings.Join(lines, "\n")
}
