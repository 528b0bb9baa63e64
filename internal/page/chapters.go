package page

import (
	"fmt"
	"html/template"

	"github.com/p-n-ai/pai-notes/internal/content"
	"github.com/p-n-ai/pai-notes/internal/platform/markdown"
)

// Chapter text is trusted content with inline HTML. Titles, formulas and
// table cells are used as-is; prose goes through Markdown.

type chapterView struct {
	Index     int
	Num       string
	Title     template.HTML
	Subtitle  template.HTML
	KeyPoints []template.HTML
	Sections  []sectionView
}

type sectionView struct {
	Title       template.HTML
	Body        template.HTML
	Formula     template.HTML
	FormulaNote template.HTML
	Card        *cardView
	Table       *tableView
}

type cardView struct {
	Class string
	Tag   template.HTML
	Text  template.HTML
}

type tableView struct {
	Headers []template.HTML
	Rows    [][]template.HTML
}

type chapterTemplateData struct {
	Chapter chapterView
	Done    bool
	Delay   string
}

// chapterData feeds the "chapter" template. Chapters fade in one after another.
func chapterData(ch chapterView, done map[int]bool) chapterTemplateData {
	return chapterTemplateData{
		Chapter: ch,
		Done:    done[ch.Index],
		Delay:   fmt.Sprintf("%.2f", float64(ch.Index)*0.03),
	}
}

func buildChapters(md *markdown.Renderer, chapters []content.Chapter) ([]chapterView, error) {
	out := make([]chapterView, 0, len(chapters))
	for i, ch := range chapters {
		v := chapterView{
			Index:    i,
			Num:      ch.Num,
			Title:    template.HTML(ch.Title),
			Subtitle: template.HTML(ch.Subtitle),
		}
		for _, kp := range ch.KeyPoints {
			h, err := md.Inline(kp)
			if err != nil {
				return nil, fmt.Errorf("chapter %s key point: %w", ch.Num, err)
			}
			v.KeyPoints = append(v.KeyPoints, h)
		}
		for _, sec := range ch.Sections {
			sv, err := buildSection(md, sec)
			if err != nil {
				return nil, fmt.Errorf("chapter %s section %q: %w", ch.Num, sec.Title, err)
			}
			v.Sections = append(v.Sections, sv)
		}
		out = append(out, v)
	}
	return out, nil
}

func buildSection(md *markdown.Renderer, sec content.Section) (sectionView, error) {
	body, err := md.Inline(sec.Body)
	if err != nil {
		return sectionView{}, err
	}
	v := sectionView{
		Title:   template.HTML(sec.Title),
		Body:    body,
		Formula: template.HTML(sec.Formula),
	}

	if sec.Formula != "" && sec.FormulaNote != "" {
		if v.FormulaNote, err = md.Inline(sec.FormulaNote); err != nil {
			return sectionView{}, err
		}
	}

	if sec.Card != nil {
		text, err := md.Inline(sec.Card.Text)
		if err != nil {
			return sectionView{}, err
		}
		v.Card = &cardView{Class: cardClass(sec.Card.Type), Tag: template.HTML(sec.Card.Tag), Text: text}
	}

	if sec.Table != nil {
		t := &tableView{}
		for _, h := range sec.Table.Headers {
			t.Headers = append(t.Headers, template.HTML(h))
		}
		for _, row := range sec.Table.Rows {
			cells := make([]template.HTML, len(row))
			for i, c := range row {
				cells[i] = template.HTML(c)
			}
			t.Rows = append(t.Rows, cells)
		}
		v.Table = t
	}
	return v, nil
}

func cardClass(typ string) string {
	switch typ {
	case content.CardWarn, content.CardSuccess:
		return typ
	default:
		return ""
	}
}
