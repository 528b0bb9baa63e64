package content

import "encoding/json"

// Chapter is one lecture unit. Chapters are static: loaded once, never mutated.
type Chapter struct {
	Num       string    `json:"num" yaml:"num"`
	Title     string    `json:"title" yaml:"title"`
	Subtitle  string    `json:"subtitle" yaml:"subtitle"`
	Sections  []Section `json:"sections" yaml:"sections"`
	KeyPoints []string  `json:"keyPoints" yaml:"keyPoints"`
}

// Section is a titled block of a chapter with optional formula, callout card and table.
type Section struct {
	Title       string `json:"title" yaml:"title"`
	Body        string `json:"body" yaml:"body"`
	Formula     string `json:"formula,omitempty" yaml:"formula,omitempty"`
	FormulaNote string `json:"formulaNote,omitempty" yaml:"formulaNote,omitempty"`
	Card        *Card  `json:"card,omitempty" yaml:"card,omitempty"`
	Table       *Table `json:"table,omitempty" yaml:"table,omitempty"`
}

// Card types. Anything else renders as a neutral card.
const (
	CardWarn    = "warn"
	CardSuccess = "success"
)

// Card is a highlighted callout inside a section.
type Card struct {
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	Tag  string `json:"tag" yaml:"tag"`
	Text string `json:"text" yaml:"text"`
}

// Table is a comparison table inside a section.
type Table struct {
	Headers []string   `json:"headers" yaml:"headers"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

// GlossaryTerm is a term and its definition.
type GlossaryTerm struct {
	Term string `json:"term" yaml:"term"`
	Def  string `json:"def" yaml:"def"`
}

// RawQuestion is a quiz question as stored in quiz.json. ID, Chapter and
// Difficulty may be absent; quiz.Normalize fills them in. An id or chapter
// given explicitly as "" is kept as is.
type RawQuestion struct {
	ID         string   `json:"id,omitempty" yaml:"id,omitempty"`
	Chapter    string   `json:"chapter,omitempty" yaml:"chapter,omitempty"`
	Difficulty string   `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Q          string   `json:"q" yaml:"q"`
	Opts       []string `json:"opts" yaml:"opts"`
	A          int      `json:"a" yaml:"a"`
	FB         string   `json:"fb" yaml:"fb"`

	idSet      bool
	chapterSet bool
}

// UnmarshalJSON records whether id and chapter were present as strings.
func (q *RawQuestion) UnmarshalJSON(data []byte) error {
	type plain RawQuestion
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*q = RawQuestion(p)
	q.idSet = isJSONString(fields["id"])
	q.chapterSet = isJSONString(fields["chapter"])
	return nil
}

// HasID reports whether the question carries its own id, possibly empty.
func (q RawQuestion) HasID() bool { return q.idSet || q.ID != "" }

// HasChapter reports whether the question carries its own chapter, possibly empty.
func (q RawQuestion) HasChapter() bool { return q.chapterSet || q.Chapter != "" }

func isJSONString(raw json.RawMessage) bool {
	return len(raw) > 0 && raw[0] == '"'
}

// Origin of a Dataset.
const (
	OriginRemote   = "remote"
	OriginFallback = "fallback"
)

// Dataset is the full static content of the site.
type Dataset struct {
	Chapters []Chapter
	Glossary []GlossaryTerm
	Quiz     []RawQuestion
	Origin   string
	// Version fingerprints the three documents; it changes whenever content does.
	Version string
}

// ChapterTitle returns the title of the chapter numbered num.
func (d *Dataset) ChapterTitle(num string) (string, bool) {
	for _, ch := range d.Chapters {
		if ch.Num == num {
			return ch.Title, true
		}
	}
	return "", false
}
