// Package page renders the lecture-notes document.
package page

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/p-n-ai/pai-notes/internal/content"
	"github.com/p-n-ai/pai-notes/internal/platform/i18n"
	"github.com/p-n-ai/pai-notes/internal/platform/markdown"
	"github.com/p-n-ai/pai-notes/internal/progress"
	"github.com/p-n-ai/pai-notes/internal/quiz"
	"github.com/p-n-ai/pai-notes/internal/ui"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the CSS and JavaScript served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Renderer renders the document. Chapter markup is converted once at
// construction; only per-visitor parts are filled in per request.
type Renderer struct {
	tmpl     *template.Template
	tr       *i18n.Translator
	title    string
	chapters []chapterView
	choices  quiz.FilterChoices
	legal    *ui.Legal
	donation ui.Donation
}

// Options configure a Renderer.
type Options struct {
	Title      string
	Dataset    *content.Dataset
	Bank       *quiz.Bank
	Legal      *ui.Legal
	Donation   ui.Donation
	Translator *i18n.Translator
	Markdown   *markdown.Renderer
}

// New converts the dataset's chapters and parses the templates.
func New(opts Options) (*Renderer, error) {
	tr := opts.Translator
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"t":           func(key string, args ...any) string { return tr.T(key, args...) },
		"chapterData": chapterData,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	chapters, err := buildChapters(opts.Markdown, opts.Dataset.Chapters)
	if err != nil {
		return nil, err
	}

	return &Renderer{
		tmpl:     tmpl,
		tr:       tr,
		title:    opts.Title,
		chapters: chapters,
		choices:  opts.Bank.Choices(tr),
		legal:    opts.Legal,
		donation: opts.Donation,
	}, nil
}

// Visitor is the per-request state mixed into the document.
type Visitor struct {
	Completed progress.Completed
}

type documentData struct {
	Title    string
	Lang     string
	Chapters []chapterView
	Done     map[int]bool
	Percent  int
	Choices  quiz.FilterChoices
	Donation ui.Donation
	Terms    ui.LegalDoc
	Privacy  ui.LegalDoc
}

// Render writes the full HTML document.
func (r *Renderer) Render(w io.Writer, v Visitor) error {
	done := make(map[int]bool)
	for _, idx := range v.Completed.InRange(len(r.chapters)) {
		done[idx] = true
	}

	data := documentData{
		Title:    r.title,
		Lang:     r.tr.Locale(),
		Chapters: r.chapters,
		Done:     done,
		Percent:  v.Completed.Percent(len(r.chapters)),
		Choices:  r.choices,
		Donation: r.donation,
	}
	if r.legal != nil {
		data.Terms, _ = r.legal.Doc(ui.OverlayTerms)
		data.Privacy, _ = r.legal.Doc(ui.OverlayPrivacy)
	}

	if err := r.tmpl.ExecuteTemplate(w, "document.html", data); err != nil {
		return fmt.Errorf("rendering document: %w", err)
	}
	return nil
}
