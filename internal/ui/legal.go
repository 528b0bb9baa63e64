package ui

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/p-n-ai/pai-notes/internal/platform/i18n"
	"github.com/p-n-ai/pai-notes/internal/platform/markdown"
)

//go:embed legal/*.md
var legalFS embed.FS

// LegalDoc is a rendered legal text.
type LegalDoc struct {
	Name  Overlay       `json:"name"`
	Title string        `json:"title"`
	HTML  template.HTML `json:"html"`
}

// Legal holds the rendered terms and privacy documents.
type Legal struct {
	docs map[Overlay]LegalDoc
}

// LoadLegal renders the embedded legal documents once.
func LoadLegal(tr *i18n.Translator, md *markdown.Renderer) (*Legal, error) {
	sources := []struct {
		name  Overlay
		file  string
		title string
	}{
		{OverlayTerms, "legal/terms.md", tr.T(i18n.LegalTerms)},
		{OverlayPrivacy, "legal/privacy.md", tr.T(i18n.LegalPrivacy)},
	}

	l := &Legal{docs: make(map[Overlay]LegalDoc, len(sources))}
	for _, s := range sources {
		raw, err := legalFS.ReadFile(s.file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.file, err)
		}
		html, err := md.Block(string(raw))
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", s.file, err)
		}
		l.docs[s.name] = LegalDoc{Name: s.name, Title: s.title, HTML: html}
	}
	return l, nil
}

// Doc returns the document for terms or privacy.
func (l *Legal) Doc(name Overlay) (LegalDoc, bool) {
	d, ok := l.docs[name]
	return d, ok
}
