// Package markdown renders trusted lesson and legal text to HTML.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts Markdown with embedded HTML. Input is trusted content
// shipped with the site, so raw HTML passes through unescaped.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a renderer with GitHub-flavored Markdown enabled.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Block renders src as a block of HTML.
func (r *Renderer) Block(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Inline renders a single-paragraph snippet without the surrounding <p>.
// Multi-paragraph input is returned as a block.
func (r *Renderer) Inline(src string) (template.HTML, error) {
	out, err := r.Block(src)
	if err != nil {
		return "", err
	}
	s := strings.TrimSpace(string(out))
	inner, ok := strings.CutPrefix(s, "<p>")
	if ok {
		inner, ok = strings.CutSuffix(inner, "</p>")
	}
	if !ok || strings.Contains(inner, "<p>") {
		return template.HTML(s), nil
	}
	return template.HTML(inner), nil
}
