package content

import "strings"

// SearchGlossary returns the terms whose term or definition contains filter.
// Matching is a plain substring test; an empty filter returns every term.
func SearchGlossary(terms []GlossaryTerm, filter string) []GlossaryTerm {
	if filter == "" {
		return append(make([]GlossaryTerm, 0, len(terms)), terms...)
	}

	out := make([]GlossaryTerm, 0, len(terms))
	for _, t := range terms {
		if strings.Contains(t.Term, filter) || strings.Contains(t.Def, filter) {
			out = append(out, t)
		}
	}
	return out
}
