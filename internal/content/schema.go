package content

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

var (
	schemasOnce sync.Once
	schemas     map[string]*gojsonschema.Schema
	schemasErr  error
)

func compileSchemas() {
	schemas = make(map[string]*gojsonschema.Schema)
	for _, name := range []string{ChaptersFile, GlossaryFile, QuizFile} {
		path := "schemas/" + strings.TrimSuffix(name, ".json") + ".schema.json"
		raw, err := schemaFS.ReadFile(path)
		if err != nil {
			schemasErr = fmt.Errorf("reading schema %s: %w", path, err)
			return
		}
		s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			schemasErr = fmt.Errorf("compiling schema %s: %w", path, err)
			return
		}
		schemas[name] = s
	}
}

// Validate checks a raw document against the embedded schema for name.
func Validate(name string, doc []byte) error {
	schemasOnce.Do(compileSchemas)
	if schemasErr != nil {
		return schemasErr
	}

	s, ok := schemas[name]
	if !ok {
		return fmt.Errorf("no schema for %s", name)
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("validating %s: %w", name, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%s does not match schema: %s", name, strings.Join(msgs, "; "))
	}
	return nil
}
