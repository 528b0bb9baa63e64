// Package content loads the static lesson content: chapters, glossary terms
// and quiz questions. A failed load never surfaces as an error; the embedded
// fallback dataset is used instead.
package content

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"
)

// Loader fetches the three content documents from a Source.
type Loader struct {
	source  Source
	timeout time.Duration
}

// NewLoader creates a loader. A nil source always yields the fallback dataset.
// A zero timeout means no deadline beyond ctx.
func NewLoader(source Source, timeout time.Duration) *Loader {
	return &Loader{source: source, timeout: timeout}
}

// Load fetches chapters, glossary and quiz in parallel. If any of the three
// fails, all results are discarded and the fallback dataset is returned.
func (l *Loader) Load(ctx context.Context) *Dataset {
	if l.source == nil {
		slog.Info("no content source configured, using embedded dataset")
		return l.fallback()
	}

	ds, err := l.fetchAll(ctx)
	if err != nil {
		slog.Warn("content fetch failed, using embedded dataset", "error", err)
		return l.fallback()
	}

	slog.Info("content loaded",
		"origin", ds.Origin,
		"chapters", len(ds.Chapters),
		"glossary", len(ds.Glossary),
		"questions", len(ds.Quiz),
		"version", ds.Version,
	)
	return ds
}

func (l *Loader) fetchAll(ctx context.Context) (*Dataset, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	var (
		chapters []Chapter
		glossary []GlossaryTerm
		quiz     []RawQuestion
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return l.fetchDocument(gctx, ChaptersFile, &chapters) })
	g.Go(func() error { return l.fetchDocument(gctx, GlossaryFile, &glossary) })
	g.Go(func() error { return l.fetchDocument(gctx, QuizFile, &quiz) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return newDataset(chapters, glossary, quiz, OriginRemote), nil
}

func (l *Loader) fetchDocument(ctx context.Context, name string, dst any) error {
	raw, err := l.source.Fetch(ctx, name)
	if err != nil {
		return err
	}
	if err := Validate(name, raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	return nil
}

func (l *Loader) fallback() *Dataset {
	ds, err := Fallback()
	if err != nil {
		// The embedded dataset is compiled in; failing here is a build defect.
		panic(fmt.Sprintf("embedded content dataset is broken: %v", err))
	}
	slog.Info("content loaded",
		"origin", ds.Origin,
		"chapters", len(ds.Chapters),
		"glossary", len(ds.Glossary),
		"questions", len(ds.Quiz),
	)
	return ds
}

func newDataset(chapters []Chapter, glossary []GlossaryTerm, quiz []RawQuestion, origin string) *Dataset {
	if chapters == nil {
		chapters = []Chapter{}
	}
	if glossary == nil {
		glossary = []GlossaryTerm{}
	}
	if quiz == nil {
		quiz = []RawQuestion{}
	}
	return &Dataset{
		Chapters: chapters,
		Glossary: glossary,
		Quiz:     quiz,
		Origin:   origin,
		Version:  fingerprint(chapters, glossary, quiz),
	}
}

// fingerprint hashes the canonical JSON of the three documents with BLAKE2b-256.
func fingerprint(docs ...any) string {
	h, _ := blake2b.New256(nil)
	for _, d := range docs {
		b, err := json.Marshal(d)
		if err != nil {
			continue
		}
		h.Write(b)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)[:16])
}
