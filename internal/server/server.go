// Package server exposes the lecture notes over HTTP: the rendered document,
// the raw content documents and the JSON API behind the widgets.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/p-n-ai/pai-notes/internal/analytics"
	"github.com/p-n-ai/pai-notes/internal/content"
	"github.com/p-n-ai/pai-notes/internal/page"
	"github.com/p-n-ai/pai-notes/internal/platform/i18n"
	"github.com/p-n-ai/pai-notes/internal/progress"
	"github.com/p-n-ai/pai-notes/internal/quiz"
	"github.com/p-n-ai/pai-notes/internal/storage"
	"github.com/p-n-ai/pai-notes/internal/ui"
	"github.com/p-n-ai/pai-notes/internal/visitor"
)

// Check reports whether a backend is reachable.
type Check func(ctx context.Context) error

// Options wire the server to its collaborators.
type Options struct {
	Dataset     *content.Dataset
	Bank        *quiz.Bank
	Store       storage.Store
	Events      analytics.EventLogger
	Page        *page.Renderer
	Legal       *ui.Legal
	Donation    ui.Donation
	Translator  *i18n.Translator
	MaxVisitors int
	Rand        quiz.Rand

	// Checks run on /readyz in addition to the store's own health check.
	Checks map[string]Check
}

// Server holds the handlers' shared state.
type Server struct {
	dataset   *content.Dataset
	bank      *quiz.Bank
	store     storage.Store
	page      *page.Renderer
	legal     *ui.Legal
	donation  ui.Donation
	tr        *i18n.Translator
	progress  *progress.Tracker
	quizzes   *visitor.Registry[*quiz.Controller]
	layouts   *visitor.Registry[*ui.Controller]
	documents map[string][]byte
	checks    map[string]Check
}

// New builds a server. It fails only if the dataset cannot be encoded.
func New(opts Options) (*Server, error) {
	if opts.Events == nil {
		opts.Events = analytics.NopEventLogger{}
	}

	docs := map[string]any{
		"chapters": opts.Dataset.Chapters,
		"glossary": opts.Dataset.Glossary,
		"quiz":     opts.Dataset.Quiz,
	}
	encoded := make(map[string][]byte, len(docs))
	for name, doc := range docs {
		b, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", name, err)
		}
		encoded[name] = b
	}

	deps := quiz.Deps{
		Bank:       opts.Bank,
		Store:      opts.Store,
		Events:     opts.Events,
		Translator: opts.Translator,
		Rand:       opts.Rand,
	}

	return &Server{
		dataset:   opts.Dataset,
		bank:      opts.Bank,
		store:     opts.Store,
		page:      opts.Page,
		legal:     opts.Legal,
		donation:  opts.Donation,
		tr:        opts.Translator,
		progress:  progress.NewTracker(opts.Store, opts.Events),
		documents: encoded,
		checks:    opts.Checks,
		quizzes: visitor.NewRegistry(opts.MaxVisitors, func(ctx context.Context, id string) *quiz.Controller {
			return quiz.NewController(ctx, deps, id)
		}),
		layouts: visitor.NewRegistry(opts.MaxVisitors, func(context.Context, string) *ui.Controller {
			return ui.NewController()
		}),
	}, nil
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(page.Static())))
	r.Get("/content/{name}.json", s.handleContent)

	r.Group(func(r chi.Router) {
		r.Use(visitor.Middleware)

		r.Get("/", s.handleIndex)
		r.Get("/ws/glossary", s.handleGlossaryWS)

		r.Route("/api", func(r chi.Router) {
			r.Get("/glossary", s.handleGlossary)

			r.Route("/quiz", func(r chi.Router) {
				r.Get("/", s.handleQuizView)
				r.Put("/prefs", s.handleQuizPrefs)
				r.Post("/next", s.handleQuizNext)
				r.Post("/answer", s.handleQuizAnswer)
				r.Get("/stats", s.handleQuizStats)
				r.Get("/export.xlsx", s.handleQuizExport)
			})

			r.Get("/progress", s.handleProgress)
			r.Post("/progress/{idx}/toggle", s.handleProgressToggle)

			r.Route("/ui", func(r chi.Router) {
				r.Get("/", s.handleUIState)
				r.Post("/sidebar", s.handleUISidebar)
				r.Post("/overlay", s.handleUIOverlay)
				r.Post("/scroll", s.handleUIScroll)
			})

			r.Get("/donation", s.handleDonation)
			r.Post("/donation/copy", s.handleDonationCopy)
			r.Get("/legal/{doc}", s.handleLegal)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, CodeNotFound, "not found")
	})
	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := s.store.HealthCheck(r.Context()); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, CodeNotReady, "storage unavailable")
		return
	}
	for name, check := range s.checks {
		if err := check(r.Context()); err != nil {
			slog.Warn("readiness check failed", "check", name, "error", err)
			writeError(w, r, http.StatusServiceUnavailable, CodeNotReady, name+" unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ready",
		"content": s.dataset.Origin,
		"version": s.dataset.Version,
	})
}
