package server

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/p-n-ai/pai-notes/internal/content"
	"github.com/p-n-ai/pai-notes/internal/page"
	"github.com/p-n-ai/pai-notes/internal/platform/i18n"
	"github.com/p-n-ai/pai-notes/internal/quiz"
	"github.com/p-n-ai/pai-notes/internal/ui"
	"github.com/p-n-ai/pai-notes/internal/visitor"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	completed := s.progress.Load(r.Context(), visitor.ID(r.Context()))

	var buf bytes.Buffer
	if err := s.page.Render(&buf, page.Visitor{Completed: completed}); err != nil {
		slog.Error("failed to render document", "error", err)
		writeError(w, r, http.StatusInternalServerError, CodeInternal, "rendering failed")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.documents[chi.URLParam(r, "name")]
	if !ok {
		writeError(w, r, http.StatusNotFound, CodeNotFound, "unknown content document")
		return
	}

	etag := `"` + s.dataset.Version + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=300")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(doc)
}

type glossaryResponse struct {
	Query string                 `json:"q"`
	Terms []content.GlossaryTerm `json:"terms"`
}

func (s *Server) handleGlossary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	writeJSON(w, http.StatusOK, glossaryResponse{Query: q, Terms: content.SearchGlossary(s.dataset.Glossary, q)})
}

// Quiz

func (s *Server) quiz(r *http.Request) *quiz.Controller {
	return s.quizzes.Get(r.Context(), visitor.ID(r.Context()))
}

func (s *Server) handleQuizView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.quiz(r).View(r.Context()))
}

func (s *Server) handleQuizPrefs(w http.ResponseWriter, r *http.Request) {
	p := quiz.DefaultPrefs()
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, r, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.quiz(r).UpdatePrefs(r.Context(), p))
}

func (s *Server) handleQuizNext(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.quiz(r).Next(r.Context()))
}

type answerRequest struct {
	Option *int `json:"option"`
}

func (s *Server) handleQuizAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	if req.Option == nil {
		writeError(w, r, http.StatusBadRequest, CodeBadRequest, "option is required")
		return
	}

	view, err := s.quiz(r).Choose(r.Context(), *req.Option)
	switch {
	case errors.Is(err, quiz.ErrInvalidOption):
		writeError(w, r, http.StatusBadRequest, CodeBadRequest, err.Error())
	case errors.Is(err, quiz.ErrNoQuestion):
		writeError(w, r, http.StatusConflict, CodeConflict, err.Error())
	case err != nil:
		writeError(w, r, http.StatusInternalServerError, CodeInternal, "answer failed")
	default:
		writeJSON(w, http.StatusOK, view)
	}
}

func (s *Server) handleQuizStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.quiz(r).Stats())
}

func (s *Server) handleQuizExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := quiz.Export(&buf, s.bank); err != nil {
		slog.Error("quiz export failed", "error", err)
		writeError(w, r, http.StatusInternalServerError, CodeInternal, "export failed")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="quiz-bank.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}

// Progress

type progressResponse struct {
	Completed []int  `json:"completed"`
	Percent   int    `json:"percent"`
	Index     *int   `json:"idx,omitempty"`
	Done      *bool  `json:"done,omitempty"`
	Label     string `json:"label,omitempty"`
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	total := len(s.dataset.Chapters)
	set := s.progress.Load(r.Context(), visitor.ID(r.Context()))
	writeJSON(w, http.StatusOK, progressResponse{Completed: set.InRange(total), Percent: set.Percent(total)})
}

func (s *Server) handleProgressToggle(w http.ResponseWriter, r *http.Request) {
	total := len(s.dataset.Chapters)
	idx, err := strconv.Atoi(chi.URLParam(r, "idx"))
	if err != nil || idx < 0 || idx >= total {
		writeError(w, r, http.StatusNotFound, CodeNotFound, "unknown chapter")
		return
	}

	set, done := s.progress.Toggle(r.Context(), visitor.ID(r.Context()), idx)
	label := s.tr.T(i18n.ChapterComplete)
	if done {
		label = s.tr.T(i18n.ChapterDone)
	}
	writeJSON(w, http.StatusOK, progressResponse{
		Completed: set.InRange(total),
		Percent:   set.Percent(total),
		Index:     &idx,
		Done:      &done,
		Label:     label,
	})
}

// Page chrome

func (s *Server) layout(r *http.Request) *ui.Controller {
	return s.layouts.Get(r.Context(), visitor.ID(r.Context()))
}

func (s *Server) handleUIState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.layout(r).State())
}

type sidebarRequest struct {
	Action string `json:"action"`
	Width  int    `json:"width"`
}

func (s *Server) handleUISidebar(w http.ResponseWriter, r *http.Request) {
	var req sidebarRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	c := s.layout(r)
	if req.Width > 0 {
		c.Resize(ui.Viewport{Width: req.Width})
	}

	var state ui.State
	switch req.Action {
	case "open":
		state = c.OpenSidebar()
	case "close":
		state = c.CloseSidebar()
	case "toggle":
		state = c.ToggleSidebar()
	default:
		writeError(w, r, http.StatusBadRequest, CodeBadRequest, "action must be open, close or toggle")
		return
	}
	writeJSON(w, http.StatusOK, state)
}

type overlayRequest struct {
	Overlay     ui.Overlay `json:"overlay"`
	Open        bool       `json:"open"`
	FromSidebar bool       `json:"fromSidebar"`
	Width       int        `json:"width"`
}

type overlayResponse struct {
	UI   ui.State   `json:"ui"`
	Quiz *quiz.View `json:"quiz,omitempty"`
}

func (s *Server) handleUIOverlay(w http.ResponseWriter, r *http.Request) {
	var req overlayRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	if !req.Overlay.Valid() {
		writeError(w, r, http.StatusBadRequest, CodeBadRequest, "unknown overlay")
		return
	}

	c := s.layout(r)
	if req.Width > 0 {
		c.Resize(ui.Viewport{Width: req.Width})
	}

	if !req.Open {
		writeJSON(w, http.StatusOK, overlayResponse{UI: c.CloseOverlay(req.Overlay)})
		return
	}

	resp := overlayResponse{UI: c.OpenOverlay(req.Overlay, req.FromSidebar)}
	if req.Overlay == ui.OverlayQuiz {
		v := s.quiz(r).Open(r.Context())
		resp.Quiz = &v
	}
	writeJSON(w, http.StatusOK, resp)
}

type scrollRequest struct {
	Offsets   []int `json:"offsets"`
	ScrollTop int   `json:"scrollTop"`
	Width     int   `json:"width"`
	Target    *int  `json:"target"`
}

type scrollResponse struct {
	UI   ui.State       `json:"ui"`
	Plan *ui.ScrollPlan `json:"plan,omitempty"`
}

func (s *Server) handleUIScroll(w http.ResponseWriter, r *http.Request) {
	var req scrollRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	c := s.layout(r)
	if req.Width > 0 {
		c.Resize(ui.Viewport{Width: req.Width})
	}

	if req.Target == nil {
		writeJSON(w, http.StatusOK, scrollResponse{UI: c.Scroll(req.Offsets, req.ScrollTop)})
		return
	}

	plan, ok := c.ScrollToChapter(*req.Target, req.Offsets)
	if !ok {
		writeError(w, r, http.StatusNotFound, CodeNotFound, "unknown chapter")
		return
	}
	writeJSON(w, http.StatusOK, scrollResponse{UI: c.State(), Plan: &plan})
}

func (s *Server) handleDonation(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.donation)
}

type copyRequest struct {
	OK bool `json:"ok"`
}

func (s *Server) handleDonationCopy(w http.ResponseWriter, r *http.Request) {
	var req copyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ui.CopyNotice(s.tr, req.OK))
}

func (s *Server) handleLegal(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.legal.Doc(ui.Overlay(chi.URLParam(r, "doc")))
	if !ok {
		writeError(w, r, http.StatusNotFound, CodeNotFound, "unknown document")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}
