package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/p-n-ai/pai-notes/internal/content"
	"github.com/p-n-ai/pai-notes/internal/visitor"
)

type glossaryQuery struct {
	Query string `json:"q"`
}

// handleGlossaryWS answers each {"q": ...} message with the matching terms,
// so the glossary filters as the visitor types.
func (s *Server) handleGlossaryWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		slog.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	id := visitor.ID(ctx)
	slog.Debug("glossary socket opened", "visitor_id", id)

	for {
		var q glossaryQuery
		if err := wsjson.Read(ctx, conn, &q); err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && !errors.Is(err, ctx.Err()) {
				slog.Debug("glossary socket closed", "visitor_id", id, "error", err)
			}
			return
		}

		resp := glossaryResponse{Query: q.Query, Terms: content.SearchGlossary(s.dataset.Glossary, q.Query)}
		if err := wsjson.Write(ctx, conn, resp); err != nil {
			slog.Debug("glossary socket write failed", "visitor_id", id, "error", err)
			return
		}
	}
}
