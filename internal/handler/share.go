package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gupta-8/code-snippet/internal/service"
)

// ShareHandler serves snippets by bare id with no authentication. The
// unguessable xid is the only access control, like an unlisted link.
type ShareHandler struct {
	snippets *service.SnippetService
	logger   *slog.Logger
}

func NewShareHandler(snippets *service.SnippetService, logger *slog.Logger) *ShareHandler {
	return &ShareHandler{snippets: snippets, logger: logger}
}

// HandleGet returns a shared snippet.
//
// HTTP: GET /api/share/{id}
func (h *ShareHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	snippet, err := h.snippets.Shared(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snippet)
}
