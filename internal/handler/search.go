package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gupta-8/code-snippet/internal/model"
	"github.com/gupta-8/code-snippet/internal/service"
)

// SearchHandler exposes snippet search over both POST (JSON body) and
// GET (query string). The two forms produce identical results.
type SearchHandler struct {
	snippets *service.SnippetService
	logger   *slog.Logger
}

func NewSearchHandler(snippets *service.SnippetService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{snippets: snippets, logger: logger}
}

type searchRequest struct {
	Query    string   `json:"query"`
	Language string   `json:"language"`
	Tags     []string `json:"tags"`
}

type searchResponse struct {
	Snippets []model.Snippet `json:"snippets"`
	Total    int             `json:"total"`
}

// HandleSearch runs a search from a JSON body.
//
// HTTP: POST /api/search
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req searchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	h.respond(w, r, userID, req)
}

// HandleSearchQuery runs the same search from query parameters. Tags
// arrive comma-separated.
//
// HTTP: GET /api/search?q=term&language=go&tags=cli,web
func (h *SearchHandler) HandleSearchQuery(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	req := searchRequest{
		Query:    q.Get("q"),
		Language: q.Get("language"),
	}
	if raw := q.Get("tags"); raw != "" {
		req.Tags = strings.Split(raw, ",")
	}

	h.respond(w, r, userID, req)
}

func (h *SearchHandler) respond(w http.ResponseWriter, r *http.Request, userID string, req searchRequest) {
	results, err := h.snippets.Search(r.Context(), userID, req.Query, req.Language, req.Tags)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{Snippets: results, Total: len(results)})
}
