package handler

import (
	"log/slog"
	"net/http"

	"github.com/gupta-8/code-snippet/internal/service"
)

// StatsHandler serves the dashboard summary.
type StatsHandler struct {
	stats  *service.StatsService
	logger *slog.Logger
}

func NewStatsHandler(stats *service.StatsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{stats: stats, logger: logger}
}

// HandleGet returns snippet totals, the language breakdown, and the
// most recently updated snippets.
//
// HTTP: GET /api/stats
func (h *StatsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	stats, err := h.stats.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
