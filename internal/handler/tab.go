package handler

import (
	"log/slog"
	"net/http"

	"github.com/gupta-8/code-snippet/internal/model"
	"github.com/gupta-8/code-snippet/internal/service"
)

// TabHandler persists the editor's open-tab snapshot.
type TabHandler struct {
	tabs   *service.TabService
	logger *slog.Logger
}

func NewTabHandler(tabs *service.TabService, logger *slog.Logger) *TabHandler {
	return &TabHandler{tabs: tabs, logger: logger}
}

// HandleGet returns the saved snapshot.
//
// HTTP: GET /api/tabs
func (h *TabHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}

	tabs, err := h.tabs.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]model.OpenTab{"tabs": tabs})
}

// HandleSave replaces the snapshot wholesale. An empty list clears it.
//
// HTTP: PUT /api/tabs
func (h *TabHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}

	var req struct {
		Tabs []model.OpenTab `json:"tabs"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.tabs.Save(r.Context(), req.Tabs); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "tabs saved"})
}
