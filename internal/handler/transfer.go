package handler

import (
	"log/slog"
	"net/http"

	"github.com/gupta-8/code-snippet/internal/service"
)

// TransferHandler owns bulk export and import.
type TransferHandler struct {
	transfer *service.TransferService
	logger   *slog.Logger
}

func NewTransferHandler(transfer *service.TransferService, logger *slog.Logger) *TransferHandler {
	return &TransferHandler{transfer: transfer, logger: logger}
}

// HandleExport downloads the caller's whole collection as one bundle.
//
// HTTP: GET /api/export
func (h *TransferHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	bundle, err := h.transfer.Export(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bundle)
}

type importRequest struct {
	Snippets []struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Code        string   `json:"code"`
		Language    string   `json:"language"`
		Tags        []string `json:"tags"`
	} `json:"snippets"`
}

// HandleImport uploads snippets in bulk. Bad items are skipped with
// per-item error messages; the rest import.
//
// HTTP: POST /api/import
func (h *TransferHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req importRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	items := make([]service.SnippetInput, len(req.Snippets))
	for i, s := range req.Snippets {
		items[i] = service.SnippetInput{
			Title:       s.Title,
			Description: s.Description,
			Code:        s.Code,
			Language:    s.Language,
			Tags:        s.Tags,
		}
	}

	result, err := h.transfer.Import(r.Context(), userID, items)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
