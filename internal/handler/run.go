package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gupta-8/code-snippet/internal/apperror"
	"github.com/gupta-8/code-snippet/internal/executor"
	"github.com/gupta-8/code-snippet/internal/service"
)

// RunHandler executes a stored snippet in the sandbox. The executor is
// nil when the server starts without a reachable Docker daemon; the
// endpoint then answers 503 instead of disappearing.
type RunHandler struct {
	snippets *service.SnippetService
	exec     executor.Executor
	logger   *slog.Logger
}

func NewRunHandler(snippets *service.SnippetService, exec executor.Executor, logger *slog.Logger) *RunHandler {
	return &RunHandler{snippets: snippets, exec: exec, logger: logger}
}

// HandleRun runs one of the caller's snippets and returns its output.
//
// HTTP: POST /api/snippets/{id}/run
func (h *RunHandler) HandleRun(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	if h.exec == nil {
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{
			Error:   "sandbox_unavailable",
			Message: "code execution is not enabled on this server",
		})
		return
	}

	snippet, err := h.snippets.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.exec.Execute(r.Context(), executor.ExecutionRequest{
		Language: snippet.Language,
		Code:     snippet.Code,
	})
	if err != nil {
		if errors.Is(err, executor.ErrUnsupportedLanguage) {
			writeError(w, apperror.ValidationFailed("language",
				"language "+snippet.Language+" cannot be executed"))
			return
		}
		h.logger.Error("snippet execution failed",
			slog.String("snippet_id", snippet.ID), slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
