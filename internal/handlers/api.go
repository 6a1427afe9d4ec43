package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/tanushka-102/scholarly/internal/common"
	"github.com/tanushka-102/scholarly/internal/interfaces"
)

type APIHandler struct {
	llmService interfaces.LLMService
	storage    interfaces.StorageManager
	logger     arbor.ILogger
}

func NewAPIHandler(llmService interfaces.LLMService, storage interfaces.StorageManager, logger arbor.ILogger) *APIHandler {
	return &APIHandler{
		llmService: llmService,
		storage:    storage,
		logger:     logger,
	}
}

// VersionHandler returns version information
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version":    common.GetVersion(),
		"build":      common.GetBuild(),
		"git_commit": common.GetGitCommit(),
	})
}

// HealthHandler returns health check status, including the model provider
// and session store.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ok"
	llmStatus := "ok"
	if err := h.llmService.HealthCheck(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("LLM health check failed")
		llmStatus = "unavailable"
		status = "degraded"
	}

	sessions, err := h.storage.SessionStorage().CountSessions(ctx)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Session count failed")
		status = "degraded"
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":   status,
		"llm":      llmStatus,
		"sessions": sessions,
	})
}

// NotFoundHandler handles 404 errors with JSON response
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, map[string]interface{}{
		"error":   "Not Found",
		"path":    r.URL.Path,
		"message": "The requested endpoint does not exist",
	})
}
