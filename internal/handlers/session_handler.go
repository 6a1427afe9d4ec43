package handlers

import (
	"fmt"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/tanushka-102/scholarly/internal/interfaces"
	"github.com/tanushka-102/scholarly/internal/models"
)

// SessionHandler serves session status, response recording, transcript
// download and deletion.
type SessionHandler struct {
	sessionService interfaces.SessionService
	exportService  interfaces.ExportService
	logger         arbor.ILogger
}

func NewSessionHandler(sessionService interfaces.SessionService, exportService interfaces.ExportService, logger arbor.ILogger) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		exportService:  exportService,
		logger:         logger,
	}
}

// sessionStatusResponse is the public view of a session. Document text is
// reported by length only; the full text never leaves the server.
type sessionStatusResponse struct {
	ID            string            `json:"id"`
	DocumentName  string            `json:"document_name"`
	MediaType     models.MediaType  `json:"media_type"`
	TextLength    int               `json:"text_length"`
	ResponseCount int               `json:"response_count"`
	Responses     []models.Response `json:"responses"`
	CreatedAt     string            `json:"created_at"`
	LastActive    string            `json:"last_active"`
}

func sessionStatus(session *models.Session) sessionStatusResponse {
	responses := session.Responses
	if responses == nil {
		responses = []models.Response{}
	}
	return sessionStatusResponse{
		ID:            session.ID,
		DocumentName:  session.DocumentName,
		MediaType:     session.MediaType,
		TextLength:    len(session.DocumentText),
		ResponseCount: len(session.Responses),
		Responses:     responses,
		CreatedAt:     session.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		LastActive:    session.LastActive.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// StatusHandler handles GET /api/sessions/{id}.
func (h *SessionHandler) StatusHandler(w http.ResponseWriter, r *http.Request, id string) {
	session, err := h.sessionService.GetSession(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if err := h.sessionService.Touch(r.Context(), id); err != nil {
		h.logger.Warn().Err(err).Str("session_id", id).Msg("Failed to touch session")
	}

	WriteJSON(w, http.StatusOK, sessionStatus(session))
}

// DeleteHandler handles DELETE /api/sessions/{id}.
func (h *SessionHandler) DeleteHandler(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.sessionService.DeleteSession(r.Context(), id); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteSuccess(w, "Session deleted")
}

// RecordResponseHandler handles POST /api/sessions/{id}/responses.
func (h *SessionHandler) RecordResponseHandler(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
		Feedback string `json:"feedback"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Question == "" {
		WriteError(w, http.StatusBadRequest, "Question is required")
		return
	}

	if err := h.sessionService.RecordResponse(r.Context(), id, req.Question, req.Answer, req.Feedback); err != nil {
		h.logger.Error().Err(err).Str("session_id", id).Msg("Failed to record response")
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, "Response recorded")
}

// TranscriptHandler handles GET /api/sessions/{id}/transcript. The format
// query parameter selects "text" (default) or "pdf".
func (h *SessionHandler) TranscriptHandler(w http.ResponseWriter, r *http.Request, id string) {
	session, err := h.sessionService.GetSession(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	filename := h.exportService.Filename(format)
	disposition := fmt.Sprintf("attachment; filename=%q", filename)

	if format == "pdf" {
		data, err := h.exportService.TranscriptPDF(session)
		if err != nil {
			h.logger.Error().Err(err).Str("session_id", id).Msg("Failed to render transcript PDF")
			WriteError(w, http.StatusInternalServerError, "Failed to render transcript")
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", disposition)
		w.Write(data)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", disposition)
	w.Write(h.exportService.TranscriptText(session))
}
