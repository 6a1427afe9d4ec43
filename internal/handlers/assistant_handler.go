package handlers

import (
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/tanushka-102/scholarly/internal/interfaces"
	"github.com/tanushka-102/scholarly/internal/models"
)

// AssistantHandler exposes the document operations: summarize, grounded
// question answering, challenge generation and answer evaluation. Every
// operation loads the session, runs against its document text, and refreshes
// the session's activity timestamp on success.
type AssistantHandler struct {
	assistantService interfaces.AssistantService
	sessionService   interfaces.SessionService
	logger           arbor.ILogger
}

func NewAssistantHandler(assistantService interfaces.AssistantService, sessionService interfaces.SessionService, logger arbor.ILogger) *AssistantHandler {
	return &AssistantHandler{
		assistantService: assistantService,
		sessionService:   sessionService,
		logger:           logger,
	}
}

func (h *AssistantHandler) loadSession(w http.ResponseWriter, r *http.Request, id string) (*models.Session, bool) {
	session, err := h.sessionService.GetSession(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return nil, false
	}
	return session, true
}

func (h *AssistantHandler) touch(r *http.Request, id string) {
	if err := h.sessionService.Touch(r.Context(), id); err != nil {
		h.logger.Warn().Err(err).Str("session_id", id).Msg("Failed to touch session")
	}
}

// SummarizeHandler handles POST /api/sessions/{id}/summarize.
func (h *AssistantHandler) SummarizeHandler(w http.ResponseWriter, r *http.Request, id string) {
	session, ok := h.loadSession(w, r, id)
	if !ok {
		return
	}

	summary, err := h.assistantService.Summarize(r.Context(), session.DocumentText)
	if err != nil {
		h.logger.Error().Err(err).Str("session_id", id).Msg("Summarize failed")
		WriteError(w, http.StatusBadGateway, "Model request failed")
		return
	}

	h.touch(r, id)
	WriteJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

// AskHandler handles POST /api/sessions/{id}/ask.
func (h *AssistantHandler) AskHandler(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		Question string `json:"question"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		WriteError(w, http.StatusBadRequest, "Question is required")
		return
	}

	session, ok := h.loadSession(w, r, id)
	if !ok {
		return
	}

	result, err := h.assistantService.Ask(r.Context(), session.DocumentText, req.Question, historyFor(session))
	if err != nil {
		h.logger.Error().Err(err).Str("session_id", id).Msg("Ask failed")
		WriteError(w, http.StatusBadGateway, "Model request failed")
		return
	}

	h.touch(r, id)
	WriteJSON(w, http.StatusOK, result)
}

// ChallengeHandler handles POST /api/sessions/{id}/challenge.
func (h *AssistantHandler) ChallengeHandler(w http.ResponseWriter, r *http.Request, id string) {
	session, ok := h.loadSession(w, r, id)
	if !ok {
		return
	}

	questions, err := h.assistantService.GenerateChallenge(r.Context(), session.DocumentText)
	if err != nil {
		h.logger.Error().Err(err).Str("session_id", id).Msg("Challenge generation failed")
		WriteError(w, http.StatusBadGateway, "Model request failed")
		return
	}

	h.touch(r, id)
	WriteJSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}

// EvaluateHandler handles POST /api/sessions/{id}/evaluate. The evaluated
// answer is recorded in the session with the resulting feedback.
func (h *AssistantHandler) EvaluateHandler(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Question == "" {
		WriteError(w, http.StatusBadRequest, "Question is required")
		return
	}

	session, ok := h.loadSession(w, r, id)
	if !ok {
		return
	}

	feedback, err := h.assistantService.Evaluate(r.Context(), session.DocumentText, req.Question, req.Answer)
	if err != nil {
		h.logger.Error().Err(err).Str("session_id", id).Msg("Evaluation failed")
		WriteError(w, http.StatusBadGateway, "Model request failed")
		return
	}

	if err := h.sessionService.RecordResponse(r.Context(), id, req.Question, req.Answer, feedback); err != nil {
		h.logger.Warn().Err(err).Str("session_id", id).Msg("Failed to record evaluated response")
	}

	WriteJSON(w, http.StatusOK, map[string]string{"feedback": feedback})
}

// historyFor formats prior exchanges for the ask prompt, most recent last.
func historyFor(session *models.Session) string {
	if len(session.Responses) == 0 {
		return ""
	}
	var b strings.Builder
	for _, response := range session.Responses {
		b.WriteString("Q: ")
		b.WriteString(response.Question)
		b.WriteString("\nA: ")
		b.WriteString(response.Answer)
		b.WriteString("\n")
	}
	return b.String()
}
