package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/tanushka-102/scholarly/internal/interfaces"
	"github.com/tanushka-102/scholarly/internal/models"
)

// stubSessionService backs handler tests with a single in-memory session.
type stubSessionService struct {
	session  *models.Session
	recorded []models.Response
	deleted  []string
}

func (s *stubSessionService) CreateSession(_ context.Context, name string, mediaType models.MediaType, _ []byte) (*models.Session, error) {
	session := &models.Session{ID: "sess-new", DocumentName: name, MediaType: mediaType, DocumentText: "Extracted."}
	s.session = session
	return session, nil
}

func (s *stubSessionService) ReplaceDocument(_ context.Context, id, name string, mediaType models.MediaType, _ []byte) (*models.Session, error) {
	if s.session == nil || s.session.ID != id {
		return nil, interfaces.ErrSessionNotFound
	}
	s.session.DocumentName = name
	s.session.MediaType = mediaType
	s.session.Responses = nil
	return s.session, nil
}

func (s *stubSessionService) GetSession(_ context.Context, id string) (*models.Session, error) {
	if s.session == nil || s.session.ID != id {
		return nil, interfaces.ErrSessionNotFound
	}
	return s.session, nil
}

func (s *stubSessionService) DeleteSession(_ context.Context, id string) error {
	if s.session == nil || s.session.ID != id {
		return interfaces.ErrSessionNotFound
	}
	s.deleted = append(s.deleted, id)
	s.session = nil
	return nil
}

func (s *stubSessionService) Touch(_ context.Context, id string) error {
	if s.session == nil || s.session.ID != id {
		return interfaces.ErrSessionNotFound
	}
	return nil
}

func (s *stubSessionService) RecordResponse(_ context.Context, id, question, answer, feedback string) error {
	if s.session == nil || s.session.ID != id {
		return interfaces.ErrSessionNotFound
	}
	s.recorded = append(s.recorded, models.Response{Question: question, Answer: answer, Feedback: feedback})
	s.session.RecordResponse(question, answer, feedback)
	return nil
}

func (s *stubSessionService) PruneIdle(_ context.Context) (int, error) { return 0, nil }

// stubExportService returns canned transcript bytes.
type stubExportService struct{}

func (stubExportService) TranscriptText(session *models.Session) []byte {
	return []byte("transcript for " + session.ID)
}

func (stubExportService) TranscriptPDF(session *models.Session) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

func (stubExportService) Filename(format string) string {
	if format == "pdf" {
		return "my_responses.pdf"
	}
	return "my_responses.txt"
}

func newSessionHandlerFixture() (*SessionHandler, *stubSessionService) {
	sessions := &stubSessionService{
		session: &models.Session{ID: "sess-1", DocumentName: "paper.pdf", MediaType: models.MediaTypePDF, DocumentText: "The cat sat."},
	}
	handler := NewSessionHandler(sessions, stubExportService{}, arbor.NewLogger())
	return handler, sessions
}

func TestStatusHandler(t *testing.T) {
	handler, _ := newSessionHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/sess-1", nil)
	rec := httptest.NewRecorder()
	handler.StatusHandler(rec, req, "sess-1")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "sess-1", body["id"])
	assert.Equal(t, float64(len("The cat sat.")), body["text_length"])
	// Full document text never appears in the status payload
	assert.NotContains(t, body, "document_text")
}

func TestStatusHandlerNotFound(t *testing.T) {
	handler, _ := newSessionHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/missing", nil)
	rec := httptest.NewRecorder()
	handler.StatusHandler(rec, req, "missing")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecordResponseHandler(t *testing.T) {
	handler, sessions := newSessionHandlerFixture()

	body := strings.NewReader(`{"question":"Q?","answer":"A"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/sess-1/responses", body)
	rec := httptest.NewRecorder()
	handler.RecordResponseHandler(rec, req, "sess-1")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, sessions.recorded, 1)
	assert.Equal(t, "Q?", sessions.recorded[0].Question)
}

func TestRecordResponseHandlerValidation(t *testing.T) {
	handler, _ := newSessionHandlerFixture()

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/sess-1/responses", strings.NewReader(`{"answer":"A"}`))
	rec := httptest.NewRecorder()
	handler.RecordResponseHandler(rec, req, "sess-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/sessions/sess-1/responses", strings.NewReader("not json"))
	rec = httptest.NewRecorder()
	handler.RecordResponseHandler(rec, req, "sess-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTranscriptHandlerText(t *testing.T) {
	handler, _ := newSessionHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/sess-1/transcript", nil)
	rec := httptest.NewRecorder()
	handler.TranscriptHandler(rec, req, "sess-1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "my_responses.txt")
	assert.Equal(t, "transcript for sess-1", rec.Body.String())
}

func TestTranscriptHandlerPDF(t *testing.T) {
	handler, _ := newSessionHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/sess-1/transcript?format=pdf", nil)
	rec := httptest.NewRecorder()
	handler.TranscriptHandler(rec, req, "sess-1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "my_responses.pdf")
}

func TestDeleteHandler(t *testing.T) {
	handler, sessions := newSessionHandlerFixture()

	req := httptest.NewRequest(http.MethodDelete, "/api/sessions/sess-1", nil)
	rec := httptest.NewRecorder()
	handler.DeleteHandler(rec, req, "sess-1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"sess-1"}, sessions.deleted)

	rec = httptest.NewRecorder()
	handler.DeleteHandler(rec, req, "sess-1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
