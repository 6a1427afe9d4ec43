package handlers

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/tanushka-102/scholarly/internal/common"
	"github.com/tanushka-102/scholarly/internal/interfaces"
	"github.com/tanushka-102/scholarly/internal/models"
)

// DocumentHandler accepts document uploads and creates sessions around the
// extracted text.
type DocumentHandler struct {
	sessionService interfaces.SessionService
	config         *common.SessionsConfig
	logger         arbor.ILogger
}

func NewDocumentHandler(sessionService interfaces.SessionService, config *common.SessionsConfig, logger arbor.ILogger) *DocumentHandler {
	return &DocumentHandler{
		sessionService: sessionService,
		config:         config,
		logger:         logger,
	}
}

// UploadHandler handles POST /api/documents. Accepts multipart form uploads
// (field "document") or a raw body with a Content-Type header.
func (h *DocumentHandler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	name, mediaType, data, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	session, err := h.sessionService.CreateSession(r.Context(), name, mediaType, data)
	if err != nil {
		h.logger.Error().Err(err).Str("document", name).Msg("Failed to create session")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, sessionStatus(session))
}

// ReplaceHandler handles PUT /api/sessions/{id}/document. The new upload
// replaces the session's document and clears accumulated responses.
func (h *DocumentHandler) ReplaceHandler(w http.ResponseWriter, r *http.Request, id string) {
	name, mediaType, data, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	session, err := h.sessionService.ReplaceDocument(r.Context(), id, name, mediaType, data)
	if err != nil {
		h.logger.Error().Err(err).Str("session_id", id).Str("document", name).Msg("Failed to replace document")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, sessionStatus(session))
}

// readUpload extracts the document name, media type and bytes from the
// request, writing the error response itself when the upload is unusable.
func (h *DocumentHandler) readUpload(w http.ResponseWriter, r *http.Request) (string, models.MediaType, []byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.MaxUploadBytes)

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		file, header, err := r.FormFile("document")
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Missing 'document' form file")
			return "", "", nil, false
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			WriteError(w, http.StatusRequestEntityTooLarge, "Upload too large")
			return "", "", nil, false
		}

		mediaType, ok := mediaTypeForUpload(header.Header.Get("Content-Type"), header.Filename)
		if !ok {
			WriteError(w, http.StatusUnsupportedMediaType, "Unsupported document type")
			return "", "", nil, false
		}
		return header.Filename, mediaType, data, true
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		WriteError(w, http.StatusRequestEntityTooLarge, "Upload too large")
		return "", "", nil, false
	}

	mediaType, ok := mediaTypeForUpload(contentType, "")
	if !ok {
		WriteError(w, http.StatusUnsupportedMediaType, "Unsupported document type")
		return "", "", nil, false
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "document"
	}
	return name, mediaType, data, true
}

// mediaTypeForUpload resolves the media type from the Content-Type header,
// falling back to the filename extension.
func mediaTypeForUpload(contentType, filename string) (models.MediaType, bool) {
	if contentType != "" {
		if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
			if mediaType, ok := models.ParseMediaType(parsed); ok {
				return mediaType, true
			}
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return models.MediaTypePDF, true
	case ".txt", ".text", ".md":
		return models.MediaTypePlainText, true
	}

	return "", false
}
