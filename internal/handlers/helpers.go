package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tanushka-102/scholarly/internal/interfaces"
)

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a standard success JSON response.
func WriteSuccess(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": message,
	})
}

// WriteError writes a standard error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// WriteServiceError maps well-known sentinel errors to HTTP status codes and
// writes the JSON error payload. Unknown errors become 500s with a generic
// message so internals do not leak to clients.
func WriteServiceError(w http.ResponseWriter, err error) error {
	switch {
	case errors.Is(err, interfaces.ErrSessionNotFound):
		return WriteError(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, interfaces.ErrUnsupportedMediaType):
		return WriteError(w, http.StatusUnsupportedMediaType, "Unsupported document type")
	case errors.Is(err, interfaces.ErrEmptyDocument):
		return WriteError(w, http.StatusBadRequest, "Document contains no extractable text")
	default:
		return WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// DecodeJSON decodes the request body into dst, writing a 400 response on
// malformed input.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}
