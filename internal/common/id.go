package common

import (
	"github.com/google/uuid"
)

// NewSessionID generates a unique session ID with the "sess_" prefix
// Format: sess_<uuid>
func NewSessionID() string {
	return "sess_" + uuid.New().String()
}
