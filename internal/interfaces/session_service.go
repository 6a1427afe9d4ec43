package interfaces

import (
	"context"

	"github.com/tanushka-102/scholarly/internal/models"
)

// SessionService manages session lifecycle: creation from an upload,
// lookup, response recording, and idle pruning. It is the only writer of
// session state.
type SessionService interface {
	// CreateSession extracts text from the uploaded bytes and creates a
	// new session owning it.
	CreateSession(ctx context.Context, name string, mediaType models.MediaType, data []byte) (*models.Session, error)

	// ReplaceDocument swaps the document of an existing session for a new
	// upload and clears the accumulated responses.
	ReplaceDocument(ctx context.Context, id, name string, mediaType models.MediaType, data []byte) (*models.Session, error)

	GetSession(ctx context.Context, id string) (*models.Session, error)
	DeleteSession(ctx context.Context, id string) error

	// Touch refreshes the session's activity timestamp.
	Touch(ctx context.Context, id string) error

	// RecordResponse stores a user's answer (and optional feedback) for a
	// challenge question.
	RecordResponse(ctx context.Context, id, question, answer, feedback string) error

	// PruneIdle removes sessions idle for longer than the configured TTL.
	PruneIdle(ctx context.Context) (int, error)
}
