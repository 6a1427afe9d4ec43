package interfaces

import (
	"context"
	"time"

	"github.com/tanushka-102/scholarly/internal/models"
)

// SessionStorage persists sessions. Each session is an isolated record;
// storage implementations never share document text or responses across
// session IDs.
type SessionStorage interface {
	SaveSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	DeleteSession(ctx context.Context, id string) error
	ListSessions(ctx context.Context) ([]*models.Session, error)

	// DeleteIdleSessions removes sessions whose LastActive is older than
	// the cutoff. Returns the number of sessions removed.
	DeleteIdleSessions(ctx context.Context, cutoff time.Time) (int, error)

	CountSessions(ctx context.Context) (int, error)
}

// KeyValuePair is a stored key/value setting (API keys, overrides).
type KeyValuePair struct {
	Key         string `badgerhold:"key"`
	Value       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// KeyValueStorage provides case-insensitive key/value settings storage.
type KeyValueStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value, description string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]*KeyValuePair, error)
}

// StorageManager provides access to all storage interfaces
type StorageManager interface {
	SessionStorage() SessionStorage
	KeyValueStorage() KeyValueStorage
	Close() error
}
