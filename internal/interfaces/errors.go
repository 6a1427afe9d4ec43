package interfaces

import "errors"

var (
	// ErrSessionNotFound is returned when a session ID does not exist or
	// has been pruned.
	ErrSessionNotFound = errors.New("session not found")

	// ErrKeyNotFound is returned by key/value storage lookups for missing
	// keys.
	ErrKeyNotFound = errors.New("key not found")

	// ErrUnsupportedMediaType is returned when an upload declares a format
	// the extractor cannot handle.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrEmptyDocument is returned when extraction yields no text.
	ErrEmptyDocument = errors.New("document contains no extractable text")
)
