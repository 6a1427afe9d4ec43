package interfaces

import (
	"context"

	"github.com/tanushka-102/scholarly/internal/models"
)

// TextExtractor turns uploaded document bytes into Unicode text, dispatching
// on the declared media type. Unsupported types and empty extraction results
// are input errors (ErrUnsupportedMediaType, ErrEmptyDocument).
type TextExtractor interface {
	Extract(ctx context.Context, mediaType models.MediaType, data []byte) (string, error)
}

// PDFExtractor extracts text content from raw PDF bytes. This abstracts the
// PDF backend so different engines can be swapped in without touching the
// upload path.
type PDFExtractor interface {
	ExtractText(ctx context.Context, data []byte) (string, error)

	// PageCount reports the number of pages without extracting text.
	PageCount(ctx context.Context, data []byte) (int, error)
}
