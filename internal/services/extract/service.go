package extract

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/ternarybob/arbor"

	"github.com/tanushka-102/scholarly/internal/interfaces"
	"github.com/tanushka-102/scholarly/internal/models"
)

// Service implements interfaces.TextExtractor, dispatching on the declared
// media type.
type Service struct {
	pdf    interfaces.PDFExtractor
	logger arbor.ILogger
}

// Compile-time assertion
var _ interfaces.TextExtractor = (*Service)(nil)

// NewService creates a new text extraction service
func NewService(pdf interfaces.PDFExtractor, logger arbor.ILogger) *Service {
	return &Service{
		pdf:    pdf,
		logger: logger,
	}
}

// Extract converts uploaded bytes to text. Unsupported media types and
// empty results are reported as input errors, never as faults.
func (s *Service) Extract(ctx context.Context, mediaType models.MediaType, data []byte) (string, error) {
	var text string

	switch mediaType {
	case models.MediaTypePlainText:
		if !utf8.Valid(data) {
			return "", interfaces.ErrUnsupportedMediaType
		}
		text = string(data)
	case models.MediaTypePDF:
		extracted, err := s.pdf.ExtractText(ctx, data)
		if err != nil {
			s.logger.Warn().Err(err).Msg("PDF text extraction failed")
			return "", err
		}
		text = extracted
	default:
		return "", interfaces.ErrUnsupportedMediaType
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", interfaces.ErrEmptyDocument
	}

	s.logger.Debug().
		Str("media_type", string(mediaType)).
		Int("text_len", len(text)).
		Msg("Extracted document text")

	return text, nil
}
