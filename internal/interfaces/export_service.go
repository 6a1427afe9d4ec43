package interfaces

import (
	"github.com/tanushka-102/scholarly/internal/models"
)

// ExportService renders a session's question/answer transcript for download.
type ExportService interface {
	// TranscriptText renders the transcript as plain text, one blank line
	// between question/answer pairs.
	TranscriptText(session *models.Session) []byte

	// TranscriptPDF renders the transcript as a PDF document.
	TranscriptPDF(session *models.Session) ([]byte, error)

	// Filename returns the suggested download filename for the format.
	Filename(format string) string
}
