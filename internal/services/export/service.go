package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/ternarybob/arbor"

	"github.com/tanushka-102/scholarly/internal/interfaces"
	"github.com/tanushka-102/scholarly/internal/models"
)

// Service renders session transcripts for download.
type Service struct {
	logger arbor.ILogger
}

var _ interfaces.ExportService = (*Service)(nil)

func NewService(logger arbor.ILogger) *Service {
	return &Service{logger: logger}
}

// TranscriptText renders each recorded response as a question line followed
// by an answer line, pairs separated by a blank line.
func (s *Service) TranscriptText(session *models.Session) []byte {
	var b strings.Builder
	for _, response := range session.Responses {
		b.WriteString(response.Question)
		b.WriteString("\n")
		b.WriteString(response.Answer)
		b.WriteString("\n\n")
	}
	return []byte(b.String())
}

// TranscriptPDF renders the transcript as a simple A4 PDF, question in bold
// with the answer below it.
func (s *Service) TranscriptPDF(session *models.Session) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 12)
	title := session.DocumentName
	if title == "" {
		title = "Session transcript"
	}
	pdf.MultiCell(0, 6, title, "", "L", false)
	pdf.Ln(4)

	for _, response := range session.Responses {
		pdf.SetFont("Arial", "B", 9)
		pdf.MultiCell(0, 5, response.Question, "", "L", false)
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(0, 5, response.Answer, "", "L", false)
		if response.Feedback != "" {
			pdf.SetFont("Arial", "I", 9)
			pdf.MultiCell(0, 5, response.Feedback, "", "L", false)
		}
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate transcript PDF")
		return nil, fmt.Errorf("failed to generate transcript PDF: %w", err)
	}

	s.logger.Debug().
		Str("session_id", session.ID).
		Int("pdf_size", buf.Len()).
		Msg("Transcript PDF generated")

	return buf.Bytes(), nil
}

// Filename returns the download filename for the given format.
func (s *Service) Filename(format string) string {
	if format == "pdf" {
		return "my_responses.pdf"
	}
	return "my_responses.txt"
}
