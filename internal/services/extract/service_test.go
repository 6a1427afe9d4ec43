package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/tanushka-102/scholarly/internal/interfaces"
	"github.com/tanushka-102/scholarly/internal/models"
)

// stubPDF avoids exercising pdfcpu in unit tests.
type stubPDF struct {
	text string
	err  error
}

func (s *stubPDF) ExtractText(ctx context.Context, data []byte) (string, error) {
	return s.text, s.err
}

func (s *stubPDF) PageCount(ctx context.Context, data []byte) (int, error) {
	return 1, nil
}

func TestExtractPlainText(t *testing.T) {
	service := NewService(&stubPDF{}, arbor.NewLogger())

	text, err := service.Extract(context.Background(), models.MediaTypePlainText, []byte("  Hello document.  \n"))
	require.NoError(t, err)
	assert.Equal(t, "Hello document.", text)
}

func TestExtractPlainTextInvalidUTF8(t *testing.T) {
	service := NewService(&stubPDF{}, arbor.NewLogger())

	_, err := service.Extract(context.Background(), models.MediaTypePlainText, []byte{0xff, 0xfe, 0x01})
	assert.ErrorIs(t, err, interfaces.ErrUnsupportedMediaType)
}

func TestExtractUnsupportedType(t *testing.T) {
	service := NewService(&stubPDF{}, arbor.NewLogger())

	_, err := service.Extract(context.Background(), models.MediaType("docx"), []byte("data"))
	assert.ErrorIs(t, err, interfaces.ErrUnsupportedMediaType)
}

func TestExtractEmptyDocument(t *testing.T) {
	service := NewService(&stubPDF{text: "   \n  "}, arbor.NewLogger())

	_, err := service.Extract(context.Background(), models.MediaTypePlainText, []byte("   "))
	assert.ErrorIs(t, err, interfaces.ErrEmptyDocument)

	_, err = service.Extract(context.Background(), models.MediaTypePDF, []byte("%PDF-1.4"))
	assert.ErrorIs(t, err, interfaces.ErrEmptyDocument)
}

func TestExtractPDFDelegates(t *testing.T) {
	service := NewService(&stubPDF{text: "Extracted page text."}, arbor.NewLogger())

	text, err := service.Extract(context.Background(), models.MediaTypePDF, []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "Extracted page text.", text)
}

func TestParseMediaType(t *testing.T) {
	tests := []struct {
		input string
		want  models.MediaType
		ok    bool
	}{
		{"pdf", models.MediaTypePDF, true},
		{"application/pdf", models.MediaTypePDF, true},
		{"txt", models.MediaTypePlainText, true},
		{"text/plain", models.MediaTypePlainText, true},
		{"docx", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := models.ParseMediaType(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}
