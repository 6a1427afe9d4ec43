// Package extract turns uploaded document bytes into Unicode text. PDF
// processing uses pdfcpu for Go-native extraction.
package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/ternarybob/arbor"

	"github.com/tanushka-102/scholarly/internal/interfaces"
)

// PDFExtractor implements the PDFExtractor interface using pdfcpu
type PDFExtractor struct {
	logger  arbor.ILogger
	tempDir string
}

// Compile-time interface assertion
var _ interfaces.PDFExtractor = (*PDFExtractor)(nil)

// NewPDFExtractor creates a new PDF extractor service
func NewPDFExtractor(logger arbor.ILogger) *PDFExtractor {
	tempDir := filepath.Join(os.TempDir(), "scholarly-pdf")
	os.MkdirAll(tempDir, 0755)

	return &PDFExtractor{
		logger:  logger,
		tempDir: tempDir,
	}
}

// ExtractText extracts all text content from raw PDF bytes, concatenating
// pages in order.
func (e *PDFExtractor) ExtractText(ctx context.Context, data []byte) (string, error) {
	tempFile, cleanup, err := e.writeTempPDF(data)
	if err != nil {
		return "", err
	}
	defer cleanup()

	pdfCtx, err := api.ReadContextFile(tempFile)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF context: %w", err)
	}
	pageCount := pdfCtx.PageCount

	outDir := filepath.Join(e.tempDir, "pages_"+uuid.New().String())
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create extraction directory: %w", err)
	}
	defer os.RemoveAll(outDir)

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractContentFile(tempFile, outDir, nil, conf); err != nil {
		return "", fmt.Errorf("failed to extract PDF content: %w", err)
	}

	pageTexts := make(map[int]string)
	files, _ := os.ReadDir(outDir)
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		content, err := os.ReadFile(filepath.Join(outDir, file.Name()))
		if err != nil {
			continue
		}
		var pageNum int
		if _, err := fmt.Sscanf(file.Name(), "page_%d", &pageNum); err == nil {
			pageTexts[pageNum] = string(content)
		} else if _, err := fmt.Sscanf(file.Name(), "Content_page_%d", &pageNum); err == nil {
			pageTexts[pageNum] = string(content)
		}
	}

	var builder strings.Builder
	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		text := pageTexts[pageNum]
		if text == "" {
			continue
		}
		if builder.Len() > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(text)
	}

	e.logger.Debug().
		Int("pages", pageCount).
		Int("text_len", builder.Len()).
		Msg("Extracted PDF text")

	return builder.String(), nil
}

// PageCount reports the number of pages without extracting text.
func (e *PDFExtractor) PageCount(ctx context.Context, data []byte) (int, error) {
	tempFile, cleanup, err := e.writeTempPDF(data)
	if err != nil {
		return 0, err
	}
	defer cleanup()

	pdfCtx, err := api.ReadContextFile(tempFile)
	if err != nil {
		return 0, fmt.Errorf("failed to read PDF context: %w", err)
	}
	return pdfCtx.PageCount, nil
}

// writeTempPDF stores the bytes in a temp file for pdfcpu, which operates
// on file paths.
func (e *PDFExtractor) writeTempPDF(data []byte) (string, func(), error) {
	tempFile := filepath.Join(e.tempDir, "extract_"+uuid.New().String()+".pdf")
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return "", nil, fmt.Errorf("failed to write temp PDF file: %w", err)
	}
	return tempFile, func() { os.Remove(tempFile) }, nil
}
