package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"
)

type Options struct {
	// PaperSize is passed to fpdf, e.g. A4 or Letter
	PaperSize string
	Dark      bool
}

// ConvertMarkdownToPDF writes a PDF next to a markdown lesson plan and
// returns the absolute path of the PDF.
func ConvertMarkdownToPDF(markdownPath string, options Options) (string, error) {
	if !strings.HasSuffix(markdownPath, ".md") {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}

	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}

	paperSize := options.PaperSize
	if paperSize == "" {
		paperSize = "A4"
	}
	theme := mdtopdf.LIGHT
	if options.Dark {
		theme = mdtopdf.DARK
	}

	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"
	renderer := mdtopdf.NewPdfRenderer("P", paperSize, pdfPath, "", nil, theme)
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}
