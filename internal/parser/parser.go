package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for file extensions no parser handles.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrCorruptDocument is returned when a document of a supported format
	// cannot be decoded.
	ErrCorruptDocument = errors.New("corrupt document")
)

// Parser extracts plain text from a document in one concrete format.
// The returned text is raw decoder output; callers run it through
// Normalize before segmentation.
type Parser interface {
	Extract(r io.Reader, filename string) (string, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForExtension returns the parser for a declared format, given as a file
// extension with the leading dot. pdfFallback enables the pdftotext
// subprocess fallback for PDF inputs.
func ForExtension(ext string, pdfFallback bool) (Parser, error) {
	switch strings.ToLower(ext) {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: pdfFallback}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, pdfFallback bool) (Parser, error) {
	return ForExtension(filepath.Ext(filename), pdfFallback)
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
