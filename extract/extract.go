// CLAUDE:SUMMARY Extraction engine dispatching by format (pdf, docx, odt, md, txt).
// Package extract pulls plain text out of document files.
//
// Supported formats:
//   - .pdf   — PDF content streams (pdfcpu), with extraction quality metrics
//   - .docx  — Microsoft Word (archive/zip → word/document.xml)
//   - .odt   — OpenDocument Text (archive/zip → content.xml)
//   - .md    — Markdown (ATX heading markers stripped, line structure kept)
//   - .txt   — Plain text (line endings normalized)
//
// Output text keeps its line breaks: the structure inference stage scores
// individual lines, so whitespace is normalized within lines only.
//
// Usage:
//
//	ex := extract.New(extract.Config{})
//	doc, err := ex.Extract(ctx, "/path/to/course.pdf")
//	fmt.Println(doc.Title, len(doc.Text))
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config configures the extraction engine.
type Config struct {
	// MaxFileSize is the maximum file size to process (default: 100 MB).
	MaxFileSize int64 `json:"max_file_size" yaml:"max_file_size"`

	// Logger for debug/error messages.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = 100 * 1024 * 1024
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Extractor converts document files into plain text.
type Extractor struct {
	cfg    Config
	logger *slog.Logger
}

// New creates an Extractor with the given configuration.
func New(cfg Config) *Extractor {
	cfg.defaults()
	return &Extractor{cfg: cfg, logger: cfg.Logger}
}

// Detect returns the document format based on file extension.
func (e *Extractor) Detect(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDocx, nil
	case ".odt":
		return FormatODT, nil
	case ".md", ".markdown":
		return FormatMD, nil
	case ".txt", ".text":
		return FormatTXT, nil
	default:
		return "", fmt.Errorf("unsupported format: %q", ext)
	}
}

// Extract parses a document file and returns its text.
func (e *Extractor) Extract(ctx context.Context, path string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > e.cfg.MaxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max %d)", info.Size(), e.cfg.MaxFileSize)
	}

	format, err := e.Detect(path)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("extracting document", "path", path, "format", format)

	var title, text string
	var quality *Quality

	switch format {
	case FormatPDF:
		title, text, quality, err = extractPDF(path)
	case FormatDocx:
		title, text, err = extractDocx(path)
	case FormatODT:
		title, text, err = extractODT(path)
	case FormatMD:
		title, text, err = extractMarkdown(path)
	case FormatTXT:
		title, text, err = extractText(path)
	default:
		return nil, fmt.Errorf("no parser for format: %s", format)
	}

	if err != nil {
		return nil, fmt.Errorf("extract %s (%s): %w", path, format, err)
	}

	return &Document{
		Path:    path,
		Format:  format,
		Title:   title,
		Text:    text,
		Quality: quality,
	}, nil
}

// SupportedFormats returns all supported format extensions.
func SupportedFormats() []string {
	return []string{"pdf", "docx", "odt", "md", "txt"}
}
