package extract

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDetect(t *testing.T) {
	ex := New(Config{})

	tests := []struct {
		path   string
		format Format
	}{
		{"doc.pdf", FormatPDF},
		{"doc.docx", FormatDocx},
		{"doc.odt", FormatODT},
		{"doc.md", FormatMD},
		{"doc.markdown", FormatMD},
		{"doc.txt", FormatTXT},
		{"doc.text", FormatTXT},
	}

	for _, tt := range tests {
		f, err := ex.Detect(tt.path)
		if err != nil {
			t.Errorf("Detect(%q): %v", tt.path, err)
			continue
		}
		if f != tt.format {
			t.Errorf("Detect(%q) = %q, want %q", tt.path, f, tt.format)
		}
	}

	// Unsupported format.
	if _, err := ex.Detect("file.xyz"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestExtractText(t *testing.T) {
	// WHAT: Plain text keeps its line breaks; intra-line whitespace collapses.
	dir := t.TempDir()
	path := filepath.Join(dir, "test.txt")
	os.WriteFile(path, []byte("Course  Notes\r\n\r\nFirst   line of body.\nSecond line.\n"), 0644)

	ex := New(Config{})
	doc, err := ex.Extract(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Format != FormatTXT {
		t.Fatalf("expected txt format, got %s", doc.Format)
	}
	if doc.Title != "Course Notes" {
		t.Fatalf("title = %q, want %q", doc.Title, "Course Notes")
	}
	want := "Course Notes\n\nFirst line of body.\nSecond line."
	if doc.Text != want {
		t.Fatalf("text = %q, want %q", doc.Text, want)
	}
}

func TestExtractMarkdown(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.md")
	content := `# My Title

This is a paragraph.

## Section Two

Another paragraph here.
`
	os.WriteFile(path, []byte(content), 0644)

	ex := New(Config{})
	doc, err := ex.Extract(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Title != "My Title" {
		t.Fatalf("expected title 'My Title', got %q", doc.Title)
	}
	if doc.Format != FormatMD {
		t.Fatalf("expected md format, got %s", doc.Format)
	}

	// Heading markers are stripped, heading text stays on its own line.
	if strings.Contains(doc.Text, "#") {
		t.Fatalf("heading markers survived: %q", doc.Text)
	}
	lines := strings.Split(doc.Text, "\n")
	found := false
	for _, line := range lines {
		if line == "Section Two" {
			found = true
		}
	}
	if !found {
		t.Fatalf("heading not on its own line: %q", doc.Text)
	}
	if !strings.Contains(doc.Text, "Another paragraph here.") {
		t.Fatalf("body text lost: %q", doc.Text)
	}
}

func TestExtractDocx(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.docx")

	// Minimal .docx: a ZIP with word/document.xml.
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(f)

	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Test Title</w:t></w:r></w:p>
<w:p><w:r><w:t>This is body text.</w:t></w:r></w:p>
<w:p><w:pPr><w:pStyle w:val="Heading2"/></w:pPr><w:r><w:t>Section Two</w:t></w:r></w:p>
<w:p><w:r><w:t>More content here.</w:t></w:r></w:p>
</w:body>
</w:document>`

	fw, _ := w.Create("word/document.xml")
	fw.Write([]byte(docXML))
	w.Close()
	f.Close()

	ex := New(Config{})
	doc, err := ex.Extract(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}

	if doc.Title != "Test Title" {
		t.Fatalf("expected title 'Test Title', got %q", doc.Title)
	}
	// Headings get a blank line after them.
	if !strings.Contains(doc.Text, "Section Two\n\nMore content here.") {
		t.Fatalf("heading separation missing: %q", doc.Text)
	}
	if !strings.Contains(doc.Text, "This is body text.") {
		t.Fatalf("body text lost: %q", doc.Text)
	}
}

func TestExtractODT(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.odt")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(f)

	contentXML := `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"
  xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0">
<office:body>
<office:text>
<text:h text:outline-level="1">ODT Title</text:h>
<text:p>First paragraph.</text:p>
<text:h text:outline-level="2">Sub Heading</text:h>
<text:p>Second paragraph.</text:p>
</office:text>
</office:body>
</office:document-content>`

	fw, _ := w.Create("content.xml")
	fw.Write([]byte(contentXML))
	w.Close()
	f.Close()

	ex := New(Config{})
	doc, err := ex.Extract(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}

	if doc.Title != "ODT Title" {
		t.Fatalf("expected title 'ODT Title', got %q", doc.Title)
	}
	if !strings.Contains(doc.Text, "Sub Heading\n\nSecond paragraph.") {
		t.Fatalf("heading separation missing: %q", doc.Text)
	}
}

func TestExtractFileTooLarge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.txt")
	os.WriteFile(path, []byte(strings.Repeat("x", 100)), 0644)

	ex := New(Config{MaxFileSize: 10})
	if _, err := ex.Extract(context.Background(), path); err == nil {
		t.Fatal("expected size limit error")
	}
}

func TestExtractCancelled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.txt")
	os.WriteFile(path, []byte("content"), 0644)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ex := New(Config{})
	if _, err := ex.Extract(ctx, path); err == nil {
		t.Fatal("expected context error")
	}
}

func TestSupportedFormats(t *testing.T) {
	formats := SupportedFormats()
	if len(formats) != 5 {
		t.Fatalf("expected 5 formats, got %d: %v", len(formats), formats)
	}
}

func TestCleanPDFTextKeepsLines(t *testing.T) {
	// WHAT: Within-line whitespace collapses but the line structure survives,
	// and blank-line runs shrink to a single blank line.
	in := "Title   Line\n\n\n\nBody  text   here\nnext line"
	want := "Title Line\n\nBody text here\nnext line"
	if got := cleanPDFText(in); got != want {
		t.Fatalf("cleanPDFText = %q, want %q", got, want)
	}
}

func TestExtractTextFromStream(t *testing.T) {
	stream := []byte("BT\n/F1 12 Tf\n72 720 Td\n(Chapter 1) Tj\nT*\n(Opening text.) Tj\nET\n")
	got := extractTextFromStream(stream)
	if !strings.Contains(got, "Chapter 1") {
		t.Fatalf("Tj text missing: %q", got)
	}
	if !strings.Contains(got, "Opening text.") {
		t.Fatalf("second line missing: %q", got)
	}
	// T* broke the line between the two strings.
	if !strings.Contains(got, "Chapter 1\nOpening text.") {
		t.Fatalf("line break missing: %q", got)
	}
}

func TestDecodePDFString(t *testing.T) {
	tests := []struct{ in, want string }{
		{`plain`, "plain"},
		{`with \( escape \)`, "with ( escape )"},
		{`octal\040space`, "octal space"},
		{`tab\there`, "tab\there"},
	}
	for _, tt := range tests {
		if got := decodePDFString([]byte(tt.in)); got != tt.want {
			t.Errorf("decodePDFString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
