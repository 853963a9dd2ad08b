// CLAUDE:SUMMARY Word and OpenDocument extractors — ZIP archive + streaming XML parse.
package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// extractDocx parses a .docx file by reading word/document.xml from the ZIP
// archive. Each paragraph becomes one line; styled headings get a surrounding
// blank line so the break survives into the flat text.
func extractDocx(path string) (string, string, error) {
	rc, err := openZipEntry(path, "word/document.xml")
	if err != nil {
		return "", "", err
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var out []string
	var title string
	var currentText strings.Builder
	var inParagraph bool
	var paragraphStyle string

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Local == "p":
				inParagraph = true
				currentText.Reset()
				paragraphStyle = ""
			case t.Name.Local == "pStyle" && inParagraph:
				for _, attr := range t.Attr {
					if attr.Name.Local == "val" {
						paragraphStyle = attr.Value
					}
				}
			}

		case xml.CharData:
			if inParagraph {
				currentText.Write(t)
			}

		case xml.EndElement:
			if t.Name.Local == "p" && inParagraph {
				inParagraph = false
				text := strings.TrimSpace(currentText.String())
				if text == "" {
					continue
				}
				if docxHeadingLevel(paragraphStyle) > 0 {
					if title == "" {
						title = text
					}
					out = appendHeadingLine(out, text)
				} else {
					out = append(out, text)
				}
			}
		}
	}

	return title, strings.TrimSpace(strings.Join(out, "\n")), nil
}

// docxHeadingLevel extracts the heading level from a paragraph style name.
// e.g. "Heading1" → 1, "Heading2" → 2, "Title" → 1, etc.
func docxHeadingLevel(style string) int {
	lower := strings.ToLower(style)

	if lower == "title" {
		return 1
	}
	if lower == "subtitle" {
		return 2
	}

	// "Heading1", "heading1", "Titre1", etc.
	for _, prefix := range []string{"heading", "titre", "überschrift"} {
		if strings.HasPrefix(lower, prefix) {
			rest := lower[len(prefix):]
			if len(rest) == 1 && rest[0] >= '1' && rest[0] <= '6' {
				return int(rest[0] - '0')
			}
		}
	}
	return 0
}

// extractODT parses an .odt file by reading content.xml from the ZIP archive.
func extractODT(path string) (string, string, error) {
	rc, err := openZipEntry(path, "content.xml")
	if err != nil {
		return "", "", err
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var out []string
	var title string
	var currentText strings.Builder
	var inHeading bool
	var inParagraph bool

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "h": // <text:h>
				inHeading = true
				currentText.Reset()
			case "p": // <text:p>
				inParagraph = true
				currentText.Reset()
			}

		case xml.CharData:
			if inHeading || inParagraph {
				currentText.Write(t)
			}

		case xml.EndElement:
			switch {
			case t.Name.Local == "h" && inHeading:
				inHeading = false
				text := strings.TrimSpace(currentText.String())
				if text == "" {
					continue
				}
				if title == "" {
					title = text
				}
				out = appendHeadingLine(out, text)

			case t.Name.Local == "p" && inParagraph:
				inParagraph = false
				text := strings.TrimSpace(currentText.String())
				if text == "" {
					continue
				}
				out = append(out, text)
			}
		}
	}

	return title, strings.TrimSpace(strings.Join(out, "\n")), nil
}

// openZipEntry opens a named file inside a ZIP archive. Closing the returned
// reader also closes the archive.
func openZipEntry(path, name string) (io.ReadCloser, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				r.Close()
				return nil, fmt.Errorf("open %s: %w", name, err)
			}
			return &zipEntryReader{rc: rc, zr: r}, nil
		}
	}
	r.Close()
	return nil, fmt.Errorf("%s not found in archive", name)
}

// zipEntryReader closes both the entry and its parent archive.
type zipEntryReader struct {
	rc io.ReadCloser
	zr *zip.ReadCloser
}

func (z *zipEntryReader) Read(p []byte) (int, error) { return z.rc.Read(p) }

func (z *zipEntryReader) Close() error {
	err := z.rc.Close()
	if cerr := z.zr.Close(); err == nil {
		err = cerr
	}
	return err
}

// appendHeadingLine appends a heading with a blank line before and after.
func appendHeadingLine(out []string, text string) []string {
	if len(out) > 0 && out[len(out)-1] != "" {
		out = append(out, "")
	}
	return append(out, text, "")
}
