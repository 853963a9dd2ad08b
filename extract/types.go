// CLAUDE:SUMMARY Defines Format, Document, and Quality types for the extraction layer.
package extract

// Format identifies a document type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDocx Format = "docx"
	FormatODT  Format = "odt"
	FormatMD   Format = "md"
	FormatTXT  Format = "txt"
)

// Document is the result of extracting a file. Text is newline-delimited:
// line structure is preserved so downstream heading detection can use it.
type Document struct {
	Path    string   `json:"path"`
	Format  Format   `json:"format"`
	Title   string   `json:"title"`
	Text    string   `json:"text"`
	Quality *Quality `json:"quality,omitempty"` // PDF extraction metrics
}
