// CLAUDE:SUMMARY Defines the Section type emitted by the outline inference pipeline.
package outline

// Section is a contiguous span of document text with an inferred title,
// nesting level, and position in a parent/child hierarchy.
//
// Parent and Children carry identifiers only — the collection is flat and
// read-only once produced; tree walking is the consumer's concern.
type Section struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Level    int      `json:"level"`
	Parent   string   `json:"parent,omitempty"`
	Children []string `json:"children,omitempty"`
}
