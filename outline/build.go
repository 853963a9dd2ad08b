// CLAUDE:SUMMARY Section builder — single pass over lines with a level-based ancestor stack.
package outline

import "strings"

// buildSections partitions the text into a tree of sections using the
// confirmed header index. The ancestor stack is the only mutable state:
// it holds the currently open sections ordered shallowest to deepest.
func (e *Engine) buildSections(lines []string, headers map[int]header) []*Section {
	var (
		sections []*Section
		stack    []*Section
		bodies   = make(map[string]*strings.Builder)
		preamble strings.Builder
	)

	for i, raw := range lines {
		h, isHeader := headers[i]
		if !isHeader {
			// Body line: append to the deepest open section, or to the
			// orphan preamble when no section is open yet.
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				bodies[top.ID].WriteString(raw)
				bodies[top.ID].WriteByte('\n')
			} else {
				preamble.WriteString(raw)
				preamble.WriteByte('\n')
			}
			continue
		}

		sec := &Section{
			ID:    e.newID(),
			Title: cleanTitle(raw),
			Level: h.level,
		}
		bodies[sec.ID] = &strings.Builder{}

		// Pop ancestors at or below this level; parent levels must be
		// strictly smaller than the child's.
		for len(stack) > 0 && stack[len(stack)-1].Level >= h.level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			sec.Parent = parent.ID
			parent.Children = append(parent.Children, sec.ID)
		}
		stack = append(stack, sec)
		sections = append(sections, sec)
	}

	for _, sec := range sections {
		sec.Content = strings.TrimSpace(bodies[sec.ID].String())
	}

	// Preamble text before the first heading gets its own section.
	if lead := strings.TrimSpace(preamble.String()); lead != "" {
		intro := &Section{
			ID:      e.newID(),
			Title:   "Introduction",
			Content: lead,
			Level:   1,
		}
		if len(sections) == 0 {
			// Degenerate fallback: no headers at all.
			intro.Title = "Document Content"
		}
		sections = append([]*Section{intro}, sections...)
	}

	return sections
}

// cleanTitle normalizes a header line into a human-readable title:
// whitespace collapsed, trailing punctuation stripped.
func cleanTitle(raw string) string {
	title := strings.Join(strings.Fields(raw), " ")
	title = strings.TrimRight(title, ":;,.- ")
	if title == "" {
		title = strings.TrimSpace(raw)
	}
	return title
}
