package extract

import (
	"os"
	"strings"
)

// extractText reads a plain text file. Line endings are normalized and
// intra-line whitespace collapsed; line breaks are kept.
func extractText(path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	text := normalizeLines(string(data))
	if text == "" {
		return "", "", nil
	}
	return firstLine(text), text, nil
}

// extractMarkdown reads a Markdown file. ATX heading markers are stripped so
// heading lines read as plain title lines; a blank line is forced around each
// heading to preserve the visual break the markers implied.
func extractMarkdown(path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}

	var out []string
	var title string
	for _, line := range strings.Split(normalizeLines(string(data)), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			heading := strings.TrimSpace(strings.TrimRight(strings.TrimLeft(trimmed, "#"), "#"))
			if heading == "" {
				continue
			}
			if title == "" {
				title = heading
			}
			if len(out) > 0 && out[len(out)-1] != "" {
				out = append(out, "")
			}
			out = append(out, heading, "")
			continue
		}
		out = append(out, trimmed)
	}

	text := strings.TrimSpace(strings.Join(out, "\n"))
	if text == "" {
		return "", "", nil
	}
	if title == "" {
		title = firstLine(text)
	}
	return title, text, nil
}

// normalizeLines converts CRLF/CR to LF and collapses whitespace within each
// line. Blank-line runs longer than two collapse to one blank line.
func normalizeLines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var out []string
	blanks := 0
	for _, line := range strings.Split(text, "\n") {
		cleaned := strings.Join(strings.Fields(line), " ")
		if cleaned == "" {
			blanks++
			if blanks > 2 || len(out) == 0 {
				continue
			}
			out = append(out, "")
			continue
		}
		blanks = 0
		out = append(out, cleaned)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// firstLine returns the first non-empty line, capped at 200 bytes.
func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) > 200 {
			line = line[:200]
		}
		return line
	}
	return ""
}
