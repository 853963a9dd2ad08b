package llm

import "strings"

// splitChunks splits text into chunks of at most budget characters, cutting
// on paragraph boundaries. A single paragraph larger than the budget is split
// on line boundaries, and as a last resort mid-line.
func splitChunks(text string, budget int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len([]rune(text)) <= budget {
		return []string{text}
	}

	var chunks []string
	var cur strings.Builder
	curLen := 0

	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			chunks = append(chunks, s)
		}
		cur.Reset()
		curLen = 0
	}

	for _, para := range strings.Split(text, "\n\n") {
		pLen := len([]rune(para))
		if curLen > 0 && curLen+pLen+2 > budget {
			flush()
		}
		if pLen > budget {
			for _, piece := range splitOversized(para, budget) {
				flush()
				chunks = append(chunks, piece)
			}
			continue
		}
		if curLen > 0 {
			cur.WriteString("\n\n")
			curLen += 2
		}
		cur.WriteString(para)
		curLen += pLen
	}
	flush()
	return chunks
}

// splitOversized splits one oversized paragraph on line boundaries, hard-
// splitting any single line longer than the budget.
func splitOversized(para string, budget int) []string {
	var out []string
	var cur strings.Builder
	curLen := 0

	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			out = append(out, s)
		}
		cur.Reset()
		curLen = 0
	}

	for _, line := range strings.Split(para, "\n") {
		runes := []rune(line)
		for len(runes) > budget {
			flush()
			out = append(out, string(runes[:budget]))
			runes = runes[budget:]
		}
		lLen := len(runes)
		if curLen > 0 && curLen+lLen+1 > budget {
			flush()
		}
		if curLen > 0 {
			cur.WriteByte('\n')
			curLen++
		}
		cur.WriteString(string(runes))
		curLen += lLen
	}
	flush()
	return out
}
