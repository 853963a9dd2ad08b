// CLAUDE:SUMMARY Line scorer — per-line heading likelihood score and nesting level guess.
// CLAUDE:EXPORTS (none — internal stage of the outline pipeline)
package outline

import (
	"regexp"
	"strings"
	"unicode"
)

// candidate is a line provisionally identified as a possible section title.
type candidate struct {
	line  int // index into the original line slice
	text  string
	score int
	level int
}

var (
	chapterRe = regexp.MustCompile(`(?i)^(chapter|unit|part|section|module|lesson)\s+(\d+|[ivxlcdm]+)\b\s*[:.\-]?\s*(.*)$`)

	// Outline numbering: "1 Title", "1.2 Title", "1.2.3 Title".
	numberedRe = regexp.MustCompile(`^(\d+(?:\.\d+)*)[.):]?\s+(\S.*)$`)

	keywordRe = regexp.MustCompile(`(?i)^(table of contents|introduction|conclusion|abstract|summary|appendix|glossary|references|bibliography|index|acknowledgements|preface|foreword|overview|discussion|results|methodology|findings|analysis|review)\b[:.\-]?\s*(.*)$`)

	// Roman numerals need trailing punctuation when a title follows,
	// otherwise "I went home" would qualify.
	romanBareRe  = regexp.MustCompile(`^[IVXLCDM]{1,7}$`)
	romanTitleRe = regexp.MustCompile(`^[IVXLCDM]{1,7}[.)]\s+\S.*$`)

	letterRe = regexp.MustCompile(`^[A-Z][.)]\s+\S.*$`)

	pageNumRe = regexp.MustCompile(`(?i)^(page\s+\d+|\d+)$`)
	dividerRe = regexp.MustCompile(`^[-=_*~.\s]{3,}$`)

	// Lowercase clause continuation, e.g. "word, another" — body text signal.
	midSentRe = regexp.MustCompile(`[a-z][,;]\s+[a-z]`)
)

// scoreLines assigns a heading likelihood score and a nesting level guess to
// every non-empty line. Only candidates above the MinScore threshold are
// retained; no other filtering happens here.
func (e *Engine) scoreLines(lines []string) []candidate {
	var out []candidate
	for i, raw := range lines {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		score, level := e.scoreLine(text, i, lines)
		if score > e.w.MinScore {
			out = append(out, candidate{line: i, text: text, score: score, level: level})
		}
	}
	return out
}

// scoreLine accumulates signed contributions for one trimmed line.
// A bare page number or purely numeric line is vetoed outright.
func (e *Engine) scoreLine(text string, idx int, lines []string) (int, int) {
	if pageNumRe.MatchString(text) {
		return e.w.PageNumberScore, 0
	}

	score := 0
	level := 1
	length := len([]rune(text))

	// Length heuristic: headings are short.
	switch {
	case length < 30:
		score += e.w.ShortLineBonus
	case length < 60:
		score += e.w.MediumLineBonus
	case length < 100:
		score += e.w.LongishLineBonus
	}
	switch {
	case length > 200:
		score += e.w.VeryLongPenalty
	case length > 150:
		score += e.w.LongLinePenalty
	}

	// Structural patterns. Matches are not mutually exclusive; a later
	// match overwrites the level guess of an earlier one.
	numbered := false
	if m := chapterRe.FindStringSubmatch(text); m != nil {
		score += e.w.ChapterScore
		level = 1
		numbered = true
		if strings.TrimSpace(m[3]) != "" {
			score += e.w.ChapterTitleBonus
		}
	}
	if m := numberedRe.FindStringSubmatch(text); m != nil {
		score += e.w.NumberedScore
		level = strings.Count(m[1], ".") + 1
		numbered = true
		if remainder := strings.TrimSpace(m[2]); remainder != "" && len([]rune(remainder)) < 60 {
			score += e.w.NumberedTitleBonus
		}
	}
	if m := keywordRe.FindStringSubmatch(text); m != nil {
		score += e.w.KeywordScore
		level = 1
		if strings.TrimSpace(m[2]) != "" {
			score += e.w.KeywordTailBonus
		}
	}
	if romanBareRe.MatchString(text) || romanTitleRe.MatchString(text) {
		score += e.w.RomanScore
		level = 1
		numbered = true
	}
	if letterRe.MatchString(text) {
		score += e.w.LetterScore
		level = 2
	}
	if isAllCaps(text) && length < 60 {
		score += e.w.AllCapsScore
		level = 1
	} else if startsUpper(text) && !midSentRe.MatchString(text) && !endsSentence(text) {
		score += e.w.CapitalizedScore
	}

	// Contextual boosts from surrounding lines.
	if idx > 0 && strings.TrimSpace(lines[idx-1]) == "" {
		score += e.w.BlankBeforeBonus
	}
	if idx+1 < len(lines) && strings.TrimSpace(lines[idx+1]) == "" {
		score += e.w.BlankAfterBonus
	}
	if idx > 0 {
		prev := strings.TrimSpace(lines[idx-1])
		if prev != "" && (dividerRe.MatchString(prev) || pageNumRe.MatchString(prev)) {
			score += e.w.DividerBonus
		}
	}
	if idx >= 2 && strings.TrimSpace(lines[idx-1]) == "" && strings.TrimSpace(lines[idx-2]) == "" {
		score += e.w.DoubleBlankBonus
	}
	if strings.Contains(text, ":") && length < 60 {
		score += e.w.ColonBonus
	}

	// Body-text penalties.
	if startsLower(text) && !numbered {
		score += e.w.LowercasePenalty
	}
	if length > 100 && midSentRe.MatchString(text) {
		score += e.w.MidSentencePenalty
	}
	if strings.HasSuffix(text, ".") && length > 100 && !numbered {
		score += e.w.TrailingDotPenalty
	}

	return score, level
}

func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

// endsSentence reports whether a line closes with sentence-final
// punctuation — running prose, not a heading.
func endsSentence(s string) bool {
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?")
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func startsLower(s string) bool {
	for _, r := range s {
		return unicode.IsLower(r)
	}
	return false
}
