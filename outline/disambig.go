// CLAUDE:SUMMARY Header disambiguator — frequency boost, adjacency suppression, re-filter.
package outline

import (
	"regexp"
	"strings"
)

// header is a confirmed heading at a line index.
type header struct {
	score int
	level int
}

var wordRe = regexp.MustCompile(`[\p{L}\p{N}]+`)

// confirmHeaders resolves ties and adjacency conflicts among candidates and
// returns the final header index keyed by line position. Keying by position
// keeps document order the tie-breaker, not score rank.
func (e *Engine) confirmHeaders(candidates []candidate) map[int]header {
	if len(candidates) == 0 {
		return map[int]header{}
	}

	// Word-frequency table over all candidate lines (words longer than
	// 3 characters). Vocabulary that recurs across headings — consistent
	// chapter naming, repeated keywords — boosts every line using it.
	freq := make(map[string]int)
	for _, c := range candidates {
		for w := range candidateWords(c.text) {
			freq[w]++
		}
	}

	scores := make([]int, len(candidates))
	for i, c := range candidates {
		scores[i] = c.score
		for w := range candidateWords(c.text) {
			if n := freq[w]; n >= 2 {
				if n > e.w.FrequencyCap {
					n = e.w.FrequencyCap
				}
				scores[i] += n
			}
		}
	}

	// Adjacency suppression: a heading and its sub-caption one or two
	// lines apart at near-equal levels must not both be promoted.
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			gap := candidates[j].line - candidates[i].line
			if gap > 2 {
				break
			}
			levelGap := candidates[j].level - candidates[i].level
			if levelGap < 0 {
				levelGap = -levelGap
			}
			if levelGap > 1 {
				continue
			}
			if scores[i] < scores[j] {
				scores[i] -= e.w.AdjacencyPenalty
			} else {
				scores[j] -= e.w.AdjacencyPenalty
			}
		}
	}

	out := make(map[int]header)
	for i, c := range candidates {
		if scores[i] > e.w.MinScore {
			out[c.line] = header{score: scores[i], level: c.level}
		}
	}
	return out
}

// candidateWords returns the set of lowercased words longer than 3 characters.
func candidateWords(text string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if len([]rune(w)) > 3 {
			out[w] = struct{}{}
		}
	}
	return out
}
