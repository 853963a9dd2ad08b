// CLAUDE:SUMMARY Configuration and tuning weights for the outline inference engine.
package outline

import (
	"log/slog"

	"github.com/hazyhaar/docquiz/idgen"
)

// Weights holds every tuning constant of the heuristic pipeline.
// The values are empirical, not protocol guarantees — tests probe
// boundary behaviour by overriding individual fields.
type Weights struct {
	// Length heuristic (rune counts). Headings are assumed short.
	ShortLineBonus   int `yaml:"short_line_bonus"`   // lines under 30 runes
	MediumLineBonus  int `yaml:"medium_line_bonus"`  // under 60
	LongishLineBonus int `yaml:"longish_line_bonus"` // under 100
	LongLinePenalty  int `yaml:"long_line_penalty"`  // over 150 (negative)
	VeryLongPenalty  int `yaml:"very_long_penalty"`  // over 200 (negative)

	// Structural pattern scores.
	ChapterScore       int `yaml:"chapter_score"`        // "Chapter/Unit/Part/Section/Module/Lesson N"
	ChapterTitleBonus  int `yaml:"chapter_title_bonus"`  // extra when a title remainder is present
	NumberedScore      int `yaml:"numbered_score"`       // "1.2.3 Title" outline numbering
	NumberedTitleBonus int `yaml:"numbered_title_bonus"` // extra when a short title remainder follows
	KeywordScore       int `yaml:"keyword_score"`        // "Introduction", "Appendix", ...
	KeywordTailBonus   int `yaml:"keyword_tail_bonus"`   // extra when followed by descriptive text
	RomanScore         int `yaml:"roman_score"`          // "IV. Title"
	LetterScore        int `yaml:"letter_score"`         // "A. Title"
	AllCapsScore       int `yaml:"all_caps_score"`       // short all-caps line
	CapitalizedScore   int `yaml:"capitalized_score"`    // capitalized line not mid-sentence

	// Contextual boosts.
	BlankBeforeBonus int `yaml:"blank_before_bonus"`
	BlankAfterBonus  int `yaml:"blank_after_bonus"`
	DividerBonus     int `yaml:"divider_bonus"`      // preceding line is a rule/divider or bare page number
	DoubleBlankBonus int `yaml:"double_blank_bonus"` // two consecutive blank lines above
	ColonBonus       int `yaml:"colon_bonus"`        // short line containing a colon

	// Penalties. PageNumberScore is a forced veto: it replaces the
	// accumulated score entirely so no boost can rescue the line.
	PageNumberScore    int `yaml:"page_number_score"`
	LowercasePenalty   int `yaml:"lowercase_penalty"`
	MidSentencePenalty int `yaml:"mid_sentence_penalty"`
	TrailingDotPenalty int `yaml:"trailing_dot_penalty"`

	// Disambiguation.
	FrequencyCap     int `yaml:"frequency_cap"`     // per-word cap on the repeated-vocabulary boost
	AdjacencyPenalty int `yaml:"adjacency_penalty"` // applied to the weaker of two adjacent candidates

	// Thresholds.
	MinScore      int `yaml:"min_score"`       // candidates must exceed this to survive each stage
	MinContentLen int `yaml:"min_content_len"` // sections at or under this with no children are pruned
}

// DefaultWeights returns the tuned production weights.
func DefaultWeights() Weights {
	return Weights{
		ShortLineBonus:   8,
		MediumLineBonus:  5,
		LongishLineBonus: 2,
		LongLinePenalty:  -5,
		VeryLongPenalty:  -8,

		ChapterScore:       15,
		ChapterTitleBonus:  5,
		NumberedScore:      12,
		NumberedTitleBonus: 3,
		KeywordScore:       10,
		KeywordTailBonus:   2,
		RomanScore:         8,
		LetterScore:        7,
		AllCapsScore:       8,
		CapitalizedScore:   4,

		BlankBeforeBonus: 3,
		BlankAfterBonus:  1,
		DividerBonus:     5,
		DoubleBlankBonus: 4,
		ColonBonus:       3,

		PageNumberScore:    -10,
		LowercasePenalty:   -5,
		MidSentencePenalty: -5,
		TrailingDotPenalty: -3,

		FrequencyCap:     3,
		AdjacencyPenalty: 5,

		MinScore:      6,
		MinContentLen: 20,
	}
}

// Config configures an Engine.
type Config struct {
	// Weights for the heuristic stages. Zero value means DefaultWeights.
	Weights *Weights

	// MaxInputBytes caps the text scanned in one pass (default: 10 MB).
	// Bounds worst-case latency on pathological inputs.
	MaxInputBytes int

	// NewID mints section identifiers (default: idgen.Default, UUIDv7).
	NewID idgen.Generator

	// Logger for debug messages.
	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Weights == nil {
		w := DefaultWeights()
		c.Weights = &w
	}
	if c.MaxInputBytes <= 0 {
		c.MaxInputBytes = 10 * 1024 * 1024
	}
	if c.NewID == nil {
		c.NewID = idgen.Default
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
