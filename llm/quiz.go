// CLAUDE:SUMMARY Quiz generation — multiple-choice questions from one section's content.
// CLAUDE:DEPENDS llm/llm.go
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/sashabaranov/go-openai/jsonschema"
)

const quizSystem = `You write multiple-choice quiz questions testing
comprehension of the given course section. Each question has exactly four
options, one correct answer index (0-3), and a one-sentence explanation.
Questions must be answerable from the section text alone.`

// Question is one multiple-choice quiz item.
type Question struct {
	Question    string    `json:"question"`
	Options     [4]string `json:"options"`
	Answer      int       `json:"answer"` // index into Options
	Explanation string    `json:"explanation"`
}

// quizPayload is the tool-call argument shape the model must produce.
type quizPayload struct {
	Questions []struct {
		Question    string   `json:"question"`
		Options     []string `json:"options"`
		Answer      int      `json:"answer"`
		Explanation string   `json:"explanation"`
	} `json:"questions"`
}

var quizSchema = &jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"questions": {
			Type: jsonschema.Array,
			Items: &jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"question": {Type: jsonschema.String},
					"options": {
						Type:  jsonschema.Array,
						Items: &jsonschema.Definition{Type: jsonschema.String},
					},
					"answer":      {Type: jsonschema.Integer, Description: "index of the correct option, 0-3"},
					"explanation": {Type: jsonschema.String},
				},
				Required: []string{"question", "options", "answer", "explanation"},
			},
		},
	},
	Required: []string{"questions"},
}

// QuizConfig configures a QuizGenerator.
type QuizConfig struct {
	// Completer issues the model calls. Required.
	Completer Completer

	// ContentBudget truncates section content before prompting (default: 8000).
	ContentBudget int `json:"content_budget" yaml:"content_budget"`

	// MaxQuestions caps the questions kept per quiz (default: 5).
	MaxQuestions int `json:"max_questions" yaml:"max_questions"`

	// Logger for debug/error messages.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *QuizConfig) defaults() {
	if c.ContentBudget <= 0 {
		c.ContentBudget = 8000
	}
	if c.MaxQuestions <= 0 {
		c.MaxQuestions = 5
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// QuizGenerator produces quizzes from section content.
type QuizGenerator struct {
	cfg    QuizConfig
	logger *slog.Logger
}

// NewQuizGenerator creates a QuizGenerator.
func NewQuizGenerator(cfg QuizConfig) (*QuizGenerator, error) {
	cfg.defaults()
	if cfg.Completer == nil {
		return nil, fmt.Errorf("llm: quiz generator requires a completer")
	}
	return &QuizGenerator{cfg: cfg, logger: cfg.Logger}, nil
}

// Generate produces quiz questions for one section. Malformed model output
// is an error; the caller decides how to surface it.
func (g *QuizGenerator) Generate(ctx context.Context, title, content string) ([]Question, error) {
	runes := []rune(content)
	if len(runes) > g.cfg.ContentBudget {
		content = string(runes[:g.cfg.ContentBudget])
	}

	user := fmt.Sprintf("Section: %s\n\n%s", title, content)
	raw, err := g.cfg.Completer.Complete(ctx, Request{
		System: quizSystem,
		User:   user,
		Tool:   "report_questions",
		Schema: quizSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("quiz generation: %w", err)
	}

	var payload quizPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("quiz generation: malformed payload: %w", err)
	}
	if len(payload.Questions) == 0 {
		return nil, fmt.Errorf("quiz generation: no questions returned")
	}

	var out []Question
	for i, q := range payload.Questions {
		if len(out) >= g.cfg.MaxQuestions {
			break
		}
		if q.Question == "" {
			return nil, fmt.Errorf("quiz generation: question %d has no text", i)
		}
		if len(q.Options) != 4 {
			return nil, fmt.Errorf("quiz generation: question %d has %d options, want 4", i, len(q.Options))
		}
		if q.Answer < 0 || q.Answer > 3 {
			return nil, fmt.Errorf("quiz generation: question %d answer index %d out of range", i, q.Answer)
		}
		item := Question{
			Question:    q.Question,
			Answer:      q.Answer,
			Explanation: q.Explanation,
		}
		copy(item.Options[:], q.Options)
		out = append(out, item)
	}

	g.logger.Debug("quiz generated", "section", title, "questions", len(out))
	return out, nil
}
