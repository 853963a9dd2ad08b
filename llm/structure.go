// CLAUDE:SUMMARY Model-backed document structuring — chunking, cross-chunk stitching, heuristic fallback.
// CLAUDE:DEPENDS llm/llm.go, llm/chunk.go, outline/
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/hazyhaar/docquiz/idgen"
	"github.com/hazyhaar/docquiz/outline"
)

const structureSystem = `You segment documents into a section outline.
Given one chunk of a larger document, return its sections in reading order.
Each section has a short title, a nesting level (1 = top), and the verbatim
body text belonging to it. Text before the first heading of the first chunk
is one section titled "Introduction". A chunk may open mid-section; emit
that text as the first section with its best-guess level.`

// structurePayload is the tool-call argument shape the model must produce.
type structurePayload struct {
	Sections []struct {
		Title   string `json:"title"`
		Level   int    `json:"level"`
		Content string `json:"content"`
	} `json:"sections"`
}

var structureSchema = &jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"sections": {
			Type: jsonschema.Array,
			Items: &jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"title":   {Type: jsonschema.String, Description: "short section title"},
					"level":   {Type: jsonschema.Integer, Description: "nesting depth, 1 is top level"},
					"content": {Type: jsonschema.String, Description: "verbatim body text of the section"},
				},
				Required: []string{"title", "level", "content"},
			},
		},
	},
	Required: []string{"sections"},
}

// StructurerConfig configures a Structurer.
type StructurerConfig struct {
	// Completer issues the model calls. Required for the model strategy;
	// when nil every Structure call uses the heuristic engine.
	Completer Completer

	// ChunkChars is the per-request character budget (default: 12000).
	ChunkChars int `json:"chunk_chars" yaml:"chunk_chars"`

	// NewID mints section ids (default: idgen.Default).
	NewID idgen.Generator `json:"-" yaml:"-"`

	// Fallback analyzes the text when the model path fails. Defaults to an
	// outline.Engine sharing NewID.
	Fallback *outline.Engine `json:"-" yaml:"-"`

	// Logger for debug/error messages.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *StructurerConfig) defaults() {
	if c.ChunkChars <= 0 {
		c.ChunkChars = 12000
	}
	if c.NewID == nil {
		c.NewID = idgen.Default
	}
	if c.Fallback == nil {
		c.Fallback = outline.New(outline.Config{NewID: c.NewID})
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Structurer infers document structure with a model, falling back to the
// heuristic engine when the model path fails.
type Structurer struct {
	cfg    StructurerConfig
	logger *slog.Logger
}

// NewStructurer creates a Structurer.
func NewStructurer(cfg StructurerConfig) *Structurer {
	cfg.defaults()
	return &Structurer{cfg: cfg, logger: cfg.Logger}
}

// Structure segments text into sections. The returned bool reports whether
// the heuristic fallback produced the result. Only context cancellation is
// returned as an error; every model-side failure degrades to the fallback.
func (s *Structurer) Structure(ctx context.Context, text string) ([]outline.Section, bool, error) {
	if s.cfg.Completer == nil {
		return s.cfg.Fallback.Analyze(text), true, nil
	}

	sections, err := s.structureWithModel(ctx, text)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		s.logger.Warn("model structuring failed, using heuristic fallback", "error", err)
		return s.cfg.Fallback.Analyze(text), true, nil
	}
	if len(sections) == 0 {
		return s.cfg.Fallback.Analyze(text), true, nil
	}
	return sections, false, nil
}

// structureWithModel runs the chunked model pipeline. Chunks are processed
// sequentially; an ancestor stack carried across chunk boundaries lets a
// section opened in one chunk adopt children from the next.
func (s *Structurer) structureWithModel(ctx context.Context, text string) ([]outline.Section, error) {
	chunks := splitChunks(text, s.cfg.ChunkChars)
	if len(chunks) == 0 {
		return nil, nil
	}

	var ordered []*outline.Section
	byID := make(map[string]*outline.Section)
	var stack []*outline.Section

	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		user := fmt.Sprintf(`{"chunk_index":%d,"is_first_chunk":%t,"is_last_chunk":%t}`+"\n\n%s",
			i, i == 0, i == len(chunks)-1, chunk)

		raw, err := s.cfg.Completer.Complete(ctx, Request{
			System: structureSystem,
			User:   user,
			Tool:   "report_sections",
			Schema: structureSchema,
		})
		if err != nil {
			return nil, fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}

		var payload structurePayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, fmt.Errorf("chunk %d/%d: malformed payload: %w", i+1, len(chunks), err)
		}

		for _, ms := range payload.Sections {
			if ms.Title == "" {
				return nil, fmt.Errorf("chunk %d/%d: section with empty title", i+1, len(chunks))
			}
			level := ms.Level
			if level < 1 {
				level = 1
			}
			if level > 6 {
				level = 6
			}

			sec := &outline.Section{
				ID:      s.cfg.NewID(),
				Title:   ms.Title,
				Content: ms.Content,
				Level:   level,
			}

			for len(stack) > 0 && stack[len(stack)-1].Level >= level {
				stack = stack[:len(stack)-1]
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				sec.Parent = parent.ID
				parent.Children = append(parent.Children, sec.ID)
			}
			stack = append(stack, sec)
			ordered = append(ordered, sec)
			byID[sec.ID] = sec
		}

		s.logger.Debug("chunk structured", "chunk", i+1, "chunks", len(chunks), "sections", len(ordered))
	}

	out := make([]outline.Section, 0, len(ordered))
	for _, sec := range ordered {
		out = append(out, *sec)
	}
	return out, nil
}
