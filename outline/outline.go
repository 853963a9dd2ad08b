// CLAUDE:SUMMARY Heuristic document structure inference — flat text in, ordered Section forest out.
// Package outline reconstructs a hierarchical section structure from a flat
// stream of extracted text, without any ground-truth markup.
//
// The pipeline is a pure function of its input:
//
//	raw text → line scorer → header disambiguator → section builder → post-processor
//
// Each stage is deterministic apart from ID generation; re-running on the
// same input yields sections with identical titles, levels, content, and
// relative ordering.
//
// Usage:
//
//	eng := outline.New(outline.Config{})
//	sections := eng.Analyze(text)
package outline

import (
	"log/slog"
	"strings"
)

// Engine runs the structure-inference pipeline. It holds no mutable state
// across invocations; Analyze is safe for concurrent use.
type Engine struct {
	w      Weights
	maxIn  int
	newID  func() string
	logger *slog.Logger
}

// New creates an Engine with the given configuration.
func New(cfg Config) *Engine {
	cfg.defaults()
	return &Engine{
		w:      *cfg.Weights,
		maxIn:  cfg.MaxInputBytes,
		newID:  cfg.NewID,
		logger: cfg.Logger,
	}
}

// Analyze infers the section structure of text. Empty or whitespace-only
// input yields an empty list, never an error. Text with no recognizable
// headings yields a single catch-all section.
func (e *Engine) Analyze(text string) []Section {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if len(text) > e.maxIn {
		text = text[:e.maxIn]
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")

	candidates := e.scoreLines(lines)
	headers := e.confirmHeaders(candidates)
	sections := e.buildSections(lines, headers)
	final := e.prune(sections)

	e.logger.Debug("outline analysis complete",
		"lines", len(lines),
		"candidates", len(candidates),
		"headers", len(headers),
		"sections", len(final))
	return final
}
