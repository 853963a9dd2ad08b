// CLAUDE:SUMMARY Completer abstraction over chat-completion backends with JSON-schema tool calls.
// Package llm provides model-backed document structuring and quiz generation.
//
// A Completer issues one chat-completion request forced through a JSON-schema
// tool call, returning the raw arguments payload. The production implementation
// wraps the OpenAI API; tests substitute a fake.
package llm

import (
	"context"
	"encoding/json"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// Request is a single structured completion call.
type Request struct {
	System string // system prompt
	User   string // user content
	Tool   string // function name the model must call
	Schema *jsonschema.Definition
}

// Completer issues a completion request and returns the tool-call arguments.
type Completer interface {
	Complete(ctx context.Context, req Request) (json.RawMessage, error)
}
