// CLAUDE:SUMMARY OpenAI Completer implementation — forced tool choice, raw JSON arguments out.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIConfig configures the OpenAI-backed Completer.
type OpenAIConfig struct {
	// APIKey authenticates against the API. Required.
	APIKey string `json:"-" yaml:"-"`

	// BaseURL overrides the API endpoint (vLLM, Ollama, proxies).
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Model is the chat model name (default: gpt-4o-mini).
	Model string `json:"model" yaml:"model"`

	// Temperature for completions (default 0 — deterministic output).
	Temperature float32 `json:"temperature" yaml:"temperature"`

	// Logger for debug/error messages.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *OpenAIConfig) defaults() {
	if c.Model == "" {
		c.Model = "gpt-4o-mini"
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// OpenAIClient implements Completer against the OpenAI chat completions API.
type OpenAIClient struct {
	client *openai.Client
	cfg    OpenAIConfig
	logger *slog.Logger
}

// NewOpenAI creates an OpenAI-backed Completer.
func NewOpenAI(cfg OpenAIConfig) (*OpenAIClient, error) {
	cfg.defaults()
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm: missing API key")
	}
	conf := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(conf),
		cfg:    cfg,
		logger: cfg.Logger,
	}, nil
}

// Complete issues one chat completion with a forced tool call and returns the
// tool-call arguments verbatim.
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (json.RawMessage, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: c.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Tools: []openai.Tool{{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:       req.Tool,
				Parameters: req.Schema,
			},
		}},
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: req.Tool},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion: no choices returned")
	}
	calls := resp.Choices[0].Message.ToolCalls
	if len(calls) == 0 {
		return nil, fmt.Errorf("chat completion: model returned no tool call")
	}
	args := calls[0].Function.Arguments
	if args == "" {
		return nil, fmt.Errorf("chat completion: empty tool arguments")
	}

	c.logger.Debug("completion done",
		"model", c.cfg.Model,
		"tool", req.Tool,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)

	return json.RawMessage(args), nil
}
