// CLAUDE:SUMMARY MCP tool surface — analyze, extract and formats tools for agent clients.
package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/docquiz/extract"
	"github.com/hazyhaar/docquiz/kit"
)

// RegisterMCP registers docquiz tools on an MCP server.
func (s *Server) RegisterMCP(srv *mcp.Server) {
	s.registerAnalyzeTool(srv)
	s.registerExtractTool(srv)
	s.registerFormatsTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func mcpContext(ctx context.Context) context.Context {
	return kit.WithTransport(ctx, "mcp")
}

// --- analyze ---

type analyzeReq struct {
	Text  string `json:"text"`
	Title string `json:"title"`
}

func (s *Server) registerAnalyzeTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "docquiz_analyze",
		Description: "Infer the section structure of raw text and persist it as a document.",
		InputSchema: inputSchema(map[string]any{
			"text":  map[string]any{"type": "string", "description": "Raw document text to analyze"},
			"title": map[string]any{"type": "string", "description": "Document title (optional)"},
		}, []string{"text"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*analyzeReq)
		if r.Text == "" {
			return nil, fmt.Errorf("text is required")
		}
		title := r.Title
		if title == "" {
			title = "Untitled"
		}
		return s.analyze(ctx, analyzeInput{
			Text:   r.Text,
			Title:  title,
			Source: "inline",
			Format: "txt",
		})
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r analyzeReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &r, EnrichCtx: mcpContext}, nil
	}

	kit.RegisterMCPTool(srv, tool, kit.Logging(s.logger, "docquiz_analyze")(endpoint), decode)
}

// --- extract ---

type extractReq struct {
	Path string `json:"path"`
}

func (s *Server) registerExtractTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "docquiz_extract",
		Description: "Extract text from a document file (pdf, docx, odt, md, txt) without analyzing it.",
		InputSchema: inputSchema(map[string]any{
			"path": map[string]any{"type": "string", "description": "File path to extract"},
		}, []string{"path"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*extractReq)
		return s.extractor.Extract(ctx, r.Path)
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r extractReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &r, EnrichCtx: mcpContext}, nil
	}

	kit.RegisterMCPTool(srv, tool, kit.Logging(s.logger, "docquiz_extract")(endpoint), decode)
}

// --- formats ---

func (s *Server) registerFormatsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "docquiz_formats",
		Description: "List all supported document formats.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	endpoint := func(_ context.Context, _ any) (any, error) {
		return map[string]any{"formats": extract.SupportedFormats()}, nil
	}

	decode := func(_ *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil, EnrichCtx: mcpContext}, nil
	}

	kit.RegisterMCPTool(srv, tool, kit.Logging(s.logger, "docquiz_formats")(endpoint), decode)
}
