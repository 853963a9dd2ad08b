package server_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/docquiz/dbopen"
	"github.com/hazyhaar/docquiz/extract"
	"github.com/hazyhaar/docquiz/idgen"
	"github.com/hazyhaar/docquiz/llm"
	"github.com/hazyhaar/docquiz/outline"
	"github.com/hazyhaar/docquiz/server"
	"github.com/hazyhaar/docquiz/storage"
)

var testMCPImpl = &mcp.Implementation{Name: "docquiz-test", Version: "0.1.0"}

func mcpSession(t *testing.T) *mcp.ClientSession {
	t.Helper()
	db := dbopen.OpenMemory(t, dbopen.WithSchema(storage.Schema))
	svc := server.New(server.Options{
		Store:      storage.NewStore(db),
		Extractor:  extract.New(extract.Config{}),
		Structurer: llm.NewStructurer(llm.StructurerConfig{NewID: idgen.Sequential("s")}),
		NewID:      idgen.Sequential("e"),
	})
	srv := mcp.NewServer(testMCPImpl, nil)
	svc.RegisterMCP(srv)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(testMCPImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func mcpCallTool(t *testing.T, session *mcp.ClientSession, name string, args any) string {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if result.IsError {
		t.Fatalf("CallTool(%s) tool error: %v", name, result.Content)
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s): expected TextContent", name)
	}
	return tc.Text
}

func TestMCP_Formats(t *testing.T) {
	session := mcpSession(t)

	text := mcpCallTool(t, session, "docquiz_formats", map[string]any{})

	var resp struct {
		Formats []string `json:"formats"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	expected := map[string]bool{"pdf": true, "docx": true, "odt": true, "md": true, "txt": true}
	if len(resp.Formats) != len(expected) {
		t.Errorf("expected %d formats, got %d: %v", len(expected), len(resp.Formats), resp.Formats)
	}
	for _, f := range resp.Formats {
		if !expected[f] {
			t.Errorf("unexpected format: %q", f)
		}
		delete(expected, f)
	}
	for f := range expected {
		t.Errorf("missing format: %q", f)
	}
}

func TestMCP_Analyze(t *testing.T) {
	session := mcpSession(t)

	text := mcpCallTool(t, session, "docquiz_analyze", map[string]any{
		"text":  uploadText,
		"title": "Physics Course",
	})

	var resp struct {
		Document *storage.Document `json:"document"`
		Sections []outline.Section `json:"sections"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Document.Title != "Physics Course" || resp.Document.Source != "inline" {
		t.Errorf("document = %+v", resp.Document)
	}
	if len(resp.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(resp.Sections))
	}
	if resp.Sections[0].Title != "Chapter 1" {
		t.Errorf("section title = %q", resp.Sections[0].Title)
	}
}

func TestMCP_AnalyzeMissingText(t *testing.T) {
	session := mcpSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "docquiz_analyze",
		Arguments: map[string]any{"text": ""},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Error("expected tool error for empty text")
	}
}

func TestMCP_Extract(t *testing.T) {
	session := mcpSession(t)

	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte(uploadText), 0o644); err != nil {
		t.Fatal(err)
	}

	text := mcpCallTool(t, session, "docquiz_extract", map[string]any{"path": path})

	var doc extract.Document
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Format != extract.FormatTXT {
		t.Errorf("format = %q", doc.Format)
	}
	if !strings.Contains(doc.Text, "laws of motion") {
		t.Errorf("text = %q", doc.Text)
	}
}
