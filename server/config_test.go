package server

import (
	"os"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.MaxUploadBytes() != 50*1024*1024 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes())
	}
	if cfg.Outline == nil || cfg.Outline.MinScore != 6 {
		t.Errorf("outline defaults = %+v", cfg.Outline)
	}
}

func TestLoadConfig(t *testing.T) {
	yaml := `
listen: ":9090"
db_path: "/tmp/docquiz.db"
max_upload_mb: 100
log_level: "debug"
outline:
  min_score: 8
llm:
  enabled: true
  model: "gpt-4o"
  chunk_chars: 6000
`
	f, err := os.CreateTemp("", "config_test_*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(f.Name())
	f.WriteString(yaml)
	f.Close()

	cfg, err := LoadConfig(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Listen != ":9090" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if cfg.MaxUploadMB != 100 {
		t.Errorf("MaxUploadMB = %d", cfg.MaxUploadMB)
	}
	if cfg.LLM.Model != "gpt-4o" || cfg.LLM.ChunkChars != 6000 {
		t.Errorf("LLM = %+v", cfg.LLM)
	}
	// Partial outline overrides merge over the defaults.
	if cfg.Outline.MinScore != 8 {
		t.Errorf("MinScore = %d", cfg.Outline.MinScore)
	}
	if cfg.Outline.ChapterScore != 15 {
		t.Errorf("ChapterScore = %d, want default kept", cfg.Outline.ChapterScore)
	}
	// Defaults fill what the file omits.
	if cfg.LLM.MaxQuestions != 5 {
		t.Errorf("MaxQuestions = %d", cfg.LLM.MaxQuestions)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/docquiz.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate_BadLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for bad log_level")
	}
}

func TestValidate_MissingDBPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DBPath = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for missing db_path")
	}
}

func TestValidate_LLMEnabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LLM.Enabled = true
	cfg.LLM.Model = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for enabled llm without model")
	}
}
