// CLAUDE:SUMMARY YAML configuration for the docquiz service with defaults and validation.
package server

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/docquiz/outline"
)

// Config holds the full docquiz configuration.
type Config struct {
	Listen      string           `yaml:"listen"`
	DBPath      string           `yaml:"db_path"`
	MaxUploadMB int              `yaml:"max_upload_mb"`
	LogLevel    string           `yaml:"log_level"` // debug | info | warn | error
	Outline     *outline.Weights `yaml:"outline"`   // heuristic weight overrides
	LLM         LLMConfig        `yaml:"llm"`
}

// LLMConfig configures the model-backed collaborators. The API key is read
// from OPENAI_API_KEY only and never stored in the config file.
type LLMConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Model         string `yaml:"model"`
	ChunkChars    int    `yaml:"chunk_chars"`
	ContentBudget int    `yaml:"content_budget"` // quiz prompt character budget
	MaxQuestions  int    `yaml:"max_questions"`
}

// DefaultConfig returns sane defaults.
func DefaultConfig() *Config {
	w := outline.DefaultWeights()
	return &Config{
		Listen:      ":8080",
		DBPath:      "docquiz.db",
		MaxUploadMB: 50,
		LogLevel:    "info",
		Outline:     &w,
		LLM: LLMConfig{
			Enabled:       false,
			Model:         "gpt-4o-mini",
			ChunkChars:    12000,
			ContentBudget: 8000,
			MaxQuestions:  5,
		},
	}
}

// LoadConfig reads and parses a YAML config file. Returns DefaultConfig merged with the file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that required fields are present and values are sane.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("max_upload_mb must be > 0")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log_level %q (use debug, info, warn or error)", c.LogLevel)
	}
	if c.LLM.Enabled {
		if c.LLM.Model == "" {
			return fmt.Errorf("llm.model is required when llm is enabled")
		}
		if c.LLM.ChunkChars <= 0 {
			return fmt.Errorf("llm.chunk_chars must be > 0")
		}
		if c.LLM.ContentBudget <= 0 {
			return fmt.Errorf("llm.content_budget must be > 0")
		}
		if c.LLM.MaxQuestions <= 0 {
			return fmt.Errorf("llm.max_questions must be > 0")
		}
	}
	return nil
}

// MaxUploadBytes returns the upload limit in bytes.
func (c *Config) MaxUploadBytes() int64 { return int64(c.MaxUploadMB) * 1024 * 1024 }
