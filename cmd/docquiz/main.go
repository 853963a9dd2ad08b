// CLAUDE:SUMMARY docquiz entry point — config, logging, SQLite, HTTP server, optional MCP stdio.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/docquiz/dbopen"
	"github.com/hazyhaar/docquiz/extract"
	"github.com/hazyhaar/docquiz/llm"
	"github.com/hazyhaar/docquiz/outline"
	"github.com/hazyhaar/docquiz/server"
	"github.com/hazyhaar/docquiz/storage"
)

func main() {
	cfg := server.DefaultConfig()
	if path := env("CONFIG", ""); path != "" {
		var err error
		cfg, err = server.LoadConfig(path)
		if err != nil {
			slog.Error("load config", "error", err)
			os.Exit(1)
		}
	}
	logLevel := env("LOG_LEVEL", cfg.LogLevel)
	mcpTransport := env("MCP_TRANSPORT", "")

	// Logging.
	var lvl slog.Level
	switch logLevel {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	// Signal context.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Database.
	db, err := dbopen.Open(cfg.DBPath, dbopen.WithMkdirAll(), dbopen.WithSchema(storage.Schema))
	if err != nil {
		slog.Error("open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()
	store := storage.NewStore(db)

	// Collaborators.
	extractor := extract.New(extract.Config{
		MaxFileSize: cfg.MaxUploadBytes(),
		Logger:      logger,
	})
	engine := outline.New(outline.Config{Weights: cfg.Outline, Logger: logger})

	var completer llm.Completer
	var quizzes *llm.QuizGenerator
	if cfg.LLM.Enabled {
		openai, err := llm.NewOpenAI(llm.OpenAIConfig{
			APIKey: os.Getenv("OPENAI_API_KEY"),
			Model:  cfg.LLM.Model,
			Logger: logger,
		})
		if err != nil {
			slog.Error("llm setup", "error", err)
			os.Exit(1)
		}
		completer = openai
		quizzes, err = llm.NewQuizGenerator(llm.QuizConfig{
			Completer:     completer,
			ContentBudget: cfg.LLM.ContentBudget,
			MaxQuestions:  cfg.LLM.MaxQuestions,
			Logger:        logger,
		})
		if err != nil {
			slog.Error("quiz setup", "error", err)
			os.Exit(1)
		}
	}
	structurer := llm.NewStructurer(llm.StructurerConfig{
		Completer:  completer,
		ChunkChars: cfg.LLM.ChunkChars,
		Fallback:   engine,
		Logger:     logger,
	})

	svc := server.New(server.Options{
		Store:          store,
		Extractor:      extractor,
		Structurer:     structurer,
		Quizzes:        quizzes,
		Model:          cfg.LLM.Model,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		Logger:         logger,
	})

	// Optional MCP over stdio.
	if mcpTransport == "stdio" {
		mcpSrv := mcp.NewServer(&mcp.Implementation{
			Name:    "docquiz",
			Version: "1.0.0",
		}, nil)
		svc.RegisterMCP(mcpSrv)
		go func() {
			slog.Info("MCP stdio starting")
			if err := mcpSrv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
				slog.Error("MCP stdio", "error", err)
			}
		}()
	}

	// HTTP server.
	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           svc.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Listen, "llm_enabled", cfg.LLM.Enabled)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
	slog.Info("server stopped")
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
