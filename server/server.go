// CLAUDE:SUMMARY HTTP API — document upload, structure analysis, section search and quizzes.
// Package server exposes the docquiz pipeline over HTTP and MCP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hazyhaar/docquiz/extract"
	"github.com/hazyhaar/docquiz/idgen"
	"github.com/hazyhaar/docquiz/llm"
	"github.com/hazyhaar/docquiz/outline"
	"github.com/hazyhaar/docquiz/storage"
)

// Options wires the collaborators into a Server.
type Options struct {
	Store      *storage.Store
	Extractor  *extract.Extractor
	Structurer *llm.Structurer

	// Quizzes generates section quizzes. Nil disables the quiz endpoints.
	Quizzes *llm.QuizGenerator

	// Model names the chat model recorded on quizzes (informational).
	Model string

	// NewID mints entity ids (default: idgen.Default).
	NewID idgen.Generator

	// MaxUploadBytes caps multipart uploads (default: 50 MB).
	MaxUploadBytes int64

	// Logger for request-level messages.
	Logger *slog.Logger
}

// Server handles the docquiz HTTP and MCP surface.
type Server struct {
	store      *storage.Store
	extractor  *extract.Extractor
	structurer *llm.Structurer
	quizzes    *llm.QuizGenerator
	model      string
	newID      idgen.Generator
	maxUpload  int64
	logger     *slog.Logger
}

// New creates a Server.
func New(opts Options) *Server {
	if opts.NewID == nil {
		opts.NewID = idgen.Default
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 50 * 1024 * 1024
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Server{
		store:      opts.Store,
		extractor:  opts.Extractor,
		structurer: opts.Structurer,
		quizzes:    opts.Quizzes,
		model:      opts.Model,
		newID:      opts.NewID,
		maxUpload:  opts.MaxUploadBytes,
		logger:     opts.Logger,
	}
}

// Routes builds the HTTP router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/documents", s.handleUpload)
		r.Get("/documents", s.handleListDocuments)
		r.Get("/documents/{documentID}", s.handleGetDocument)
		r.Get("/documents/{documentID}/sections", s.handleGetSections)
		r.Get("/documents/{documentID}/search", s.handleSearch)
		r.Post("/sections/{sectionID}/quiz", s.handleGenerateQuiz)
		r.Get("/sections/{sectionID}/quiz", s.handleGetQuiz)
	})

	return r
}

// documentResponse is the payload returned by upload and analyze.
type documentResponse struct {
	Document *storage.Document `json:"document"`
	Sections []outline.Section `json:"sections"`
	Run      *storage.Run      `json:"run"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		writeError(w, 400, fmt.Errorf("parse upload: %w", err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, 400, fmt.Errorf("missing file field: %w", err))
		return
	}
	defer file.Close()

	// Extraction dispatches on the extension, so the temp copy keeps it.
	ext := filepath.Ext(header.Filename)
	tmp, err := os.CreateTemp("", "docquiz-upload-*"+ext)
	if err != nil {
		writeError(w, 500, err)
		return
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		writeError(w, 500, fmt.Errorf("store upload: %w", err))
		return
	}
	tmp.Close()

	doc, err := s.extractor.Extract(r.Context(), tmp.Name())
	if err != nil {
		writeError(w, 400, fmt.Errorf("extract %s: %w", header.Filename, err))
		return
	}

	title := r.FormValue("title")
	if title == "" {
		title = doc.Title
	}
	if title == "" {
		title = strings.TrimSuffix(header.Filename, ext)
	}
	pageCount := 0
	if doc.Quality != nil {
		pageCount = doc.Quality.PageCount
	}

	resp, err := s.analyze(r.Context(), analyzeInput{
		Text:      doc.Text,
		Title:     title,
		Source:    header.Filename,
		Format:    string(doc.Format),
		PageCount: pageCount,
	})
	if err != nil {
		writeError(w, 500, err)
		return
	}
	writeJSON(w, 201, resp)
}

type analyzeInput struct {
	Text      string
	Title     string
	Source    string
	Format    string
	PageCount int
}

// analyze structures the text, persists the document and logs the run.
func (s *Server) analyze(ctx context.Context, in analyzeInput) (*documentResponse, error) {
	start := time.Now()

	sections, fallback, err := s.structurer.Structure(ctx, in.Text)
	if err != nil {
		return nil, fmt.Errorf("structure: %w", err)
	}
	strategy := "llm"
	if fallback {
		strategy = "heuristic"
	}

	now := time.Now().UnixMilli()
	doc := &storage.Document{
		ID:        s.newID(),
		Title:     in.Title,
		Source:    in.Source,
		Format:    in.Format,
		PageCount: in.PageCount,
		CreatedAt: now,
	}
	if err := s.store.SaveDocument(ctx, doc, sections); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	run := &storage.Run{
		ID:           s.newID(),
		DocumentID:   doc.ID,
		Strategy:     strategy,
		SectionCount: len(sections),
		Fallback:     fallback,
		DurationMS:   time.Since(start).Milliseconds(),
		CreatedAt:    now,
	}
	if err := s.store.RecordRun(ctx, run); err != nil {
		// The document is already saved; losing the run record is not fatal.
		s.logger.Warn("record run failed", "document_id", doc.ID, "error", err)
	}

	s.logger.Info("document analyzed",
		"document_id", doc.ID,
		"strategy", strategy,
		"sections", len(sections),
		"duration_ms", run.DurationMS)

	return &documentResponse{Document: doc, Sections: sections, Run: run}, nil
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.ListDocuments(r.Context(), queryInt(r, "limit", 50))
	if err != nil {
		writeError(w, 500, err)
		return
	}
	if docs == nil {
		docs = []*storage.Document{}
	}
	writeJSON(w, 200, map[string]any{"documents": docs})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.GetDocument(r.Context(), chi.URLParam(r, "documentID"))
	if err != nil {
		writeError(w, 500, err)
		return
	}
	if doc == nil {
		writeError(w, 404, errors.New("document not found"))
		return
	}
	writeJSON(w, 200, doc)
}

func (s *Server) handleGetSections(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentID")
	doc, err := s.store.GetDocument(r.Context(), documentID)
	if err != nil {
		writeError(w, 500, err)
		return
	}
	if doc == nil {
		writeError(w, 404, errors.New("document not found"))
		return
	}
	sections, err := s.store.GetSections(r.Context(), documentID)
	if err != nil {
		writeError(w, 500, err)
		return
	}
	if sections == nil {
		sections = []outline.Section{}
	}
	writeJSON(w, 200, map[string]any{"sections": sections})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, 400, errors.New("query parameter q is required"))
		return
	}
	documentID := chi.URLParam(r, "documentID")
	doc, err := s.store.GetDocument(r.Context(), documentID)
	if err != nil {
		writeError(w, 500, err)
		return
	}
	if doc == nil {
		writeError(w, 404, errors.New("document not found"))
		return
	}
	results, err := s.store.SearchSections(r.Context(), documentID, query, queryInt(r, "limit", 20))
	if err != nil {
		writeError(w, 500, err)
		return
	}
	if results == nil {
		results = []*storage.SearchResult{}
	}
	writeJSON(w, 200, map[string]any{"results": results})
}

// quizResponse is a stored quiz with its questions decoded.
type quizResponse struct {
	ID        string         `json:"id"`
	SectionID string         `json:"section_id"`
	Model     string         `json:"model"`
	CreatedAt int64          `json:"created_at"`
	Questions []llm.Question `json:"questions"`
}

func (s *Server) handleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	if s.quizzes == nil {
		writeError(w, 400, errors.New("quiz generation is disabled"))
		return
	}
	sectionID := chi.URLParam(r, "sectionID")
	sec, _, err := s.store.GetSection(r.Context(), sectionID)
	if err != nil {
		writeError(w, 500, err)
		return
	}
	if sec == nil {
		writeError(w, 404, errors.New("section not found"))
		return
	}

	questions, err := s.quizzes.Generate(r.Context(), sec.Title, sec.Content)
	if err != nil {
		writeError(w, 500, fmt.Errorf("generate quiz: %w", err))
		return
	}
	data, err := json.Marshal(questions)
	if err != nil {
		writeError(w, 500, err)
		return
	}

	quiz := &storage.Quiz{
		ID:            s.newID(),
		SectionID:     sectionID,
		QuestionsJSON: string(data),
		Model:         s.model,
		CreatedAt:     time.Now().UnixMilli(),
	}
	if err := s.store.SaveQuiz(r.Context(), quiz); err != nil {
		writeError(w, 500, fmt.Errorf("save quiz: %w", err))
		return
	}

	s.logger.Info("quiz generated", "section_id", sectionID, "questions", len(questions))
	writeJSON(w, 201, quizResponse{
		ID:        quiz.ID,
		SectionID: quiz.SectionID,
		Model:     quiz.Model,
		CreatedAt: quiz.CreatedAt,
		Questions: questions,
	})
}

func (s *Server) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := s.store.GetQuiz(r.Context(), chi.URLParam(r, "sectionID"))
	if err != nil {
		writeError(w, 500, err)
		return
	}
	if quiz == nil {
		writeError(w, 404, errors.New("no quiz for section"))
		return
	}
	var questions []llm.Question
	if err := json.Unmarshal([]byte(quiz.QuestionsJSON), &questions); err != nil {
		writeError(w, 500, fmt.Errorf("decode stored quiz: %w", err))
		return
	}
	writeJSON(w, 200, quizResponse{
		ID:        quiz.ID,
		SectionID: quiz.SectionID,
		Model:     quiz.Model,
		CreatedAt: quiz.CreatedAt,
		Questions: questions,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func queryInt(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
