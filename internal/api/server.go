package api

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mlevasseur/reportforge/internal/ai"
	"github.com/mlevasseur/reportforge/internal/anonymizer"
	"github.com/mlevasseur/reportforge/internal/config"
	"github.com/mlevasseur/reportforge/internal/contextindex"
	"github.com/mlevasseur/reportforge/internal/pipeline"
	"github.com/mlevasseur/reportforge/internal/report"
	"github.com/mlevasseur/reportforge/internal/reportstore"
	"github.com/mlevasseur/reportforge/internal/storage"
)

// Server is the HTTP API server for reportforge.
type Server struct {
	router       chi.Router
	store        *report.Store
	local        *storage.Local
	archive      *reportstore.Client // nil when no remote archive is configured
	orchestrator *pipeline.Orchestrator
	anon         *anonymizer.Anonymizer
	index        *contextindex.Index
	log          *slog.Logger
	cfg          config.Config

	// Mutable session state that travels with the exported blob.
	mu           sync.Mutex
	aiCfg        *report.AIProviderConfig
	client       *ai.ChatClient
	instructions string
}

// NewServer creates and configures the HTTP server.
func NewServer(store *report.Store, local *storage.Local, archive *reportstore.Client, orch *pipeline.Orchestrator, anon *anonymizer.Anonymizer, index *contextindex.Index, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		store:        store,
		local:        local,
		archive:      archive,
		orchestrator: orch,
		anon:         anon,
		index:        index,
		log:          log,
		cfg:          cfg,
	}
	if cfg.AIAPIKey != "" {
		s.aiCfg = &report.AIProviderConfig{
			Provider: cfg.AIProvider,
			APIKey:   cfg.AIAPIKey,
			Model:    cfg.AIModel,
		}
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		// Report lifecycle.
		r.Post("/api/report", s.handleCreateReport)
		r.Get("/api/report", s.handleGetReport)
		r.Put("/api/report/metadata", s.handleUpdateMetadata)
		r.Get("/api/report/progress", s.handleProgress)
		r.Get("/api/report/outline", s.handleOutline)
		r.Get("/api/report/text", s.handleReportText)

		// Sections.
		r.Get("/api/sections/{sectionID}", s.handleGetSection)
		r.Delete("/api/sections/{sectionID}", s.handleDeleteSection)
		r.Put("/api/sections/{sectionID}/status", s.handleSetStatus)
		r.Put("/api/sections/{sectionID}/content", s.handleSetContent)
		r.Post("/api/sections/{sectionID}/notes", s.handleAddNote)
		r.Put("/api/sections/{sectionID}/notes/{noteID}", s.handleUpdateNote)
		r.Delete("/api/sections/{sectionID}/notes/{noteID}", s.handleRemoveNote)

		// Plan.
		r.Get("/api/plan/default", s.handleDefaultPlan)
		r.Post("/api/plan/generate", s.handleGeneratePlan)

		// AI drafting.
		r.Put("/api/ai/config", s.handleSetAIConfig)
		r.Post("/api/ai/test", s.handleTestAI)
		r.Get("/api/ai/stats", s.handleLLMStats)
		r.Post("/api/sections/{sectionID}/questions", s.handleGenerateQuestions)
		r.Post("/api/sections/{sectionID}/recommendations", s.handleGenerateRecommendations)
		r.Post("/api/sections/{sectionID}/generate", s.handleGenerateContent)
		r.Post("/api/sections/{sectionID}/improve", s.handleImproveContent)
		r.Post("/api/sections/{sectionID}/notes/generate", s.handleGenerateNotes)
		r.Post("/api/sections/{sectionID}/custom", s.handleCustomPrompt)
		r.Post("/api/sections/{sectionID}/adjust-length", s.handleAdjustLength)

		// Whole-report analyses.
		r.Post("/api/analysis/compliance", s.handleCompliance)
		r.Post("/api/analysis/gap", s.handleGap)
		r.Post("/api/analysis/grammar", s.handleGrammar)

		// Instructions document.
		r.Put("/api/instructions", s.handleSetInstructions)
		r.Get("/api/instructions", s.handleGetInstructions)

		// Reference-document ingestion.
		r.Post("/api/documents", s.handleUploadDocument)
		r.Get("/api/documents", s.handleListDocuments)
		r.Get("/api/documents/status", s.handleDocumentStatuses)
		r.Get("/api/documents/{docID}/status", s.handleDocumentStatus)
		r.Delete("/api/documents/{docID}", s.handleDeleteDocument)
		r.Post("/api/documents/extract-text", s.handleExtractText)

		// Anonymizer.
		r.Get("/api/anonymizer/mappings", s.handleAnonymizerMappings)
		r.Post("/api/anonymizer/names", s.handleRegisterName)

		// Export / import.
		r.Get("/api/export/blob", s.handleExportBlob)
		r.Post("/api/import/blob", s.handleImportBlob)
		r.Get("/api/export/docx", s.handleExportDocx)

		// Remote archive (only wired when configured).
		r.Get("/api/archive", s.handleArchiveList)
		r.Get("/api/archive/{projectID}", s.handleArchiveGet)
		r.Put("/api/archive/{projectID}", s.handleArchivePut)
		r.Delete("/api/archive/{projectID}", s.handleArchiveDelete)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
