package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/danila-permogorskii/lexsplit/internal/config"
	"github.com/danila-permogorskii/lexsplit/internal/pipeline"
)

// Server is the HTTP API server for the document splitter.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		log:          log,
		cfg:          cfg,
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

	r.Post("/upload", s.handleUpload)
	r.Get("/status/{jobID}", s.handleStatus)
	r.Get("/download/{jobID}", s.handleDownload)
	r.Get("/health", s.handleHealth)
	r.Get("/api", s.handleAPIInfo)
	r.Get("/api/stats", s.handleStats)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":      "healthy",
		"active_jobs": s.orchestrator.ActiveJobs(),
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}

func (s *Server) handleAPIInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"name":    "Legal Document Splitter API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"upload":   "POST /upload - Upload documents for processing",
			"status":   "GET /status/{job_id} - Check job status",
			"download": "GET /download/{job_id} - Download results",
			"health":   "GET /health - Health check",
			"stats":    "GET /api/stats - Processing statistics",
		},
	})
}
