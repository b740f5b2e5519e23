package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/danila-permogorskii/lexsplit/internal/pipeline"
)

type statusResponse struct {
	JobID         string             `json:"job_id"`
	Status        pipeline.JobStatus `json:"status"`
	Progress      int                `json:"progress"`
	Message       string             `json:"message"`
	TotalArticles *int               `json:"total_articles,omitempty"`
	Error         string             `json:"error,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "Job not found", http.StatusNotFound)
		return
	}

	snap := job.Snapshot()
	resp := statusResponse{
		JobID:    snap.ID,
		Status:   snap.Status,
		Progress: snap.Progress,
		Message:  snap.Message,
	}
	// The article count is meaningful only for a finished job, and the
	// error only for a failed one.
	if snap.Status == pipeline.StatusCompleted {
		resp.TotalArticles = &snap.TotalArticles
	}
	if snap.Status == pipeline.StatusFailed {
		resp.Error = snap.Error
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "Job not found", http.StatusNotFound)
		return
	}

	zipPath, err := job.BeginDownload()
	if err != nil {
		switch {
		case errors.Is(err, pipeline.ErrJobNotFound):
			jsonError(w, "Result file not found", http.StatusNotFound)
		case errors.Is(err, pipeline.ErrJobNotReady):
			jsonError(w, err.Error(), http.StatusBadRequest)
		default:
			jsonError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	// The artifact is gone after one retrieval.
	defer s.orchestrator.RemoveJob(job)

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="processed_articles_%s.zip"`, jobID))
	http.ServeFile(w, r, zipPath)
}
