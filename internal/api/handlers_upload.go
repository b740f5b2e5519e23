package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/danila-permogorskii/lexsplit/internal/parser"
	"github.com/danila-permogorskii/lexsplit/internal/pipeline"
)

type uploadResponse struct {
	JobID         string `json:"job_id"`
	Message       string `json:"message"`
	FilesReceived int    `json:"files_received"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "no files provided", http.StatusBadRequest)
		return
	}

	mergeMode, _ := strconv.ParseBool(r.FormValue("merge_mode"))

	// Validate every declared format up front: one bad file rejects the
	// whole batch before any work starts.
	for _, fh := range files {
		name := sanitizeFilename(fh.Filename)
		if !parser.IsSupportedExtension(name) {
			jsonError(w, fmt.Sprintf("unsupported file type: %s", fh.Filename), http.StatusBadRequest)
			return
		}
	}

	tasks := make([]*pipeline.FileTask, 0, len(files))
	for _, fh := range files {
		name := sanitizeFilename(fh.Filename)
		f, err := fh.Open()
		if err != nil {
			jsonError(w, fmt.Sprintf("failed to open %s", name), http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
		f.Close()
		if err != nil {
			jsonError(w, fmt.Sprintf("failed to read %s", name), http.StatusBadRequest)
			return
		}
		if int64(len(data)) > s.cfg.MaxUploadBytes {
			jsonError(w, fmt.Sprintf("%s exceeds max size (%d bytes)", name, s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		tasks = append(tasks, &pipeline.FileTask{Name: name, Data: data})
	}

	job := pipeline.NewJob(mergeMode, tasks)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	s.log.Info("job created", "job_id", job.ID, "files", len(tasks), "merge_mode", mergeMode)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(uploadResponse{
		JobID:         job.ID,
		Message:       "Files uploaded successfully. Processing started.",
		FilesReceived: len(tasks),
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
