package pipeline

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	// ErrJobNotFound is returned for unknown, expired, or removed jobs.
	ErrJobNotFound = errors.New("job not found")
	// ErrJobNotReady is returned when a download is attempted before the
	// job completed.
	ErrJobNotReady = errors.New("job is not completed")
)

// JobStatus represents the lifecycle state of a splitting job.
type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Terminal reports whether a status is final. Mutators are no-ops on a
// terminal job.
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// FileOutcome is the per-file result within a job.
type FileOutcome string

const (
	FilePending FileOutcome = "pending"
	FileDone    FileOutcome = "done"
	FileFailed  FileOutcome = "failed"
)

// FileTask is one uploaded document within a job. Format is the declared
// extension, taken from the upload name. Outcome and Err are written by
// the worker through the owning job's mutex.
type FileTask struct {
	Name    string
	Format  string
	Data    []byte
	Outcome FileOutcome
	Err     string
}

// Job tracks the state of one multi-file splitting request. All mutable
// state is guarded by mu; handlers read via Snapshot.
type Job struct {
	mu sync.Mutex

	ID        string
	Status    JobStatus
	Progress  int
	Message   string
	MergeMode bool

	CreatedAt time.Time
	UpdatedAt time.Time

	Files         []*FileTask
	TotalArticles int
	Error         string

	archivePath string
	retrieved   bool
	removed     bool
}

// NewJob creates a pending job for the given uploads.
func NewJob(mergeMode bool, files []*FileTask) *Job {
	now := time.Now()
	for _, f := range files {
		f.Outcome = FilePending
		f.Format = strings.ToLower(filepath.Ext(f.Name))
	}
	return &Job{
		ID:        NewJobID(),
		Status:    StatusPending,
		Message:   "Job queued for processing",
		MergeMode: mergeMode,
		CreatedAt: now,
		UpdatedAt: now,
		Files:     files,
	}
}

// Start moves the job to processing.
func (j *Job) Start() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.Status.Terminal() {
		return
	}
	j.Status = StatusProcessing
	j.Message = "Processing documents..."
	j.UpdatedAt = time.Now()
}

// StartFile records which file (1-based) is being processed.
func (j *Job) StartFile(i, n int, name string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.Status.Terminal() {
		return
	}
	j.Message = fmt.Sprintf("Processing file %d/%d: %s", i, n, name)
	j.UpdatedAt = time.Now()
}

// FinishFile records one file's outcome and recomputes progress as the
// rounded share of finished files. The final step to 100 is left to
// Complete so that full progress and the completed status appear together.
func (j *Job) FinishFile(idx int, ferr error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.Status.Terminal() || idx < 0 || idx >= len(j.Files) {
		return
	}
	ft := j.Files[idx]
	if ferr != nil {
		ft.Outcome = FileFailed
		ft.Err = ferr.Error()
	} else {
		ft.Outcome = FileDone
	}

	done := 0
	for _, f := range j.Files {
		if f.Outcome != FilePending {
			done++
		}
	}
	if done < len(j.Files) {
		p := int(math.Round(float64(done) / float64(len(j.Files)) * 100))
		if p > j.Progress {
			j.Progress = p
		}
	}
	j.UpdatedAt = time.Now()
}

// SetArchiving updates the message for the packaging phase.
func (j *Job) SetArchiving() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.Status.Terminal() {
		return
	}
	j.Message = "Creating archive..."
	j.UpdatedAt = time.Now()
}

// Complete marks the job done, recording the article count and archive
// path. Failed files, if any, are summarized into Error.
func (j *Job) Complete(totalArticles int, archivePath, message string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.Status.Terminal() {
		return
	}
	j.Status = StatusCompleted
	j.Progress = 100
	j.TotalArticles = totalArticles
	j.archivePath = archivePath
	j.Message = message

	var errs []string
	for _, f := range j.Files {
		if f.Outcome == FileFailed {
			errs = append(errs, f.Name+": "+f.Err)
		}
	}
	j.Error = strings.Join(errs, "; ")
	j.UpdatedAt = time.Now()
}

// Fail marks the job failed. Progress resets to zero.
func (j *Job) Fail(errMsg string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.Status.Terminal() {
		return
	}
	j.Status = StatusFailed
	j.Message = "Processing failed"
	j.Error = errMsg
	j.Progress = 0
	j.UpdatedAt = time.Now()
}

// BeginDownload claims the job's artifact for retrieval and returns the
// archive path. A claimed job is no longer eligible for timeout eviction,
// so a download in flight cannot race the janitor.
func (j *Job) BeginDownload() (string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.removed {
		return "", ErrJobNotFound
	}
	if j.Status != StatusCompleted {
		return "", fmt.Errorf("%w: current status: %s", ErrJobNotReady, j.Status)
	}
	if j.archivePath == "" {
		return "", ErrJobNotFound
	}
	j.retrieved = true
	return j.archivePath, nil
}

// markRemoved flips the removed flag and reports whether this call was the
// one to flip it. Removal is idempotent: later calls are no-ops.
func (j *Job) markRemoved() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.removed {
		return false
	}
	j.removed = true
	return true
}

// expireIfIdle marks a terminal, unclaimed job created before cutoff as
// removed, and reports whether this call claimed the removal.
func (j *Job) expireIfIdle(cutoff time.Time) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.removed || j.retrieved || !j.Status.Terminal() {
		return false
	}
	if !j.CreatedAt.Before(cutoff) {
		return false
	}
	j.removed = true
	return true
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID            string    `json:"job_id"`
	Status        JobStatus `json:"status"`
	Progress      int       `json:"progress"`
	Message       string    `json:"message"`
	MergeMode     bool      `json:"merge_mode"`
	CreatedAt     time.Time `json:"created_at"`
	FilesCount    int       `json:"files_count"`
	TotalArticles int       `json:"total_articles"`
	Error         string    `json:"error,omitempty"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	return JobSnapshot{
		ID:            j.ID,
		Status:        j.Status,
		Progress:      j.Progress,
		Message:       j.Message,
		MergeMode:     j.MergeMode,
		CreatedAt:     j.CreatedAt,
		FilesCount:    len(j.Files),
		TotalArticles: j.TotalArticles,
		Error:         j.Error,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

func (s *JobStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, id)
}

func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Cleanup removes expired jobs from the registry and returns them so the
// caller can delete their artifacts. Only terminal jobs whose artifact was
// never claimed expire; the TTL counts from job creation.
func (s *JobStore) Cleanup() []*Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-s.ttl)
	var evicted []*Job
	for id, job := range s.jobs {
		if job.expireIfIdle(cutoff) {
			delete(s.jobs, id)
			evicted = append(evicted, job)
		}
	}
	return evicted
}
