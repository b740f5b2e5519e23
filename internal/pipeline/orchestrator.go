package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/danila-permogorskii/lexsplit/internal/artifacts"
	"github.com/danila-permogorskii/lexsplit/internal/config"
	"github.com/danila-permogorskii/lexsplit/internal/keywords"
)

// Orchestrator owns the job registry, the worker pool, and the janitor
// that evicts expired jobs together with their artifacts.
type Orchestrator struct {
	jobs     *JobStore
	queue    chan *Job
	store    *artifacts.Store
	analyzer keywords.Analyzer
	stats    *ProcessStats
	log      *slog.Logger
	cfg      config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. Start must be called before jobs
// are submitted.
func NewOrchestrator(cfg config.Config, store *artifacts.Store, analyzer keywords.Analyzer, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:     NewJobStore(cfg.CleanupTimeout),
		queue:    make(chan *Job, cfg.MaxQueueSize),
		store:    store,
		analyzer: analyzer,
		stats:    NewProcessStats(time.Hour),
		log:      log,
		cfg:      cfg,
	}
}

// Start launches worker goroutines and the cleanup janitor.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.store, o.analyzer, o.stats, o.log, o.cfg)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				for _, job := range o.jobs.Cleanup() {
					o.log.Info("evicting expired job", "job_id", job.ID)
					if err := o.store.Remove(job.ID); err != nil {
						o.log.Warn("artifact removal failed", "job_id", job.ID, "error", err)
					}
				}
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline. A job in flight finishes its
// current file first.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit registers a new job and queues it for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		err := fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
		job.Fail(err.Error())
		return err
	}
}

// GetJob returns a job by ID, or nil.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// RemoveJob deletes a job and its artifacts. Removal is idempotent; only
// the first call acts.
func (o *Orchestrator) RemoveJob(job *Job) {
	if !job.markRemoved() {
		return
	}
	o.jobs.Delete(job.ID)
	if err := o.store.Remove(job.ID); err != nil {
		o.log.Warn("artifact removal failed", "job_id", job.ID, "error", err)
	}
}

// ActiveJobs returns the number of registered jobs.
func (o *Orchestrator) ActiveJobs() int {
	return o.jobs.Len()
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Stats returns the processing statistics collector.
func (o *Orchestrator) Stats() *ProcessStats {
	return o.stats
}
