package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danila-permogorskii/lexsplit/internal/artifacts"
	"github.com/danila-permogorskii/lexsplit/internal/config"
	"github.com/danila-permogorskii/lexsplit/internal/keywords"
	"github.com/danila-permogorskii/lexsplit/internal/parser"
	"github.com/danila-permogorskii/lexsplit/internal/render"
	"github.com/danila-permogorskii/lexsplit/internal/segment"
)

// mergedGroup is the single output group used when a job pools articles
// from all its files.
const mergedGroup = "merged_articles"

// Worker processes splitting jobs one at a time.
type Worker struct {
	store    *artifacts.Store
	analyzer keywords.Analyzer
	stats    *ProcessStats
	log      *slog.Logger
	seg      *segment.Segmenter

	maxKeywords           int
	maxConcurrentAnnotate int
	pdfFallback           bool
}

func NewWorker(store *artifacts.Store, analyzer keywords.Analyzer, stats *ProcessStats, log *slog.Logger, cfg config.Config) *Worker {
	return &Worker{
		store:                 store,
		analyzer:              analyzer,
		stats:                 stats,
		log:                   log,
		seg:                   segment.New(segment.DefaultGrammar(), cfg.MaxHeadingLen),
		maxKeywords:           cfg.MaxKeywords,
		maxConcurrentAnnotate: cfg.MaxConcurrentAnnotate,
		pdfFallback:           cfg.PDFFallbackPdftotext,
	}
}

// Process runs the full splitting pipeline for a job. Files are handled in
// submission order; a failing file is recorded and skipped, and the job
// fails only when every file failed. Cancellation takes effect between
// files, never in the middle of one.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID)
	job.Start()

	n := len(job.Files)
	sharedNames := render.NewNameSet()
	totalArticles := 0
	var fileErrs []string

	for i, ft := range job.Files {
		if ctx.Err() != nil {
			job.Fail(fmt.Sprintf("processing interrupted: %s", ctx.Err()))
			return
		}

		job.StartFile(i+1, n, ft.Name)

		group := mergedGroup
		names := sharedNames
		if !job.MergeMode {
			group = docStem(ft.Name)
			names = render.NewNameSet()
		}

		start := time.Now()
		count, err := w.processFile(job.ID, ft, group, names)
		w.stats.Record(time.Since(start).Milliseconds(), count)

		job.FinishFile(i, err)
		if err != nil {
			log.Error("file processing failed", "file", ft.Name, "error", err)
			fileErrs = append(fileErrs, fmt.Sprintf("%s: %s", ft.Name, err))
			continue
		}
		totalArticles += count
		log.Info("processed file", "file", ft.Name, "articles", count)
	}

	if len(fileErrs) == n {
		job.Fail(strings.Join(fileErrs, "; "))
		return
	}

	job.SetArchiving()
	zipPath, err := w.store.BuildArchive(job.ID)
	if err != nil {
		log.Error("archive creation failed", "error", err)
		job.Fail(fmt.Sprintf("archive: %s", err))
		return
	}

	msg := "Processing completed successfully"
	if len(fileErrs) > 0 {
		msg = fmt.Sprintf("Processing completed with errors (%d of %d files failed)", len(fileErrs), n)
	}
	job.Complete(totalArticles, zipPath, msg)
	log.Info("job completed", "articles", totalArticles, "failed_files", len(fileErrs))
}

// processFile decodes, segments, annotates, and renders one uploaded file
// into the given output group. It returns the number of articles produced.
func (w *Worker) processFile(jobID string, ft *FileTask, group string, names *render.NameSet) (int, error) {
	p, err := parser.ForExtension(ft.Format, w.pdfFallback)
	if err != nil {
		return 0, err
	}
	raw, err := p.Extract(bytes.NewReader(ft.Data), ft.Name)
	if err != nil {
		return 0, fmt.Errorf("extract: %w", err)
	}

	text := parser.Normalize(raw)
	root := w.seg.Segment(text)
	articles := w.seg.Articles(root)
	if len(articles) == 0 {
		// Structure without articles, e.g. a section with only preamble.
		return 0, nil
	}

	// Annotation is independent per article; run it with bounded
	// parallelism, keeping document order in the result slice.
	annotated := make([]render.Annotated, len(articles))
	var g errgroup.Group
	g.SetLimit(w.maxConcurrentAnnotate)
	for i, a := range articles {
		g.Go(func() error {
			ranked := w.analyzer.Analyze(a.Node.Body)
			annotated[i] = render.Annotate(a, ranked, w.maxKeywords)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	outDir, err := w.store.OutputDir(jobID, group)
	if err != nil {
		return 0, err
	}

	doc := docStem(ft.Name)
	for i, ann := range annotated {
		name := names.Claim(render.Filename(doc, ann))
		content := []byte(render.Markdown(ann))
		if err := os.WriteFile(filepath.Join(outDir, name), content, 0o644); err != nil {
			w.log.Warn("article write failed, retrying with fallback name",
				"job_id", jobID, "name", name, "error", err)
			fallback := names.Claim(render.FallbackFilename(doc, i+1))
			if err := os.WriteFile(filepath.Join(outDir, fallback), content, 0o644); err != nil {
				return 0, fmt.Errorf("write article: %w", err)
			}
		}
	}
	return len(annotated), nil
}

// docStem is the upload's base name without extension, used for output
// grouping and filename prefixes.
func docStem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
