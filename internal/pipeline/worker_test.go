package pipeline

import (
	"archive/zip"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/danila-permogorskii/lexsplit/internal/artifacts"
	"github.com/danila-permogorskii/lexsplit/internal/config"
	"github.com/danila-permogorskii/lexsplit/internal/keywords"
)

func testConfig() config.Config {
	return config.Config{
		Port:                  "0",
		CleanupTimeout:        time.Hour,
		WorkerCount:           1,
		MaxQueueSize:          4,
		MaxConcurrentAnnotate: 2,
		MaxUploadBytes:        1 << 20,
		MaxKeywords:           5,
		MaxHeadingLen:         200,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestWorker(t *testing.T) (*Worker, *artifacts.Store) {
	t.Helper()
	store, err := artifacts.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	w := NewWorker(store, keywords.Frequency{}, NewProcessStats(time.Hour), testLogger(), testConfig())
	return w, store
}

func archiveEntries(t *testing.T, zipPath string) []string {
	t.Helper()
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("expected readable archive, got %v", err)
	}
	defer zr.Close()
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}

func TestWorker_ProcessSingleFile(t *testing.T) {
	w, _ := newTestWorker(t)
	text := "Статья 1. Право собственности\nСобственнику принадлежит право владения.\nСтатья 2. Обязанности\nСтороны несут обязанности по договору."
	job := NewJob(false, []*FileTask{{Name: "закон.txt", Data: []byte(text)}})

	w.Process(context.Background(), job)

	if job.Status != StatusCompleted {
		t.Fatalf("expected status %q, got %q (%s)", StatusCompleted, job.Status, job.Error)
	}
	if job.Progress != 100 {
		t.Errorf("expected progress 100, got %d", job.Progress)
	}
	if job.TotalArticles != 2 {
		t.Errorf("expected 2 articles, got %d", job.TotalArticles)
	}
	if job.Message != "Processing completed successfully" {
		t.Errorf("expected success message, got %q", job.Message)
	}
	if job.Error != "" {
		t.Errorf("expected no error, got %q", job.Error)
	}

	zipPath, err := job.BeginDownload()
	if err != nil {
		t.Fatalf("expected download available, got %v", err)
	}
	entries := archiveEntries(t, zipPath)
	if len(entries) != 2 {
		t.Fatalf("expected 2 archive entries, got %d (%v)", len(entries), entries)
	}
	for _, e := range entries {
		if !strings.HasPrefix(e, "закон/") {
			t.Errorf("expected entry under the document group, got %q", e)
		}
		if !strings.HasSuffix(e, ".md") {
			t.Errorf("expected markdown entry, got %q", e)
		}
	}
}

func TestWorker_MergeModePoolsOutput(t *testing.T) {
	w, _ := newTestWorker(t)
	job := NewJob(true, []*FileTask{
		{Name: "закон.txt", Data: []byte("Статья 1. Первая\nТекст закона.")},
		{Name: "кодекс.txt", Data: []byte("Статья 1. Вторая\nТекст кодекса.")},
	})

	w.Process(context.Background(), job)

	if job.Status != StatusCompleted {
		t.Fatalf("expected status %q, got %q (%s)", StatusCompleted, job.Status, job.Error)
	}
	if job.TotalArticles != 2 {
		t.Errorf("expected 2 articles, got %d", job.TotalArticles)
	}

	zipPath, err := job.BeginDownload()
	if err != nil {
		t.Fatal(err)
	}
	entries := archiveEntries(t, zipPath)
	if len(entries) != 2 {
		t.Fatalf("expected 2 pooled entries, got %d (%v)", len(entries), entries)
	}
	var sawLaw, sawCode bool
	for _, e := range entries {
		if !strings.HasPrefix(e, "merged_articles/") {
			t.Errorf("expected entry in the merged group, got %q", e)
		}
		if strings.Contains(e, "закон_") {
			sawLaw = true
		}
		if strings.Contains(e, "кодекс_") {
			sawCode = true
		}
	}
	if !sawLaw || !sawCode {
		t.Errorf("expected filenames prefixed by source document, got %v", entries)
	}
}

func TestWorker_SeparateGroupsWithoutMerge(t *testing.T) {
	w, _ := newTestWorker(t)
	job := NewJob(false, []*FileTask{
		{Name: "закон.txt", Data: []byte("Статья 1. Первая\nТекст.")},
		{Name: "кодекс.txt", Data: []byte("Статья 1. Вторая\nТекст.")},
	})

	w.Process(context.Background(), job)

	if job.Status != StatusCompleted {
		t.Fatalf("expected status %q, got %q (%s)", StatusCompleted, job.Status, job.Error)
	}
	zipPath, err := job.BeginDownload()
	if err != nil {
		t.Fatal(err)
	}
	var sawLaw, sawCode bool
	for _, e := range archiveEntries(t, zipPath) {
		if strings.HasPrefix(e, "закон/") {
			sawLaw = true
		}
		if strings.HasPrefix(e, "кодекс/") {
			sawCode = true
		}
	}
	if !sawLaw || !sawCode {
		t.Error("expected one output group per document")
	}
}

func TestWorker_SkipsFailingFile(t *testing.T) {
	w, _ := newTestWorker(t)
	job := NewJob(false, []*FileTask{
		{Name: "закон.txt", Data: []byte("Статья 1. Первая\nТекст.")},
		{Name: "scan.png", Data: []byte("not a document")},
	})

	w.Process(context.Background(), job)

	if job.Status != StatusCompleted {
		t.Fatalf("expected partial failure to still complete, got %q (%s)", job.Status, job.Error)
	}
	if job.Message != "Processing completed with errors (1 of 2 files failed)" {
		t.Errorf("expected partial-failure message, got %q", job.Message)
	}
	if !strings.Contains(job.Error, "scan.png") {
		t.Errorf("expected error to name the failed file, got %q", job.Error)
	}
	if job.TotalArticles != 1 {
		t.Errorf("expected 1 article from the good file, got %d", job.TotalArticles)
	}
	if job.Files[0].Outcome != FileDone {
		t.Errorf("expected first file done, got %q", job.Files[0].Outcome)
	}
	if job.Files[1].Outcome != FileFailed {
		t.Errorf("expected second file failed, got %q", job.Files[1].Outcome)
	}
}

func TestWorker_CorruptDocumentSkipped(t *testing.T) {
	w, _ := newTestWorker(t)
	job := NewJob(false, []*FileTask{
		{Name: "закон.txt", Data: []byte("Статья 1. Первая\nТекст.")},
		{Name: "битый.docx", Data: []byte("this is not a zip container")},
	})

	w.Process(context.Background(), job)

	if job.Status != StatusCompleted {
		t.Fatalf("expected job to complete despite the corrupt file, got %q", job.Status)
	}
	if !strings.Contains(job.Error, "битый.docx") {
		t.Errorf("expected error to name the corrupt file, got %q", job.Error)
	}
}

func TestWorker_AllFilesFailedFailsJob(t *testing.T) {
	w, _ := newTestWorker(t)
	job := NewJob(false, []*FileTask{
		{Name: "a.png", Data: []byte("x")},
		{Name: "b.xlsx", Data: []byte("y")},
	})

	w.Process(context.Background(), job)

	if job.Status != StatusFailed {
		t.Fatalf("expected status %q, got %q", StatusFailed, job.Status)
	}
	if job.Progress != 0 {
		t.Errorf("expected progress 0, got %d", job.Progress)
	}
	if !strings.Contains(job.Error, "a.png") || !strings.Contains(job.Error, "b.xlsx") {
		t.Errorf("expected both files in the error, got %q", job.Error)
	}
	if _, err := job.BeginDownload(); err == nil {
		t.Error("expected no download for a failed job")
	}
}

func TestWorker_CancelledContextFailsJob(t *testing.T) {
	w, _ := newTestWorker(t)
	job := NewJob(false, []*FileTask{{Name: "закон.txt", Data: []byte("Статья 1. X")}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Process(ctx, job)

	if job.Status != StatusFailed {
		t.Fatalf("expected status %q, got %q", StatusFailed, job.Status)
	}
	if !strings.Contains(job.Error, "processing interrupted") {
		t.Errorf("expected interruption error, got %q", job.Error)
	}
}

func TestWorker_EmptyDocumentCompletesWithZeroArticles(t *testing.T) {
	w, _ := newTestWorker(t)
	job := NewJob(false, []*FileTask{{Name: "пустой.txt", Data: []byte("   \n\n  ")}})

	w.Process(context.Background(), job)

	if job.Status != StatusCompleted {
		t.Fatalf("expected status %q, got %q (%s)", StatusCompleted, job.Status, job.Error)
	}
	if job.TotalArticles != 0 {
		t.Errorf("expected 0 articles, got %d", job.TotalArticles)
	}
	zipPath, err := job.BeginDownload()
	if err != nil {
		t.Fatalf("expected an archive even with no articles, got %v", err)
	}
	if entries := archiveEntries(t, zipPath); len(entries) != 0 {
		t.Errorf("expected empty archive, got %v", entries)
	}
}

func TestWorker_UnstructuredDocument(t *testing.T) {
	w, _ := newTestWorker(t)
	job := NewJob(false, []*FileTask{{Name: "договор.txt", Data: []byte("Просто текст договора без структуры.")}})

	w.Process(context.Background(), job)

	if job.Status != StatusCompleted {
		t.Fatalf("expected status %q, got %q (%s)", StatusCompleted, job.Status, job.Error)
	}
	if job.TotalArticles != 1 {
		t.Errorf("expected 1 synthetic article, got %d", job.TotalArticles)
	}
	zipPath, err := job.BeginDownload()
	if err != nil {
		t.Fatal(err)
	}
	entries := archiveEntries(t, zipPath)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %v", entries)
	}
	if !strings.Contains(entries[0], "unstructured") {
		t.Errorf("expected unstructured marker in filename, got %q", entries[0])
	}
}
