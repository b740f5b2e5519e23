package artifacts

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Store manages per-job workspaces under a single temp root: rendered
// article files and the final archive. Layout per job:
//
//	{root}/{job_id}/output/{group}/*.md
//	{root}/{job_id}/{job_id}.zip
type Store struct {
	root string
}

// NewStore creates the artifact root if needed.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact root: %w", err)
	}
	return &Store{root: root}, nil
}

func (s *Store) Root() string { return s.root }

// OutputDir returns the rendered-article directory for a named group within
// a job, creating it if needed.
func (s *Store) OutputDir(jobID, group string) (string, error) {
	dir := filepath.Join(s.root, jobID, "output", group)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	return dir, nil
}

// BuildArchive zips the job's output tree into {job_id}.zip next to it.
// Entry names are relative to the output dir. Returns the archive path.
func (s *Store) BuildArchive(jobID string) (string, error) {
	jobDir := filepath.Join(s.root, jobID)
	outDir := filepath.Join(jobDir, "output")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	zipPath := filepath.Join(jobDir, jobID+".zip")
	f, err := os.Create(zipPath)
	if err != nil {
		return "", fmt.Errorf("create archive: %w", err)
	}
	zw := zip.NewWriter(f)

	walkErr := filepath.WalkDir(outDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(outDir, path)
		if err != nil {
			return err
		}
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		_, err = io.Copy(w, src)
		src.Close()
		return err
	})
	if walkErr != nil {
		zw.Close()
		f.Close()
		return "", fmt.Errorf("archive output: %w", walkErr)
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return "", fmt.Errorf("finalize archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close archive: %w", err)
	}
	return zipPath, nil
}

// Remove deletes a job's whole workspace. Removing a job that has no
// workspace is a no-op.
func (s *Store) Remove(jobID string) error {
	return os.RemoveAll(filepath.Join(s.root, jobID))
}

// RemoveAll deletes the artifact root. Used on shutdown.
func (s *Store) RemoveAll() error {
	return os.RemoveAll(s.root)
}
