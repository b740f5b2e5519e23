package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string

	// Job workspace
	TempDir        string
	CleanupTimeout time.Duration

	// Worker pool
	WorkerCount           int
	MaxQueueSize          int
	MaxConcurrentAnnotate int

	// Upload limits
	MaxUploadBytes int64

	// Splitting defaults
	MaxKeywords   int
	MaxHeadingLen int

	// PDF
	PDFFallbackPdftotext bool
}

// fileConfig mirrors Config for the optional YAML file named by
// LEXSPLIT_CONFIG. Pointer fields distinguish "absent" from zero values;
// durations are parsed from strings like "90m".
type fileConfig struct {
	Port                  *string `yaml:"port"`
	TempDir               *string `yaml:"temp_dir"`
	CleanupTimeout        *string `yaml:"cleanup_timeout"`
	WorkerCount           *int    `yaml:"worker_count"`
	MaxQueueSize          *int    `yaml:"max_queue_size"`
	MaxConcurrentAnnotate *int    `yaml:"max_concurrent_annotate"`
	MaxUploadBytes        *int64  `yaml:"max_upload_bytes"`
	MaxKeywords           *int    `yaml:"max_keywords"`
	MaxHeadingLen         *int    `yaml:"max_heading_len"`
	PDFFallbackPdftotext  *bool   `yaml:"pdf_fallback_pdftotext"`
}

// Load builds the configuration in three layers: built-in defaults, then the
// optional YAML file named by LEXSPLIT_CONFIG, then environment variables.
// A .env file in the working directory is read into the environment first
// if present.
func Load() (Config, error) {
	godotenv.Load()

	cfg := Config{
		Port: "8000",

		TempDir:        filepath.Join(os.TempDir(), "lexsplit-jobs"),
		CleanupTimeout: 1 * time.Hour,

		WorkerCount:           4,
		MaxQueueSize:          100,
		MaxConcurrentAnnotate: 5,

		MaxUploadBytes: 52428800, // 50MB

		MaxKeywords:   5,
		MaxHeadingLen: 200,

		PDFFallbackPdftotext: true,
	}

	if path := os.Getenv("LEXSPLIT_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return cfg, err
		}
	}

	cfg.Port = envOr("PORT", cfg.Port)
	cfg.TempDir = envOr("TEMP_DIR", cfg.TempDir)
	cfg.CleanupTimeout = envDuration("CLEANUP_TIMEOUT", cfg.CleanupTimeout)
	cfg.WorkerCount = envInt("WORKER_COUNT", cfg.WorkerCount)
	cfg.MaxQueueSize = envInt("MAX_QUEUE_SIZE", cfg.MaxQueueSize)
	cfg.MaxConcurrentAnnotate = envInt("MAX_CONCURRENT_ANNOTATE", cfg.MaxConcurrentAnnotate)
	cfg.MaxUploadBytes = envInt64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)
	cfg.MaxKeywords = envInt("MAX_KEYWORDS", cfg.MaxKeywords)
	cfg.MaxHeadingLen = envInt("MAX_HEADING_LEN", cfg.MaxHeadingLen)
	cfg.PDFFallbackPdftotext = envBool("PDF_FALLBACK_PDFTOTEXT", cfg.PDFFallbackPdftotext)

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxConcurrentAnnotate <= 0 {
		cfg.MaxConcurrentAnnotate = 5
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.MaxKeywords <= 0 {
		cfg.MaxKeywords = 5
	}
	if cfg.MaxHeadingLen <= 0 {
		cfg.MaxHeadingLen = 200
	}
	if cfg.CleanupTimeout <= 0 {
		cfg.CleanupTimeout = 1 * time.Hour
	}

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if fc.Port != nil {
		c.Port = *fc.Port
	}
	if fc.TempDir != nil {
		c.TempDir = *fc.TempDir
	}
	if fc.CleanupTimeout != nil {
		d, err := time.ParseDuration(*fc.CleanupTimeout)
		if err != nil {
			return fmt.Errorf("parse config %s: cleanup_timeout: %w", path, err)
		}
		c.CleanupTimeout = d
	}
	if fc.WorkerCount != nil {
		c.WorkerCount = *fc.WorkerCount
	}
	if fc.MaxQueueSize != nil {
		c.MaxQueueSize = *fc.MaxQueueSize
	}
	if fc.MaxConcurrentAnnotate != nil {
		c.MaxConcurrentAnnotate = *fc.MaxConcurrentAnnotate
	}
	if fc.MaxUploadBytes != nil {
		c.MaxUploadBytes = *fc.MaxUploadBytes
	}
	if fc.MaxKeywords != nil {
		c.MaxKeywords = *fc.MaxKeywords
	}
	if fc.MaxHeadingLen != nil {
		c.MaxHeadingLen = *fc.MaxHeadingLen
	}
	if fc.PDFFallbackPdftotext != nil {
		c.PDFFallbackPdftotext = *fc.PDFFallbackPdftotext
	}
	return nil
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.TempDir == "" {
		return fmt.Errorf("TEMP_DIR must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
