// Package logger pkg/logger/logger.go provides logrus loggers configured
// from the logging section of a service config.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Config mirrors the "logging" block of the agent and server configs.
type Config struct {
	Level string `json:"level"`
	File  string `json:"file,omitempty"`
	// MaxSizeMB and BackupCount are carried in the config document for
	// external rotation tooling; the agent does not rotate itself.
	MaxSizeMB   int `json:"max_size_mb,omitempty"`
	BackupCount int `json:"backup_count,omitempty"`
}

// New builds a logger writing to stderr, and additionally to the
// configured file when one is set. A file that cannot be opened is
// logged and skipped rather than treated as fatal.
func New(cfg Config) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}

	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			log.WithError(err).Warnf("cannot create log directory for %s", cfg.File)
			return log
		}

		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			log.WithError(err).Warnf("cannot open log file %s", cfg.File)
			return log
		}

		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}

	return log
}
