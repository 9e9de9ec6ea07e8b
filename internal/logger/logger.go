package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"brainshift/internal/config"

	"github.com/hashicorp/go-hclog"
)

// New builds the root application logger. Output goes to stdout and, when
// cfg.File is set, is also appended to that file. The returned writer is the
// same sink so gin's access log can share it.
func New(cfg config.LogConfig) (hclog.Logger, io.Writer, error) {
	var out io.Writer = os.Stdout
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = io.MultiWriter(os.Stdout, f)
	}

	level := hclog.LevelFromString(cfg.Level)
	if level == hclog.NoLevel {
		level = hclog.Info
	}

	l := hclog.New(&hclog.LoggerOptions{
		Name:       "brainshift",
		Level:      level,
		Output:     out,
		JSONFormat: cfg.JSON,
	})
	return l, out, nil
}

// Discard returns a logger that drops everything, for tests and one-shot commands.
func Discard() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.Off})
}
