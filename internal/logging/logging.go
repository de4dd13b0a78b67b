// Package logging builds the process zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/vocab/internal/config"
)

// Setup creates a zerolog logger according to the provided configuration.
// Output goes to cfg.File, or to stderr when File is empty, plus any extra
// writers. The returned cleanup closes the file sink.
func Setup(cfg config.LogConfig, extra ...io.Writer) (zerolog.Logger, func(), error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return zerolog.Logger{}, nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	var sink io.Writer = os.Stderr
	cleanup := func() {}

	if path := strings.TrimSpace(cfg.File); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return zerolog.Logger{}, nil, fmt.Errorf("create log dir: %w", err)
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Logger{}, nil, fmt.Errorf("open log file: %w", err)
		}
		sink = file
		cleanup = func() {
			_ = file.Close()
		}
	}

	if strings.EqualFold(cfg.Format, config.FormatText) {
		sink = zerolog.ConsoleWriter{Out: sink, TimeFormat: time.RFC3339, NoColor: true}
	}

	writers := append([]io.Writer{sink}, extra...)
	multi := zerolog.MultiLevelWriter(writers...)
	logger := zerolog.New(multi).With().Timestamp().Logger().Level(level)
	return logger, cleanup, nil
}
