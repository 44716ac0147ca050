package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	logsDir          = "logs"
	fileBufferSize   = 32 * 1024
	consoleQueueSize = 4096
)

type Options struct {
	// Level falls back to LOG_LEVEL and then to info.
	Level string
	// File is created under logs/. Empty disables the file sink.
	File string
	// Console mirrors every entry to stdout.
	Console bool
}

// Closer flushes the asynchronous sinks attached by NewLogger.
type Closer func()

func NewLogger(opts Options) (*logrus.Logger, Closer, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "time",
			logrus.FieldKeyMsg:  "msg",
		},
	})
	logger.SetLevel(parseLevel(opts.Level))

	var closers []func()
	logger.SetOutput(io.Discard)

	if opts.File != "" {
		path, err := logPath(opts.File)
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(logsDir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create logs directory: %w", err)
		}
		writer, err := NewAsyncFileWriter(path, fileBufferSize)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logger.SetOutput(writer)
		closers = append(closers, writer.Close)
	}

	if opts.Console {
		hook := NewAsyncConsoleHook(os.Stdout, consoleQueueSize)
		logger.AddHook(hook)
		closers = append(closers, hook.Close)
	}

	return logger, func() {
		for _, c := range closers {
			c()
		}
	}, nil
}

func parseLevel(level string) logrus.Level {
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	parsed, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}

func logPath(file string) (string, error) {
	path := filepath.Clean(filepath.Join(logsDir, file))
	if !strings.HasPrefix(path, logsDir+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid log file path %q: must be in %s directory", file, logsDir)
	}
	return path, nil
}
