package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// New builds the application logger. Output goes to stdout unless
// logFilePath is set; a path without an extension gets a dated .log suffix.
// The returned closer releases the log file, if one was opened.
func New(level, logFilePath string) (zerolog.Logger, io.Closer, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	var target io.WriteCloser = nopCloser{os.Stdout}
	if logFilePath != "" {
		path := logFilePath
		if filepath.Ext(path) == "" {
			path = logFilePath + time.Now().Format("-2006-01-02") + ".log"
		}
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("opening log file: %w", err)
		}
		target = file
	}

	logger := zerolog.New(target).Level(lvl).With().Timestamp().Logger()
	return logger, target, nil
}

// NewConsole builds a human-readable logger for interactive commands, so
// log lines on w do not mix with command output.
func NewConsole(level string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

func parseLevel(level string) (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return lvl, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
