// Package logger builds the structured logger used for record events.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options selects the level, output and format of the logger.
type Options struct {
	Level  string
	Output string
	Format string
}

// New builds a slog.Logger from opts. Unknown values fall back to the
// defaults (info level, stdout, text format) and are reported as warnings
// on the returned logger.
func New(opts Options) *slog.Logger {
	var output io.Writer
	var warnings []string

	switch opts.Output {
	case "", "stdout":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	case os.DevNull:
		return slog.New(slog.DiscardHandler)
	default:
		f, err := os.OpenFile(opts.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			output = os.Stdout
			warnings = append(warnings, "could not open log output: "+err.Error())
		} else {
			output = f
		}
	}

	logger, more := build(output, opts)
	for _, w := range append(warnings, more...) {
		logger.Warn(w)
	}
	return logger
}

// NewWithWriter is New with an explicit destination; Output is ignored.
func NewWithWriter(w io.Writer, opts Options) *slog.Logger {
	logger, warnings := build(w, opts)
	for _, msg := range warnings {
		logger.Warn(msg)
	}
	return logger
}

func build(w io.Writer, opts Options) (*slog.Logger, []string) {
	var warnings []string

	level, ok := ParseLevel(opts.Level)
	if !ok {
		warnings = append(warnings, "unknown log level "+opts.Level)
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "text":
		handler = slog.NewTextHandler(w, handlerOpts)
	case "json":
		handler = slog.NewJSONHandler(w, handlerOpts)
	default:
		handler = slog.NewTextHandler(w, handlerOpts)
		warnings = append(warnings, "unknown log format "+opts.Format)
	}
	return slog.New(handler), warnings
}

// ParseLevel maps a level name to a slog.Level. The empty string is info;
// unknown names also yield info with ok == false.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return slog.LevelInfo, true
	case "debug":
		return slog.LevelDebug, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
