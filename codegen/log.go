package codegen

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LogFormat is the structured-logging output format for a Config's
// diagnostic logger.
type LogFormat string

const (
	LogFormatJSON   LogFormat = "json"
	LogFormatLogfmt LogFormat = "logfmt"
)

// NewLogger builds the slog.Logger a Config attaches diagnostics to,
// from a level/format pair as they'd arrive off the CLI.
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := parseLogLevel(level)
	if err != nil {
		return nil, err
	}
	fmtv, err := parseLogFormat(format)
	if err != nil {
		return nil, err
	}
	return slog.New(newHandler(w, lvl, fmtv)), nil
}

func newHandler(w io.Writer, lvl slog.Level, format LogFormat) slog.Handler {
	opts := &slog.HandlerOptions{Level: lvl}
	if format == LogFormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return slog.LevelInfo, nil
	case "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "debug":
		return slog.LevelDebug, nil
	}
	return 0, fmt.Errorf("codegen: unknown log level %q", level)
}

func parseLogFormat(format string) (LogFormat, error) {
	switch LogFormat(strings.ToLower(format)) {
	case "", LogFormatLogfmt:
		return LogFormatLogfmt, nil
	case LogFormatJSON:
		return LogFormatJSON, nil
	}
	return "", fmt.Errorf("codegen: unknown log format %q", format)
}
