package codegen

import (
	"log/slog"
)

// OutputMode selects how declarations are distributed across files
// (§4.6.8).
type OutputMode int

const (
	ModeHeaderOnly OutputMode = iota
	ModeSplit
	ModeFilePerType
)

// Config holds the user-configurable knobs for a codegen run:
// codegen_options from §9, plus the ambient logger. An Option is a
// closure that mutates a Config and returns the closure that would
// undo the change, the functional-options idiom this module's teacher
// uses for xsdgen.Config.
type Config struct {
	logger       *slog.Logger
	namespaceMap map[string]string
	mode         OutputMode
}

type Option func(*Config) Option

// DefaultOptions produce split output with no namespace remapping and
// a no-op logger.
var DefaultOptions = []Option{
	OutputMode_(ModeSplit),
}

func newConfig(opts []Option) *Config {
	cfg := &Config{namespaceMap: make(map[string]string), logger: slog.New(slog.NewTextHandler(discardWriter{}, nil))}
	for _, opt := range DefaultOptions {
		opt(cfg)
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Option applies a single option to an existing Config, returning the
// option that would revert the change.
func (cfg *Config) Option(opt Option) Option {
	return opt(cfg)
}

// NamespaceMap sets the URI -> dotted module path overrides consulted
// by naming (§4.6.11).
func NamespaceMap(m map[string]string) Option {
	return func(cfg *Config) Option {
		prev := cfg.namespaceMap
		next := make(map[string]string, len(m))
		for k, v := range m {
			next[k] = v
		}
		cfg.namespaceMap = next
		return NamespaceMap(prev)
	}
}

// OutputMode_ sets the file-shaping mode (§4.6.8). Named with a
// trailing underscore to avoid colliding with the OutputMode type.
func OutputMode_(mode OutputMode) Option {
	return func(cfg *Config) Option {
		prev := cfg.mode
		cfg.mode = mode
		return OutputMode_(prev)
	}
}

// Logger attaches a structured logger (see NewLogger) that codegen
// uses for progress diagnostics.
func Logger(l *slog.Logger) Option {
	return func(cfg *Config) Option {
		prev := cfg.logger
		cfg.logger = l
		return Logger(prev)
	}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
