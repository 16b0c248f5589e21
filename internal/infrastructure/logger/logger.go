package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Logger struct {
	*slog.Logger
}

// DefaultLogger creates a logger using slog.Default()
func DefaultLogger() *Logger {
	return &Logger{
		Logger: slog.Default(),
	}
}

// Options selects the handler built by New. Empty fields take the defaults.
type Options struct {
	Level  string
	Format string
	Output string
	// Mute drops records whose message starts with any of these prefixes.
	Mute []string
}

// NewLogger creates a configured logger based on environment variables:
// - ZBXSTATS_LOG_LEVEL: DEBUG, INFO, WARN, ERROR (default: INFO)
// - ZBXSTATS_LOG_FORMAT: json or text (default: text)
// - ZBXSTATS_LOG_OUTPUT: stdout, stderr, or file path (default: stdout)
func NewLogger() *Logger {
	return New(Options{
		Level:  os.Getenv("ZBXSTATS_LOG_LEVEL"),
		Format: os.Getenv("ZBXSTATS_LOG_FORMAT"),
		Output: os.Getenv("ZBXSTATS_LOG_OUTPUT"),
	})
}

// New creates a logger from explicit options, as resolved by the runtime config
func New(opts Options) *Logger {
	return &Logger{
		Logger: slog.New(newHandler(openOutput(opts.Output), opts)),
	}
}

func newHandler(writer io.Writer, opts Options) slog.Handler {
	handlerOpts := &slog.HandlerOptions{
		Level: parseLogLevel(opts.Level),
	}

	var handler slog.Handler
	if strings.ToLower(opts.Format) == "json" {
		handler = slog.NewJSONHandler(writer, handlerOpts)
	} else {
		handler = slog.NewTextHandler(writer, handlerOpts)
	}

	if len(opts.Mute) > 0 {
		handler = NewFilterHandler(handler, opts.Mute...)
	}
	return handler
}

func openOutput(output string) io.Writer {
	switch output {
	case "", "stdout":
		return os.Stdout
	case "stderr":
		return os.Stderr
	default:
		file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			// Fallback to stdout if file can't be opened
			return os.Stdout
		}
		return file
	}
}

// SLog exposes the underlying slog logger for libraries that need one
func (l *Logger) SLog() *slog.Logger {
	return l.Logger
}

// parseLogLevel parses log level from string
func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetDefaultLogger sets the logger as the default slog logger
func SetDefaultLogger(l *Logger) {
	slog.SetDefault(l.Logger)
}

// FilterHandler drops records whose message starts with a muted prefix,
// such as the per-request chatter of a Zabbix JSON-RPC client
type FilterHandler struct {
	next     slog.Handler
	prefixes []string
}

func NewFilterHandler(next slog.Handler, prefixes ...string) *FilterHandler {
	return &FilterHandler{next: next, prefixes: prefixes}
}

func (h *FilterHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *FilterHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, p := range h.prefixes {
		if strings.HasPrefix(r.Message, p) {
			return nil
		}
	}
	return h.next.Handle(ctx, r)
}

func (h *FilterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &FilterHandler{next: h.next.WithAttrs(attrs), prefixes: h.prefixes}
}

func (h *FilterHandler) WithGroup(name string) slog.Handler {
	return &FilterHandler{next: h.next.WithGroup(name), prefixes: h.prefixes}
}
