// Package logging configures zerolog for the dojopool CLI and TUI.
//
// Interactive screens own the terminal, so by default log output is routed
// to a file and only surfaced on stderr when no TUI is running. Trace IDs
// are ULIDs carried in the context and attached to every event logged with
// .Ctx(ctx).
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	Level  string // debug, info, warn, error (default info)
	Format string // console or json (default console)
	Output string // stderr or file (default stderr)
	File   string // log file path when Output == "file"
	Caller bool   // annotate events with file:line
}

// Result is a constructed logger plus the sink it ended up writing to.
// When a file sink was requested but could not be opened, the logger falls
// back to stderr and FallbackReason says why.
type Result struct {
	Logger         zerolog.Logger
	UsingFile      bool
	FilePath       string
	FallbackReason string

	file *os.File
}

// Close releases the log file handle, if any.
func (r *Result) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// New builds a logger from cfg. It never fails: unparseable levels default
// to info and an unopenable log file falls back to stderr.
func New(cfg Config) Result {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	res := Result{}
	var sink io.Writer = os.Stderr

	if cfg.Output == "file" && cfg.File != "" {
		if dirErr := os.MkdirAll(filepath.Dir(cfg.File), 0o700); dirErr != nil {
			res.FallbackReason = fmt.Sprintf("create log directory: %v", dirErr)
		} else if f, openErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600); openErr != nil {
			res.FallbackReason = fmt.Sprintf("open log file: %v", openErr)
		} else {
			res.file = f
			res.UsingFile = true
			res.FilePath = cfg.File
			sink = f
		}
	}

	if cfg.Format != "json" {
		// Console format; colors are dropped automatically on non-TTY sinks.
		sink = zerolog.ConsoleWriter{Out: sink, TimeFormat: time.RFC3339, NoColor: res.UsingFile}
	}

	lc := zerolog.New(sink).Level(lvl).With().Timestamp()
	if cfg.Caller {
		lc = lc.Caller()
	}
	res.Logger = lc.Logger().Hook(traceHook{})
	return res
}

// ComponentLogger returns a child logger tagged with a component name.
func ComponentLogger(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str("component", component).Logger()
}

// WithContext stores l in ctx for later retrieval with FromContext.
func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

// FromContext returns the logger stored in ctx, or a disabled logger when
// none was stored. Safe to call with any context.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// PrintLogPathMessage tells an interactive user where logs are going.
func PrintLogPathMessage(w io.Writer, path string) {
	fmt.Fprintf(w, "Logs: %s\n", path)
}

// PrintFallbackWarning reports that file logging was requested but stderr
// is being used instead.
func PrintFallbackWarning(w io.Writer, reason string) {
	fmt.Fprintf(w, "Warning: logging to stderr (%s)\n", reason)
}

type traceIDKey struct{}

// NewTraceID returns a fresh ULID trace identifier.
func NewTraceID() string {
	return ulid.Make().String()
}

// ContextWithTraceID attaches a trace ID to ctx.
func ContextWithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, id)
}

// TraceIDFromContext returns the trace ID in ctx, or "".
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}

// GetOrGenerateTraceID returns the trace ID in ctx, minting one if absent.
func GetOrGenerateTraceID(ctx context.Context) string {
	if id := TraceIDFromContext(ctx); id != "" {
		return id
	}
	return NewTraceID()
}

// traceHook copies the context trace ID onto events logged with .Ctx(ctx).
type traceHook struct{}

func (traceHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	if id := TraceIDFromContext(e.GetCtx()); id != "" {
		e.Str("trace_id", id)
	}
}
