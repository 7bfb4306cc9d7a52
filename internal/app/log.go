package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// logFileName is the log file created inside the configured log directory.
const logFileName = "cds.log"

// cdsHandler is a custom slog.Handler that formats log records as:
//
//	<timestamp>\t<level>\t<sessionID>\t<message>\t<key=value ...>
type cdsHandler struct {
	w         io.Writer
	level     slog.Leveler
	sessionID string
	prefix    string // dotted group path applied to record attrs
	attrs     []slog.Attr
}

func (h *cdsHandler) Enabled(_ context.Context, l slog.Level) bool {
	if h.level == nil {
		return true
	}
	return l >= h.level.Level()
}

func (h *cdsHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\t%s\t%s\t%s",
		r.Time.UTC().Format("2006-01-02T15:04:05Z"), r.Level.String(), h.sessionID, r.Message)

	for _, a := range h.attrs {
		fmt.Fprintf(&b, "\t%s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&b, "\t%s%s=%v", h.prefix, a.Key, a.Value)
		return true
	})
	b.WriteByte('\n')

	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *cdsHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	scoped := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		scoped = append(scoped, slog.Attr{Key: h.prefix + a.Key, Value: a.Value})
	}
	return &cdsHandler{
		w:         h.w,
		level:     h.level,
		sessionID: h.sessionID,
		prefix:    h.prefix,
		attrs:     append(append([]slog.Attr{}, h.attrs...), scoped...),
	}
}

func (h *cdsHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &cdsHandler{
		w:         h.w,
		level:     h.level,
		sessionID: h.sessionID,
		prefix:    h.prefix + name + ".",
		attrs:     h.attrs,
	}
}

// newLogger creates a structured logger that writes to logDir/cds.log.
// With verbose set it also writes to stderr and lowers the threshold to Debug.
// It returns the slog.Logger, the open log file (for cleanup), and any error.
func newLogger(logDir string, sessionID string, verbose bool) (*slog.Logger, *os.File, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	logPath := filepath.Join(logDir, logFileName)
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	var w io.Writer = f
	level := slog.LevelInfo
	if verbose {
		w = io.MultiWriter(f, os.Stderr)
		level = slog.LevelDebug
	}

	handler := &cdsHandler{w: w, level: level, sessionID: sessionID}
	return slog.New(handler), f, nil
}

// slogAdapter wraps *slog.Logger to satisfy the cds.Logger interface.
type slogAdapter struct {
	l *slog.Logger
}

func (a *slogAdapter) Debug(msg string, args ...any) { a.l.Debug(msg, args...) }
func (a *slogAdapter) Info(msg string, args ...any)  { a.l.Info(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { a.l.Warn(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { a.l.Error(msg, args...) }
