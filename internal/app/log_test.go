package app

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCdsHandler_Handle(t *testing.T) {
	ts := time.Date(2024, 6, 15, 14, 30, 45, 0, time.UTC)

	tests := []struct {
		name      string
		sessionID string
		level     slog.Level
		message   string
		attrs     []slog.Attr
		want      string
	}{
		{
			name:      "basic info message",
			sessionID: "s-123",
			level:     slog.LevelInfo,
			message:   "checkpoint committed",
			want:      "2024-06-15T14:30:45Z\tINFO\ts-123\tcheckpoint committed\n",
		},
		{
			name:      "debug level",
			sessionID: "s-456",
			level:     slog.LevelDebug,
			message:   "status computed",
			want:      "2024-06-15T14:30:45Z\tDEBUG\ts-456\tstatus computed\n",
		},
		{
			name:      "with record attrs",
			sessionID: "s-789",
			level:     slog.LevelWarn,
			message:   "info failed",
			attrs:     []slog.Attr{slog.String("name", "notes.txt"), slog.Int("files", 3)},
			want:      "2024-06-15T14:30:45Z\tWARN\ts-789\tinfo failed\tname=notes.txt\tfiles=3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &cdsHandler{w: &buf, sessionID: tt.sessionID}

			r := slog.NewRecord(ts, tt.level, tt.message, 0)
			for _, a := range tt.attrs {
				r.AddAttrs(a)
			}

			if err := h.Handle(context.Background(), r); err != nil {
				t.Fatalf("Handle() error = %v", err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("Handle() output =\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}

func TestCdsHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := &cdsHandler{w: &buf, sessionID: "s-1"}

	h2 := h.WithAttrs([]slog.Attr{slog.String("component", "journal")}).(*cdsHandler)

	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := slog.NewRecord(ts, slog.LevelInfo, "recorded", 0)
	r.AddAttrs(slog.String("id", "abc"))

	if err := h2.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	got := buf.String()
	if !strings.Contains(got, "component=journal") {
		t.Errorf("expected pre-set attr component=journal, got: %q", got)
	}
	if !strings.Contains(got, "id=abc") {
		t.Errorf("expected record attr id=abc, got: %q", got)
	}
	if len(h.attrs) != 0 {
		t.Errorf("original handler attrs modified: got %d, want 0", len(h.attrs))
	}
}

func TestCdsHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(&cdsHandler{w: &buf, sessionID: "s-1"})

	logger.WithGroup("repo").Info("scanned", "files", 2)

	if got := buf.String(); !strings.Contains(got, "\trepo.files=2") {
		t.Errorf("expected grouped attr repo.files=2, got: %q", got)
	}
}

func TestCdsHandler_Enabled(t *testing.T) {
	t.Run("no level enables everything", func(t *testing.T) {
		h := &cdsHandler{}
		for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
			if !h.Enabled(context.Background(), level) {
				t.Errorf("Enabled(%v) = false, want true", level)
			}
		}
	})

	t.Run("threshold filters lower levels", func(t *testing.T) {
		h := &cdsHandler{level: slog.LevelInfo}
		if h.Enabled(context.Background(), slog.LevelDebug) {
			t.Error("Enabled(DEBUG) = true, want false")
		}
		if !h.Enabled(context.Background(), slog.LevelWarn) {
			t.Error("Enabled(WARN) = false, want true")
		}
	})
}

func TestNewLogger(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "log")

	logger, f, err := newLogger(dir, "test-session", false)
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}
	defer f.Close()

	logger.Debug("hidden")
	logger.Info("visible", "k", "v")

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	got := string(data)
	if strings.Contains(got, "hidden") {
		t.Errorf("debug record written without verbose: %q", got)
	}
	if !strings.Contains(got, "\ttest-session\tvisible\tk=v\n") {
		t.Errorf("log file = %q, want info record", got)
	}
}
