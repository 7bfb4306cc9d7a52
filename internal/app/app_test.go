package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cds-go/internal/cds"
	"cds-go/internal/config"
)

func newTestApp(t *testing.T, files map[string]string) (*CDSApp, string) {
	t.Helper()

	base := t.TempDir()
	root := filepath.Join(base, "watched")
	if err := EnsureDir(root); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	a, err := NewCDSApp(config.NewConfig(base), root, false)
	if err != nil {
		t.Fatalf("NewCDSApp() error = %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a, root
}

func TestNewCDSApp(t *testing.T) {
	t.Run("fails for missing directory", func(t *testing.T) {
		base := t.TempDir()
		_, err := NewCDSApp(config.NewConfig(base), filepath.Join(base, "missing"), false)
		if err == nil {
			t.Fatal("expected error for missing directory")
		}
		var ioErr *cds.IOError
		if !errors.As(err, &ioErr) {
			t.Errorf("error = %v, want *cds.IOError", err)
		}
	})

	t.Run("fails for unknown journal type", func(t *testing.T) {
		base := t.TempDir()
		cfg := config.NewConfig(base)
		cfg.Database.Type = "postgres"
		if _, err := NewCDSApp(cfg, base, false); err == nil {
			t.Fatal("expected error for unknown journal type")
		}
	})

	t.Run("writes log file", func(t *testing.T) {
		a, _ := newTestApp(t, map[string]string{"a.txt": "a"})
		if _, err := os.Stat(filepath.Join(a.cfg.LogDir, logFileName)); err != nil {
			t.Errorf("log file missing: %v", err)
		}
	})
}

func TestCDSApp_Operations(t *testing.T) {
	a, root := newTestApp(t, map[string]string{
		"notes.txt": "a b c\n",
		"photo.png": "not really a png",
	})

	fields, err := a.Info("notes.txt")
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	if len(fields) != 7 {
		t.Errorf("Info() returned %d fields, want 7", len(fields))
	}

	if _, err := a.Info("missing.txt"); !errors.Is(err, cds.ErrNotFound) {
		t.Errorf("Info(missing) error = %v, want ErrNotFound", err)
	}

	cp := a.Commit()
	if len(cp.Files) != 2 {
		t.Errorf("checkpoint has %d files, want 2", len(cp.Files))
	}

	// Push the mtime well past the checkpoint so the comparison does not depend
	// on filesystem timestamp granularity.
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(filepath.Join(root, "notes.txt"), future, future); err != nil {
		t.Fatal(err)
	}

	statuses, err := a.Status()
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("got %d statuses, want 2", len(statuses))
	}
	if statuses[0].Name != "notes.txt" || statuses[0].Status != cds.StatusChanged {
		t.Errorf("statuses[0] = %+v, want notes.txt changed", statuses[0])
	}
	if statuses[1].Name != "photo.png" || statuses[1].Status != cds.StatusUnchanged {
		t.Errorf("statuses[1] = %+v, want photo.png unchanged", statuses[1])
	}

	history, err := a.History(10)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 1 || history[0].ID != cp.ID {
		t.Errorf("History() = %d checkpoints, want the committed one", len(history))
	}
}
