package app

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"cds-go/internal/cds"
	"cds-go/internal/config"
	"cds-go/internal/database"
	"cds-go/internal/fs"
)

// CDSApp is the application layer between the CLI and the repository.
// It constructs all dependencies from config, exposes the repository
// operations, and owns the journal and log file until Close.
type CDSApp struct {
	cfg     *config.Config
	journal *database.SQLiteJournal
	repo    *cds.Repository
	logger  *slog.Logger
	logFile *os.File
}

// NewCDSApp creates a fully wired CDSApp monitoring rootPath.
// The caller must call Close when done.
func NewCDSApp(cfg *config.Config, rootPath string, verbose bool) (*CDSApp, error) {
	sessionID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, sessionID, verbose)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	journal, err := database.NewJournalFromConfig(cfg.Database)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating journal: %w", err)
	}

	if err := journal.CheckMigrations(); err != nil {
		journal.Close()
		logFile.Close()
		return nil, fmt.Errorf("journal schema out of date: %w", err)
	}

	fsmgr := fs.NewOSFilesystemManager(cfg.Filesystem.Ignore)
	repo, err := cds.NewRepository(rootPath, fsmgr, journal, &slogAdapter{l: logger}, cds.RealClock{}, cds.UUIDGenerator{})
	if err != nil {
		logger.Error("scan failed", "root", rootPath, "error", err)
		journal.Close()
		logFile.Close()
		return nil, fmt.Errorf("scanning %s: %w", rootPath, err)
	}

	return &CDSApp{
		cfg:     cfg,
		journal: journal,
		repo:    repo,
		logger:  logger,
		logFile: logFile,
	}, nil
}

// EnsureDir creates the monitored directory if it does not exist yet.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("creating monitored directory: %w", err)
	}
	return nil
}

// RootPath returns the absolute path of the monitored directory.
func (a *CDSApp) RootPath() string {
	return a.repo.RootPath()
}

// Commit advances the checkpoint. It always succeeds.
func (a *CDSApp) Commit() *cds.Checkpoint {
	return a.repo.Commit()
}

// Status returns the change status of every tracked file.
func (a *CDSApp) Status() ([]cds.FileStatus, error) {
	statuses, err := a.repo.Status()
	if err != nil {
		a.logger.Warn("status failed", "error", err)
		return nil, err
	}
	return statuses, nil
}

// Info describes a tracked file.
func (a *CDSApp) Info(filename string) ([]cds.Field, error) {
	fields, err := a.repo.Info(filename)
	if err != nil {
		a.logger.Warn("info failed", "name", filename, "error", err)
		return nil, err
	}
	return fields, nil
}

// History returns up to limit recorded checkpoints, most recent first.
func (a *CDSApp) History(limit int) ([]*cds.Checkpoint, error) {
	return a.repo.History(limit)
}

// Close closes the journal and the log file.
func (a *CDSApp) Close() error {
	var firstErr error
	if err := a.journal.Close(); err != nil {
		firstErr = fmt.Errorf("closing journal: %w", err)
	}
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing log file: %w", err)
		}
	}
	return firstErr
}
