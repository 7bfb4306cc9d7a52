package database

import (
	"fmt"
	"os"
	"path/filepath"

	"cds-go/internal/config"
)

// journalFileName is the SQLite file used when the journal type is "sqlite".
const journalFileName = "journal.db"

// NewJournalFromConfig creates a checkpoint journal based on the database config type
// and brings its schema up to date.
func NewJournalFromConfig(cfg config.DatabaseConfig) (*SQLiteJournal, error) {
	var path string
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite database")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		path = filepath.Join(cfg.DataDir, journalFileName)
	case "memory", "":
		path = ":memory:"
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}

	j, err := NewSQLiteJournal(path)
	if err != nil {
		return nil, err
	}
	if err := j.Migrate(); err != nil {
		j.Close()
		return nil, err
	}
	return j, nil
}
