package database

import (
	"context"
	"database/sql"
	"fmt"

	"cds-go/internal/cds"
	"cds-go/internal/database/migrations"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteJournal implements cds.Journal using SQLite.
type SQLiteJournal struct {
	db   *sql.DB
	path string
}

// NewSQLiteJournal opens a SQLite journal.
// path can be a file path or ":memory:" for an in-memory journal.
// The schema is not applied; call Migrate.
func NewSQLiteJournal(path string) (*SQLiteJournal, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}
	return &SQLiteJournal{db: db, path: path}, nil
}

// OpenConnection opens and configures a SQLite database connection with appropriate PRAGMAs.
// path can be a file path or ":memory:" for in-memory database.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every new connection to ":memory:" is a separate, empty database.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// Migrate applies pending schema migrations.
func (j *SQLiteJournal) Migrate() error {
	if err := migrations.MigrateUp(j.db); err != nil {
		return fmt.Errorf("migrating journal: %w", err)
	}
	return nil
}

// CheckMigrations verifies the journal schema is at the latest version.
func (j *SQLiteJournal) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(j.db)
}

// RecordCheckpoint stores the checkpoint and its manifest in one transaction.
func (j *SQLiteJournal) RecordCheckpoint(cp *cds.Checkpoint) error {
	ctx := context.Background()

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO checkpoints (id, created_at, root_path) VALUES (?, ?, ?)`,
		cp.ID, cp.CreatedAt.UTC(), cp.RootPath,
	); err != nil {
		return fmt.Errorf("inserting checkpoint: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO checkpoint_files (checkpoint_id, name, category, size, modified_at, digest)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing file insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range cp.Files {
		var mtime sql.NullTime
		if !f.ModifiedAt.IsZero() {
			mtime = sql.NullTime{Time: f.ModifiedAt.UTC(), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, cp.ID, f.Name, f.Category.String(), f.Size, mtime, f.Digest); err != nil {
			return fmt.Errorf("inserting file %s: %w", f.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ListCheckpoints returns up to limit checkpoints, most recent first, each with
// its manifest ordered by filename. A non-positive limit returns all of them.
func (j *SQLiteJournal) ListCheckpoints(limit int) ([]*cds.Checkpoint, error) {
	ctx := context.Background()
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := j.db.QueryContext(ctx,
		`SELECT id, created_at, root_path FROM checkpoints
		 ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying checkpoints: %w", err)
	}

	var cps []*cds.Checkpoint
	for rows.Next() {
		cp := &cds.Checkpoint{}
		if err := rows.Scan(&cp.ID, &cp.CreatedAt, &cp.RootPath); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning checkpoint: %w", err)
		}
		cps = append(cps, cp)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating checkpoints: %w", err)
	}
	rows.Close()

	// Files are loaded after the outer rows are closed; an in-memory journal
	// has a single connection.
	for _, cp := range cps {
		files, err := j.checkpointFiles(ctx, cp.ID)
		if err != nil {
			return nil, err
		}
		cp.Files = files
	}
	return cps, nil
}

func (j *SQLiteJournal) checkpointFiles(ctx context.Context, checkpointID string) ([]cds.CheckpointFile, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT name, category, size, modified_at, digest FROM checkpoint_files
		 WHERE checkpoint_id = ? ORDER BY name`, checkpointID)
	if err != nil {
		return nil, fmt.Errorf("querying checkpoint files: %w", err)
	}
	defer rows.Close()

	var files []cds.CheckpointFile
	for rows.Next() {
		var (
			f        cds.CheckpointFile
			category string
			mtime    sql.NullTime
		)
		if err := rows.Scan(&f.Name, &category, &f.Size, &mtime, &f.Digest); err != nil {
			return nil, fmt.Errorf("scanning checkpoint file: %w", err)
		}
		f.Category = parseCategory(category)
		if mtime.Valid {
			f.ModifiedAt = mtime.Time
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating checkpoint files: %w", err)
	}
	return files, nil
}

func parseCategory(s string) cds.Category {
	for _, c := range []cds.Category{cds.CategoryText, cds.CategoryImage, cds.CategoryCode} {
		if c.String() == s {
			return c
		}
	}
	return cds.CategoryGeneric
}

// Close closes the database connection.
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

// Compile-time check that SQLiteJournal implements cds.Journal interface
var _ cds.Journal = (*SQLiteJournal)(nil)
