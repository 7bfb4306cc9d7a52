package testutil

import (
	"errors"
	"sync"
	"testing"

	"cds-go/internal/cds"
	"cds-go/internal/database"
)

// NewTestJournal creates a new in-memory SQLite journal with schema applied.
// The journal is automatically closed when the test completes.
func NewTestJournal(t *testing.T) *database.SQLiteJournal {
	t.Helper()

	j, err := database.NewSQLiteJournal(":memory:")
	if err != nil {
		t.Fatalf("failed to open journal: %v", err)
	}
	t.Cleanup(func() {
		j.Close()
	})

	if err := j.Migrate(); err != nil {
		t.Fatalf("failed to migrate journal: %v", err)
	}
	return j
}

// FailingJournal rejects every checkpoint. Use it to check that journal
// failures do not break commits.
type FailingJournal struct {
	mu       sync.Mutex
	Attempts int
}

func (j *FailingJournal) RecordCheckpoint(*cds.Checkpoint) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Attempts++
	return errors.New("journal unavailable")
}

func (j *FailingJournal) ListCheckpoints(int) ([]*cds.Checkpoint, error) {
	return nil, errors.New("journal unavailable")
}
