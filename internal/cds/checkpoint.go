package cds

import (
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/zeebo/xxh3"
)

// Checkpoint is a recorded commit: the instant it happened and the state of
// every tracked file at that instant.
type Checkpoint struct {
	ID        string
	CreatedAt time.Time
	RootPath  string
	Files     []CheckpointFile
}

// CheckpointFile is the manifest entry for one file in a Checkpoint.
// Size, ModifiedAt and Digest are zero when the file could not be read at commit time.
type CheckpointFile struct {
	Name       string
	Category   Category
	Size       int64
	ModifiedAt time.Time
	Digest     string
}

// Journal records checkpoints so past commits can be listed.
// The repository never reads its checkpoint back from a journal.
type Journal interface {
	// RecordCheckpoint stores a checkpoint and its manifest.
	RecordCheckpoint(cp *Checkpoint) error

	// ListCheckpoints returns up to limit checkpoints, most recent first.
	ListCheckpoints(limit int) ([]*Checkpoint, error)
}

// Fingerprint returns the hex-encoded XXH3-128 digest of everything read from r.
func Fingerprint(r io.Reader) (string, error) {
	h := xxh3.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("hashing content: %w", err)
	}
	sum := h.Sum128().Bytes()
	return hex.EncodeToString(sum[:]), nil
}
