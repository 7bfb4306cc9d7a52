package cds

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// FileStatus is the status of one tracked file as reported by Repository.Status.
type FileStatus struct {
	Name   string
	Status Status
}

// Repository tracks the regular files of one directory against a checkpoint.
// The set of records is fixed by the scan done in NewRepository: files created
// later are never seen, and tracked files deleted later make Status and Info fail.
type Repository struct {
	mu         sync.Mutex
	root       *Path
	records    map[string]*FileRecord
	checkpoint time.Time

	fsmgr   FilesystemManager
	journal Journal
	logger  Logger
	clock   Clock
	idgen   IDGenerator
}

// NewRepository scans rootPath and returns a repository whose checkpoint is the
// construction time. Any file that cannot be recorded aborts construction.
// journal may be nil, in which case commits are not recorded.
func NewRepository(rootPath string, fsmgr FilesystemManager, journal Journal, logger Logger, clock Clock, idgen IDGenerator) (*Repository, error) {
	root, err := fsmgr.Resolve(rootPath)
	if err != nil {
		return nil, &IOError{Op: "resolve", Path: rootPath, Err: err}
	}
	if !root.IsDir() {
		return nil, &IOError{Op: "resolve", Path: root.String(), Err: errors.New("not a directory")}
	}

	r := &Repository{
		root:       root,
		records:    make(map[string]*FileRecord),
		checkpoint: clock.Now(),
		fsmgr:      fsmgr,
		journal:    journal,
		logger:     logger,
		clock:      clock,
		idgen:      idgen,
	}

	if err := r.scan(); err != nil {
		return nil, err
	}

	logger.Info("repository scanned", "root", root.String(), "files", len(r.records))
	return r, nil
}

// scan records every regular file directly inside the root.
func (r *Repository) scan() error {
	paths, err := r.fsmgr.FindFiles(r.root)
	if err != nil {
		return &IOError{Op: "scan", Path: r.root.String(), Err: err}
	}

	for _, p := range paths {
		rec, err := NewFileRecord(r.fsmgr, p)
		if err != nil {
			return fmt.Errorf("recording %s: %w", p.Base(), err)
		}
		r.records[rec.Name()] = rec
		r.logger.Debug("file recorded", "name", rec.Name(), "category", rec.Category().String())
	}
	return nil
}

// RootPath returns the absolute path of the monitored directory.
func (r *Repository) RootPath() string {
	return r.root.String()
}

// Checkpoint returns the time of the last commit.
func (r *Repository) Checkpoint() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.checkpoint
}

// Names returns the tracked filenames in sorted order.
func (r *Repository) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortedNames()
}

func (r *Repository) sortedNames() []string {
	names := make([]string, 0, len(r.records))
	for name := range r.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Commit advances the checkpoint to now and marks every record unchanged.
// It always succeeds; a journal that fails to record the checkpoint is logged.
func (r *Repository) Commit() *Checkpoint {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	if now.Before(r.checkpoint) {
		now = r.checkpoint
	}
	r.checkpoint = now
	for _, rec := range r.records {
		rec.reset()
	}

	cp := &Checkpoint{
		ID:        r.idgen.New(),
		CreatedAt: now,
		RootPath:  r.root.String(),
		Files:     r.manifest(),
	}

	if r.journal != nil {
		if err := r.journal.RecordCheckpoint(cp); err != nil {
			r.logger.Warn("recording checkpoint failed", "id", cp.ID, "error", err)
		}
	}

	r.logger.Info("checkpoint committed", "id", cp.ID, "files", len(cp.Files))
	return cp
}

// manifest captures size, mtime and digest of every record. Files that cannot
// be read keep zero values.
func (r *Repository) manifest() []CheckpointFile {
	files := make([]CheckpointFile, 0, len(r.records))
	for _, name := range r.sortedNames() {
		rec := r.records[name]
		entry := CheckpointFile{Name: name, Category: rec.Category()}

		info, err := r.fsmgr.Stat(rec.Path())
		if err != nil {
			r.logger.Warn("stat for manifest failed", "name", name, "error", err)
			files = append(files, entry)
			continue
		}
		entry.Size = info.Size()
		entry.ModifiedAt = info.ModTime()

		digest, err := r.digest(rec)
		if err != nil {
			r.logger.Warn("digest for manifest failed", "name", name, "error", err)
		}
		entry.Digest = digest
		files = append(files, entry)
	}
	return files
}

func (r *Repository) digest(rec *FileRecord) (string, error) {
	f, err := r.fsmgr.Open(rec.Path())
	if err != nil {
		return "", err
	}
	defer f.Close()
	return Fingerprint(f)
}

// Status refreshes every record against the current checkpoint and returns
// the results sorted by filename.
func (r *Repository) Status() ([]FileStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := r.sortedNames()
	statuses := make([]FileStatus, 0, len(names))
	for _, name := range names {
		rec := r.records[name]
		if err := rec.UpdateStatus(r.checkpoint); err != nil {
			return nil, fmt.Errorf("updating status of %s: %w", name, err)
		}
		statuses = append(statuses, FileStatus{Name: name, Status: rec.Status()})
	}

	r.logger.Debug("status computed", "files", len(statuses))
	return statuses, nil
}

// Info describes the record tracked under filename.
// It returns an error wrapping ErrNotFound if the name is not tracked.
func (r *Repository) Info(filename string) ([]Field, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[filename]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, filename)
	}

	fields, err := rec.Describe()
	if err != nil {
		return nil, fmt.Errorf("describing %s: %w", filename, err)
	}
	return fields, nil
}

// History returns up to limit recorded checkpoints, most recent first.
func (r *Repository) History(limit int) ([]*Checkpoint, error) {
	if r.journal == nil {
		return nil, errors.New("no checkpoint journal configured")
	}
	cps, err := r.journal.ListCheckpoints(limit)
	if err != nil {
		return nil, fmt.Errorf("listing checkpoints: %w", err)
	}
	return cps, nil
}
