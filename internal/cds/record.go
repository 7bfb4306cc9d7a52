package cds

import (
	"fmt"
	"time"
)

// Status is the derived change state of a record relative to a checkpoint.
type Status int

const (
	StatusUnchanged Status = iota
	StatusChanged
)

func (s Status) String() string {
	if s == StatusChanged {
		return "changed"
	}
	return "unchanged"
}

// FileRecord is one tracked file and the metadata captured when it was scanned.
// Only status changes after construction.
type FileRecord struct {
	path       *Path
	name       string
	extension  string
	category   Category
	createdAt  time.Time
	modifiedAt time.Time
	status     Status
	fsmgr      FilesystemManager
}

// NewFileRecord stats path and builds a record classified by its extension.
// It fails with an *IOError if the path is missing or not a regular file.
func NewFileRecord(fsmgr FilesystemManager, path *Path) (*FileRecord, error) {
	info, err := fsmgr.Stat(path)
	if err != nil {
		return nil, &IOError{Op: "stat", Path: path.String(), Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &IOError{Op: "stat", Path: path.String(), Err: errNotRegular}
	}

	name := path.Base()
	ext := Extension(name)
	return &FileRecord{
		path:       path,
		name:       name,
		extension:  ext,
		category:   Classify(ext),
		createdAt:  fsmgr.CreatedAt(info),
		modifiedAt: info.ModTime(),
		status:     StatusUnchanged,
		fsmgr:      fsmgr,
	}, nil
}

func (r *FileRecord) Path() *Path           { return r.path }
func (r *FileRecord) Name() string          { return r.name }
func (r *FileRecord) Extension() string     { return r.extension }
func (r *FileRecord) Category() Category    { return r.category }
func (r *FileRecord) CreatedAt() time.Time  { return r.createdAt }
func (r *FileRecord) ModifiedAt() time.Time { return r.modifiedAt }
func (r *FileRecord) Status() Status        { return r.status }

// UpdateStatus re-reads the file's modification time and marks the record
// changed if it is strictly after checkpoint. On error the status is left as is.
func (r *FileRecord) UpdateStatus(checkpoint time.Time) error {
	info, err := r.fsmgr.Stat(r.path)
	if err != nil {
		return &IOError{Op: "stat", Path: r.path.String(), Err: err}
	}
	if info.ModTime().After(checkpoint) {
		r.status = StatusChanged
	} else {
		r.status = StatusUnchanged
	}
	return nil
}

func (r *FileRecord) reset() {
	r.status = StatusUnchanged
}

func (r *FileRecord) String() string {
	return fmt.Sprintf("%s (%s)", r.name, r.category)
}
