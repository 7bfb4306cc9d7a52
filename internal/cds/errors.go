package cds

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a filename is not tracked by the repository.
var ErrNotFound = errors.New("file not tracked")

var errNotRegular = errors.New("not a regular file")

// IOError reports a filesystem failure for a tracked path: missing, unreadable,
// or vanished between scan and query.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// DecodeError reports file content that is not valid UTF-8.
// Offset is the position of the first invalid byte.
type DecodeError struct {
	Path   string
	Offset int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: invalid UTF-8 at byte %d", e.Path, e.Offset)
}
