package cds

import (
	"io"
	"io/fs"
	"time"
)

// FilesystemManager provides an interface for filesystem operations.
// It abstracts file access so the repository never touches the os package directly.
type FilesystemManager interface {
	// Resolve validates a raw path and returns a Path object.
	// It resolves the path to an absolute path, stats it, and rejects
	// devices, pipes and sockets.
	Resolve(rawPath string) (*Path, error)

	// Open opens a file for reading.
	Open(path *Path) (io.ReadCloser, error)

	// Stat returns fresh file info for a path.
	// Unlike path.Info() which returns cached info from when the path was resolved,
	// this always fetches current info from the filesystem.
	Stat(path *Path) (fs.FileInfo, error)

	// FindFiles returns the regular files directly inside dir.
	// Subdirectories are skipped, not descended into. Ignored files are left out.
	FindFiles(dir *Path) ([]*Path, error)

	// CreatedAt returns the creation timestamp the platform reports for info.
	// On Linux this is the inode change time.
	CreatedAt(info fs.FileInfo) time.Time
}
