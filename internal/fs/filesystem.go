package fs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"cds-go/internal/cds"
)

// IgnoreFileName is the per-directory file listing extra ignore patterns.
const IgnoreFileName = ".cdsignore"

// OSFilesystemManager is the real filesystem implementation of FilesystemManager.
// It performs actual filesystem operations using the os package.
type OSFilesystemManager struct {
	ignore []string
}

// NewOSFilesystemManager creates a new filesystem manager that operates on the real filesystem.
// ignore holds patterns from config; they are combined with the directory's .cdsignore.
func NewOSFilesystemManager(ignore []string) *OSFilesystemManager {
	return &OSFilesystemManager{ignore: ignore}
}

// Resolve validates a raw path and returns a Path object.
func (m *OSFilesystemManager) Resolve(rawPath string) (*cds.Path, error) {
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat path: %w", err)
	}

	// Check for special file types we don't support
	mode := info.Mode()
	if mode&os.ModeDevice != 0 {
		return nil, fmt.Errorf("device files not supported: %s", absPath)
	}
	if mode&os.ModeNamedPipe != 0 {
		return nil, fmt.Errorf("named pipes not supported: %s", absPath)
	}
	if mode&os.ModeSocket != 0 {
		return nil, fmt.Errorf("sockets not supported: %s", absPath)
	}

	return cds.NewPath(absPath, info.IsDir(), info), nil
}

// Open opens a file for reading.
func (m *OSFilesystemManager) Open(path *cds.Path) (io.ReadCloser, error) {
	if path.IsDir() {
		return nil, fmt.Errorf("cannot open directory as file: %s", path.String())
	}
	return os.Open(path.String())
}

// Stat returns fresh file info for a path.
func (m *OSFilesystemManager) Stat(path *cds.Path) (fs.FileInfo, error) {
	return os.Stat(path.String())
}

// FindFiles returns the regular files directly inside dir, following symlinks
// and skipping subdirectories, dangling links and ignored names.
func (m *OSFilesystemManager) FindFiles(dir *cds.Path) ([]*cds.Path, error) {
	if !dir.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir.String())
	}

	matcher, err := m.matcherFor(dir.String())
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir.String())
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var paths []*cds.Path
	for _, entry := range entries {
		if matcher.Match(entry.Name()) {
			continue
		}
		fullPath := filepath.Join(dir.String(), entry.Name())
		info, err := os.Stat(fullPath)
		if errors.Is(err, fs.ErrNotExist) {
			// Dangling symlink, or removed since ReadDir.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		paths = append(paths, cds.NewPath(fullPath, false, info))
	}

	return paths, nil
}

func (m *OSFilesystemManager) matcherFor(dir string) (*IgnoreMatcher, error) {
	fromFile, err := ParseIgnoreFile(filepath.Join(dir, IgnoreFileName))
	if err != nil {
		return nil, err
	}
	patterns := append(append([]string{}, defaultIgnorePatterns...), m.ignore...)
	return NewIgnoreMatcher(append(patterns, fromFile...)), nil
}

// Compile-time check that OSFilesystemManager implements cds.FilesystemManager interface
var _ cds.FilesystemManager = (*OSFilesystemManager)(nil)
