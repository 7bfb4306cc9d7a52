package testutil

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"cds-go/internal/cds"
)

// MockFile represents a file in the mock filesystem.
type MockFile struct {
	Content     []byte
	Permissions fs.FileMode
	ModTime     time.Time
	IsDirectory bool
	// Ctime is reported by CreatedAt; set once when the file is created.
	Ctime time.Time
}

// MockFilesystemManager is an in-memory filesystem for testing. Safe for concurrent use.
type MockFilesystemManager struct {
	mu    sync.Mutex
	files map[string]*MockFile
}

// NewMockFilesystemManager creates a new mock filesystem.
func NewMockFilesystemManager() *MockFilesystemManager {
	return &MockFilesystemManager{
		files: make(map[string]*MockFile),
	}
}

// AddFile adds a file to the mock filesystem with the current time as mtime.
func (m *MockFilesystemManager) AddFile(path string, content []byte) {
	m.AddFileAt(path, content, time.Now())
}

// AddFileAt adds a file with the given modification and creation time.
func (m *MockFilesystemManager) AddFileAt(path string, content []byte, modTime time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = &MockFile{
		Content:     content,
		Permissions: 0644,
		ModTime:     modTime,
		Ctime:       modTime,
	}
}

// AddDirectory adds a directory to the mock filesystem.
func (m *MockFilesystemManager) AddDirectory(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	m.files[path] = &MockFile{
		Permissions: 0755,
		ModTime:     now,
		IsDirectory: true,
		Ctime:       now,
	}
}

// UpdateFile replaces a file's content and modification time.
func (m *MockFilesystemManager) UpdateFile(path string, content []byte, modTime time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.files[path]; ok {
		f.Content = content
		f.ModTime = modTime
	}
}

// RemoveFile deletes a path from the mock filesystem.
func (m *MockFilesystemManager) RemoveFile(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path)
}

func (m *MockFilesystemManager) Resolve(rawPath string) (*cds.Path, error) {
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	file, ok := m.files[absPath]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", absPath)
	}
	return cds.NewPath(absPath, file.IsDirectory, newMockFileInfo(absPath, file)), nil
}

func (m *MockFilesystemManager) Open(path *cds.Path) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	file, ok := m.files[path.String()]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path.String())
	}
	if file.IsDirectory {
		return nil, fmt.Errorf("cannot open directory: %s", path.String())
	}
	return io.NopCloser(bytes.NewReader(file.Content)), nil
}

func (m *MockFilesystemManager) Stat(path *cds.Path) (fs.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	file, ok := m.files[path.String()]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path.String())
	}
	return newMockFileInfo(path.String(), file), nil
}

// FindFiles returns the regular files whose parent is dir, sorted by path.
func (m *MockFilesystemManager) FindFiles(dir *cds.Path) ([]*cds.Path, error) {
	if !dir.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir.String())
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	var paths []*cds.Path
	for p, file := range m.files {
		if file.IsDirectory || filepath.Dir(p) != dir.String() {
			continue
		}
		paths = append(paths, cds.NewPath(p, false, newMockFileInfo(p, file)))
	}
	sort.Slice(paths, func(i, j int) bool { return paths[i].String() < paths[j].String() })
	return paths, nil
}

func (m *MockFilesystemManager) CreatedAt(info fs.FileInfo) time.Time {
	if mi, ok := info.(*mockFileInfo); ok {
		return mi.ctime
	}
	return info.ModTime()
}

// mockFileInfo implements fs.FileInfo as a snapshot of a MockFile.
type mockFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	ctime   time.Time
}

func newMockFileInfo(path string, f *MockFile) *mockFileInfo {
	mode := f.Permissions
	if f.IsDirectory {
		mode |= fs.ModeDir
	}
	return &mockFileInfo{
		name:    filepath.Base(path),
		size:    int64(len(f.Content)),
		mode:    mode,
		modTime: f.ModTime,
		ctime:   f.Ctime,
	}
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.mode.IsDir() }
func (m *mockFileInfo) Sys() any           { return nil }

// Compile-time check
var _ cds.FilesystemManager = (*MockFilesystemManager)(nil)
