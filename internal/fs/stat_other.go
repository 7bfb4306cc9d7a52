//go:build !linux

package fs

import (
	"io/fs"
	"time"
)

// CreatedAt returns the modification time on platforms without a portable
// change time in syscall.Stat_t.
func (m *OSFilesystemManager) CreatedAt(info fs.FileInfo) time.Time {
	return info.ModTime()
}
