//go:build linux

package fs

import (
	"syscall"
	"time"

	"tidy-go/internal/engine"
)

// CreationTime extracts the creation timestamp for a resolved path.
// Most Unix filesystems don't expose birth time, so ctime (inode change
// time) stands in. Returns an invalid CreationTime when stat data is
// unavailable; callers fall back to the modification time.
func (m *OSFilesystemManager) CreationTime(path *engine.Path) engine.CreationTime {
	info := path.Info()
	if info == nil {
		return engine.CreationTime{}
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return engine.CreationTime{}
	}
	return engine.CreationTime{
		Time:  time.Unix(stat.Ctim.Sec, stat.Ctim.Nsec),
		Valid: true,
	}
}
