//go:build !linux

package fs

import "tidy-go/internal/engine"

// CreationTime is unavailable without Unix stat data; callers fall back
// to the modification time.
func (m *OSFilesystemManager) CreationTime(path *engine.Path) engine.CreationTime {
	return engine.CreationTime{}
}
