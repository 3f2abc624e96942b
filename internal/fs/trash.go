package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Trash moves a file into the platform's recoverable-deletion area
// instead of unlinking it, preserving undo-ability. Name collisions in
// the trash directory get a timestamp suffix. Returns the path the file
// now lives at.
func (m *OSFilesystemManager) Trash(src string) (string, error) {
	dir, err := trashDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("creating trash directory: %w", err)
	}

	dst := filepath.Join(dir, filepath.Base(src))
	if _, err := os.Lstat(dst); err == nil {
		stamp := time.Now().Format("20060102T150405.000000000")
		dst = filepath.Join(dir, filepath.Base(src)+"."+stamp)
	}

	if err := m.Move(src, dst); err != nil {
		return "", fmt.Errorf("moving to trash: %w", err)
	}
	return dst, nil
}

// trashDir returns the platform trash location: ~/.Trash on Darwin,
// the XDG Trash files directory elsewhere.
func trashDir() (string, error) {
	if runtime.GOOS == "darwin" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(home, ".Trash"), nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "Trash", "files"), nil
}
