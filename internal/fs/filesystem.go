package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"tidy-go/internal/engine"
)

// OSFilesystemManager is the real filesystem implementation of
// engine.FilesystemManager. It performs actual filesystem operations
// using the os package.
type OSFilesystemManager struct{}

// NewOSFilesystemManager creates a filesystem manager that operates on
// the real filesystem.
func NewOSFilesystemManager() *OSFilesystemManager {
	return &OSFilesystemManager{}
}

// Resolve validates a raw path and returns a Path object.
func (m *OSFilesystemManager) Resolve(rawPath string) (*engine.Path, error) {
	absPath, err := m.ExpandPath(rawPath)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat path: %w", err)
	}

	mode := info.Mode()
	if mode&os.ModeSymlink != 0 {
		return nil, fmt.Errorf("symlinks not supported: %s", absPath)
	}
	if mode&(os.ModeDevice|os.ModeNamedPipe|os.ModeSocket) != 0 {
		return nil, fmt.Errorf("special files not supported: %s", absPath)
	}

	return engine.NewPath(absPath, info.IsDir(), info), nil
}

// ListFiles returns the direct regular-file children of a directory.
// Subdirectories and special files are skipped; never recursive.
func (m *OSFilesystemManager) ListFiles(dir *engine.Path) ([]*engine.Path, error) {
	if !dir.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir.String())
	}

	entries, err := os.ReadDir(dir.String())
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var paths []*engine.Path
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		fullPath := filepath.Join(dir.String(), entry.Name())
		info, err := entry.Info()
		if err != nil {
			// Entry vanished between readdir and stat; capture the path
			// with nil info so downstream treats metadata as missing.
			paths = append(paths, engine.NewPath(fullPath, false, nil))
			continue
		}
		paths = append(paths, engine.NewPath(fullPath, false, info))
	}

	return paths, nil
}

// ExpandPath expands a leading "~" to the user's home directory and
// resolves the result to an absolute path. The path need not exist.
func (m *OSFilesystemManager) ExpandPath(rawPath string) (string, error) {
	path := rawPath
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	return absPath, nil
}

// MkdirAll creates a directory and any missing parents.
func (m *OSFilesystemManager) MkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

// Move moves a file. os.Rename is attempted first; a cross-device
// failure falls back to copy+remove.
func (m *OSFilesystemManager) Move(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := m.Copy(src, dst); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("removing source after copy: %w", err)
	}
	return nil
}

// Copy copies a file's content and permissions.
func (m *OSFilesystemManager) Copy(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copying content: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing destination: %w", err)
	}
	return nil
}

// Compile-time check that OSFilesystemManager implements the interface.
var _ engine.FilesystemManager = (*OSFilesystemManager)(nil)
