package testutil

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"tidy-go/internal/engine"
)

// FakeFilesystemManager is an in-memory engine.FilesystemManager for
// tests that must not touch the real filesystem or need deterministic
// control over scan timing.
type FakeFilesystemManager struct {
	mu    sync.Mutex
	dirs  map[string]bool
	files map[string]fakeFile

	// ListGate, when non-nil, blocks ListFiles until the channel is
	// closed or receives. Used to hold a pass open mid-scan.
	ListGate chan struct{}
}

type fakeFile struct {
	size    int64
	modTime time.Time
}

// NewFakeFilesystemManager creates an empty fake filesystem with a root
// directory.
func NewFakeFilesystemManager() *FakeFilesystemManager {
	return &FakeFilesystemManager{
		dirs:  map[string]bool{"/": true},
		files: make(map[string]fakeFile),
	}
}

// AddDir registers a directory and its parents.
func (m *FakeFilesystemManager) AddDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addDirLocked(path)
}

func (m *FakeFilesystemManager) addDirLocked(path string) {
	for p := path; p != "/" && p != "."; p = filepath.Dir(p) {
		m.dirs[p] = true
	}
}

// AddFile registers a file, creating parent directories.
func (m *FakeFilesystemManager) AddFile(path string, size int64, modTime time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addDirLocked(filepath.Dir(path))
	m.files[path] = fakeFile{size: size, modTime: modTime}
}

// Exists reports whether a file is present.
func (m *FakeFilesystemManager) Exists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok
}

func (m *FakeFilesystemManager) Resolve(rawPath string) (*engine.Path, error) {
	abs, err := m.ExpandPath(rawPath)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.dirs[abs] {
		return engine.NewPath(abs, true, nil), nil
	}
	if f, ok := m.files[abs]; ok {
		return engine.NewPath(abs, false, fakeFileInfo{name: filepath.Base(abs), file: f}), nil
	}
	return nil, fmt.Errorf("stat path: %s does not exist", abs)
}

func (m *FakeFilesystemManager) ListFiles(dir *engine.Path) ([]*engine.Path, error) {
	if m.ListGate != nil {
		<-m.ListGate
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.dirs[dir.String()] {
		return nil, fmt.Errorf("path is not a directory: %s", dir.String())
	}

	var names []string
	for path := range m.files {
		if filepath.Dir(path) == dir.String() {
			names = append(names, path)
		}
	}
	sort.Strings(names)

	paths := make([]*engine.Path, 0, len(names))
	for _, path := range names {
		f := m.files[path]
		paths = append(paths, engine.NewPath(path, false, fakeFileInfo{name: filepath.Base(path), file: f}))
	}
	return paths, nil
}

func (m *FakeFilesystemManager) ExpandPath(rawPath string) (string, error) {
	path := rawPath
	if path == "~" || strings.HasPrefix(path, "~/") {
		path = filepath.Join("/home/test", strings.TrimPrefix(path, "~"))
	}
	if !filepath.IsAbs(path) {
		path = "/" + path
	}
	return filepath.Clean(path), nil
}

func (m *FakeFilesystemManager) MkdirAll(path string) error {
	m.AddDir(path)
	return nil
}

func (m *FakeFilesystemManager) Move(src, dst string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.files[src]
	if !ok {
		return fmt.Errorf("no such file: %s", src)
	}
	if !m.dirs[filepath.Dir(dst)] {
		return fmt.Errorf("no such directory: %s", filepath.Dir(dst))
	}
	delete(m.files, src)
	m.files[dst] = f
	return nil
}

func (m *FakeFilesystemManager) Copy(src, dst string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.files[src]
	if !ok {
		return fmt.Errorf("no such file: %s", src)
	}
	m.files[dst] = f
	return nil
}

func (m *FakeFilesystemManager) Trash(src string) (string, error) {
	dst := filepath.Join("/trash", filepath.Base(src))
	m.mu.Lock()
	m.addDirLocked("/trash")
	m.mu.Unlock()
	if err := m.Move(src, dst); err != nil {
		return "", err
	}
	return dst, nil
}

func (m *FakeFilesystemManager) CreationTime(path *engine.Path) engine.CreationTime {
	return engine.CreationTime{}
}

// fakeFileInfo implements fs.FileInfo for fake entries.
type fakeFileInfo struct {
	name string
	file fakeFile
}

func (i fakeFileInfo) Name() string       { return i.name }
func (i fakeFileInfo) Size() int64        { return i.file.size }
func (i fakeFileInfo) Mode() fs.FileMode  { return 0644 }
func (i fakeFileInfo) ModTime() time.Time { return i.file.modTime }
func (i fakeFileInfo) IsDir() bool        { return false }
func (i fakeFileInfo) Sys() any           { return nil }

// Compile-time check.
var _ engine.FilesystemManager = (*FakeFilesystemManager)(nil)
