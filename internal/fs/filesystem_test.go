package fs_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"tidy-go/internal/fs"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	m := fs.NewOSFilesystemManager()

	got, err := m.ExpandPath("~/Organized/Images")
	if err != nil {
		t.Fatalf("ExpandPath() error = %v", err)
	}
	if got != "/home/tester/Organized/Images" {
		t.Errorf("ExpandPath(~/Organized/Images) = %s", got)
	}

	got, err = m.ExpandPath("~")
	if err != nil {
		t.Fatalf("ExpandPath() error = %v", err)
	}
	if got != "/home/tester" {
		t.Errorf("ExpandPath(~) = %s", got)
	}

	// A bare name is resolved against the working directory, not home.
	got, err = m.ExpandPath("~file")
	if err != nil {
		t.Fatalf("ExpandPath() error = %v", err)
	}
	if filepath.Base(got) != "~file" {
		t.Errorf("ExpandPath(~file) = %s, tilde should not expand mid-name", got)
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()
	m := fs.NewOSFilesystemManager()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "hello")

	t.Run("directory", func(t *testing.T) {
		p, err := m.Resolve(dir)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if !p.IsDir() {
			t.Error("expected a directory path")
		}
	})

	t.Run("regular file", func(t *testing.T) {
		p, err := m.Resolve(filepath.Join(dir, "a.txt"))
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if p.IsDir() {
			t.Error("expected a file path")
		}
		if p.Info() == nil || p.Info().Size() != 5 {
			t.Errorf("expected metadata with size 5, got %v", p.Info())
		}
	})

	t.Run("missing path", func(t *testing.T) {
		if _, err := m.Resolve(filepath.Join(dir, "nope")); err == nil {
			t.Error("Resolve() should fail for a missing path")
		}
	})
}

func TestListFiles(t *testing.T) {
	t.Parallel()
	m := fs.NewOSFilesystemManager()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	writeFile(t, filepath.Join(dir, "b.jpg"), "b")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "sub", "nested.txt"), "n")

	p, err := m.Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	files, err := m.ListFiles(p)
	if err != nil {
		t.Fatalf("ListFiles() error = %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("got %d files, want 2 (subdirectories skipped, never recursive)", len(files))
	}
	for _, f := range files {
		if f.IsDir() {
			t.Errorf("ListFiles returned a directory: %s", f.String())
		}
	}
}

func TestMove(t *testing.T) {
	t.Parallel()
	m := fs.NewOSFilesystemManager()
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "moved.txt")
	writeFile(t, src, "content")

	if err := m.Move(src, dst); err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source should be gone after move")
	}
	got, err := os.ReadFile(dst)
	if err != nil || string(got) != "content" {
		t.Errorf("destination content = %q, %v", got, err)
	}
}

func TestCopy(t *testing.T) {
	t.Parallel()
	m := fs.NewOSFilesystemManager()
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "copy.txt")
	writeFile(t, src, "content")

	if err := m.Copy(src, dst); err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	if _, err := os.Stat(src); err != nil {
		t.Error("source should survive a copy")
	}
	got, err := os.ReadFile(dst)
	if err != nil || string(got) != "content" {
		t.Errorf("destination content = %q, %v", got, err)
	}
}

func TestTrash(t *testing.T) {
	if runtime.GOOS == "darwin" {
		t.Skip("trash location is not relocatable on darwin")
	}
	// No t.Parallel: t.Setenv forbids it.
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	m := fs.NewOSFilesystemManager()
	dir := t.TempDir()
	src := filepath.Join(dir, "junk.txt")
	writeFile(t, src, "junk")

	dst, err := m.Trash(src)
	if err != nil {
		t.Fatalf("Trash() error = %v", err)
	}
	wantDir := filepath.Join(dataHome, "Trash", "files")
	if filepath.Dir(dst) != wantDir {
		t.Errorf("trashed to %s, want under %s", dst, wantDir)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Errorf("trashed file missing: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source should be gone after trash")
	}

	// A second file with the same name gets a distinct trash name.
	writeFile(t, src, "junk2")
	dst2, err := m.Trash(src)
	if err != nil {
		t.Fatalf("Trash() error = %v", err)
	}
	if dst2 == dst {
		t.Error("trash collision should produce a distinct name")
	}
	if _, err := os.Stat(dst2); err != nil {
		t.Errorf("second trashed file missing: %v", err)
	}
}
