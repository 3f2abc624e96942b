package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tidy-go/internal/engine"
	"tidy-go/internal/fs"
	"tidy-go/internal/model"
	"tidy-go/internal/testutil"
	"tidy-go/internal/watcher"
)

// newWatchedEngine builds an engine over the real filesystem with one
// watched directory and a catch-all rule that moves everything into
// dest.
func newWatchedEngine(t *testing.T, watched, dest string) *engine.Engine {
	t.Helper()

	st := testutil.NewTestStore(t)
	eng := engine.NewEngine(st, fs.NewOSFilesystemManager(), engine.NewNopLogger(), engine.RealClock{}, engine.UUIDGenerator{})
	if err := eng.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := eng.AddWatchedDirectory(watched); err != nil {
		t.Fatalf("AddWatchedDirectory() error = %v", err)
	}
	if err := eng.AddRule(model.Rule{
		Name:    "move everything",
		Enabled: true,
		Actions: []model.RuleAction{
			{Type: model.ActionMoveToFolder, Parameters: map[string]string{model.ParamDestinationPath: dest}},
		},
	}); err != nil {
		t.Fatalf("AddRule() error = %v", err)
	}
	return eng
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, d time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestWatcher_OrganizesAfterCreate(t *testing.T) {
	t.Parallel()

	watched := t.TempDir()
	dest := filepath.Join(t.TempDir(), "sorted")
	eng := newWatchedEngine(t, watched, dest)

	w, err := watcher.New(eng, engine.NewNopLogger(), 50*time.Millisecond)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	path := filepath.Join(watched, "incoming.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	moved := filepath.Join(dest, "incoming.txt")
	if !waitFor(t, 3*time.Second, func() bool {
		_, err := os.Stat(moved)
		return err == nil
	}) {
		t.Fatalf("file was not organized to %s", moved)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("source should be gone after the organize pass")
	}
}

func TestWatcher_StopCancelsPending(t *testing.T) {
	t.Parallel()

	watched := t.TempDir()
	dest := filepath.Join(t.TempDir(), "sorted")
	eng := newWatchedEngine(t, watched, dest)

	w, err := watcher.New(eng, engine.NewNopLogger(), time.Hour)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	path := filepath.Join(watched, "incoming.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	// Give fsnotify a moment to deliver the event and arm the timer.
	time.Sleep(100 * time.Millisecond)

	w.Stop()
	w.Stop() // idempotent

	time.Sleep(100 * time.Millisecond)
	if _, err := os.Stat(path); err != nil {
		t.Error("no pass should run after Stop")
	}
	if got := eng.OrganizeDirectory(context.Background(), watched); got != 1 {
		t.Errorf("manual pass organized %d files, want 1", got)
	}
}
