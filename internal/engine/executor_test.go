package engine_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"tidy-go/internal/engine"
	"tidy-go/internal/fs"
	"tidy-go/internal/model"
	"tidy-go/internal/testutil"
)

func newTestExecutor(t *testing.T) *engine.Executor {
	t.Helper()
	return engine.NewExecutor(fs.NewOSFilesystemManager(), engine.NewNopLogger(), testutil.FixedClock(), testutil.NewStubIDGenerator())
}

func writeTestFile(t *testing.T, dir, name string) model.FileInfo {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("content"), 0644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}
	return model.FileInfo{
		Name:       name,
		Path:       path,
		Size:       7,
		CreatedAt:  time.Now(),
		ModifiedAt: time.Now(),
		FileType:   engine.Classify(filepath.Ext(name)),
	}
}

func TestExecutor_MoveToFolder(t *testing.T) {
	t.Parallel()
	x := newTestExecutor(t)

	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "nested", "deep")
	file := writeTestFile(t, src, "a.jpg")

	op := x.Execute(model.RuleAction{
		Type:       model.ActionMoveToFolder,
		Parameters: map[string]string{model.ParamDestinationPath: dest},
	}, file)

	if op == nil || !op.Success {
		t.Fatalf("Execute() = %+v, want success", op)
	}
	if op.Type != model.OperationMove {
		t.Errorf("op type = %s, want move", op.Type)
	}

	want := filepath.Join(dest, "a.jpg")
	if op.DestinationPath != want {
		t.Errorf("destination = %s, want %s", op.DestinationPath, want)
	}
	if _, err := os.Stat(file.Path); !os.IsNotExist(err) {
		t.Error("source file should no longer exist")
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("moved file missing at destination: %v", err)
	}
}

func TestExecutor_CopyToFolder(t *testing.T) {
	t.Parallel()
	x := newTestExecutor(t)

	src := t.TempDir()
	dest := t.TempDir()
	file := writeTestFile(t, src, "b.txt")

	op := x.Execute(model.RuleAction{
		Type:       model.ActionCopyToFolder,
		Parameters: map[string]string{model.ParamDestinationPath: dest},
	}, file)

	if op == nil || !op.Success {
		t.Fatalf("Execute() = %+v, want success", op)
	}
	if _, err := os.Stat(file.Path); err != nil {
		t.Error("source must remain after copy")
	}
	if _, err := os.Stat(filepath.Join(dest, "b.txt")); err != nil {
		t.Errorf("copy missing at destination: %v", err)
	}
}

func TestExecutor_RenameFile(t *testing.T) {
	t.Parallel()
	x := newTestExecutor(t)

	dir := t.TempDir()
	file := writeTestFile(t, dir, "draft.txt")

	op := x.Execute(model.RuleAction{
		Type:       model.ActionRenameFile,
		Parameters: map[string]string{model.ParamNewName: "final.txt"},
	}, file)

	if op == nil || !op.Success {
		t.Fatalf("Execute() = %+v, want success", op)
	}
	if op.Type != model.OperationRename {
		t.Errorf("op type = %s, want rename", op.Type)
	}
	if _, err := os.Stat(filepath.Join(dir, "final.txt")); err != nil {
		t.Errorf("renamed file missing: %v", err)
	}
	if _, err := os.Stat(file.Path); !os.IsNotExist(err) {
		t.Error("old name should no longer exist")
	}
}

func TestExecutor_Trash(t *testing.T) {
	// No t.Parallel: t.Setenv forbids it.
	x := newTestExecutor(t)

	t.Setenv("XDG_DATA_HOME", t.TempDir())

	dir := t.TempDir()
	file := writeTestFile(t, dir, "junk.tmp")

	op := x.Execute(model.RuleAction{Type: model.ActionTrash}, file)

	if op == nil || !op.Success {
		t.Fatalf("Execute() = %+v, want success", op)
	}
	if op.Type != model.OperationDelete {
		t.Errorf("op type = %s, want delete", op.Type)
	}
	if _, err := os.Stat(file.Path); !os.IsNotExist(err) {
		t.Error("trashed file should no longer exist at source")
	}
	if op.DestinationPath == "" {
		t.Fatal("trash should record the recoverable location")
	}
	if _, err := os.Stat(op.DestinationPath); err != nil {
		t.Errorf("trashed file missing at %s: %v", op.DestinationPath, err)
	}
}

func TestExecutor_Failures(t *testing.T) {
	t.Parallel()
	x := newTestExecutor(t)

	t.Run("missing required parameter", func(t *testing.T) {
		t.Parallel()
		file := writeTestFile(t, t.TempDir(), "a.txt")

		op := x.Execute(model.RuleAction{Type: model.ActionMoveToFolder}, file)
		if op == nil {
			t.Fatal("Execute() = nil, want failed record")
		}
		if op.Success {
			t.Error("record should be failed")
		}
		if op.ErrorMessage == "" {
			t.Error("failed record must carry an error message")
		}
	})

	t.Run("vanished source file", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		file := writeTestFile(t, dir, "gone.txt")
		os.Remove(file.Path)

		op := x.Execute(model.RuleAction{
			Type:       model.ActionMoveToFolder,
			Parameters: map[string]string{model.ParamDestinationPath: t.TempDir()},
		}, file)
		if op == nil || op.Success {
			t.Fatalf("Execute() = %+v, want failed record", op)
		}
		if op.ErrorMessage == "" {
			t.Error("failed record must carry the underlying error text")
		}
	})
}

func TestExecutor_UnsupportedActions(t *testing.T) {
	t.Parallel()
	x := newTestExecutor(t)

	file := writeTestFile(t, t.TempDir(), "a.txt")

	for _, at := range []model.ActionType{model.ActionCreateFolder, model.ActionAddTag} {
		op := x.Execute(model.RuleAction{
			Type:       at,
			Parameters: map[string]string{model.ParamFolderName: "x", model.ParamTag: "y"},
		}, file)
		if op != nil {
			t.Errorf("%s: Execute() = %+v, want nil (no record for work not done)", at, op)
		}
	}
	if _, err := os.Stat(file.Path); err != nil {
		t.Error("unsupported actions must not touch the file")
	}
}
