package config_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"tidy-go/internal/config"
)

func TestConfig_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig("/home/user/.local/share/tidy")

	var buf bytes.Buffer
	m := &config.Manager{}
	if err := m.Write(&buf, cfg); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.BaseDir != cfg.BaseDir {
		t.Errorf("BaseDir = %s, want %s", got.BaseDir, cfg.BaseDir)
	}
	if got.LogDir != cfg.LogDir {
		t.Errorf("LogDir = %s, want %s", got.LogDir, cfg.LogDir)
	}
	if got.Database.Type != "sqlite" || got.Database.DataDir != cfg.Database.DataDir {
		t.Errorf("Database = %+v, want %+v", got.Database, cfg.Database)
	}
	if !got.Watcher.Enabled || got.Watcher.DebounceMS != 500 {
		t.Errorf("Watcher = %+v, want enabled with 500ms debounce", got.Watcher)
	}
}

func TestConfig_Read_Invalid(t *testing.T) {
	t.Parallel()

	m := &config.Manager{}
	if _, err := m.Read(bytes.NewBufferString("not [valid toml")); err == nil {
		t.Error("Read() should fail on malformed TOML")
	}
}

func TestConfig_Init(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "tidy.toml")
	cfg := config.NewConfig("/base")

	if err := config.Init(path, cfg); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	got, err := config.ReadFromFile(path)
	if err != nil {
		t.Fatalf("ReadFromFile() error = %v", err)
	}
	if got.BaseDir != "/base" {
		t.Errorf("BaseDir = %s, want /base", got.BaseDir)
	}

	// Init refuses to overwrite an existing config.
	if err := config.Init(path, cfg); err == nil {
		t.Error("Init() should fail when the config already exists")
	}
}
