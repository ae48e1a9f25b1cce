package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteDefaultConfig(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteDefaultConfig(dir)
	if err != nil {
		t.Fatalf("WriteDefaultConfig() error: %v", err)
	}
	if filepath.Base(path) != ".taskguard.yaml" {
		t.Errorf("config path = %s, want .taskguard.yaml", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file was not written: %v", err)
	}

	if _, err := WriteDefaultConfig(dir); err == nil {
		t.Error("overwriting an existing config should fail")
	}
}

func TestGetConfigDefaults(t *testing.T) {
	config = nil

	cfg := GetConfig()
	if cfg.Todo.File != "TODO.md" {
		t.Errorf("todo file = %q, want TODO.md", cfg.Todo.File)
	}
	if len(cfg.Scanner.ExcludeDirs) == 0 {
		t.Error("default scanner config should exclude directories")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log level = %q, want warn", cfg.Log.Level)
	}
}
