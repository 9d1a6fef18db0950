package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValues(t *testing.T) {
	cfg := Default()

	if cfg.Execution.EnableTrace {
		t.Error("Expected EnableTrace=false")
	}
	if !cfg.Display.ColorOutput {
		t.Error("Expected ColorOutput=true")
	}
	if cfg.REPL.HistorySize != 1000 {
		t.Errorf("Expected HistorySize=1000, got %d", cfg.REPL.HistorySize)
	}
	if cfg.REPL.HistoryFile == "" {
		t.Error("Expected a non-empty default HistoryFile")
	}
}

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("LoadFrom returned error for a missing file: %v", err)
	}
	if cfg.REPL.HistorySize != 1000 {
		t.Errorf("Expected defaults when file is missing, got HistorySize=%d", cfg.REPL.HistorySize)
	}
}

func TestSaveAndLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Execution.EnableTrace = true
	cfg.REPL.HistorySize = 42

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to exist: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if !loaded.Execution.EnableTrace {
		t.Error("Expected EnableTrace=true after roundtrip")
	}
	if loaded.REPL.HistorySize != 42 {
		t.Errorf("Expected HistorySize=42 after roundtrip, got %d", loaded.REPL.HistorySize)
	}
}
