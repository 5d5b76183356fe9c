package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigMatchesEngineDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Engine.PrefixLength != 7 {
		t.Errorf("DefaultConfig().Engine.PrefixLength = %d, want 7", cfg.Engine.PrefixLength)
	}
	if cfg.Engine.MaxDictionaryEditDistance != 2 {
		t.Errorf("DefaultConfig().Engine.MaxDictionaryEditDistance = %d, want 2", cfg.Engine.MaxDictionaryEditDistance)
	}
}

func TestInitConfigCreatesFileWhenMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig() error = %v", err)
	}
	if cfg.Engine.PrefixLength != 7 {
		t.Errorf("InitConfig() = %+v, want defaults", cfg)
	}

	again, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if again.Engine.PrefixLength != cfg.Engine.PrefixLength {
		t.Errorf("LoadConfig() after InitConfig() = %+v, want match", again)
	}
}

func TestLoadConfigMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Engine.CompactLevel != DefaultConfig().Engine.CompactLevel {
		t.Errorf("LoadConfig(missing) = %+v, want defaults", cfg)
	}
}

func TestLoadConfigPartialParseExtractsCliBool(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	toml := "[engine]\nmax_dictionary_edit_distance = \"two\"\n\n[cli]\ncolor_output = false\ndefault_max_edit = 3\n"
	if err := os.WriteFile(path, []byte(toml), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.CLI.ColorOutput {
		t.Errorf("cfg.CLI.ColorOutput = true, want false from partial parse")
	}
	if cfg.CLI.DefaultMaxEdit != 3 {
		t.Errorf("cfg.CLI.DefaultMaxEdit = %d, want 3", cfg.CLI.DefaultMaxEdit)
	}
}
