package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingDefaultFileUsesDefaults(t *testing.T) {
	// Point the user config dir at an empty temp dir so no real config
	// file is picked up.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Store != "file" {
		t.Errorf("Store = %q, want file", cfg.Store)
	}
	if cfg.Listen == "" || cfg.CanvasWidth == 0 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadConfig_MissingExplicitFileFails(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("LoadConfig(explicit missing path) error = nil")
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inkdoc.toml")
	content := "store = \"redis\"\nredis_addr = \"redis.internal:6380\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Store != "redis" || cfg.RedisAddr != "redis.internal:6380" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	// Unset keys keep their defaults.
	if cfg.Listen != ":8484" {
		t.Errorf("Listen = %q, want default :8484", cfg.Listen)
	}
	if cfg.CanvasWidth != 1920 || cfg.CanvasHeight != 1080 {
		t.Errorf("canvas defaults lost: %dx%d", cfg.CanvasWidth, cfg.CanvasHeight)
	}
}

func TestLoadConfig_UnknownKeyRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inkdoc.toml")
	if err := os.WriteFile(path, []byte("stoer = \"file\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() error = nil for unknown key")
	}
}

func TestLoadConfig_MalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inkdoc.toml")
	if err := os.WriteFile(path, []byte("store = [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() error = nil for malformed file")
	}
}
