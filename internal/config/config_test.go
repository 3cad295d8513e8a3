package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Listen == "" || cfg.GridStartHour != 14 || cfg.UTCOffsetHours != -3 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}

	// First run writes the default file with restrictive permissions.
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("default config file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config file permissions = %o, want 600", perm)
	}

	// Second load reads the same values back.
	again, err := Load(path)
	if err != nil {
		t.Fatalf("Load() second run error = %v", err)
	}
	if again.Listen != cfg.Listen || len(again.Days) != len(cfg.Days) {
		t.Errorf("round-tripped config differs: %+v vs %+v", again, cfg)
	}
}

func TestLoadPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := "listen: \"0.0.0.0:9000\"\nutc_offset_hours: -3\n"
	if err := os.WriteFile(path, []byte(partial), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Listen != "0.0.0.0:9000" {
		t.Errorf("Listen = %q, want explicit value kept", cfg.Listen)
	}
	if cfg.GridStartHour != 14 || cfg.PixelsPerMinute <= 0 || len(cfg.Days) == 0 {
		t.Errorf("missing values not normalized: %+v", cfg)
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("listen: [broken"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() accepted malformed YAML")
	}
}

func TestNormalizeKeepsZeroOffset(t *testing.T) {
	cfg := &Config{UTCOffsetHours: 0}
	cfg.Normalize()
	if cfg.UTCOffsetHours != 0 {
		t.Errorf("UTCOffsetHours = %d, zero is a valid offset and must be kept", cfg.UTCOffsetHours)
	}
}
