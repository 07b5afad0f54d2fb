package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cmmc.yaml")
	body := "seed: audit-season\ndifficulty: hard\ntheme: amber\nno_store: true\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fc, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	cfg := Overlay(Defaults(), fc)
	if cfg.SeedText != "audit-season" || cfg.Difficulty != "hard" || cfg.Theme != "amber" || !cfg.NoStore {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.DSN != DefaultDSN {
		t.Fatalf("DSN should keep its default, got %q", cfg.DSN)
	}
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("difficulty: hard\ndificulty: easy\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestOverlayKeepsBaseForZeroFields(t *testing.T) {
	base := Defaults()
	base.Debug = true
	got := Overlay(base, Config{DSN: "postgres://x"})
	if got.DSN != "postgres://x" || got.Theme != "terminal" || !got.Debug {
		t.Fatalf("unexpected overlay: %+v", got)
	}
}
