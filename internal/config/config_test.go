package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SaveDebounce != defaultSaveDebounce {
		t.Fatalf("SaveDebounce = %v, want %v", cfg.SaveDebounce, defaultSaveDebounce)
	}
	if cfg.SettleDelay != defaultSettleDelay {
		t.Fatalf("SettleDelay = %v, want %v", cfg.SettleDelay, defaultSettleDelay)
	}
	if cfg.Storage != BackendFile {
		t.Fatalf("Storage = %q, want %q", cfg.Storage, BackendFile)
	}

	wantDataDir, err := expandPath(defaultDataDir)
	if err != nil {
		t.Fatalf("expandPath(defaultDataDir) returned error: %v", err)
	}
	if cfg.DataDir != wantDataDir {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, wantDataDir)
	}
	if cfg.StoragePath() != filepath.Join(wantDataDir, "standups.toml") {
		t.Fatalf("StoragePath = %q", cfg.StoragePath())
	}
	if cfg.TranscriptFile != "" {
		t.Fatalf("TranscriptFile = %q, want empty", cfg.TranscriptFile)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
save_debounce = " 250ms "
settle_delay = "0s"
storage = " BOLT "
log_file = "  ~/logs/standups.log  "
log_level = "debug"
transcript_file = "~/dictation/live.txt"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SaveDebounce != 250*time.Millisecond {
		t.Fatalf("SaveDebounce = %v, want 250ms", cfg.SaveDebounce)
	}
	if cfg.SettleDelay != 0 {
		t.Fatalf("SettleDelay = %v, want 0", cfg.SettleDelay)
	}
	if cfg.Storage != BackendBolt {
		t.Fatalf("Storage = %q, want bolt", cfg.Storage)
	}
	if !strings.HasSuffix(cfg.StoragePath(), "standups.db") {
		t.Fatalf("StoragePath = %q, want bolt file", cfg.StoragePath())
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.LogLevel != zapcore.DebugLevel {
		t.Fatalf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if cfg.TranscriptFile != filepath.Join(home, "dictation", "live.txt") {
		t.Fatalf("TranscriptFile = %q", cfg.TranscriptFile)
	}
}

func TestLoad_DataDirIsNotConfigurable(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(writeConfig(t, `data_dir = "/tmp/elsewhere"`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DataDir != filepath.Join(home, ".local", "share", "standups") {
		t.Fatalf("DataDir = %q, want fixed location", cfg.DataDir)
	}
}

func TestLoad_Errors(t *testing.T) {
	cases := map[string]string{
		"invalid toml":      "not valid toml {{{",
		"bad duration":      `save_debounce = "soon"`,
		"negative duration": `settle_delay = "-1s"`,
		"unknown storage":   `storage = "s3"`,
		"unknown level":     `log_level = "loud"`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Fatalf("Load(%q) returned nil error", body)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/x/y")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	if got != filepath.Join(home, "x", "y") {
		t.Fatalf("expandPath = %q", got)
	}
	if _, err := expandPath("   "); err == nil {
		t.Fatal("expandPath(blank) returned nil error")
	}
}
