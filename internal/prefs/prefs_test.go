package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Palette != defaultPalette {
		t.Fatalf("Palette = %q, want %q", p.Palette, defaultPalette)
	}
	if p.Speech != "" {
		t.Fatalf("Speech = %q, want empty", p.Speech)
	}
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "standups")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	prefsFile := filepath.Join(prefsDir, "prefs.toml")
	body := "palette = \"Slate\"\nspeech = \" denied \"\n"
	if err := os.WriteFile(prefsFile, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Palette != "Slate" {
		t.Fatalf("Palette = %q, want %q", p.Palette, "Slate")
	}
	if p.Speech != "denied" {
		t.Fatalf("Speech = %q, want %q", p.Speech, "denied")
	}
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "subdir", "prefs.toml")

	if err := Save(prefsFile, Prefs{Palette: "Kanagawa", Speech: "authorized"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Palette != "Kanagawa" || loaded.Speech != "authorized" {
		t.Fatalf("loaded = %#v", loaded)
	}
}

func TestUpdate_KeepsOtherFields(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
	if err := Save(prefsFile, Prefs{Palette: "Slate"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if err := Update(prefsFile, func(p *Prefs) { p.Speech = "denied" }); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	loaded, _ := Load(prefsFile)
	if loaded.Palette != "Slate" || loaded.Speech != "denied" {
		t.Fatalf("loaded = %#v", loaded)
	}
}

func TestLoad_EmptyPaletteFallsBackToDefault(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("palette = \"\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Palette != defaultPalette {
		t.Fatalf("Palette = %q, want %q", p.Palette, defaultPalette)
	}
}

func TestLoad_InvalidTOMLFallsBackToDefault(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Palette != defaultPalette {
		t.Fatalf("Palette = %q, want %q", p.Palette, defaultPalette)
	}
}
