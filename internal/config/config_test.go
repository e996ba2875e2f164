package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestGetBaseDirWithExplicitEnv(t *testing.T) {
	tmpDir := t.TempDir()
	customDir := filepath.Join(tmpDir, "custom")

	t.Setenv("CROPRO_BASE", customDir)
	t.Setenv("XDG_DATA_HOME", "")

	got := GetBaseDir()
	if got != customDir {
		t.Fatalf("expected %q, got %q", customDir, got)
	}
}

func TestGetBaseDirFallsBackToXDG(t *testing.T) {
	tmpDir := t.TempDir()
	xdgDir := filepath.Join(tmpDir, "xdg")

	t.Setenv("CROPRO_BASE", "")
	t.Setenv("XDG_DATA_HOME", xdgDir)

	got := GetBaseDir()
	want := filepath.Join(xdgDir, "cropro")
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestProfilePaths(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("CROPRO_BASE", tmpDir)

	if got, want := GetProfileDir("main"), filepath.Join(tmpDir, "main"); got != want {
		t.Fatalf("GetProfileDir expected %q, got %q", want, got)
	}

	if got, want := GetCollectionPath("main"), filepath.Join(tmpDir, "main", "collection.db"); got != want {
		t.Fatalf("GetCollectionPath expected %q, got %q", want, got)
	}

	if got, want := GetMediaDir("main"), filepath.Join(tmpDir, "main", "collection.media"); got != want {
		t.Fatalf("GetMediaDir expected %q, got %q", want, got)
	}

	if got, want := GetSettingsPath(), filepath.Join(tmpDir, "settings.json"); got != want {
		t.Fatalf("GetSettingsPath expected %q, got %q", want, got)
	}
}

// fakeProfile creates a directory with an empty collection file so that
// profile discovery picks it up.
func fakeProfile(t *testing.T, name string) {
	t.Helper()
	dir := GetProfileDir(name)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatalf("failed to create profile dir: %v", err)
	}
	if err := os.WriteFile(GetCollectionPath(name), nil, 0o600); err != nil {
		t.Fatalf("failed to create collection file: %v", err)
	}
}

func TestListProfiles(t *testing.T) {
	t.Setenv("CROPRO_BASE", t.TempDir())

	names, err := ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles returned error: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected no profiles, got %v", names)
	}

	fakeProfile(t, "main")
	fakeProfile(t, "bank")

	// A directory without a collection file is not a profile.
	if err := os.MkdirAll(GetProfileDir("scratch"), 0o750); err != nil {
		t.Fatalf("failed to create scratch dir: %v", err)
	}

	names, err = ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles returned error: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"bank", "main"}) {
		t.Fatalf("expected sorted profile names, got %v", names)
	}

	if !ProfileExists("main") || ProfileExists("scratch") {
		t.Fatalf("unexpected ProfileExists results")
	}
}

func TestOtherProfileNames(t *testing.T) {
	t.Setenv("CROPRO_BASE", t.TempDir())
	fakeProfile(t, "main")
	fakeProfile(t, "bank")
	fakeProfile(t, "mining")

	others, err := OtherProfileNames("main")
	if err != nil {
		t.Fatalf("OtherProfileNames returned error: %v", err)
	}
	if !reflect.DeepEqual(others, []string{"bank", "mining"}) {
		t.Fatalf("expected other profiles, got %v", others)
	}
}

func TestLoadSettingsDefaultsWhenMissing(t *testing.T) {
	t.Setenv("CROPRO_BASE", t.TempDir())

	settings, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}
	if !reflect.DeepEqual(settings, DefaultSettings()) {
		t.Fatalf("expected defaults, got %+v", settings)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	t.Setenv("CROPRO_BASE", t.TempDir())

	settings := DefaultSettings()
	settings.TagOriginalNotes = true
	settings.ExportedTag = "migrated"
	settings.MaxDisplayedNotes = 25
	settings.HiddenFields = []string{"Audio", "Screenshot"}

	if err := SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings returned error: %v", err)
	}

	loaded, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}
	if !reflect.DeepEqual(loaded, settings) {
		t.Fatalf("round-trip mismatch: got %+v, want %+v", loaded, settings)
	}
}

func TestLoadSettingsKeepsDefaultsForMissingKeys(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("CROPRO_BASE", tmpDir)

	data := []byte(`{"max_displayed_notes": 10}` + "\n")
	if err := os.WriteFile(GetSettingsPath(), data, 0o600); err != nil {
		t.Fatalf("failed to write settings file: %v", err)
	}

	loaded, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}
	if loaded.MaxDisplayedNotes != 10 {
		t.Fatalf("expected overridden value, got %d", loaded.MaxDisplayedNotes)
	}
	if !loaded.SkipDuplicates || loaded.ExportedTag != "exported" {
		t.Fatalf("expected untouched defaults, got %+v", loaded)
	}
}
