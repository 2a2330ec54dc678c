package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetPaths(t *testing.T) {
	paths := GetPaths()

	if paths.ConfigDir == "" {
		t.Fatal("ConfigDir should not be empty")
	}
	if paths.DataDir == "" {
		t.Fatal("DataDir should not be empty")
	}
	if paths.ConfigFile == "" {
		t.Fatal("ConfigFile should not be empty")
	}
	if paths.DBFile == "" {
		t.Fatal("DBFile should not be empty")
	}
}

func TestGetPathsRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/testxdg/config")
	t.Setenv("XDG_DATA_HOME", "/tmp/testxdg/data")

	paths := GetPaths()

	if paths.ConfigDir != "/tmp/testxdg/config/tally" {
		t.Fatalf("expected /tmp/testxdg/config/tally, got %s", paths.ConfigDir)
	}
	if paths.DBFile != "/tmp/testxdg/data/tally/tally.db" {
		t.Fatalf("expected /tmp/testxdg/data/tally/tally.db, got %s", paths.DBFile)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Display.Color != "today" {
		t.Fatalf("expected color 'today', got %q", cfg.Display.Color)
	}
	if cfg.Display.Glyphs != GlyphsBlock {
		t.Fatalf("expected block glyphs, got %q", cfg.Display.Glyphs)
	}
}

func TestEnsureDirs(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir+"/config")
	t.Setenv("XDG_DATA_HOME", tmpDir+"/data")
	t.Setenv("XDG_CACHE_HOME", tmpDir+"/cache")
	t.Setenv("XDG_STATE_HOME", tmpDir+"/state")

	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs failed: %v", err)
	}

	for _, dir := range []string{paths.ConfigDir, paths.DataDir, paths.CacheDir, paths.StateDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("dir %s not created: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("%s is not a directory", dir)
		}
	}
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Display.Color != "today" {
		t.Fatalf("expected default color, got %q", cfg.Display.Color)
	}
	if Initialized() {
		t.Fatal("Initialized should be false without a config file")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "data"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(tmpDir, "cache"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmpDir, "state"))

	cfg := defaultConfig()
	cfg.User.Name = "Sam"
	cfg.Display.Glyphs = GlyphsASCII
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.User.Name != "Sam" || loaded.Display.Glyphs != GlyphsASCII {
		t.Fatalf("round trip lost values: %+v", loaded)
	}
	if !Initialized() {
		t.Fatal("Initialized should be true after Save")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	paths := GetPaths()
	if err := os.MkdirAll(paths.ConfigDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(paths.ConfigFile, []byte("[user]\nname = \"Kai\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.User.Name != "Kai" {
		t.Fatalf("name = %q", cfg.User.Name)
	}
	if cfg.Display.Glyphs != GlyphsBlock {
		t.Fatalf("missing display section should keep defaults, got %q", cfg.Display.Glyphs)
	}
}
