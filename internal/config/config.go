package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the top-level tally configuration.
type Config struct {
	User    UserConfig    `toml:"user"`
	Display DisplayConfig `toml:"display"`
}

type UserConfig struct {
	Name string `toml:"name"`
}

// DisplayConfig controls how grids are drawn.
type DisplayConfig struct {
	// Color is the palette key given to new trackers when --color is not set.
	Color string `toml:"color"`
	// Glyphs selects the cell characters: "block" or "ascii".
	Glyphs string `toml:"glyphs"`
	// NoColor disables ANSI colors entirely.
	NoColor bool `toml:"no_color"`
}

// Glyph sets accepted by DisplayConfig.Glyphs.
const (
	GlyphsBlock = "block"
	GlyphsASCII = "ascii"
)

// Paths returns standard XDG-compliant paths.
type Paths struct {
	ConfigDir  string
	DataDir    string
	CacheDir   string
	StateDir   string
	ConfigFile string
	DBFile     string
}

// GetPaths returns the resolved paths, respecting XDG env vars.
func GetPaths() Paths {
	home, _ := os.UserHomeDir()

	configDir := envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dataDir := envOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	cacheDir := envOr("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	stateDir := envOr("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))

	tallyConfig := filepath.Join(configDir, "tally")
	tallyData := filepath.Join(dataDir, "tally")

	return Paths{
		ConfigDir:  tallyConfig,
		DataDir:    tallyData,
		CacheDir:   filepath.Join(cacheDir, "tally"),
		StateDir:   filepath.Join(stateDir, "tally"),
		ConfigFile: filepath.Join(tallyConfig, "config.toml"),
		DBFile:     filepath.Join(tallyData, "tally.db"),
	}
}

// EnsureDirs creates all required directories.
func (p Paths) EnsureDirs() error {
	dirs := []string{p.ConfigDir, p.DataDir, p.CacheDir, p.StateDir}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// Load reads config from disk, returning defaults if not found. Keys
// missing from the file keep their default values.
func Load() (*Config, error) {
	paths := GetPaths()
	cfg := defaultConfig()

	data, err := os.ReadFile(paths.ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes config to disk.
func Save(cfg *Config) error {
	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return err
	}

	f, err := os.Create(paths.ConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Initialized returns true if a config file has been written.
func Initialized() bool {
	paths := GetPaths()
	_, err := os.Stat(paths.ConfigFile)
	return err == nil
}

func defaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Color:  "today",
			Glyphs: GlyphsBlock,
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
