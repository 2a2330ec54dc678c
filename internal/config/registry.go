package config

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/rnwolfe/tally/internal/tracker"
)

// KeyType represents the data type of a config key.
type KeyType string

const (
	KeyTypeString KeyType = "string"
	KeyTypeInt    KeyType = "int"
	KeyTypeBool   KeyType = "bool"
)

// KeyEntry describes a known, settable config key.
type KeyEntry struct {
	// Type is the value's data type (string, int, bool).
	Type KeyType
	// Desc is a human-readable description shown in `tally config`.
	Desc string
	// DefaultStr is the string representation of the default value.
	DefaultStr string

	get   func(*Config) string
	set   func(cfg *Config, value string) error
	unset func(cfg *Config)
}

// Get returns the current value of the key as a string.
func (e *KeyEntry) Get(cfg *Config) string { return e.get(cfg) }

// Set validates and sets the value, returning a descriptive error on type mismatch.
func (e *KeyEntry) Set(cfg *Config, value string) error { return e.set(cfg, value) }

// Unset resets the key to its schema default.
func (e *KeyEntry) Unset(cfg *Config) { e.unset(cfg) }

// SchemaKeys is the authoritative registry of all settable config keys.
// Keys use dot-notation matching the TOML section structure.
var SchemaKeys = map[string]*KeyEntry{
	"user.name": {
		Type:       KeyTypeString,
		Desc:       "Display name",
		DefaultStr: "",
		get:        func(cfg *Config) string { return cfg.User.Name },
		set:        func(cfg *Config, v string) error { cfg.User.Name = v; return nil },
		unset:      func(cfg *Config) { cfg.User.Name = "" },
	},
	"display.color": {
		Type:       KeyTypeString,
		Desc:       "Default color for new trackers (" + strings.Join(tracker.Colors, ", ") + ")",
		DefaultStr: tracker.DefaultColor,
		get:        func(cfg *Config) string { return cfg.Display.Color },
		set: func(cfg *Config, v string) error {
			v = strings.ToLower(strings.TrimSpace(v))
			if !slices.Contains(tracker.Colors, v) {
				return fmt.Errorf("unknown color %q (choose from %s)", v, strings.Join(tracker.Colors, ", "))
			}
			cfg.Display.Color = v
			return nil
		},
		unset: func(cfg *Config) { cfg.Display.Color = tracker.DefaultColor },
	},
	"display.glyphs": {
		Type:       KeyTypeString,
		Desc:       "Grid cell characters (block, ascii)",
		DefaultStr: GlyphsBlock,
		get:        func(cfg *Config) string { return cfg.Display.Glyphs },
		set: func(cfg *Config, v string) error {
			switch v = strings.ToLower(strings.TrimSpace(v)); v {
			case GlyphsBlock, GlyphsASCII:
				cfg.Display.Glyphs = v
				return nil
			}
			return fmt.Errorf("invalid value %q for display.glyphs (use block or ascii)", v)
		},
		unset: func(cfg *Config) { cfg.Display.Glyphs = GlyphsBlock },
	},
	"display.no_color": {
		Type:       KeyTypeBool,
		Desc:       "Disable colored output",
		DefaultStr: "false",
		get:        func(cfg *Config) string { return fmt.Sprintf("%t", cfg.Display.NoColor) },
		set: func(cfg *Config, v string) error {
			b, err := ParseBoolValue(v)
			if err != nil {
				return fmt.Errorf("invalid value %q for display.no_color: %w", v, err)
			}
			cfg.Display.NoColor = b
			return nil
		},
		unset: func(cfg *Config) { cfg.Display.NoColor = false },
	},
}

// ValidKeyNames returns the sorted list of all known config key names.
func ValidKeyNames() []string {
	names := make([]string, 0, len(SchemaKeys))
	for k := range SchemaKeys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LookupKey returns the KeyEntry for a known config key.
func LookupKey(key string) (*KeyEntry, bool) {
	entry, ok := SchemaKeys[key]
	return entry, ok
}

// ParseBoolValue accepts common boolean string representations.
// Valid truthy values: true, 1, yes, on.
// Valid falsy values: false, 0, no, off.
func ParseBoolValue(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean: %q (use one of: true/false, 1/0, yes/no, on/off)", s)
	}
}
