// Package config loads and persists the tool's JSON configuration.
//
// The file is patched in place rather than re-marshaled: known fields are
// read with gjson and written back with sjson against the original
// document, so fields this version does not recognize survive a
// load/save round trip.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Config holds the recognized configuration fields.
type Config struct {
	GameInstallPath  string
	Environments     []string
	Language         string
	Unp4kPath        string
	LastBuildVersion string
	AutoWrite        bool
	CreatedAt        string

	// raw is the JSON document as last read, kept so unknown fields
	// are preserved on save.
	raw []byte
}

// Default returns a fresh configuration with defaulted fields.
func Default() *Config {
	return &Config{
		Environments: []string{"LIVE", "PTU", "EPTU"},
		Language:     "english",
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
}

// Load reads the configuration at path. A missing file is surfaced to the
// caller, who decides whether to fall back to [Default].
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("failed to parse config: not valid JSON")
	}

	cfg := Default()
	cfg.raw = data

	if r := gjson.GetBytes(data, "gameInstallPath"); r.Exists() {
		cfg.GameInstallPath = r.String()
	}
	if r := gjson.GetBytes(data, "environments"); r.Exists() {
		cfg.Environments = nil
		for _, e := range r.Array() {
			cfg.Environments = append(cfg.Environments, e.String())
		}
	}
	if r := gjson.GetBytes(data, "language"); r.Exists() {
		cfg.Language = r.String()
	}
	if r := gjson.GetBytes(data, "unp4kPath"); r.Exists() {
		cfg.Unp4kPath = r.String()
	}
	if r := gjson.GetBytes(data, "lastBuildVersion"); r.Exists() {
		cfg.LastBuildVersion = r.String()
	}
	if r := gjson.GetBytes(data, "autoWrite"); r.Exists() {
		cfg.AutoWrite = r.Bool()
	}
	if r := gjson.GetBytes(data, "createdAt"); r.Exists() {
		cfg.CreatedAt = r.String()
	}

	return cfg, nil
}

// Save writes the configuration to path, patching the recognized fields
// into the previously read document so unrecognized fields survive.
func (c *Config) Save(fs afero.Fs, path string) error {
	doc := c.raw
	if len(doc) == 0 {
		doc = []byte("{}")
	}

	var err error
	for _, field := range []struct {
		path  string
		value any
	}{
		{"gameInstallPath", c.GameInstallPath},
		{"environments", c.Environments},
		{"language", c.Language},
		{"unp4kPath", c.Unp4kPath},
		{"lastBuildVersion", c.LastBuildVersion},
		{"autoWrite", c.AutoWrite},
		{"createdAt", c.CreatedAt},
	} {
		doc, err = sjson.SetBytes(doc, field.path, field.value)
		if err != nil {
			return fmt.Errorf("failed to encode config field %q: %w", field.path, err)
		}
	}

	if err := afero.WriteFile(fs, path, doc, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	c.raw = doc

	return nil
}

// Set updates one recognized field from its textual representation, as
// used by the settings command. Environments accepts a comma-separated
// list; autoWrite accepts a boolean literal.
func (c *Config) Set(field, value string) error {
	switch field {
	case "gameInstallPath":
		c.GameInstallPath = value
	case "environments":
		var envs []string
		for _, e := range strings.Split(value, ",") {
			if e = strings.TrimSpace(e); e != "" {
				envs = append(envs, e)
			}
		}
		c.Environments = envs
	case "language":
		c.Language = value
	case "unp4kPath":
		c.Unp4kPath = value
	case "lastBuildVersion":
		c.LastBuildVersion = value
	case "autoWrite":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("failed to parse autoWrite value %q: %w", value, err)
		}
		c.AutoWrite = b
	default:
		return fmt.Errorf("unknown config field: %q", field)
	}

	return nil
}
