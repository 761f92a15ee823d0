// Package config loads cryptoseed settings from an optional cryptoseed.toml.
//
// The file is searched upward from the working directory, so the tool can
// run from anywhere inside a project that keeps its quotes.db at the root.
// A missing file yields defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/quotegrid/cryptoseed/internal/model"
	"github.com/quotegrid/cryptoseed/internal/seed"
)

const (
	// ConfigFile is the settings filename searched for upward from cwd.
	ConfigFile = "cryptoseed.toml"
	// DBFile is the default database filename.
	DBFile = "quotes.db"
	// EnvDB overrides the database path when set.
	EnvDB = "CRYPTOSEED_DB"
)

// Config holds tool settings from cryptoseed.toml.
type Config struct {
	DB   string     `toml:"db"`
	Seed SeedConfig `toml:"seed"`

	// dir is where the config file was found; relative DB paths
	// resolve against it.
	dir string
}

// SeedConfig holds default parameters for the seed command.
type SeedConfig struct {
	StartDate  string `toml:"start_date"`
	Days       int    `toml:"days"`
	Difficulty string `toml:"difficulty"`
}

func applyDefaults(config *Config) {
	if config.DB == "" {
		config.DB = DBFile
	}
	if config.Seed.StartDate == "" {
		config.Seed.StartDate = model.FormatDate(seed.DefaultStartDate)
	}
	if config.Seed.Days == 0 {
		config.Seed.Days = seed.DefaultNumDays
	}
	if config.Seed.Difficulty == "" {
		config.Seed.Difficulty = string(seed.DefaultDifficulty)
	}
}

// findConfigFile searches upward from the working directory for ConfigFile.
// Returns "" if no config file exists anywhere up the tree.
func findConfigFile() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, ConfigFile)
		info, err := os.Stat(candidate)
		if err == nil {
			if info.IsDir() {
				return "", fmt.Errorf("%s exists but is a directory", candidate)
			}
			return candidate, nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to check %s: %w", candidate, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Load reads settings from the nearest cryptoseed.toml.
// If no config file exists, defaults are returned.
func Load() (*Config, error) {
	path, err := findConfigFile()
	if err != nil {
		return nil, err
	}

	config := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		config.dir = filepath.Dir(path)
	}
	applyDefaults(config)
	return config, nil
}

// LoadFile reads settings from a specific config file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	config := &Config{}
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	config.dir = filepath.Dir(path)
	applyDefaults(config)
	return config, nil
}

// DBPath resolves the database location.
// Precedence: CRYPTOSEED_DB env > config file db (relative to the config
// file's directory) > quotes.db in the working directory.
func (c *Config) DBPath() string {
	if envPath := os.Getenv(EnvDB); envPath != "" {
		return envPath
	}
	if c.dir != "" && !filepath.IsAbs(c.DB) {
		return filepath.Join(c.dir, c.DB)
	}
	return c.DB
}

// SeedOptions converts configured seed defaults to seed.Options.
func (c *Config) SeedOptions() (seed.Options, error) {
	start, err := model.ParseDate(c.Seed.StartDate)
	if err != nil {
		return seed.Options{}, fmt.Errorf("invalid start_date in config: %w", err)
	}
	return seed.Options{
		StartDate:  start,
		NumDays:    c.Seed.Days,
		Difficulty: model.Difficulty(c.Seed.Difficulty),
	}, nil
}
