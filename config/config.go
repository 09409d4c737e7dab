// ABOUTME: Configuration management for the playlist library and UI behaviour
// ABOUTME: Handles loading/saving TOML config files with defaults, validation and env overrides

// Package config loads, validates and shares the playlist-timer configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

// Metadata fetch modes
const (
	ModeConcurrent = "concurrent" // One request per song, all at once
	ModeSequential = "sequential" // One request at a time in playlist order
)

// Config holds all tunable settings
type Config struct {
	Library  LibraryConfig  `toml:"library"`
	Metadata MetadataConfig `toml:"metadata"`
	Log      LogConfig      `toml:"log"`
}

// LibraryConfig controls how playlists are assembled from a folder
type LibraryConfig struct {
	Extensions  []string `toml:"extensions" default:"[\".mp3\",\".wav\",\".ogg\",\".flac\"]" validate:"min=1,dive,startswith=."`
	DepthFactor int      `toml:"depth_factor" default:"100" validate:"gte=0,lte=100"` // % of unused tracks tried per swap
	StepsFactor int      `toml:"steps_factor" default:"100" validate:"gte=0,lte=100"` // % of used tracks swapped per loop
	Loops       int      `toml:"loops" default:"1" validate:"gte=0,lte=10"`
	Workers     int      `toml:"workers" validate:"gte=0"` // 0 means runtime.NumCPU()
	FFProbe     string   `toml:"ffprobe" default:"ffprobe" validate:"required"`
}

// MetadataConfig controls the metadata phase
type MetadataConfig struct {
	Mode         string `toml:"mode" default:"concurrent" validate:"oneof=concurrent sequential"`
	DefaultCover string `toml:"default_cover" default:"assets/default-cover.png" validate:"required"`
}

// LogConfig controls the debug log
type LogConfig struct {
	Level string `toml:"level" default:"info" validate:"oneof=debug info warn error"`
	File  string `toml:"file"`
}

// GetConfigPath returns the default config file path
// First tries current directory, then falls back to ~/.config/playlist-timer/config.toml
func GetConfigPath() string {
	if _, err := os.Stat("./playlist-timer.toml"); err == nil {
		return "./playlist-timer.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./playlist-timer.toml"
	}

	return filepath.Join(home, ".config", "playlist-timer", "config.toml")
}

// LoadConfig loads configuration from a TOML file
// If the file doesn't exist, returns the default config. Environment
// overrides are applied after the file and before validation.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return DefaultConfig(), errors.Wrap(err, "failed to read config file")
		}

		data = nil
	}

	// Defaults first so explicit zero values in the file are kept
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return DefaultConfig(), errors.Wrap(err, "failed to set defaults")
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), errors.Wrap(err, "failed to parse config file")
	}

	cfg.overrideFromEnv()

	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), errors.Wrap(err, "config validation failed")
	}

	return cfg, nil
}

// SaveConfig saves configuration to a TOML file
func SaveConfig(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create config file")
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Printf("Warning: failed to close config file: %v\n", err)
		}
	}()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return errors.Wrap(err, "failed to write config")
	}

	return nil
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() Config {
	var cfg Config
	// Struct tags are static; a failure here is a programming error caught by tests
	_ = defaults.Set(&cfg)

	return cfg
}

// Validate checks field constraints declared in struct tags
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	return nil
}

// overrideFromEnv applies PLAYLIST_TIMER_* environment variables
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("PLAYLIST_TIMER_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}

	if v := os.Getenv("PLAYLIST_TIMER_LOG_FILE"); v != "" {
		c.Log.File = v
	}

	if v := os.Getenv("PLAYLIST_TIMER_METADATA_MODE"); v != "" {
		c.Metadata.Mode = strings.ToLower(v)
	}

	if v := os.Getenv("PLAYLIST_TIMER_DEFAULT_COVER"); v != "" {
		c.Metadata.DefaultCover = v
	}

	if v := os.Getenv("PLAYLIST_TIMER_FFPROBE"); v != "" {
		c.Library.FFProbe = v
	}

	if v := os.Getenv("PLAYLIST_TIMER_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Library.Workers = n
		}
	}
}
