package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/dshills/qprimes/internal/logging"
	"github.com/dshills/qprimes/internal/quadratic"
)

// Config represents the qprimes configuration.
type Config struct {
	Bound     int         `json:"bound"`
	Format    string      `json:"format"`
	LogLevel  string      `json:"logLevel"`
	LogFormat string      `json:"logFormat"`
	Cache     CacheConfig `json:"cache"`
}

// CacheConfig controls caching of search results.
type CacheConfig struct {
	Enabled    bool   `json:"enabled"`
	Dir        string `json:"dir,omitempty"`
	TTLSeconds int    `json:"ttlSeconds"`
}

// Formats lists the supported report formats.
var Formats = []string{"text", "json", "markdown"}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Bound:     1000,
		Format:    "text",
		LogLevel:  "warn",
		LogFormat: "text",
		Cache: CacheConfig{
			Enabled: true,
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for qprimes.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "qprimes"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "qprimes"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "qprimes"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "qprimes"), nil
	default:
		return filepath.Join(home, ".config", "qprimes"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// fileKeys records which boolean keys the config file actually contains,
// since a decoded false is indistinguishable from an absent key.
type fileKeys struct {
	Cache struct {
		Enabled *bool `json:"enabled"`
	} `json:"cache"`
}

// LoadFile loads config from the config file. Returns zero Config and nil error if file doesn't exist.
func LoadFile() (Config, error) {
	cfg, _, err := readFile()
	return cfg, err
}

func readFile() (Config, fileKeys, error) {
	var keys fileKeys
	path, err := ConfigPath()
	if err != nil {
		return Config{}, keys, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, keys, nil
		}
		return Config{}, keys, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, keys, fmt.Errorf("parsing config file: %w", err)
	}
	if err := json.Unmarshal(data, &keys); err != nil {
		return Config{}, keys, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, keys, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, keys, err := readFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg, keys)
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports the first invalid field of cfg.
func Validate(cfg Config) error {
	if cfg.Bound <= 0 {
		return fmt.Errorf("bound must be a positive integer, got %d", cfg.Bound)
	}
	if cfg.Bound > quadratic.MaxBound {
		return fmt.Errorf("bound must be at most %d, got %d", quadratic.MaxBound, cfg.Bound)
	}
	if !knownFormat(cfg.Format) {
		return fmt.Errorf("unsupported output format: %s", cfg.Format)
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return fmt.Errorf("unknown log format: %s", cfg.LogFormat)
	}
	if cfg.Cache.TTLSeconds < 0 {
		return fmt.Errorf("cache ttlSeconds must not be negative")
	}
	return nil
}

func knownFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

func mergeFile(dst *Config, src Config, keys fileKeys) {
	if src.Bound > 0 {
		dst.Bound = src.Bound
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.LogFormat != "" {
		dst.LogFormat = src.LogFormat
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}
	if src.Cache.TTLSeconds > 0 {
		dst.Cache.TTLSeconds = src.Cache.TTLSeconds
	}
	if keys.Cache.Enabled != nil {
		dst.Cache.Enabled = *keys.Cache.Enabled
	}
}

func mergeEnv(cfg *Config) error {
	if v := os.Getenv("QPRIMES_BOUND"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("QPRIMES_BOUND must be an integer: %w", err)
		}
		cfg.Bound = n
	}
	if v := os.Getenv("QPRIMES_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("QPRIMES_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("QPRIMES_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("QPRIMES_CACHE"); v != "" {
		enabled, err := parseSwitch(v)
		if err != nil {
			return fmt.Errorf("QPRIMES_CACHE: %w", err)
		}
		cfg.Cache.Enabled = enabled
	}
	return nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	if overrides == nil {
		return nil
	}
	for key, value := range overrides {
		if value == "" {
			continue
		}
		if err := SetField(cfg, key, value); err != nil {
			return err
		}
	}
	return nil
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "bound":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("bound must be an integer: %w", err)
		}
		cfg.Bound = n
	case "format":
		cfg.Format = value
	case "logLevel":
		cfg.LogLevel = value
	case "logFormat":
		cfg.LogFormat = value
	case "cache.enabled":
		enabled, err := parseSwitch(value)
		if err != nil {
			return fmt.Errorf("cache.enabled: %w", err)
		}
		cfg.Cache.Enabled = enabled
	case "cache.dir":
		cfg.Cache.Dir = value
	case "cache.ttlSeconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("cache.ttlSeconds must be an integer: %w", err)
		}
		cfg.Cache.TTLSeconds = n
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func parseSwitch(v string) (bool, error) {
	switch v {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("expected a boolean, got %q", v)
	}
	return b, nil
}
