// Package config reads and writes the outgo TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// EnvDataFile overrides the backing file path when set. It is the only
// environment knob the application honors.
const EnvDataFile = "OUTGO_FILE"

// Backend names for the storage section.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// Config holds all outgo configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Storage    StorageConfig    `toml:"storage"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataFile string `toml:"data_file,omitempty"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Backend string `toml:"backend"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Backend: BackendCSV,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "outgo")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "outgo")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// DataFile resolves the backing file path. Precedence: explicit flag value,
// OUTGO_FILE (a .env in the working directory is loaded first), the config
// file, then the XDG data directory default.
func DataFile(cfg Config, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	_ = godotenv.Load() // best-effort, missing .env is fine
	if env := os.Getenv(EnvDataFile); env != "" {
		return env
	}
	if cfg.General.DataFile != "" {
		return cfg.General.DataFile
	}
	return defaultDataFile()
}

func defaultDataFile() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "outgo", "expenses.csv")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "outgo", "expenses.csv")
}
