// Package config loads the simulator's runtime configuration from a TOML
// file, falling back to the reference defaults when no file is present.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config mirrors the simulator's compile-time configuration constants
// (spec.md §6) as runtime-adjustable TOML fields.
type Config struct {
	Memory struct {
		SizeBytes int `toml:"size_bytes"`
	} `toml:"memory"`

	Predictor struct {
		Adaptive bool `toml:"adaptive"`
	} `toml:"predictor"`

	Clock struct {
		Limit uint64 `toml:"limit"`
	} `toml:"clock"`

	Dump struct {
		Inst               bool `toml:"inst"`
		RegState           bool `toml:"reg_state"`
		RetValue           bool `toml:"ret_value"`
		TargetAddr         bool `toml:"target_addr"`
		TotalClockCycle    bool `toml:"total_clock_cycle"`
		PredictionAccuracy bool `toml:"prediction_accuracy"`
		TotalTime          bool `toml:"total_time"`
	} `toml:"dump"`

	Display struct {
		ABINames bool `toml:"abi_names"`
	} `toml:"display"`

	Trace struct {
		MemOps bool `toml:"mem_ops"`
	} `toml:"trace"`
}

// DefaultConfig returns the reference simulator's defaults: 128 KiB memory,
// adaptive predictor on, unlimited clock, instruction dump, target-address
// display and ABI register names on, everything else off.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Memory.SizeBytes = 128 * 1024
	cfg.Predictor.Adaptive = true
	cfg.Clock.Limit = 0

	cfg.Dump.Inst = true
	cfg.Dump.RegState = false
	cfg.Dump.RetValue = false
	cfg.Dump.TargetAddr = true
	cfg.Dump.TotalClockCycle = false
	cfg.Dump.PredictionAccuracy = false
	cfg.Dump.TotalTime = false

	cfg.Display.ABINames = true
	cfg.Trace.MemOps = false

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "rv32pipe")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "rv32pipe")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file, returning defaults
// unchanged if the file does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return cfg, nil
}

// SaveTo writes configuration to the specified file, creating its
// directory if necessary.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("config: creating directory for %s: %w", path, err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("config: creating %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("config: encoding %s: %w", path, err)
	}

	return nil
}
