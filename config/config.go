// Package config loads and saves the interpreter's on-disk TOML
// configuration: REPL history and display toggles that don't belong in
// the language itself.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds settings that shape how the driver runs the interpreter,
// never anything that affects the language's own semantics.
type Config struct {
	Execution struct {
		EnableTrace bool `toml:"enable_trace"` // run command: disassemble the chunk before running it
	} `toml:"execution"`

	Display struct {
		ColorOutput bool `toml:"color_output"`
	} `toml:"display"`

	REPL struct {
		HistoryFile string `toml:"history_file"`
		HistorySize int    `toml:"history_size"`
	} `toml:"repl"`
}

// Default returns a Config populated with the driver's built-in defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.Execution.EnableTrace = false
	cfg.Display.ColorOutput = true
	cfg.REPL.HistoryFile = historyFilePath()
	cfg.REPL.HistorySize = 1000
	return cfg
}

// Path returns the platform-specific config file location.
func Path() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.toml"
	}
	dir = filepath.Join(dir, "lox")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "config.toml"
	}
	return filepath.Join(dir, "config.toml")
}

func historyFilePath() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return ".lox_history"
	}
	return filepath.Join(dir, ".lox_history")
}

// Load reads the config file at Path, falling back to Default if it
// doesn't exist yet.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads and decodes the TOML config file at path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// Save writes c to the default config path.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo writes c as TOML to path, creating parent directories as needed.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	f, err := os.Create(path) // #nosec G304 -- path comes from Path() or caller-supplied config target
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
