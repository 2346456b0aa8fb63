// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all assistant configuration.
type Config struct {
	REPL      REPL      `yaml:"repl"`
	Birthdays Birthdays `yaml:"birthdays"`
	Log       Log       `yaml:"log"`
}

// REPL holds prompt and display settings.
type REPL struct {
	Prompt   string `yaml:"prompt"`
	Greeting string `yaml:"greeting"`
	Plain    bool   `yaml:"plain"` // Force line mode even on a terminal
}

// Birthdays holds upcoming-birthday query settings.
type Birthdays struct {
	WindowDays int    `yaml:"window_days"`
	LeapDay    string `yaml:"leap_day"` // "march1" | "feb28"
}

// Log holds logger settings.
type Log struct {
	Level  string `yaml:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `yaml:"format"` // "text" | "json"
	File   string `yaml:"file"`   // Empty discards logs
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		REPL: REPL{
			Prompt:   "Enter a command: ",
			Greeting: "Welcome to the assistant bot!",
		},
		Birthdays: Birthdays{
			WindowDays: 7,
			LeapDay:    "march1",
		},
		Log: Log{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.REPL.Prompt == "" {
		return errors.New("config: repl.prompt cannot be empty")
	}
	if c.Birthdays.WindowDays < 0 {
		return fmt.Errorf("config: birthdays.window_days must be non-negative, got %d", c.Birthdays.WindowDays)
	}
	// A window past a year would need wrap-around projection, which is not supported.
	if c.Birthdays.WindowDays > 365 {
		return fmt.Errorf("config: birthdays.window_days must be at most 365, got %d", c.Birthdays.WindowDays)
	}
	switch c.Birthdays.LeapDay {
	case "march1", "feb28":
		// valid
	default:
		return fmt.Errorf("config: birthdays.leap_day must be \"march1\" or \"feb28\", got %q", c.Birthdays.LeapDay)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("config: log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
		// valid
	default:
		return fmt.Errorf("config: log.format must be \"text\" or \"json\", got %q", c.Log.Format)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: ASSISTANT_PROMPT, ASSISTANT_BIRTHDAY_WINDOW,
// ASSISTANT_LEAP_DAY, ASSISTANT_LOG_LEVEL, ASSISTANT_LOG_FILE.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("ASSISTANT_PROMPT"); v != "" {
		c.REPL.Prompt = v
	}
	if v := os.Getenv("ASSISTANT_BIRTHDAY_WINDOW"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid ASSISTANT_BIRTHDAY_WINDOW %q: %w", v, err)
		}
		c.Birthdays.WindowDays = n
	}
	if v := os.Getenv("ASSISTANT_LEAP_DAY"); v != "" {
		c.Birthdays.LeapDay = v
	}
	if v := os.Getenv("ASSISTANT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("ASSISTANT_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	REPL      *rawREPL      `yaml:"repl"`
	Birthdays *rawBirthdays `yaml:"birthdays"`
	Log       *rawLog       `yaml:"log"`
}

type rawREPL struct {
	Prompt   *string `yaml:"prompt"`
	Greeting *string `yaml:"greeting"`
	Plain    *bool   `yaml:"plain"`
}

type rawBirthdays struct {
	WindowDays *int    `yaml:"window_days"`
	LeapDay    *string `yaml:"leap_day"`
}

type rawLog struct {
	Level  *string `yaml:"level"`
	Format *string `yaml:"format"`
	File   *string `yaml:"file"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.REPL != nil {
		if layer.REPL.Prompt != nil {
			c.REPL.Prompt = *layer.REPL.Prompt
		}
		if layer.REPL.Greeting != nil {
			c.REPL.Greeting = *layer.REPL.Greeting
		}
		if layer.REPL.Plain != nil {
			c.REPL.Plain = *layer.REPL.Plain
		}
	}
	if layer.Birthdays != nil {
		if layer.Birthdays.WindowDays != nil {
			c.Birthdays.WindowDays = *layer.Birthdays.WindowDays
		}
		if layer.Birthdays.LeapDay != nil {
			c.Birthdays.LeapDay = *layer.Birthdays.LeapDay
		}
	}
	if layer.Log != nil {
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
		if layer.Log.Format != nil {
			c.Log.Format = *layer.Log.Format
		}
		if layer.Log.File != nil {
			c.Log.File = *layer.Log.File
		}
	}
}
