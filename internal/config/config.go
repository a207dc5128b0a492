// Package config loads Slumber's settings from the config file, the
// environment and command-line flags.
package config

import (
	"fmt"
	"io"
	"os"
	"time"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Remote  RemoteConfig  `mapstructure:"remote"`
		Alarm   AlarmConfig   `mapstructure:"alarm"`
		Sound   SoundConfig   `mapstructure:"sound"`
		CLI     CLIConfig     `mapstructure:"-"`
		Sleep   SleepConfig   `mapstructure:"sleep"`
		Display DisplayConfig `mapstructure:"display"`
	}

	// SleepConfig holds the user's sleep goals.
	SleepConfig struct {
		Target time.Duration `mapstructure:"target"`
	}

	// SoundConfig holds ambient sound settings. Retries is how many times
	// the user may retry a failed load.
	SoundConfig struct {
		Default     string        `mapstructure:"default"`
		BaseURL     string        `mapstructure:"base_url"`
		Volume      float64       `mapstructure:"volume"`
		LoadTimeout time.Duration `mapstructure:"load_timeout"`
		Retries     int           `mapstructure:"retries"`
	}

	// AlarmConfig holds wake-up alarm settings.
	AlarmConfig struct {
		Time        string        `mapstructure:"time"`
		Sound       string        `mapstructure:"sound"`
		Cmd         string        `mapstructure:"cmd"`
		SmartWindow time.Duration `mapstructure:"smart_window"`
		Smart       bool          `mapstructure:"smart"`
	}

	// RemoteConfig holds the remote database settings.
	RemoteConfig struct {
		DSN string `mapstructure:"dsn"`
	}

	// DisplayConfig holds display-related settings.
	DisplayConfig struct {
		TwentyFourHour bool `mapstructure:"24hr_clock"`
		DarkTheme      bool `mapstructure:"dark_theme"`
	}

	// CLIConfig holds the options that only apply to the current invocation.
	CLIConfig struct {
		StartTime  time.Time
		AlarmTime  time.Time
		Sound      string
		NoSound    bool
		NoAlarm    bool
		SmartAlarm bool
		Recorder   bool
		Debug      bool
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v0.3.0"

const (
	DefaultTarget      = 8 * time.Hour
	DefaultVolume      = 0.5
	DefaultLoadTimeout = 15 * time.Second
	DefaultRetries     = 1
	DefaultSmartWindow = 30 * time.Minute
	DefaultSoundURL    = "https://sounds.slumber.sh"
)

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// SoundsEnabled reports whether an ambient sound should play for the
// current session.
func (c *Config) SoundsEnabled() bool {
	return !c.CLI.NoSound && c.AmbientSound() != ""
}

// AmbientSound returns the sound selected for this invocation, falling back
// to the configured default.
func (c *Config) AmbientSound() string {
	if c.CLI.NoSound {
		return ""
	}

	if c.CLI.Sound != "" {
		return c.CLI.Sound
	}

	return c.Sound.Default
}

// SmartAlarm reports whether the smart alarm is enabled for this invocation.
func (c *Config) SmartAlarm() bool {
	return c.CLI.SmartAlarm || c.Alarm.Smart
}

// New creates a new Config with default values and applies options.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("config option error: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}
