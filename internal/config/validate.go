package config

import (
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/ayoisaiah/slumber/internal/timeutil"
)

var (
	minTarget = 1 * time.Hour
	maxTarget = 16 * time.Hour

	minLoadTimeout = 1 * time.Second
	maxLoadTimeout = 2 * time.Minute

	maxRetries     = 5
	maxSmartWindow = 90 * time.Minute

	soundExts  = []string{".mp3", ".ogg", ".flac", ".wav"}
	dsnSchemes = []string{"postgres://", "postgresql://", "sqlite://", "file:"}
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if c.Sleep.Target < minTarget || c.Sleep.Target > maxTarget {
		return errInvalidTarget.Fmt(minTarget, maxTarget, c.Sleep.Target)
	}

	if err := c.validateSound(); err != nil {
		return err
	}

	if err := c.validateAlarm(); err != nil {
		return err
	}

	if c.Remote.DSN != "" && !ValidDSN(c.Remote.DSN) {
		return errInvalidDSN.Fmt(c.Remote.DSN)
	}

	return nil
}

func (c *Config) validateSound() error {
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		return errInvalidVolume.Fmt(c.Sound.Volume)
	}

	if c.Sound.LoadTimeout < minLoadTimeout ||
		c.Sound.LoadTimeout > maxLoadTimeout {
		return errInvalidLoadTimeout.Fmt(
			minLoadTimeout,
			maxLoadTimeout,
			c.Sound.LoadTimeout,
		)
	}

	if c.Sound.Retries < 1 || c.Sound.Retries > maxRetries {
		return errInvalidRetries.Fmt(maxRetries, c.Sound.Retries)
	}

	return validateSoundName(c.Sound.Default)
}

func (c *Config) validateAlarm() error {
	if c.Alarm.Time != "" {
		if _, ok := timeutil.ParseClock(c.Alarm.Time, time.Now()); !ok {
			return errInvalidAlarmTime.Fmt(c.Alarm.Time)
		}
	}

	if c.Alarm.SmartWindow < 0 || c.Alarm.SmartWindow > maxSmartWindow {
		return errInvalidSmartWindow.Fmt(maxSmartWindow, c.Alarm.SmartWindow)
	}

	return validateSoundName(c.Alarm.Sound)
}

// validateSoundName checks the extension of a sound name. Names without an
// extension refer to the catalogue and are always accepted.
func validateSoundName(sound string) error {
	ext := strings.ToLower(filepath.Ext(sound))
	if ext == "" {
		return nil
	}

	if !slices.Contains(soundExts, ext) {
		return errInvalidSoundFormat.Fmt(sound)
	}

	return nil
}

// ValidDSN reports whether dsn names a supported remote database.
func ValidDSN(dsn string) bool {
	for _, scheme := range dsnSchemes {
		if strings.HasPrefix(dsn, scheme) {
			return true
		}
	}

	return false
}
