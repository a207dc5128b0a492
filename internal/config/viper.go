package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const envPrefix = "SLUMBER"

const (
	keySleepTarget      = "sleep.target"
	keySoundDefault     = "sound.default"
	keySoundBaseURL     = "sound.base_url"
	keySoundVolume      = "sound.volume"
	keySoundLoadTimeout = "sound.load_timeout"
	keySoundRetries     = "sound.retries"
	keyAlarmTime        = "alarm.time"
	keyAlarmSmart       = "alarm.smart"
	keyAlarmSmartWindow = "alarm.smart_window"
	keyAlarmSound       = "alarm.sound"
	keyAlarmCmd         = "alarm.cmd"
	keyRemoteDSN        = "remote.dsn"
	keyTwentyFourHour   = "display.24hr_clock"
	keyDarkTheme        = "display.dark_theme"
)

// WithViperConfig returns an Option that loads configuration from the YAML
// file at configPath. The file is created with default values if it does
// not exist. Every key can be overridden by a SLUMBER_ prefixed environment
// variable (e.g. SLUMBER_SOUND_VOLUME).
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper configures Viper with defaults, environment overrides and any
// values collected by the first-run prompt.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keySleepTarget, DefaultTarget.String())
	v.SetDefault(keySoundDefault, "")
	v.SetDefault(keySoundBaseURL, DefaultSoundURL)
	v.SetDefault(keySoundVolume, DefaultVolume)
	v.SetDefault(keySoundLoadTimeout, DefaultLoadTimeout.String())
	v.SetDefault(keySoundRetries, DefaultRetries)
	v.SetDefault(keyAlarmTime, "")
	v.SetDefault(keyAlarmSmart, false)
	v.SetDefault(keyAlarmSmartWindow, DefaultSmartWindow.String())
	v.SetDefault(keyAlarmSound, "alarm")
	v.SetDefault(keyAlarmCmd, "")
	v.SetDefault(keyRemoteDSN, "")
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keyDarkTheme, true)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if c.Sleep.Target != 0 {
		v.Set(keySleepTarget, c.Sleep.Target.String())
	}

	if c.Sound.Default != "" {
		v.Set(keySoundDefault, c.Sound.Default)
	}

	if c.Alarm.Time != "" {
		v.Set(keyAlarmTime, c.Alarm.Time)
	}

	if c.Alarm.Smart {
		v.Set(keyAlarmSmart, true)
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		durationHook(),
		mapstructure.StringToSliceHookFunc(","),
	))

	if err := v.Unmarshal(c, hook); err != nil {
		return errDecodeConfig.Wrap(err)
	}

	return nil
}

// durationHook decodes duration strings, treating bare numbers as minutes.
func durationHook() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String ||
			to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}

		s, _ := data.(string)

		return parseDuration(s)
	}
}

// parseDuration parses duration strings, falling back to minutes when the
// unit is absent.
func parseDuration(s string) (time.Duration, error) {
	dur, err := time.ParseDuration(s)
	if err == nil {
		return dur, nil
	}

	mins, err := time.ParseDuration(s + "m")
	if err != nil {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}

	return mins, nil
}
