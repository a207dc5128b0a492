package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/slumber/internal/apperr"
)

func defaultConfig() *Config {
	return &Config{
		Sleep: SleepConfig{Target: DefaultTarget},
		Sound: SoundConfig{
			BaseURL:     DefaultSoundURL,
			Volume:      DefaultVolume,
			LoadTimeout: DefaultLoadTimeout,
			Retries:     DefaultRetries,
		},
		Alarm: AlarmConfig{
			Sound:       "alarm",
			SmartWindow: DefaultSmartWindow,
		},
		Display: DisplayConfig{DarkTheme: true},
	}
}

func TestWithViperConfigWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := New(WithViperConfig(path))
	require.NoError(t, err)

	assert.Equal(t, defaultConfig(), cfg)
	assert.FileExists(t, path)
}

func TestWithViperConfigReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	content := `sleep:
  target: 7h30m
sound:
  default: rain
  volume: 0.8
  load_timeout: 20s
  retries: 3
alarm:
  time: "6:45am"
  smart: true
  smart_window: 20
remote:
  dsn: sqlite:///tmp/slumber.sqlite
display:
  24hr_clock: true
  dark_theme: false
`

	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := New(WithViperConfig(path))
	require.NoError(t, err)

	assert.Equal(t, 7*time.Hour+30*time.Minute, cfg.Sleep.Target)
	assert.Equal(t, "rain", cfg.Sound.Default)
	assert.InDelta(t, 0.8, cfg.Sound.Volume, 0.0001)
	assert.Equal(t, 20*time.Second, cfg.Sound.LoadTimeout)
	assert.Equal(t, 3, cfg.Sound.Retries)
	assert.Equal(t, "6:45am", cfg.Alarm.Time)
	assert.True(t, cfg.Alarm.Smart)
	assert.Equal(t, 20*time.Minute, cfg.Alarm.SmartWindow)
	assert.Equal(t, "sqlite:///tmp/slumber.sqlite", cfg.Remote.DSN)
	assert.True(t, cfg.Display.TwentyFourHour)
	assert.False(t, cfg.Display.DarkTheme)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	t.Setenv("SLUMBER_SOUND_VOLUME", "0.25")

	cfg, err := New(WithViperConfig(path))
	require.NoError(t, err)

	assert.InDelta(t, 0.25, cfg.Sound.Volume, 0.0001)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		modify func(c *Config)
		want   *apperr.Error
		name   string
	}{
		{
			name:   "defaults are valid",
			modify: func(_ *Config) {},
		},
		{
			name:   "target too short",
			modify: func(c *Config) { c.Sleep.Target = 30 * time.Minute },
			want:   errInvalidTarget,
		},
		{
			name:   "volume above one",
			modify: func(c *Config) { c.Sound.Volume = 1.5 },
			want:   errInvalidVolume,
		},
		{
			name:   "zero retries",
			modify: func(c *Config) { c.Sound.Retries = 0 },
			want:   errInvalidRetries,
		},
		{
			name:   "unknown sound format",
			modify: func(c *Config) { c.Sound.Default = "rain.aac" },
			want:   errInvalidSoundFormat,
		},
		{
			name:   "bad alarm time",
			modify: func(c *Config) { c.Alarm.Time = "breakfast" },
			want:   errInvalidAlarmTime,
		},
		{
			name:   "unsupported dsn",
			modify: func(c *Config) { c.Remote.DSN = "mysql://localhost/db" },
			want:   errInvalidDSN,
		},
		{
			name: "postgres dsn",
			modify: func(c *Config) {
				c.Remote.DSN = "postgres://u:p@localhost/slumber?sslmode=disable"
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.modify(cfg)

			err := cfg.Validate()
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
		})
	}
}

func TestApplyCLIOptions(t *testing.T) {
	now := time.Date(2026, 5, 1, 23, 0, 0, 0, time.UTC)

	t.Run("conflicting sound flags", func(t *testing.T) {
		err := applyCLIOptions(defaultConfig(), CLIOptions{
			Now:     now,
			Sound:   "rain",
			NoSound: true,
		})
		assert.ErrorIs(t, err, errConflictingSoundFlags)
	})

	t.Run("alarm from config when flag is absent", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Alarm.Time = "06:30"

		require.NoError(t, applyCLIOptions(cfg, CLIOptions{Now: now}))

		assert.Equal(t, 6, cfg.CLI.AlarmTime.Hour())
		assert.Equal(t, 30, cfg.CLI.AlarmTime.Minute())
		assert.Equal(t, now, cfg.CLI.StartTime)
	})

	t.Run("no-alarm ignores the configured time", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Alarm.Time = "06:30"

		require.NoError(t, applyCLIOptions(cfg, CLIOptions{
			Now:     now,
			NoAlarm: true,
		}))

		assert.True(t, cfg.CLI.AlarmTime.IsZero())
	})

	t.Run("start time in the future", func(t *testing.T) {
		err := applyCLIOptions(defaultConfig(), CLIOptions{
			Now:   now,
			Since: "23:30",
		})
		assert.ErrorIs(t, err, errInvalidCLITime)
	})

	t.Run("sound flag wins over default", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Sound.Default = "rain"

		require.NoError(t, applyCLIOptions(cfg, CLIOptions{
			Now:   now,
			Sound: "ocean",
		}))

		assert.Equal(t, "ocean", cfg.AmbientSound())
		assert.True(t, cfg.SoundsEnabled())
	})
}

func TestNewFilter(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	t.Run("period", func(t *testing.T) {
		f, err := NewFilter(FilterOptions{Now: now, Period: "7days"})
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), f.StartTime)
	})

	t.Run("unknown period", func(t *testing.T) {
		_, err := NewFilter(FilterOptions{Now: now, Period: "fortnight"})
		assert.ErrorIs(t, err, errInvalidPeriod)
	})

	t.Run("missing start", func(t *testing.T) {
		_, err := NewFilter(FilterOptions{Now: now})
		assert.ErrorIs(t, err, errInvalidStartDate)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := NewFilter(FilterOptions{
			Now:   now,
			Start: "2026-05-08",
			End:   "2026-05-01",
		})
		assert.ErrorIs(t, err, errInvalidDateRange)
	})
}
