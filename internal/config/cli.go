package config

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/slumber/internal/timeutil"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Now        time.Time
	Since      string
	Alarm      string
	Sound      string
	NoSound    bool
	NoAlarm    bool
	SmartAlarm bool
	Recorder   bool
	Debug      bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Now:        time.Now(),
			Since:      ctx.String("since"),
			Alarm:      ctx.String("alarm"),
			Sound:      ctx.String("sound"),
			NoSound:    ctx.Bool("no-sound"),
			NoAlarm:    ctx.Bool("no-alarm"),
			SmartAlarm: ctx.Bool("smart-alarm"),
			Recorder:   ctx.Bool("recorder"),
			Debug:      ctx.Bool("debug"),
		}

		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	if opts.Sound != "" && opts.NoSound {
		return errConflictingSoundFlags
	}

	if opts.Sound != "" {
		if err := validateSoundName(opts.Sound); err != nil {
			return err
		}
	}

	c.CLI.Sound = opts.Sound
	c.CLI.NoSound = opts.NoSound
	c.CLI.NoAlarm = opts.NoAlarm
	c.CLI.SmartAlarm = opts.SmartAlarm
	c.CLI.Recorder = opts.Recorder
	c.CLI.Debug = opts.Debug

	c.CLI.StartTime = opts.Now

	if opts.Since != "" {
		startTime, err := timeutil.FromStr(opts.Since, opts.Now)
		if err != nil || startTime.After(opts.Now) {
			return errInvalidCLITime.Fmt("start", opts.Since)
		}

		c.CLI.StartTime = startTime
	}

	if opts.NoAlarm {
		return nil
	}

	alarm := opts.Alarm
	if alarm == "" {
		alarm = c.Alarm.Time
	}

	if alarm == "" {
		return nil
	}

	alarmTime, err := timeutil.FromStr(alarm, opts.Now)
	if err != nil {
		return errInvalidCLITime.Fmt("alarm", alarm)
	}

	c.CLI.AlarmTime = alarmTime

	return nil
}
