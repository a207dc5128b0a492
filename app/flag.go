package app

import (
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/slumber/stats"
)

var (
	sinceFlag = &cli.StringFlag{
		Name:  "since",
		Usage: "Start the session in the past (e.g. '20 mins ago' or '11pm')",
	}

	alarmFlag = &cli.StringFlag{
		Name:    "alarm",
		Aliases: []string{"a"},
		Usage:   "Wake-up time (e.g. '6:45am', '07:00'). Overrides alarm.time in the config file",
	}

	noAlarmFlag = &cli.BoolFlag{
		Name:  "no-alarm",
		Usage: "Sleep without an alarm, even if one is configured",
	}

	smartAlarmFlag = &cli.BoolFlag{
		Name:  "smart-alarm",
		Usage: "Wake up to 30 minutes before the alarm time (see alarm.smart_window)",
	}

	soundFlag = &cli.StringFlag{
		Name:    "sound",
		Aliases: []string{"s"},
		Usage:   "Ambient sound to play during the session. A sound id from 'slumber sounds list', a file or a URL",
	}

	noSoundFlag = &cli.BoolFlag{
		Name:  "no-sound",
		Usage: "Sleep without an ambient sound",
	}

	recorderFlag = &cli.BoolFlag{
		Name:  "recorder",
		Usage: "Mark the session as recorded",
	}

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Write debug messages to the log file",
	}

	verboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "Also print log messages to the terminal. Not recommended with the session screen",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	wakeUpsFlag = &cli.IntFlag{
		Name:    "wake-ups",
		Aliases: []string{"w"},
		Usage:   "How many times you woke up during the night",
	}

	notesFlag = &cli.StringFlag{
		Name:    "notes",
		Aliases: []string{"n"},
		Usage:   "Notes about the night",
	}

	periodFlag = &cli.StringFlag{
		Name:    "period",
		Aliases: []string{"p"},
		Usage:   "Reporting period: all-time, today, yesterday, 7days, 14days, 30days, 90days, 180days or 365days. Defaults to 7days",
	}

	startFlag = &cli.StringFlag{
		Name:  "start",
		Usage: "Only include sessions that started on or after this date (e.g. '2026-04-01', 'last monday')",
	}

	endFlag = &cli.StringFlag{
		Name:  "end",
		Usage: "Only include sessions that started on or before this date",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the report as JSON",
	}

	serveFlag = &cli.BoolFlag{
		Name:  "serve",
		Usage: "Serve the report over HTTP instead of printing it",
	}

	addrFlag = &cli.StringFlag{
		Name:  "addr",
		Usage: "Address for the statistics server",
		Value: stats.DefaultAddr,
	}

	moodFlag = &cli.IntFlag{
		Name:    "mood",
		Aliases: []string{"m"},
		Usage:   "How you feel from 1 (awful) to 5 (great)",
		Value:   3,
	}

	userFlag = &cli.StringFlag{
		Name:     "user",
		Aliases:  []string{"u"},
		Usage:    "Your user name on the remote database",
		Required: true,
	}

	dsnFlag = &cli.StringFlag{
		Name:     "dsn",
		Usage:    "Connection string of the remote database (postgres://, sqlite:// or file:)",
		Required: true,
		EnvVars:  []string{"SLUMBER_REMOTE_DSN"},
	}

	watchFlag = &cli.BoolFlag{
		Name:  "watch",
		Usage: "Keep the elapsed time updating until interrupted",
	}

	smartFlag = &cli.BoolFlag{
		Name:  "smart",
		Usage: "Use a smart alarm",
	}
)

// startFlags apply to commands that begin or resume a session.
var startFlags = []cli.Flag{
	sinceFlag,
	alarmFlag,
	noAlarmFlag,
	smartAlarmFlag,
	soundFlag,
	noSoundFlag,
	recorderFlag,
}

// filterFlags narrow the sessions reported by list and stats.
var filterFlags = []cli.Flag{
	periodFlag,
	startFlag,
	endFlag,
}
