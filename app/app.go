package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/slumber/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the slumber app instance.
func Get() *cli.App {
	slumberApp := &cli.App{
		Name: "slumber",
		Authors: []*cli.Author{
			{
				Name:  "Ayooluwa Isaiah",
				Email: "ayo@freshman.tech",
			},
		},
		Usage: `
		Slumber is a sleep tracker for the command-line. Start a session when
		you go to bed, let an ambient sound play and an alarm wake you up, then
		record how the night went and follow your sleep over time.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "start",
				Usage:  "Start a new sleep session, replacing the active one",
				Flags:  startFlags,
				Action: startAction,
			},
			{
				Name:   "resume",
				Usage:  "Return to the active sleep session",
				Action: resumeAction,
			},
			{
				Name:   "end",
				Usage:  "End the active sleep session",
				Flags:  []cli.Flag{wakeUpsFlag, notesFlag},
				Action: endAction,
			},
			{
				Name:   "discard",
				Usage:  "Abandon the active sleep session without recording it",
				Action: discardAction,
			},
			{
				Name:   "status",
				Usage:  "Print the status of the active sleep session",
				Flags:  []cli.Flag{watchFlag},
				Action: statusAction,
			},
			{
				Name:   "list",
				Usage:  "List the sleep sessions of a period. Defaults to 7 days",
				Flags:  filterFlags,
				Action: listAction,
			},
			{
				Name: "stats",
				Usage: `
				Track your sleep with detailed statistics reporting. Defaults to a
				reporting period of 7 days`,
				Flags:  append([]cli.Flag{jsonFlag, serveFlag, addrFlag}, filterFlags...),
				Action: statsAction,
			},
			{
				Name:   "sync",
				Usage:  "Upload the sessions and journal entries saved on this device",
				Action: syncAction,
			},
			{
				Name:  "alarm",
				Usage: "Change the alarm of the active sleep session",
				Subcommands: []*cli.Command{
					{
						Name:      "set",
						Usage:     "Set the wake-up time",
						ArgsUsage: "<time>",
						Flags:     []cli.Flag{smartFlag},
						Action:    alarmSetAction,
					},
					{
						Name:   "cancel",
						Usage:  "Cancel the alarm",
						Action: alarmCancelAction,
					},
				},
			},
			{
				Name:  "sounds",
				Usage: "Browse and fetch ambient sounds",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List the available sounds",
						Action: soundsListAction,
					},
					{
						Name:      "download",
						Usage:     "Save sounds on this device for offline use",
						ArgsUsage: "[<id>...]",
						Action:    soundsDownloadAction,
					},
					{
						Name:      "play",
						Usage:     "Preview a sound until interrupted",
						ArgsUsage: "<id|file|url>",
						Action:    soundsPlayAction,
					},
				},
			},
			{
				Name:  "journal",
				Usage: "Keep a sleep journal",
				Subcommands: []*cli.Command{
					{
						Name:      "add",
						Usage:     "Add a journal entry",
						ArgsUsage: "<text>",
						Flags:     []cli.Flag{moodFlag},
						Action:    journalAddAction,
					},
					{
						Name:   "list",
						Usage:  "List the journal entries of a period. Defaults to 7 days",
						Flags:  filterFlags,
						Action: journalListAction,
					},
				},
			},
			{
				Name:   "login",
				Usage:  "Sync your sessions to a remote database",
				Flags:  []cli.Flag{userFlag, dsnFlag},
				Action: loginAction,
			},
			{
				Name:   "logout",
				Usage:  "Stop syncing and return to guest mode",
				Action: logoutAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: append([]cli.Flag{
			debugFlag,
			verboseFlag,
			noColorFlag,
		}, startFlags...),
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}

	return slumberApp
}
