package app

import (
	"fmt"

	"github.com/pterm/pterm"
)

func helpText() string {
	description := fmt.Sprintf(
		"%s\n\t\t{{.Usage}}\n\n",
		pterm.Yellow("DESCRIPTION"),
	)

	usage := fmt.Sprintf(
		"%s\n\t\t{{.HelpName}} {{if .UsageText}}{{ .UsageText }}{{end}}\n\n",
		pterm.Yellow("USAGE"),
	)

	author := fmt.Sprintf(
		"{{if len .Authors}}%s\n\t\t{{range .Authors}}{{ . }}{{end}}{{end}}\n\n",
		pterm.Yellow("AUTHOR"),
	)

	version := fmt.Sprintf(
		"{{if .Version}}%s\n\t\t{{.Version}}{{end}}\n\n",
		pterm.Yellow("VERSION"),
	)

	commands := fmt.Sprintf(
		"%s\n{{range .Commands}}{{if not .HideHelp}}   %s{{ `\t`}}{{.Usage}}{{ `\n` }}{{end}}{{end}}\n\n",
		pterm.Yellow("COMMANDS"),
		pterm.Green("{{join .Names `, `}}"),
	)

	options := fmt.Sprintf(
		"%s\n{{range .VisibleFlags}}\t\t{{if .Aliases}}{{range $element := .Aliases}}%s,{{end}}{{end}} %s\n\t\t\t\t{{.Usage}}\n\n{{end}}",
		pterm.Yellow("OPTIONS"),
		pterm.Green("-{{$element}}"),
		pterm.Green("--{{.Name}} {{.DefaultText}}"),
	)

	env := fmt.Sprintf(
		"%s\n\t\t%s\n\n",
		pterm.Yellow("ENVIRONMENTAL VARIABLES"),
		envHelp(),
	)

	keys := fmt.Sprintf(
		"%s\n\t\t%s\n\n",
		pterm.Yellow("SESSION SCREEN"),
		keysHelp(),
	)

	website := fmt.Sprintf(
		"%s\n\t\thttps://github.com/ayoisaiah/slumber\n",
		pterm.Yellow("WEBSITE"),
	)

	return description + usage + author + version + commands + options + env + keys + website
}

func envHelp() string {
	return `
SLUMBER_NO_COLOR, NO_COLOR: set to any value to avoid printing ANSI escape sequences for color output.

SLUMBER_DEBUG: set to any value to write debug messages to the log file.

SLUMBER_ENV: suffixes the config, database and log file names (e.g. 'dev').

SLUMBER_UPDATE_NOTIFIER: set to any value to enable update notifications when using the -v or --version flag.

SLUMBER_<SECTION>_<KEY>: overrides a config file setting (e.g. SLUMBER_SOUND_VOLUME=0.3).`
}

func keysHelp() string {
	return `
space: play or pause the sound    +/-: volume    r: retry the sound
s: sync now    e: end the session    q: leave the session running and quit`
}
