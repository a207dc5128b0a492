package app

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/slumber/internal/config"
	"github.com/ayoisaiah/slumber/internal/logger"
	"github.com/ayoisaiah/slumber/internal/osutil"
	"github.com/ayoisaiah/slumber/internal/pathutil"
)

const (
	envUpdateNotifier = "SLUMBER_UPDATE_NOTIFIER"
	envNoColor        = "NO_COLOR"
	envSlumberNoColor = "SLUMBER_NO_COLOR"

	releasesURL = "https://github.com/ayoisaiah/slumber/releases"
)

var logCloser io.Closer

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// checkForUpdates alerts the user if there is
// an updated version of Slumber from the one currently installed.
func checkForUpdates(app *cli.App) {
	spinner, _ := pterm.DefaultSpinner.Start("Checking for updates...")
	c := http.Client{Timeout: 10 * time.Second}

	resp, err := c.Get(releasesURL + "/latest")
	if err != nil {
		spinner.Fail("HTTP Error: Failed to check for update")
		return
	}

	defer resp.Body.Close()

	var version string

	_, err = fmt.Sscanf(
		resp.Request.URL.String(),
		releasesURL+"/tag/%s",
		&version,
	)
	if err != nil {
		spinner.Fail("Failed to get latest version")
		return
	}

	if version == app.Version {
		text := pterm.Sprintf(
			"Congratulations, you are using the latest version of %s",
			app.Name,
		)
		spinner.Success(text)

		return
	}

	_ = spinner.Stop()

	pterm.Warning.Prefix = pterm.Prefix{
		Text:  "UPDATE AVAILABLE",
		Style: pterm.NewStyle(pterm.BgYellow, pterm.FgBlack),
	}
	pterm.Warning.Printfln(
		"A new release of slumber is available: %s at %s",
		version,
		resp.Request.URL.String(),
	)
}

// editConfigAction handles the edit-config command which opens the slumber
// config file in the user's default text editor.
func editConfigAction(ctx *cli.Context) error {
	// creates the file with defaults on first use
	if _, err := loadConfig(ctx, false); err != nil {
		return err
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		osutil.DefaultEditor(),
	)

	//nolint:gosec // the editor comes from the user's own environment
	cmd := exec.CommandContext(ctx.Context, editor, pathutil.ConfigFilePath())

	cmd.Stderr = config.Stderr
	cmd.Stdin = config.Stdin
	cmd.Stdout = config.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	// Override the default version printer
	oldVersionPrinter := cli.VersionPrinter
	cli.VersionPrinter = func(c *cli.Context) {
		oldVersionPrinter(c)
		fmt.Printf("%s/%s\n", releasesURL, c.App.Version)

		if _, found := os.LookupEnv(envUpdateNotifier); found {
			checkForUpdates(c.App)
		}
	}

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if SLUMBER_NO_COLOR is set
	if _, exists := os.LookupEnv(envSlumberNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	if err := pathutil.Initialize(); err != nil {
		return err
	}

	closer, err := logger.Init(logger.Config{
		Path:    pathutil.LogFilePath(),
		Debug:   ctx.Bool("debug"),
		Verbose: ctx.Bool("verbose"),
	})
	if err != nil {
		return err
	}

	logCloser = closer

	slog.DebugContext(ctx.Context, "starting slumber",
		slog.String("version", ctx.App.Version),
		slog.Any("args", ctx.Args().Slice()),
	)

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting slumber")

	if logCloser != nil {
		return logCloser.Close()
	}

	return nil
}
