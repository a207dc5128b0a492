package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/slumber/app"
	"github.com/ayoisaiah/slumber/internal/osutil"
	"github.com/ayoisaiah/slumber/internal/pathutil"
	"github.com/ayoisaiah/slumber/report"
)

func run(ctx context.Context, args []string) error {
	return app.Get().RunContext(ctx, args)
}

// crashDir falls back to the working directory when the data directory
// could not be resolved.
func crashDir() string {
	if err := pathutil.Initialize(); err != nil {
		return "."
	}

	return pathutil.CrashDir()
}

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)

	defer func() {
		if r := recover(); r != nil {
			stop()

			path := report.Crash(crashDir(), r, debug.Stack())

			msg := "Slumber stopped unexpectedly."
			if path != "" {
				msg += fmt.Sprintf(" Details were saved to %s", path)
			}

			pterm.Error.Println(msg)
			os.Exit(int(osutil.ExitCrash))
		}
	}()

	err := run(ctx, os.Args)

	stop()

	if err != nil {
		report.Error(err)
		os.Exit(int(osutil.ExitError))
	}
}
