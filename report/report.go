// Package report prints user-facing messages
package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/slumber/internal/apperr"
)

const retryHint = "This looks temporary, please try again."

const crashLayout = "20060102-150405"

func Success(msg string) {
	pterm.Success.Println(msg)
}

func Info(msg string) {
	pterm.Info.Println(msg)
}

func Warn(msg string) {
	pterm.Warning.Println(msg)
}

// Error prints err, adding a retry hint when the failure is temporary.
func Error(err error) {
	pterm.Error.Println(err)

	if apperr.Retryable(err) {
		pterm.Info.Println(retryHint)
	}
}

// SyncWarning reassures the user that unsynced data is kept locally.
func SyncWarning(msg string) {
	if msg == "" {
		return
	}

	pterm.Warning.Println(msg)
}

// Crash records a recovered panic to a file in dir and returns its path.
// Writing the file is best effort: failures are logged and an empty path is
// returned.
func Crash(dir string, recovered any, stack []byte) string {
	slog.Error("slumber crashed",
		slog.Any("panic", recovered),
		slog.String("stack", string(stack)),
	)

	name := filepath.Join(dir, "crash-"+time.Now().Format(crashLayout)+".log")

	content := fmt.Sprintf("panic: %v\n\n%s", recovered, stack)

	err := os.MkdirAll(dir, 0o750)
	if err == nil {
		err = os.WriteFile(name, []byte(content), 0o600)
	}

	if err != nil {
		slog.Error("writing crash report failed", slog.Any("error", err))
		pterm.Error.Printfln("Slumber crashed: %v", recovered)

		return ""
	}

	pterm.Error.Printfln("Slumber crashed: %v. Details were saved to %s", recovered, name)

	return name
}
