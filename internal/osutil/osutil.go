// Package osutil holds platform names and process exit codes.
package osutil

import "runtime"

const (
	Windows = "windows"
	Darwin  = "darwin"
)

type ExitCode int

const (
	ExitOK ExitCode = iota
	ExitError
	ExitCrash
)

// DefaultEditor returns the editor used when neither $VISUAL nor $EDITOR is
// set.
func DefaultEditor() string {
	if runtime.GOOS == Windows {
		return "C:\\Windows\\system32\\notepad.exe"
	}

	return "nano"
}
