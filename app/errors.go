package app

import "github.com/ayoisaiah/slumber/internal/apperr"

var (
	errSyncIncomplete = &apperr.Error{
		Message:  "%d record(s) could not be uploaded",
		Code:     apperr.CodeSync,
		CanRetry: true,
	}

	errMissingArg = &apperr.Error{
		Message: "missing %s",
		Code:    apperr.CodeValidation,
	}

	errDownloads = &apperr.Error{
		Message:  "%d sound(s) could not be downloaded",
		Code:     apperr.CodeNetwork,
		CanRetry: true,
	}
)
