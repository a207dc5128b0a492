package remote

import "github.com/ayoisaiah/slumber/internal/apperr"

var (
	errUnsupportedDSN = &apperr.Error{
		Message: "unsupported remote database %q (use postgres://, sqlite:// or file:)",
		Code:    apperr.CodeValidation,
	}

	errConnect = &apperr.Error{
		Message:  "could not reach the remote database",
		Code:     apperr.CodeNetwork,
		CanRetry: true,
	}

	errSchema = &apperr.Error{
		Message: "preparing the remote database failed",
		Code:    apperr.CodeStorage,
	}

	errInsert = &apperr.Error{
		Message:  "saving %s %s to the remote database failed",
		Code:     apperr.CodeSync,
		CanRetry: true,
	}

	errQuery = &apperr.Error{
		Message:  "reading from the remote database failed",
		Code:     apperr.CodeNetwork,
		CanRetry: true,
	}

	errSessionNotClosed = &apperr.Error{
		Message: "only closed sessions can be saved remotely",
		Code:    apperr.CodeValidation,
	}
)
