package tracker

import "github.com/ayoisaiah/slumber/internal/apperr"

var (
	errNoActiveSession = &apperr.Error{
		Message: "no sleep session is in progress, start one with 'slumber'",
		Code:    apperr.CodeValidation,
	}

	errInvalidWakeUps = &apperr.Error{
		Message: "wake-ups must be a whole number between 0 and %d, got %d",
		Code:    apperr.CodeValidation,
	}

	errNotesTooLong = &apperr.Error{
		Message: "notes must be at most %d characters, got %d",
		Code:    apperr.CodeValidation,
	}

	errStartInFuture = &apperr.Error{
		Message: "a session cannot start in the future (%s)",
		Code:    apperr.CodeValidation,
	}

	errSaveStart = &apperr.Error{
		Message: "your sleep session could not be saved",
		Code:    apperr.CodeStorage,
	}

	errSaveEnd = &apperr.Error{
		Message: "your sleep session could not be closed, it is still in progress",
		Code:    apperr.CodeStorage,
	}

	errLoad = &apperr.Error{
		Message: "loading your sleep history failed",
		Code:    apperr.CodeStorage,
	}
)
