package session

import "github.com/ayoisaiah/slumber/internal/apperr"

var (
	errNothingToResume = &apperr.Error{
		Message: "there is no sleep session to resume",
		Code:    apperr.CodeValidation,
	}

	errNoPlayer = &apperr.Error{
		Message: "sound playback is not available",
		Code:    apperr.CodePlayback,
	}

	errNoAlarms = &apperr.Error{
		Message: "alarms are not available on this system",
		Code:    apperr.CodePermission,
	}

	errStatusFile = &apperr.Error{
		Message: "unable to read the status file",
		Code:    apperr.CodeStorage,
	}
)
