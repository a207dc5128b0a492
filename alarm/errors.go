package alarm

import "github.com/ayoisaiah/slumber/internal/apperr"

// DegradedMsg warns that the session continues without a wake-up alarm.
const DegradedMsg = "Your session has started, but no alarm will wake you up."

var (
	errSchedule = &apperr.Error{
		Message: "the alarm could not be scheduled",
		Code:    apperr.CodePermission,
	}

	errInvalidCmd = &apperr.Error{
		Message: "unable to parse alarm.cmd %q",
		Code:    apperr.CodeValidation,
	}

	errCmdNotFound = &apperr.Error{
		Message: "alarm command %q was not found",
		Code:    apperr.CodeNotFound,
	}

	errNoAlarmTime = &apperr.Error{
		Message: "no alarm time was provided",
		Code:    apperr.CodeValidation,
	}

	errStore = &apperr.Error{
		Message: "the alarm could not be saved",
		Code:    apperr.CodeStorage,
	}
)
