package timer

import "github.com/ayoisaiah/slumber/internal/apperr"

var (
	errInvalidWakeUps = &apperr.Error{
		Message: "wake-ups must be a whole number",
		Code:    apperr.CodeValidation,
	}

	errNoSound = &apperr.Error{
		Message: "no sound is loaded",
		Code:    apperr.CodePlayback,
	}
)
