package config

import "github.com/ayoisaiah/slumber/internal/apperr"

var (
	errConfigValidation = &apperr.Error{
		Message: "config validation error",
		Code:    apperr.CodeValidation,
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errDecodeConfig = &apperr.Error{
		Message: "decoding config file failed",
	}

	errInvalidTarget = &apperr.Error{
		Message: "sleep target must be between %v and %v, got %v",
		Code:    apperr.CodeValidation,
	}

	errInvalidVolume = &apperr.Error{
		Message: "sound volume must be between 0 and 1, got %v",
		Code:    apperr.CodeValidation,
	}

	errInvalidLoadTimeout = &apperr.Error{
		Message: "sound load timeout must be between %v and %v, got %v",
		Code:    apperr.CodeValidation,
	}

	errInvalidRetries = &apperr.Error{
		Message: "sound retries must be between 1 and %d, got %d",
		Code:    apperr.CodeValidation,
	}

	errInvalidSmartWindow = &apperr.Error{
		Message: "smart alarm window must be between 0 and %v, got %v",
		Code:    apperr.CodeValidation,
	}

	errInvalidAlarmTime = &apperr.Error{
		Message: "alarm time %q is not a valid clock time (e.g. 06:30 or 6:30am)",
		Code:    apperr.CodeValidation,
	}

	errInvalidSoundFormat = &apperr.Error{
		Message: "invalid sound file format: %s (must be mp3, ogg, flac, or wav)",
		Code:    apperr.CodeValidation,
	}

	errInvalidDSN = &apperr.Error{
		Message: "unsupported remote database %q (use postgres://, sqlite:// or file:)",
		Code:    apperr.CodeValidation,
	}

	errInvalidCLITime = &apperr.Error{
		Message: "invalid %s time %q",
		Code:    apperr.CodeValidation,
	}

	errConflictingSoundFlags = &apperr.Error{
		Message: "--sound and --no-sound cannot be used together",
		Code:    apperr.CodeValidation,
	}

	errInvalidPeriod = &apperr.Error{
		Message: "period must be one of: %s",
		Code:    apperr.CodeValidation,
	}

	errInvalidStartDate = &apperr.Error{
		Message: "the start date must be specified",
		Code:    apperr.CodeValidation,
	}

	errInvalidDateRange = &apperr.Error{
		Message: "the end date must not be earlier than the start date",
		Code:    apperr.CodeValidation,
	}
)
