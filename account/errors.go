package account

import "github.com/ayoisaiah/slumber/internal/apperr"

var (
	errEmptyUser = &apperr.Error{
		Message: "a user id is required",
		Code:    apperr.CodeValidation,
	}

	errInvalidDSN = &apperr.Error{
		Message: "unsupported remote database (use postgres://, sqlite:// or file:)",
		Code:    apperr.CodeValidation,
	}

	errKeyring = &apperr.Error{
		Message: "the OS keyring is not available",
		Code:    apperr.CodePermission,
	}

	errCredentialsMissing = &apperr.Error{
		Message: "no credentials were found for %q, run 'slumber login' again",
		Code:    apperr.CodeNotFound,
	}

	errMigration = &apperr.Error{
		Message:  "%d of your guest records could not be uploaded, run 'slumber login' again to retry",
		Code:     apperr.CodeSync,
		CanRetry: true,
	}
)
