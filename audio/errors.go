package audio

import "github.com/ayoisaiah/slumber/internal/apperr"

// Error is the structured error reported by the audio adapter.
type Error = apperr.Error

var (
	errTimeout = &apperr.Error{
		Message:  "the sound took too long to load",
		Code:     apperr.CodeNetworkTimeout,
		CanRetry: true,
	}

	errNetwork = &apperr.Error{
		Message:  "the sound could not be downloaded",
		Code:     apperr.CodeNetwork,
		CanRetry: true,
	}

	errNotFound = &apperr.Error{
		Message: "sound %q was not found",
		Code:    apperr.CodeNotFound,
	}

	errPermission = &apperr.Error{
		Message: "permission denied while opening sound %q",
		Code:    apperr.CodePermission,
	}

	errPlayback = &apperr.Error{
		Message: "sound %q could not be played",
		Code:    apperr.CodePlayback,
	}

	errInvalidSource = &apperr.Error{
		Message: "sound %q has no usable source",
		Code:    apperr.CodeInvalidSource,
	}

	errUnsupportedFormat = &apperr.Error{
		Message: "unsupported sound format %q (must be mp3, ogg, flac, or wav)",
		Code:    apperr.CodeInvalidSource,
	}

	errUnknownSound = &apperr.Error{
		Message: "unknown sound %q, run 'slumber sounds list' to see the available sounds",
		Code:    apperr.CodeNotFound,
	}

	errNothingToRetry = &apperr.Error{
		Message: "no sound has been requested yet",
		Code:    apperr.CodeValidation,
	}

	errRetriesExhausted = &apperr.Error{
		Message: "gave up on %q after %d attempts",
		Code:    apperr.CodeNetwork,
	}

	errCatalog = &apperr.Error{
		Message: "the sound catalogue could not be read",
		Code:    apperr.CodeStorage,
	}
)
