package syncer

import "github.com/ayoisaiah/slumber/internal/apperr"

// ReassuranceMsg is shown when a record could not reach the remote store.
const ReassuranceMsg = "Saved on this device. It will be uploaded the next time you run 'slumber sync'."

var (
	errNoRemote = &apperr.Error{
		Message: "no remote database is configured, run 'slumber login' first",
		Code:    apperr.CodeValidation,
	}

	errQueue = &apperr.Error{
		Message: "queueing %s %s for sync failed",
		Code:    apperr.CodeStorage,
	}

	errUnknownKind = &apperr.Error{
		Message: "unknown outbox item kind %q",
		Code:    apperr.CodeSync,
	}
)
