package remote

import (
	"context"

	"github.com/ayoisaiah/slumber/internal/models"
)

// unavailable stands in for a remote database that could not be reached
// at startup. Every write fails with the connection error so that records
// are queued for the next sync.
type unavailable struct {
	err error
}

// Unavailable returns a Store whose operations all fail with err.
func Unavailable(err error) Store {
	return &unavailable{err: err}
}

func (u *unavailable) InsertSession(context.Context, *models.SleepSession) error {
	return u.err
}

func (u *unavailable) InsertJournal(context.Context, *models.JournalEntry) error {
	return u.err
}

func (u *unavailable) ListSessions(context.Context, string) ([]models.SleepSession, error) {
	return nil, u.err
}

func (u *unavailable) Close() error {
	return nil
}
