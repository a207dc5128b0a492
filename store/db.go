package store

import (
	"time"

	"github.com/ayoisaiah/slumber/internal/models"
)

// DB is the database storage interface.
type DB interface {
	// SaveSession creates or overwrites a closed session in the history.
	SaveSession(sess *models.SleepSession) error
	// GetSessions returns the closed sessions that started within the
	// specified bounds, oldest first. A zero end means no upper bound.
	GetSessions(startTime, endTime time.Time) ([]models.SleepSession, error)
	// GetSession retrieves a closed session by its start time.
	GetSession(startTime time.Time) (*models.SleepSession, error)
	// CommitSession records a closed session in the history and clears the
	// active session in a single transaction.
	CommitSession(sess *models.SleepSession) error

	// SaveActive stores the active session, replacing any other.
	SaveActive(sess *models.SleepSession) error
	// GetActive returns the active session, or nil if there is none.
	GetActive() (*models.SleepSession, error)
	// DeleteActive removes the active session. It is a no-op if there is
	// none.
	DeleteActive() error

	// SaveAlarm stores the alarm of the active session.
	SaveAlarm(cfg *models.AlarmConfig) error
	// GetAlarm returns the stored alarm, or nil if there is none.
	GetAlarm() (*models.AlarmConfig, error)
	// DeleteAlarm removes the stored alarm.
	DeleteAlarm() error

	// SaveJournal creates or overwrites a journal entry.
	SaveJournal(entry *models.JournalEntry) error
	// GetJournal returns entries created within the specified bounds,
	// oldest first. A zero end means no upper bound.
	GetJournal(startTime, endTime time.Time) ([]models.JournalEntry, error)

	// Enqueue adds or replaces an item in the sync outbox.
	Enqueue(item *models.OutboxItem) error
	// Pending lists the items waiting in the outbox, oldest first.
	Pending() ([]models.OutboxItem, error)
	// Dequeue removes an item from the outbox by its key.
	Dequeue(key string) error

	// Get reads a value from the key-value bucket. Missing keys yield an
	// empty string.
	Get(key string) (string, error)
	// Set writes a value to the key-value bucket.
	Set(key, value string) error

	// Close ends the database connection
	Close() error
	// Open begins a database connection
	Open() error
}
