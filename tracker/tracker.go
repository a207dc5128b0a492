// Package tracker owns the active sleep session and the history of closed
// ones.
package tracker

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ayoisaiah/slumber/internal/models"
	"github.com/ayoisaiah/slumber/internal/quality"
	"github.com/ayoisaiah/slumber/store"
	"github.com/ayoisaiah/slumber/syncer"
)

const (
	MaxWakeUps    = 100
	MaxNotesChars = 500
)

// StartOptions describe the session being started.
type StartOptions struct {
	// StartTime backdates the session. Defaults to now.
	StartTime     time.Time
	AlarmTime     time.Time
	Sound         string
	SoundsEnabled bool
	SmartAlarm    bool
	Recorder      bool
}

// Tracker holds at most one active session and the closed sessions in
// reverse chronological order. It is safe for concurrent use; remote calls
// are made without holding its lock.
type Tracker struct {
	db      store.DB
	syncer  *syncer.Syncer
	now     func() time.Time
	newID   func() string
	log     *slog.Logger
	active  *models.SleepSession
	userID  string
	history []models.SleepSession
	mu      sync.Mutex
}

type Option func(*Tracker)

// WithNow overrides the clock.
func WithNow(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		t.log = l
	}
}

// WithUserID stamps new sessions with the signed-in user.
func WithUserID(id string) Option {
	return func(t *Tracker) {
		t.userID = id
	}
}

// WithIDFunc overrides session id generation.
func WithIDFunc(fn func() string) Option {
	return func(t *Tracker) {
		t.newID = fn
	}
}

// New returns a Tracker. Call Load to pick up persisted state.
func New(db store.DB, s *syncer.Syncer, opts ...Option) *Tracker {
	t := &Tracker{
		db:     db,
		syncer: s,
		now:    time.Now,
		newID:  uuid.NewString,
		log:    slog.Default(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Load rehydrates the active session and the history from the local
// store.
func (t *Tracker) Load(_ context.Context) error {
	active, err := t.db.GetActive()
	if err != nil {
		return errLoad.Wrap(err)
	}

	sessions, err := t.db.GetSessions(time.Time{}, time.Time{})
	if err != nil {
		return errLoad.Wrap(err)
	}

	slices.Reverse(sessions)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.active = active
	t.history = sessions

	return nil
}

// Active returns the session in progress, or nil.
func (t *Tracker) Active() *models.SleepSession {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.active
}

// History returns the closed sessions, most recent first.
func (t *Tracker) History() []models.SleepSession {
	t.mu.Lock()
	defer t.mu.Unlock()

	return slices.Clone(t.history)
}

// SyncStatus returns the non-blocking sync indicator.
func (t *Tracker) SyncStatus() syncer.Status {
	return t.syncer.Status()
}

// Start begins a new session. An active session is replaced and never
// reaches the history.
func (t *Tracker) Start(
	ctx context.Context,
	opts StartOptions,
) (*models.SleepSession, error) {
	now := t.now()

	start := opts.StartTime
	if start.IsZero() {
		start = now
	}

	if start.After(now) {
		return nil, errStartInFuture.Fmt(start.Format(time.Kitchen))
	}

	sess := &models.SleepSession{
		ID:                   t.newID(),
		UserID:               t.userID,
		StartTime:            start,
		AlarmTime:            opts.AlarmTime,
		Sound:                opts.Sound,
		SleepSoundsEnabled:   opts.SoundsEnabled,
		SmartAlarmEnabled:    opts.SmartAlarm,
		SleepRecorderEnabled: opts.Recorder,
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.db.SaveActive(sess); err != nil {
		return nil, errSaveStart.Wrap(err)
	}

	if t.active != nil {
		t.log.WarnContext(ctx, "replacing active session",
			slog.String("replaced", t.active.ID),
			slog.String("id", sess.ID),
		)
	}

	t.active = sess

	t.log.InfoContext(ctx, "session started",
		slog.String("id", sess.ID),
		slog.Time("start", sess.StartTime),
	)

	return sess, nil
}

// ValidateEnd checks the values entered when ending a session.
func ValidateEnd(wakeUps int, notes string) error {
	if wakeUps < 0 || wakeUps > MaxWakeUps {
		return errInvalidWakeUps.Fmt(MaxWakeUps, wakeUps)
	}

	if n := utf8.RuneCountInString(notes); n > MaxNotesChars {
		return errNotesTooLong.Fmt(MaxNotesChars, n)
	}

	return nil
}

// End closes the active session. Validation and the local commit happen
// before any state changes; the remote insert is attempted afterwards and
// its failure is reported through SyncStatus instead of the returned
// error.
func (t *Tracker) End(
	ctx context.Context,
	wakeUps int,
	notes string,
) (*models.SleepSession, error) {
	sess, err := t.close(ctx, wakeUps, notes)
	if err != nil {
		return nil, err
	}

	if err := t.syncer.PushSession(ctx, &sess); err == nil && sess.Synced {
		t.markSynced(sess.ID)
	}

	return &sess, nil
}

// markSynced flags a closed session as uploaded. The history may have been
// reloaded by Sync in the meantime.
func (t *Tracker) markSynced(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.history {
		if t.history[i].ID == id {
			t.history[i].Synced = true
			return
		}
	}
}

// close validates and commits the active session locally.
func (t *Tracker) close(
	ctx context.Context,
	wakeUps int,
	notes string,
) (models.SleepSession, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		return models.SleepSession{}, errNoActiveSession
	}

	if err := ValidateEnd(wakeUps, notes); err != nil {
		return models.SleepSession{}, err
	}

	sess := *t.active

	end := t.now()
	if end.Before(sess.StartTime) {
		end = sess.StartTime
	}

	sess.EndTime = end
	sess.DurationMinutes = int(end.Sub(sess.StartTime) / time.Minute)
	sess.WakeUps = wakeUps
	sess.Notes = notes
	sess.Quality = quality.Score(sess.DurationMinutes, wakeUps)

	if err := t.db.CommitSession(&sess); err != nil {
		return models.SleepSession{}, errSaveEnd.Wrap(err)
	}

	t.active = nil
	t.history = slices.Insert(t.history, 0, sess)

	t.log.InfoContext(ctx, "session ended",
		slog.String("id", sess.ID),
		slog.Int("minutes", sess.DurationMinutes),
		slog.Int("quality", sess.Quality),
	)

	return sess, nil
}

// Discard abandons the active session without recording it.
func (t *Tracker) Discard(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		return errNoActiveSession
	}

	if err := t.db.DeleteActive(); err != nil {
		return errSaveStart.Wrap(err)
	}

	t.log.InfoContext(ctx, "session discarded", slog.String("id", t.active.ID))

	t.active = nil

	return nil
}

// Sync uploads every session and journal entry waiting in the outbox.
func (t *Tracker) Sync(ctx context.Context) (syncer.Report, error) {
	report, err := t.syncer.Flush(ctx)
	if err != nil {
		return report, err
	}

	if report.Synced > 0 {
		if err := t.Load(ctx); err != nil {
			return report, err
		}
	}

	return report, nil
}
