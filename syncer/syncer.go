// Package syncer pushes locally committed records to the remote store and
// keeps the ones that fail in a local outbox until the next sync.
package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ayoisaiah/slumber/internal/models"
	"github.com/ayoisaiah/slumber/remote"
	"github.com/ayoisaiah/slumber/store"
)

const lastSyncKey = "sync:last"

// Status is the non-blocking sync indicator shown alongside a session.
type Status struct {
	LastSync  time.Time
	LastError error
	Message   string
	Pending   int
}

// OK reports whether the last remote operation succeeded.
func (s Status) OK() bool {
	return s.LastError == nil
}

// Report summarises a flush of the outbox.
type Report struct {
	Errors []error
	Synced int
	Failed int
}

// Syncer moves records from the local store to the remote one.
type Syncer struct {
	db     store.DB
	remote remote.Store
	now    func() time.Time
	log    *slog.Logger
	status Status
	mu     sync.Mutex
}

type Option func(*Syncer)

// WithNow overrides the clock.
func WithNow(now func() time.Time) Option {
	return func(s *Syncer) {
		s.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Syncer) {
		s.log = l
	}
}

// New returns a Syncer. A nil remote puts the syncer in guest mode where
// records stay on this device.
func New(db store.DB, r remote.Store, opts ...Option) *Syncer {
	s := &Syncer{
		db:     db,
		remote: r,
		now:    time.Now,
		log:    slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.refreshPending()
	s.loadLastSync()

	return s
}

// Guest reports whether no remote store is configured.
func (s *Syncer) Guest() bool {
	return s.remote == nil
}

// Status returns the current sync indicator.
func (s *Syncer) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status
}

func (s *Syncer) succeeded() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status.LastSync = s.now()
	s.status.LastError = nil
	s.status.Message = ""

	_ = s.db.Set(lastSyncKey, s.status.LastSync.UTC().Format(time.RFC3339Nano))
}

// loadLastSync restores the time of the last successful sync recorded by a
// previous run.
func (s *Syncer) loadLastSync() {
	v, err := s.db.Get(lastSyncKey)
	if err != nil || v == "" {
		return
	}

	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.status.LastSync = t
	s.mu.Unlock()
}

func (s *Syncer) failed(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status.LastError = err
	s.status.Message = ReassuranceMsg
}

func (s *Syncer) refreshPending() {
	items, err := s.db.Pending()
	if err != nil {
		return
	}

	s.mu.Lock()
	s.status.Pending = len(items)
	s.mu.Unlock()
}

// PushSession inserts a closed session remotely and flags it as synced in
// the local history. When the insert fails the session is queued in the
// outbox and the error is returned for display; the local record is
// already safe at this point.
func (s *Syncer) PushSession(ctx context.Context, sess *models.SleepSession) error {
	if s.remote == nil {
		return nil
	}

	err := s.remote.InsertSession(ctx, sess)
	if err != nil {
		s.log.WarnContext(ctx, "remote session insert failed",
			slog.String("id", sess.ID),
			slog.Any("error", err),
		)

		s.failed(err)

		if qErr := s.enqueue(models.OutboxSession, sess.ID, sess, err); qErr != nil {
			return errors.Join(err, qErr)
		}

		return err
	}

	s.succeeded()

	sess.Synced = true

	return s.db.SaveSession(sess)
}

// PushJournal is PushSession for journal entries.
func (s *Syncer) PushJournal(ctx context.Context, entry *models.JournalEntry) error {
	if s.remote == nil {
		return nil
	}

	err := s.remote.InsertJournal(ctx, entry)
	if err != nil {
		s.log.WarnContext(ctx, "remote journal insert failed",
			slog.String("id", entry.ID),
			slog.Any("error", err),
		)

		s.failed(err)

		if qErr := s.enqueue(models.OutboxJournal, entry.ID, entry, err); qErr != nil {
			return errors.Join(err, qErr)
		}

		return err
	}

	s.succeeded()

	entry.Synced = true

	return s.db.SaveJournal(entry)
}

func (s *Syncer) enqueue(
	kind models.OutboxKind,
	id string,
	record any,
	cause error,
) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return errQueue.Fmt(kind, id).Wrap(err)
	}

	item := &models.OutboxItem{
		Kind:      kind,
		ID:        id,
		QueuedAt:  s.now(),
		Payload:   payload,
		Attempts:  1,
		LastError: cause.Error(),
	}

	if err := s.db.Enqueue(item); err != nil {
		return errQueue.Fmt(kind, id).Wrap(err)
	}

	s.refreshPending()

	return nil
}

// Flush retries every queued record. Each record is an independent insert:
// a failure leaves that record queued and moves on to the next one.
func (s *Syncer) Flush(ctx context.Context) (Report, error) {
	var report Report

	if s.remote == nil {
		return report, errNoRemote
	}

	items, err := s.db.Pending()
	if err != nil {
		return report, err
	}

	for i := range items {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		item := items[i]

		err := s.deliver(ctx, &item)
		if err == nil {
			report.Synced++

			if err := s.db.Dequeue(item.Key()); err != nil {
				return report, err
			}

			continue
		}

		report.Failed++
		report.Errors = append(report.Errors, err)

		item.Attempts++
		item.LastError = err.Error()

		if err := s.db.Enqueue(&item); err != nil {
			return report, err
		}
	}

	s.refreshPending()

	if report.Failed > 0 {
		s.failed(report.Errors[len(report.Errors)-1])
	} else {
		s.succeeded()
	}

	s.log.InfoContext(ctx, "outbox flushed",
		slog.Int("synced", report.Synced),
		slog.Int("failed", report.Failed),
	)

	return report, nil
}

func (s *Syncer) deliver(ctx context.Context, item *models.OutboxItem) error {
	switch item.Kind {
	case models.OutboxSession:
		var sess models.SleepSession
		if err := json.Unmarshal(item.Payload, &sess); err != nil {
			return err
		}

		if err := s.remote.InsertSession(ctx, &sess); err != nil {
			return err
		}

		sess.Synced = true

		return s.db.SaveSession(&sess)
	case models.OutboxJournal:
		var entry models.JournalEntry
		if err := json.Unmarshal(item.Payload, &entry); err != nil {
			return err
		}

		if err := s.remote.InsertJournal(ctx, &entry); err != nil {
			return err
		}

		entry.Synced = true

		return s.db.SaveJournal(&entry)
	default:
		return errUnknownKind.Fmt(item.Kind)
	}
}
