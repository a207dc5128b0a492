package syncer

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/slumber/internal/models"
	"github.com/ayoisaiah/slumber/store"
)

var errOffline = errors.New("dial tcp: connection refused")

// fakeRemote records inserts and fails the ones listed in fail.
type fakeRemote struct {
	fail     map[string]bool
	sessions map[string]models.SleepSession
	journal  map[string]models.JournalEntry
	mu       sync.Mutex
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		fail:     map[string]bool{},
		sessions: map[string]models.SleepSession{},
		journal:  map[string]models.JournalEntry{},
	}
}

func (f *fakeRemote) InsertSession(
	_ context.Context,
	sess *models.SleepSession,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail[sess.ID] {
		return errOffline
	}

	f.sessions[sess.ID] = *sess

	return nil
}

func (f *fakeRemote) InsertJournal(
	_ context.Context,
	entry *models.JournalEntry,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail[entry.ID] {
		return errOffline
	}

	f.journal[entry.ID] = *entry

	return nil
}

func (f *fakeRemote) ListSessions(
	_ context.Context,
	_ string,
) ([]models.SleepSession, error) {
	return nil, nil
}

func (f *fakeRemote) Close() error { return nil }

func newDB(t *testing.T) *store.Client {
	t.Helper()

	db, err := store.NewClient(filepath.Join(t.TempDir(), "slumber.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

var night = time.Date(2026, 4, 2, 23, 0, 0, 0, time.UTC)

func closed(id string, start time.Time) *models.SleepSession {
	return &models.SleepSession{
		ID:              id,
		StartTime:       start,
		EndTime:         start.Add(8 * time.Hour),
		DurationMinutes: 480,
		Quality:         10,
	}
}

func TestPushSessionSuccessMarksSynced(t *testing.T) {
	db := newDB(t)
	r := newFakeRemote()
	s := New(db, r, WithNow(func() time.Time { return night }))

	sess := closed("s1", night)
	require.NoError(t, db.SaveSession(sess))

	require.NoError(t, s.PushSession(context.Background(), sess))

	stored, err := db.GetSession(night)
	require.NoError(t, err)
	assert.True(t, stored.Synced)
	assert.True(t, s.Status().OK())
	assert.Equal(t, night, s.Status().LastSync)
}

func TestPushSessionFailureQueues(t *testing.T) {
	db := newDB(t)
	r := newFakeRemote()
	r.fail["s1"] = true

	s := New(db, r)

	sess := closed("s1", night)
	require.NoError(t, db.SaveSession(sess))

	err := s.PushSession(context.Background(), sess)
	assert.ErrorIs(t, err, errOffline)

	status := s.Status()
	assert.False(t, status.OK())
	assert.Equal(t, ReassuranceMsg, status.Message)
	assert.Equal(t, 1, status.Pending)

	items, err := db.Pending()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.OutboxSession, items[0].Kind)

	stored, err := db.GetSession(night)
	require.NoError(t, err)
	assert.False(t, stored.Synced, "local record is kept unsynced")
}

var errDiskFull = errors.New("no space left on device")

// brokenOutbox is a store whose outbox cannot be written.
type brokenOutbox struct {
	store.DB
}

func (brokenOutbox) Enqueue(*models.OutboxItem) error {
	return errDiskFull
}

func TestFailedQueueStillSetsIndicator(t *testing.T) {
	db := newDB(t)
	r := newFakeRemote()
	r.fail["s1"] = true
	r.fail["j1"] = true

	ctx := context.Background()

	testCases := []struct {
		Name string
		Push func(s *Syncer) error
	}{
		{
			Name: "session",
			Push: func(s *Syncer) error {
				return s.PushSession(ctx, closed("s1", night))
			},
		},
		{
			Name: "journal",
			Push: func(s *Syncer) error {
				return s.PushJournal(ctx, &models.JournalEntry{ID: "j1", CreatedAt: night})
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			s := New(brokenOutbox{db}, r)

			err := tc.Push(s)
			require.ErrorIs(t, err, errOffline)
			require.ErrorIs(t, err, errDiskFull)

			status := s.Status()
			assert.False(t, status.OK())
			assert.ErrorIs(t, status.LastError, errOffline)
			assert.Equal(t, ReassuranceMsg, status.Message)
		})
	}
}

func TestFlushIndependentInserts(t *testing.T) {
	db := newDB(t)
	r := newFakeRemote()
	r.fail["a"], r.fail["b"], r.fail["j"] = true, true, true

	s := New(db, r)
	ctx := context.Background()

	a, b := closed("a", night), closed("b", night.AddDate(0, 0, 1))

	for _, sess := range []*models.SleepSession{a, b} {
		require.NoError(t, db.SaveSession(sess))
		require.Error(t, s.PushSession(ctx, sess))
	}

	entry := &models.JournalEntry{ID: "j", CreatedAt: night, Text: "ok", Mood: 3}
	require.NoError(t, db.SaveJournal(entry))
	require.Error(t, s.PushJournal(ctx, entry))

	// the network comes back for everything except b
	delete(r.fail, "a")
	delete(r.fail, "j")

	report, err := s.Flush(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Synced)
	assert.Equal(t, 1, report.Failed)

	items, err := db.Pending()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, 2, items[0].Attempts)

	assert.Contains(t, r.sessions, "a")
	assert.Contains(t, r.journal, "j")
	assert.Equal(t, 1, s.Status().Pending)

	stored, err := db.GetSession(a.StartTime)
	require.NoError(t, err)
	assert.True(t, stored.Synced)
}

func TestGuestModeStaysLocal(t *testing.T) {
	db := newDB(t)
	s := New(db, nil)

	assert.True(t, s.Guest())
	assert.NoError(t, s.PushSession(context.Background(), closed("s", night)))

	_, err := s.Flush(context.Background())
	assert.ErrorIs(t, err, errNoRemote)

	items, err := db.Pending()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLastSyncSurvivesRestart(t *testing.T) {
	db := newDB(t)
	s := New(db, newFakeRemote(), WithNow(func() time.Time { return night }))

	require.NoError(t, s.PushSession(context.Background(), closed("s1", night)))

	again := New(db, newFakeRemote())
	assert.True(t, night.Equal(again.Status().LastSync))
}
