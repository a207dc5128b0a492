package account

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/ayoisaiah/slumber/internal/models"
	"github.com/ayoisaiah/slumber/remote"
	"github.com/ayoisaiah/slumber/store"
)

func newDB(t *testing.T) *store.Client {
	t.Helper()

	db, err := store.NewClient(filepath.Join(t.TempDir(), "slumber.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func newRemote(t *testing.T) *remote.SQLStore {
	t.Helper()

	r, err := remote.Open(
		context.Background(),
		"sqlite://"+filepath.Join(t.TempDir(), "remote.sqlite"),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = r.Close()
	})

	return r
}

func TestLoginLogout(t *testing.T) {
	keyring.MockInit()

	db := newDB(t)
	ctx := context.Background()

	acct, err := Current(db)
	require.NoError(t, err)
	assert.Nil(t, acct, "guest mode")

	_, err = Login(ctx, db, "  ", "sqlite:///tmp/x.sqlite")
	require.ErrorIs(t, err, errEmptyUser)

	_, err = Login(ctx, db, "ada", "mysql://localhost")
	require.ErrorIs(t, err, errInvalidDSN)

	_, err = Login(ctx, db, "ada", "postgres://ada@db.example.com/slumber")
	require.NoError(t, err)

	acct, err = Current(db)
	require.NoError(t, err)
	require.NotNil(t, acct)
	assert.Equal(t, "ada", acct.UserID)
	assert.Equal(t, "postgres://ada@db.example.com/slumber", acct.DSN)

	require.NoError(t, Logout(ctx, db))
	require.NoError(t, Logout(ctx, db))

	acct, err = Current(db)
	require.NoError(t, err)
	assert.Nil(t, acct)

	_, err = keyring.Get(service, "ada")
	assert.ErrorIs(t, err, keyring.ErrNotFound)
}

func TestCurrentWithMissingCredentials(t *testing.T) {
	keyring.MockInit()

	db := newDB(t)
	require.NoError(t, db.Set(userKey, "grace"))

	_, err := Current(db)
	assert.ErrorIs(t, err, errCredentialsMissing)
}

var night = time.Date(2026, 1, 10, 23, 0, 0, 0, time.UTC)

func seedGuestData(t *testing.T, db store.DB) {
	t.Helper()

	for i := 0; i < 3; i++ {
		start := night.AddDate(0, 0, i)

		require.NoError(t, db.SaveSession(&models.SleepSession{
			ID:              "s" + string(rune('0'+i)),
			StartTime:       start,
			EndTime:         start.Add(8 * time.Hour),
			DurationMinutes: 480,
			Quality:         10,
		}))
	}

	require.NoError(t, db.SaveJournal(&models.JournalEntry{
		ID:        "j1",
		CreatedAt: night,
		Text:      "first night",
		Mood:      4,
	}))

	require.NoError(t, db.SaveActive(&models.SleepSession{
		ID:        "active",
		StartTime: night.AddDate(0, 0, 5),
	}))
}

func TestMigrateGuest(t *testing.T) {
	db := newDB(t)
	r := newRemote(t)
	ctx := context.Background()

	seedGuestData(t, db)

	has, err := HasGuestData(db)
	require.NoError(t, err)
	assert.True(t, has)

	report, err := MigrateGuest(ctx, db, r, "ada")
	require.NoError(t, err)

	assert.Equal(t, 3, report.Sessions)
	assert.Equal(t, 1, report.Journal)
	assert.Zero(t, report.Failed)

	uploaded, err := r.ListSessions(ctx, "ada")
	require.NoError(t, err)
	assert.Len(t, uploaded, 3)

	local, err := db.GetSessions(time.Time{}, time.Time{})
	require.NoError(t, err)

	for _, sess := range local {
		assert.Equal(t, "ada", sess.UserID)
		assert.True(t, sess.Synced)
	}

	active, err := db.GetActive()
	require.NoError(t, err)
	assert.Equal(t, "ada", active.UserID)

	has, err = HasGuestData(db)
	require.NoError(t, err)
	assert.False(t, has)

	// runs once per user
	report, err = MigrateGuest(ctx, db, r, "ada")
	require.NoError(t, err)
	assert.True(t, report.AlreadyDone)
}

type flakyRemote struct {
	remote.Store
	fail map[string]bool
}

func (f *flakyRemote) InsertSession(
	ctx context.Context,
	sess *models.SleepSession,
) error {
	if f.fail[sess.ID] {
		return errors.New("connection reset by peer")
	}

	return f.Store.InsertSession(ctx, sess)
}

func TestMigrateGuestResumesAfterFailure(t *testing.T) {
	db := newDB(t)
	r := &flakyRemote{Store: newRemote(t), fail: map[string]bool{"s1": true}}
	ctx := context.Background()

	seedGuestData(t, db)

	report, err := MigrateGuest(ctx, db, r, "ada")
	require.ErrorIs(t, err, errMigration)

	assert.Equal(t, 2, report.Sessions)
	assert.Equal(t, 1, report.Failed)

	flag, err := db.Get(migratedKeyPrefix + "ada")
	require.NoError(t, err)
	assert.Empty(t, flag, "an incomplete migration is not flagged as done")

	delete(r.fail, "s1")

	report, err = MigrateGuest(ctx, db, r, "ada")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Sessions, "only the failed record is retried")
	assert.Zero(t, report.Journal)

	uploaded, err := r.ListSessions(ctx, "ada")
	require.NoError(t, err)
	assert.Len(t, uploaded, 3)
}
