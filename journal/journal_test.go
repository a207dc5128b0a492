package journal

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/slumber/internal/apperr"
	"github.com/ayoisaiah/slumber/remote"
	"github.com/ayoisaiah/slumber/store"
	"github.com/ayoisaiah/slumber/syncer"
)

func newBook(t *testing.T, r remote.Store) (*Book, *store.Client) {
	t.Helper()

	db, err := store.NewClient(filepath.Join(t.TempDir(), "slumber.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return New(db, syncer.New(db, r), "ada"), db
}

func TestValidate(t *testing.T) {
	cases := []struct {
		want error
		name string
		text string
		mood int
	}{
		{name: "valid", text: "slept fine", mood: 3},
		{name: "blank", text: "   ", mood: 3, want: errEmptyText},
		{name: "mood too low", text: "x", mood: 0, want: errInvalidMood},
		{name: "mood too high", text: "x", mood: 6, want: errInvalidMood},
		{
			name: "too long",
			text: strings.Repeat("é", MaxTextChars+1),
			mood: 3,
			want: errTextTooLong,
		},
		{name: "at the limit", text: strings.Repeat("é", MaxTextChars), mood: 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.text, tc.mood)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
		})
	}
}

func TestAddAndList(t *testing.T) {
	b, _ := newBook(t, nil)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)
	now := base

	b.now = func() time.Time { return now }

	first, err := b.Add(ctx, "  woke up at 3am  ", 2, "s1")
	require.NoError(t, err)
	assert.Equal(t, "woke up at 3am", first.Text)
	assert.Equal(t, "ada", first.UserID)

	now = base.AddDate(0, 0, 1)

	_, err = b.Add(ctx, "much better", 4, "")
	require.NoError(t, err)

	entries, err := b.List(time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "much better", entries[0].Text, "most recent first")

	entries, err = b.List(base, base.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "s1", entries[0].SessionID)
}

func TestAddRejectsInvalidEntry(t *testing.T) {
	b, db := newBook(t, nil)

	_, err := b.Add(context.Background(), "", 3, "")
	require.ErrorIs(t, err, errEmptyText)

	entries, err := db.GetJournal(time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAddSyncsRemotely(t *testing.T) {
	r, err := remote.Open(
		context.Background(),
		"sqlite://"+filepath.Join(t.TempDir(), "remote.sqlite"),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = r.Close()
	})

	b, db := newBook(t, r)

	entry, err := b.Add(context.Background(), "dreamt of the sea", 5, "")
	require.NoError(t, err)
	assert.True(t, entry.Synced)

	stored, err := db.GetJournal(time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.True(t, stored[0].Synced)
}
