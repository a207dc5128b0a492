package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/slumber/internal/models"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	c, err := NewClient(filepath.Join(t.TempDir(), "slumber.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c
}

var base = time.Date(2026, 3, 14, 22, 30, 0, 0, time.UTC)

func closedSession(id string, start time.Time, hours int) *models.SleepSession {
	return &models.SleepSession{
		ID:              id,
		StartTime:       start,
		EndTime:         start.Add(time.Duration(hours) * time.Hour),
		DurationMinutes: hours * 60,
		Quality:         10,
	}
}

func TestCommitSessionClearsActive(t *testing.T) {
	c := newTestClient(t)

	active := &models.SleepSession{ID: "a", StartTime: base}
	require.NoError(t, c.SaveActive(active))

	got, err := c.GetActive()
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)

	closed := *active
	closed.EndTime = base.Add(8 * time.Hour)

	require.NoError(t, c.CommitSession(&closed))

	got, err = c.GetActive()
	require.NoError(t, err)
	assert.Nil(t, got)

	stored, err := c.GetSession(base)
	require.NoError(t, err)

	if diff := cmp.Diff(&closed, stored); diff != "" {
		t.Errorf("stored session mismatch (-want +got):\n%s", diff)
	}
}

func TestGetSessionsRange(t *testing.T) {
	c := newTestClient(t)

	for i := 0; i < 5; i++ {
		start := base.AddDate(0, 0, i)
		require.NoError(
			t,
			c.SaveSession(closedSession(string(rune('a'+i)), start, 7)),
		)
	}

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  []string
	}{
		{name: "everything", want: []string{"a", "b", "c", "d", "e"}},
		{
			name:  "lower bound only",
			start: base.AddDate(0, 0, 3),
			want:  []string{"d", "e"},
		},
		{
			name:  "bounded",
			start: base.AddDate(0, 0, 1),
			end:   base.AddDate(0, 0, 2),
			want:  []string{"b", "c"},
		},
		{
			name:  "empty window",
			start: base.AddDate(0, 1, 0),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sessions, err := c.GetSessions(tc.start, tc.end)
			require.NoError(t, err)

			var ids []string
			for i := range sessions {
				ids = append(ids, sessions[i].ID)
			}

			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestGetSessionNotFound(t *testing.T) {
	c := newTestClient(t)

	_, err := c.GetSession(base)
	assert.ErrorIs(t, err, errSessionNotFound)
}

func TestAlarmLifecycle(t *testing.T) {
	c := newTestClient(t)

	got, err := c.GetAlarm()
	require.NoError(t, err)
	assert.Nil(t, got)

	cfg := &models.AlarmConfig{
		AlarmTime: base.Add(8 * time.Hour),
		Trigger:   base.Add(8 * time.Hour),
		SessionID: "a",
		Handle:    "h1",
	}

	require.NoError(t, c.SaveAlarm(cfg))

	got, err = c.GetAlarm()
	require.NoError(t, err)
	assert.Equal(t, "h1", got.Handle)

	require.NoError(t, c.DeleteAlarm())
	require.NoError(t, c.DeleteAlarm())

	got, err = c.GetAlarm()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOutbox(t *testing.T) {
	c := newTestClient(t)

	second := &models.OutboxItem{
		Kind:     models.OutboxSession,
		ID:       "s2",
		QueuedAt: base.Add(time.Minute),
		Payload:  []byte(`{}`),
	}
	first := &models.OutboxItem{
		Kind:     models.OutboxJournal,
		ID:       "j1",
		QueuedAt: base,
		Payload:  []byte(`{}`),
	}

	require.NoError(t, c.Enqueue(second))
	require.NoError(t, c.Enqueue(first))

	// replacing an item keeps a single copy
	second.Attempts = 2
	require.NoError(t, c.Enqueue(second))

	items, err := c.Pending()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "j1", items[0].ID)
	assert.Equal(t, 2, items[1].Attempts)

	require.NoError(t, c.Dequeue(first.Key()))

	items, err = c.Pending()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "s2", items[0].ID)
}

func TestJournalRange(t *testing.T) {
	c := newTestClient(t)

	for i, id := range []string{"x", "y", "z"} {
		require.NoError(t, c.SaveJournal(&models.JournalEntry{
			ID:        id,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Text:      "slept " + id,
			Mood:      3,
		}))
	}

	entries, err := c.GetJournal(base.Add(time.Hour), base.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "y", entries[0].ID)

	entries, err = c.GetJournal(time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestKV(t *testing.T) {
	c := newTestClient(t)

	v, err := c.Get("guest_migrated:ada")
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, c.Set("guest_migrated:ada", "true"))

	v, err = c.Get("guest_migrated:ada")
	require.NoError(t, err)
	assert.Equal(t, "true", v)
}

func TestSecondOpenReportsRunning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slumber.db")

	c, err := NewClient(path)
	require.NoError(t, err)

	defer c.Close()

	_, err = NewClient(path)
	assert.ErrorIs(t, err, ErrSlumberRunning)
}
