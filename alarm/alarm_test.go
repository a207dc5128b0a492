package alarm

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/slumber/internal/apperr"
	"github.com/ayoisaiah/slumber/internal/models"
	"github.com/ayoisaiah/slumber/store"
)

var evening = time.Date(2026, 7, 3, 22, 0, 0, 0, time.UTC)

func TestTrigger(t *testing.T) {
	cases := []struct {
		name   string
		alarm  time.Time
		want   time.Time
		window time.Duration
		smart  bool
	}{
		{
			name:  "later today",
			alarm: evening.Add(30 * time.Minute),
			want:  evening.Add(30 * time.Minute),
		},
		{
			name:  "already past rolls to tomorrow",
			alarm: time.Date(2026, 7, 3, 6, 30, 0, 0, time.UTC),
			want:  time.Date(2026, 7, 4, 6, 30, 0, 0, time.UTC),
		},
		{
			name:  "exactly now rolls to tomorrow",
			alarm: evening,
			want:  evening.AddDate(0, 0, 1),
		},
		{
			name:  "several days in the past",
			alarm: evening.AddDate(0, 0, -3).Add(-time.Hour),
			want:  evening.Add(23 * time.Hour),
		},
		{
			name:   "smart alarm fires early",
			alarm:  time.Date(2026, 7, 4, 6, 30, 0, 0, time.UTC),
			smart:  true,
			window: 30 * time.Minute,
			want:   time.Date(2026, 7, 4, 6, 0, 0, 0, time.UTC),
		},
		{
			name:   "smart alarm never fires in the past",
			alarm:  evening.Add(10 * time.Minute),
			smart:  true,
			window: 30 * time.Minute,
			want:   evening,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Trigger(tc.alarm, evening, tc.smart, tc.window)

			assert.Equal(t, tc.want, got)
			assert.False(t, got.Before(evening))
		})
	}
}

type scheduled struct {
	at      time.Time
	content Content
}

type fakeNotifier struct {
	err       error
	armed     map[Handle]scheduled
	cancelled []Handle
	n         int
	mu        sync.Mutex
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{armed: map[Handle]scheduled{}}
}

func (f *fakeNotifier) Schedule(
	_ context.Context,
	at time.Time,
	c Content,
) (Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return "", f.err
	}

	f.n++
	h := Handle(fmt.Sprintf("h%d", f.n))
	f.armed[h] = scheduled{at: at, content: c}

	return h, nil
}

func (f *fakeNotifier) Cancel(h Handle) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cancelled = append(f.cancelled, h)
	delete(f.armed, h)

	return nil
}

func newScheduler(t *testing.T, n Notifier) (*Scheduler, *store.Client) {
	t.Helper()

	db, err := store.NewClient(filepath.Join(t.TempDir(), "slumber.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	s := NewScheduler(
		n,
		db,
		WithNow(func() time.Time { return evening }),
		WithSound("alarm"),
	)

	return s, db
}

func TestSchedulePastTimeRollsForward(t *testing.T) {
	n := newFakeNotifier()
	s, db := newScheduler(t, n)

	alarmTime := time.Date(2026, 7, 3, 6, 45, 0, 0, time.UTC)

	h, err := s.Schedule(context.Background(), models.AlarmConfig{
		AlarmTime: alarmTime,
		SessionID: "s1",
	})
	require.NoError(t, err)

	armed := n.armed[h]
	assert.Equal(t, alarmTime.AddDate(0, 0, 1), armed.at)
	assert.Equal(t, "alarm", armed.content.Sound)

	stored, err := db.GetAlarm()
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, string(h), stored.Handle)
	assert.Equal(t, armed.at, stored.Trigger)
}

func TestRescheduleReplacesAlarm(t *testing.T) {
	n := newFakeNotifier()
	s, _ := newScheduler(t, n)
	ctx := context.Background()

	first, err := s.Schedule(ctx, models.AlarmConfig{
		AlarmTime: evening.Add(8 * time.Hour),
		SessionID: "s1",
	})
	require.NoError(t, err)

	second, err := s.Schedule(ctx, models.AlarmConfig{
		AlarmTime: evening.Add(9 * time.Hour),
		SessionID: "s1",
	})
	require.NoError(t, err)

	assert.Equal(t, []Handle{first}, n.cancelled)
	assert.Len(t, n.armed, 1)
	assert.Contains(t, n.armed, second)
	assert.Equal(t, string(second), s.Current().Handle)
}

func TestCancelIsIdempotent(t *testing.T) {
	n := newFakeNotifier()
	s, db := newScheduler(t, n)
	ctx := context.Background()

	require.NoError(t, s.Cancel(ctx))

	_, err := s.Schedule(ctx, models.AlarmConfig{
		AlarmTime: evening.Add(8 * time.Hour),
		SessionID: "s1",
	})
	require.NoError(t, err)

	require.NoError(t, s.Cancel(ctx))
	require.NoError(t, s.Cancel(ctx))

	assert.Empty(t, n.armed)
	assert.Len(t, n.cancelled, 1)
	assert.Nil(t, s.Current())

	stored, err := db.GetAlarm()
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestCancelStoredAlarmFromPreviousRun(t *testing.T) {
	n := newFakeNotifier()
	s, db := newScheduler(t, n)

	require.NoError(t, db.SaveAlarm(&models.AlarmConfig{
		SessionID: "s1",
		Handle:    "old",
		Trigger:   evening.Add(time.Hour),
	}))

	require.NoError(t, s.Cancel(context.Background()))

	assert.Equal(t, []Handle{"old"}, n.cancelled)

	stored, err := db.GetAlarm()
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestScheduleFailure(t *testing.T) {
	n := newFakeNotifier()
	n.err = errors.New("notifications are disabled")

	s, db := newScheduler(t, n)

	_, err := s.Schedule(context.Background(), models.AlarmConfig{
		AlarmTime: evening.Add(8 * time.Hour),
		SessionID: "s1",
	})

	require.ErrorIs(t, err, errSchedule)
	assert.Equal(t, apperr.CodePermission, apperr.CodeOf(err))
	assert.Nil(t, s.Current())

	stored, err := db.GetAlarm()
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestScheduleRequiresTime(t *testing.T) {
	s, _ := newScheduler(t, newFakeNotifier())

	_, err := s.Schedule(context.Background(), models.AlarmConfig{})
	assert.ErrorIs(t, err, errNoAlarmTime)
}

func TestRestore(t *testing.T) {
	t.Run("re-arms the active session's alarm", func(t *testing.T) {
		n := newFakeNotifier()
		s, db := newScheduler(t, n)

		require.NoError(t, db.SaveAlarm(&models.AlarmConfig{
			AlarmTime: evening.Add(8 * time.Hour),
			Trigger:   evening.Add(8 * time.Hour),
			SessionID: "s1",
			Handle:    "stale",
		}))

		require.NoError(t, s.Restore(context.Background(), "s1"))

		require.NotNil(t, s.Current())
		assert.NotEqual(t, "stale", s.Current().Handle)
		assert.Len(t, n.armed, 1)
	})

	t.Run("drops an alarm of another session", func(t *testing.T) {
		n := newFakeNotifier()
		s, db := newScheduler(t, n)

		require.NoError(t, db.SaveAlarm(&models.AlarmConfig{
			AlarmTime: evening.Add(8 * time.Hour),
			Trigger:   evening.Add(8 * time.Hour),
			SessionID: "old",
		}))

		require.NoError(t, s.Restore(context.Background(), "s2"))

		assert.Nil(t, s.Current())
		assert.Empty(t, n.armed)

		stored, err := db.GetAlarm()
		require.NoError(t, err)
		assert.Nil(t, stored)
	})

	t.Run("drops a missed alarm", func(t *testing.T) {
		n := newFakeNotifier()
		s, _ := newScheduler(t, n)

		require.NoError(t, s.db.SaveAlarm(&models.AlarmConfig{
			AlarmTime: evening.Add(-time.Hour),
			Trigger:   evening.Add(-time.Hour),
			SessionID: "s1",
		}))

		require.NoError(t, s.Restore(context.Background(), "s1"))
		assert.Empty(t, n.armed)
	})
}

func TestLocalFires(t *testing.T) {
	alerts := make(chan string, 1)
	played := make(chan string, 1)

	now := time.Now()

	l, err := NewLocal("",
		WithLocalNow(func() time.Time { return now }),
		WithAlertFunc(func(title, message, _ string) error {
			alerts <- title + ": " + message
			return nil
		}),
		WithPlayFunc(func(_ context.Context, sound string) error {
			played <- sound
			return nil
		}),
	)
	require.NoError(t, err)

	_, err = l.Schedule(context.Background(), now.Add(10*time.Millisecond), Content{
		Title: "Slumber",
		Body:  "wake up",
		Sound: "alarm",
	})
	require.NoError(t, err)

	select {
	case msg := <-alerts:
		assert.Equal(t, "Slumber: wake up", msg)
	case <-time.After(2 * time.Second):
		t.Fatal("alarm did not fire")
	}

	select {
	case sound := <-played:
		assert.Equal(t, "alarm", sound)
	case <-time.After(2 * time.Second):
		t.Fatal("alarm sound did not play")
	}

	assert.Eventually(t, func() bool {
		return l.Pending() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestLocalCancelPreventsFiring(t *testing.T) {
	fired := make(chan struct{}, 1)

	l, err := NewLocal("", WithAlertFunc(func(_, _, _ string) error {
		fired <- struct{}{}
		return nil
	}))
	require.NoError(t, err)

	h, err := l.Schedule(
		context.Background(),
		time.Now().Add(50*time.Millisecond),
		Content{},
	)
	require.NoError(t, err)

	require.NoError(t, l.Cancel(h))
	require.NoError(t, l.Cancel(h))
	assert.Zero(t, l.Pending())

	select {
	case <-fired:
		t.Fatal("cancelled alarm fired")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestNewLocalCommand(t *testing.T) {
	_, err := NewLocal(`notify-send "unterminated`)
	assert.ErrorIs(t, err, errInvalidCmd)

	_, err = NewLocal("definitely-not-a-real-binary-4821 --loud")
	assert.ErrorIs(t, err, errCmdNotFound)
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}
