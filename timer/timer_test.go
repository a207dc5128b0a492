package timer

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/slumber/internal/apperr"
	"github.com/ayoisaiah/slumber/internal/config"
	"github.com/ayoisaiah/slumber/internal/models"
	"github.com/ayoisaiah/slumber/session"
	"github.com/ayoisaiah/slumber/store"
	"github.com/ayoisaiah/slumber/syncer"
	"github.com/ayoisaiah/slumber/tracker"
)

func newTimer(t *testing.T) *Timer {
	t.Helper()

	db, err := store.NewClient(filepath.Join(t.TempDir(), "slumber.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	ctx := context.Background()
	ctrl := session.New(tracker.New(db, syncer.New(db, nil)))

	out, err := ctrl.Start(ctx, tracker.StartOptions{
		StartTime: time.Now().Add(-90 * time.Minute),
	})
	require.NoError(t, err)

	cfg := &config.Config{
		Sleep:   config.SleepConfig{Target: 8 * time.Hour},
		Display: config.DisplayConfig{TwentyFourHour: true},
	}

	return New(ctx, ctrl, out, cfg)
}

func TestValidateWakeUps(t *testing.T) {
	cases := []struct {
		input string
		ok    bool
	}{
		{"0", true},
		{" 3 ", true},
		{"100", true},
		{"101", false},
		{"-1", false},
		{"two", false},
		{"", false},
	}

	for _, tc := range cases {
		err := validateWakeUps(tc.input)
		if tc.ok {
			assert.NoError(t, err, tc.input)
			continue
		}

		assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err), tc.input)
	}
}

func TestValidateNotes(t *testing.T) {
	assert.NoError(t, validateNotes(strings.Repeat("z", tracker.MaxNotesChars)))
	assert.Error(t, validateNotes(strings.Repeat("z", tracker.MaxNotesChars+1)))
}

func TestTickUpdatesElapsed(t *testing.T) {
	tm := newTimer(t)

	now := tm.sess.StartTime.Add(2*time.Hour + 5*time.Second)

	_, cmd := tm.Update(tickMsg(now))
	assert.NotNil(t, cmd, "the clock keeps ticking")
	assert.Equal(t, 2*time.Hour+5*time.Second, tm.elapsed)
	assert.Contains(t, tm.View(), "2:00:05")
}

func TestEndFormOpensAndCancels(t *testing.T) {
	tm := newTimer(t)

	_, _ = tm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	require.NotNil(t, tm.form)
	assert.Equal(t, "0", tm.input.WakeUps)

	_, _ = tm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, tm.form)
}

func TestToggleWithoutSound(t *testing.T) {
	tm := newTimer(t)

	_, _ = tm.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	assert.ErrorIs(t, tm.err, errNoSound)
}

func TestEndMsg(t *testing.T) {
	tm := newTimer(t)

	failure := &apperr.Error{Message: "boom", Code: apperr.CodeValidation}

	_, cmd := tm.Update(endMsg{err: failure})
	assert.Nil(t, cmd)
	assert.ErrorIs(t, tm.err, failure)
	assert.Nil(t, tm.Ended())
	assert.Contains(t, tm.View(), "boom")

	closed := &models.SleepSession{ID: "x"}

	_, cmd = tm.Update(endMsg{sess: closed})
	require.NotNil(t, cmd)
	assert.Equal(t, closed, tm.Ended())
	assert.Empty(t, tm.View())
}

func TestEndCmdClosesSession(t *testing.T) {
	tm := newTimer(t)

	msg := tm.endCmd(2, "restless")()

	res, ok := msg.(endMsg)
	require.True(t, ok)
	require.NoError(t, res.err)
	assert.Equal(t, 2, res.sess.WakeUps)
	assert.Equal(t, 90, res.sess.DurationMinutes)
	assert.Nil(t, tm.ctrl.Tracker().Active())
}

func TestSyncWithNothingPending(t *testing.T) {
	tm := newTimer(t)

	_, cmd := tm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	assert.Nil(t, cmd)
	assert.Equal(t, "Nothing to sync", tm.notice)
}

func TestViewIndicators(t *testing.T) {
	tm := newTimer(t)

	view := tm.View()
	assert.Contains(t, view, "sounds off")
	assert.Contains(t, view, "no alarm")
	assert.Contains(t, view, "saved on this device")
}

func TestMessagesDumpedOnlyAtDebugLevel(t *testing.T) {
	tm := newTimer(t)

	oldDump, oldLogger := dump, slog.Default()

	t.Cleanup(func() {
		dump = oldDump
		slog.SetDefault(oldLogger)
	})

	var dumped int

	dump = func(...any) string {
		dumped++
		return ""
	}

	testCases := []struct {
		Name  string
		Level slog.Level
		Want  int
	}{
		{Name: "info", Level: slog.LevelInfo, Want: 0},
		{Name: "debug", Level: slog.LevelDebug, Want: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			dumped = 0

			slog.SetDefault(slog.New(slog.NewTextHandler(
				io.Discard,
				&slog.HandlerOptions{Level: tc.Level},
			)))

			tm.Update(syncMsg{})
			tm.Update(tickMsg(time.Now()))

			assert.Equal(t, tc.Want, dumped)
		})
	}
}
