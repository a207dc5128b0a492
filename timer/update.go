package timer

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/davecgh/go-spew/spew"

	"github.com/ayoisaiah/slumber/internal/clock"
	"github.com/ayoisaiah/slumber/tracker"
)

func validateWakeUps(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errInvalidWakeUps
	}

	return tracker.ValidateEnd(n, "")
}

func validateNotes(s string) error {
	return tracker.ValidateEnd(0, s)
}

// newEndForm asks for the values needed to close the session. Invalid
// values are reported inline and keep the form open.
func newEndForm(input *endInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("How many times did you wake up?").
				Value(&input.WakeUps).
				Validate(validateWakeUps),
			huh.NewText().
				Title("Notes").
				Description("Optional, up to 500 characters").
				CharLimit(tracker.MaxNotesChars+1).
				Value(&input.Notes).
				Validate(validateNotes),
		),
	).WithShowHelp(false)
}

// handleTick refreshes the elapsed time.
func (t *Timer) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	t.elapsed = clock.Elapsed(t.sess.StartTime, time.Time(msg))

	return t, tick()
}

func (t *Timer) soundCmd(fn func() error) tea.Cmd {
	return func() tea.Msg {
		return soundMsg{err: fn()}
	}
}

func (t *Timer) endCmd(wakeUps int, notes string) tea.Cmd {
	return func() tea.Msg {
		sess, err := t.ctrl.End(t.ctx, wakeUps, notes)
		return endMsg{sess: sess, err: err}
	}
}

func (t *Timer) syncCmd() tea.Cmd {
	return func() tea.Msg {
		report, err := t.ctrl.Tracker().Sync(t.ctx)

		return syncMsg{err: err, synced: report.Synced, failed: report.Failed}
	}
}

func (t *Timer) setVolume(delta float64) {
	p := t.ctrl.Player()
	if p == nil {
		return
	}

	if err := p.SetVolume(p.State().Volume + delta); err != nil {
		t.err = err
	}
}

func (t *Timer) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, t.keys.quit):
		t.ctrl.Detach(t.ctx)

		return t, tea.Quit

	case t.busy:
		return t, nil

	case key.Matches(msg, t.keys.toggleSound):
		p := t.ctrl.Player()
		if p == nil || !p.State().Loaded {
			t.err = errNoSound
			return t, nil
		}

		t.err = p.Toggle()

	case key.Matches(msg, t.keys.volumeUp):
		t.setVolume(volumeStep)

	case key.Matches(msg, t.keys.volumeDown):
		t.setVolume(-volumeStep)

	case key.Matches(msg, t.keys.retry):
		p := t.ctrl.Player()
		if p == nil || !p.CanRetry() {
			return t, nil
		}

		t.busy = true
		t.notice = "Loading sound…"

		return t, t.soundCmd(func() error {
			return t.ctrl.RetrySound(t.ctx)
		})

	case key.Matches(msg, t.keys.sync):
		if t.ctrl.Tracker().SyncStatus().Pending == 0 {
			t.notice = "Nothing to sync"
			return t, nil
		}

		t.busy = true
		t.notice = "Syncing…"

		return t, t.syncCmd()

	case key.Matches(msg, t.keys.end):
		t.err = nil
		t.notice = ""
		t.input = &endInput{WakeUps: "0"}
		t.form = newEndForm(t.input)

		return t, t.form.Init()
	}

	return t, nil
}

// updateForm forwards messages to the end-of-session form.
func (t *Timer) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, t.keys.esc):
			t.form = nil
			return t, nil
		case k.String() == "ctrl+c":
			t.ctrl.Detach(t.ctx)
			return t, tea.Quit
		}
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}

	switch t.form.State {
	case huh.StateCompleted:
		wakeUps, _ := strconv.Atoi(strings.TrimSpace(t.input.WakeUps))
		notes := strings.TrimSpace(t.input.Notes)

		t.form = nil
		t.busy = true
		t.notice = "Saving your night…"

		return t, t.endCmd(wakeUps, notes)
	case huh.StateAborted:
		t.form = nil
		return t, nil
	}

	return t, cmd
}

// dump renders a message for the debug log.
var dump = spew.Sdump

func (t *Timer) logMsg(msg tea.Msg) {
	if _, ok := msg.(tickMsg); ok {
		return
	}

	if !slog.Default().Enabled(t.ctx, slog.LevelDebug) {
		return
	}

	slog.DebugContext(t.ctx, "session screen message", slog.String("msg", dump(msg)))
}

func (t *Timer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	t.logMsg(msg)

	switch msg := msg.(type) {
	case tickMsg:
		return t.handleTick(msg)

	case soundMsg:
		t.busy = false
		t.notice = ""
		t.err = msg.err

		return t, nil

	case syncMsg:
		t.busy = false
		t.err = msg.err
		t.notice = ""

		if msg.err == nil {
			t.notice = "Synced " + strconv.Itoa(msg.synced) + " record(s)"
			if msg.failed > 0 {
				t.notice += ", " + strconv.Itoa(msg.failed) + " still pending"
			}
		}

		return t, nil

	case endMsg:
		t.busy = false
		t.notice = ""

		if msg.err != nil {
			t.err = msg.err
			return t, nil
		}

		t.ended = msg.sess

		return t, tea.Quit

	case tea.WindowSizeMsg:
		t.progress.Width = min(msg.Width-padding*2-4, maxWidth)
		t.help.Width = msg.Width

		return t, nil

	case tea.KeyMsg:
		if t.form != nil {
			return t.updateForm(msg)
		}

		return t.handleKeyPress(msg)
	}

	if t.form != nil {
		return t.updateForm(msg)
	}

	return t, nil
}
