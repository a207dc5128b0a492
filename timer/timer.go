// Package timer runs the interactive screen shown while a sleep session is
// active
package timer

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ayoisaiah/slumber/internal/clock"
	"github.com/ayoisaiah/slumber/internal/config"
	"github.com/ayoisaiah/slumber/internal/models"
	"github.com/ayoisaiah/slumber/session"
)

const volumeStep = 0.1

type (
	tickMsg time.Time

	soundMsg struct {
		err error
	}

	endMsg struct {
		sess *models.SleepSession
		err  error
	}

	syncMsg struct {
		err    error
		synced int
		failed int
	}
)

// endInput holds the values typed into the end-of-session form.
type endInput struct {
	WakeUps string
	Notes   string
}

// Timer is the bubbletea model of the session screen.
type Timer struct {
	ctx      context.Context
	ctrl     *session.Controller
	outcome  *session.Outcome
	sess     *models.SleepSession
	ended    *models.SleepSession
	form     *huh.Form
	input    *endInput
	err      error
	now      func() time.Time
	notice   string
	timeFmt  string
	help     help.Model
	progress progress.Model
	styles   styles
	keys     keymap
	elapsed  time.Duration
	target   time.Duration
	busy     bool
}

// New returns the screen for the session described by out.
func New(
	ctx context.Context,
	ctrl *session.Controller,
	out *session.Outcome,
	cfg *config.Config,
) *Timer {
	timeFmt := "03:04 PM"
	if cfg.Display.TwentyFourHour {
		timeFmt = "15:04"
	}

	t := &Timer{
		ctx:      ctx,
		ctrl:     ctrl,
		outcome:  out,
		sess:     out.Session,
		now:      time.Now,
		timeFmt:  timeFmt,
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		styles:   newStyles(cfg.Display.DarkTheme),
		keys:     defaultKeymap,
		target:   cfg.Sleep.Target,
	}

	t.progress.Width = maxWidth
	t.elapsed = clock.Elapsed(t.sess.StartTime, t.now())

	return t
}

func tick() tea.Cmd {
	return tea.Tick(clock.Interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (t *Timer) Init() tea.Cmd {
	return tick()
}

// Ended returns the session closed from the screen, if any.
func (t *Timer) Ended() *models.SleepSession {
	return t.ended
}

// Run shows the screen until the session is ended or the user quits. It
// returns the closed session, or nil when the session is still running.
func Run(
	ctx context.Context,
	ctrl *session.Controller,
	out *session.Outcome,
	cfg *config.Config,
) (*models.SleepSession, error) {
	t := New(ctx, ctrl, out, cfg)

	p := tea.NewProgram(t, tea.WithContext(ctx), tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		ctrl.Detach(ctx)
		return nil, err
	}

	return t.ended, nil
}
