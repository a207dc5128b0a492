package alarm

import (
	"context"
	"log/slog"
	"os/exec"
	"sync"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/google/uuid"
	"github.com/kballard/go-shellquote"
)

// Local fires alarms from this process with timers. An alarm only goes off
// while Slumber is running.
type Local struct {
	timers map[Handle]*time.Timer
	now    func() time.Time
	alert  func(title, message, icon string) error
	play   func(ctx context.Context, sound string) error
	log    *slog.Logger
	icon   string
	cmd    []string
	mu     sync.Mutex
}

type LocalOption func(*Local)

// WithAlertFunc replaces the desktop alert.
func WithAlertFunc(fn func(title, message, icon string) error) LocalOption {
	return func(l *Local) {
		l.alert = fn
	}
}

// WithPlayFunc sets how the alarm sound is played.
func WithPlayFunc(fn func(ctx context.Context, sound string) error) LocalOption {
	return func(l *Local) {
		l.play = fn
	}
}

// WithIcon sets the notification icon.
func WithIcon(path string) LocalOption {
	return func(l *Local) {
		l.icon = path
	}
}

// WithLocalNow overrides the clock.
func WithLocalNow(now func() time.Time) LocalOption {
	return func(l *Local) {
		l.now = now
	}
}

// WithLocalLogger sets the logger.
func WithLocalLogger(logger *slog.Logger) LocalOption {
	return func(l *Local) {
		l.log = logger
	}
}

// NewLocal returns a Local notifier. cmd, if set, runs when an alarm goes
// off.
func NewLocal(cmd string, opts ...LocalOption) (*Local, error) {
	l := &Local{
		timers: make(map[Handle]*time.Timer),
		now:    time.Now,
		alert:  beeep.Alert,
		log:    slog.Default(),
	}

	for _, opt := range opts {
		opt(l)
	}

	if cmd == "" {
		return l, nil
	}

	cmdSlice, err := shellquote.Split(cmd)
	if err != nil {
		return nil, errInvalidCmd.Fmt(cmd).Wrap(err)
	}

	if len(cmdSlice) == 0 {
		return l, nil
	}

	if _, err := exec.LookPath(cmdSlice[0]); err != nil {
		return nil, errCmdNotFound.Fmt(cmdSlice[0]).Wrap(err)
	}

	l.cmd = cmdSlice

	return l, nil
}

func (l *Local) Schedule(
	_ context.Context,
	at time.Time,
	content Content,
) (Handle, error) {
	h := Handle(uuid.NewString())

	l.mu.Lock()
	defer l.mu.Unlock()

	l.timers[h] = time.AfterFunc(at.Sub(l.now()), func() {
		l.fire(h, content)
	})

	return h, nil
}

// Cancel stops a pending alarm. Unknown handles are ignored.
func (l *Local) Cancel(h Handle) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t, ok := l.timers[h]; ok {
		t.Stop()
		delete(l.timers, h)
	}

	return nil
}

// Pending returns the number of armed alarms.
func (l *Local) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.timers)
}

func (l *Local) fire(h Handle, content Content) {
	l.mu.Lock()
	delete(l.timers, h)
	l.mu.Unlock()

	l.log.Info("alarm fired", slog.String("handle", string(h)))

	if err := l.alert(content.Title, content.Body, l.icon); err != nil {
		l.log.Warn("alarm notification failed", slog.Any("error", err))
	}

	ctx := context.Background()

	if content.Sound != "" && l.play != nil {
		if err := l.play(ctx, content.Sound); err != nil {
			l.log.Warn("alarm sound failed", slog.Any("error", err))
		}
	}

	if len(l.cmd) > 0 {
		//nolint:gosec // the command comes from the user's own config
		cmd := exec.CommandContext(ctx, l.cmd[0], l.cmd[1:]...)
		if err := cmd.Run(); err != nil {
			l.log.Warn("alarm command failed", slog.Any("error", err))
		}
	}
}
