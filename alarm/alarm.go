// Package alarm schedules the wake-up alarm of the active sleep session.
package alarm

import (
	"context"
	"log/slog"
	"time"

	"github.com/ayoisaiah/slumber/internal/apperr"
	"github.com/ayoisaiah/slumber/internal/models"
	"github.com/ayoisaiah/slumber/store"
)

// DefaultSmartWindow is how much earlier a smart alarm fires.
const DefaultSmartWindow = 30 * time.Minute

// Handle identifies a scheduled alarm.
type Handle string

// Content is what the user sees and hears when the alarm fires.
type Content struct {
	Title string
	Body  string
	Sound string
}

// Notifier is the platform scheduling boundary.
type Notifier interface {
	Schedule(ctx context.Context, at time.Time, c Content) (Handle, error)
	Cancel(h Handle) error
}

// Scheduler keeps at most one alarm armed and records it in the local
// store while its session is active.
type Scheduler struct {
	notifier Notifier
	db       store.DB
	now      func() time.Time
	log      *slog.Logger
	current  *models.AlarmConfig
	sound    string
	window   time.Duration
}

type Option func(*Scheduler)

// WithNow overrides the clock.
func WithNow(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// WithSmartWindow sets how much earlier a smart alarm fires.
func WithSmartWindow(d time.Duration) Option {
	return func(s *Scheduler) {
		s.window = d
	}
}

// WithSound sets the sound played when the alarm fires.
func WithSound(sound string) Option {
	return func(s *Scheduler) {
		s.sound = sound
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		s.log = l
	}
}

// NewScheduler returns a Scheduler.
func NewScheduler(n Notifier, db store.DB, opts ...Option) *Scheduler {
	s := &Scheduler{
		notifier: n,
		db:       db,
		now:      time.Now,
		log:      slog.Default(),
		window:   DefaultSmartWindow,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Current returns the armed alarm, or nil.
func (s *Scheduler) Current() *models.AlarmConfig {
	return s.current
}

func (s *Scheduler) content(cfg models.AlarmConfig) Content {
	body := "Time to wake up. It is " + cfg.AlarmTime.Format(time.Kitchen) + "."
	if cfg.SmartAlarm {
		body = "Good morning! Your smart alarm is going off a little early."
	}

	return Content{
		Title: "Slumber",
		Body:  body,
		Sound: s.sound,
	}
}

// Schedule replaces any armed alarm with cfg and returns its handle.
func (s *Scheduler) Schedule(
	ctx context.Context,
	cfg models.AlarmConfig,
) (Handle, error) {
	if cfg.AlarmTime.IsZero() {
		return "", errNoAlarmTime
	}

	if err := s.Cancel(ctx); err != nil {
		return "", err
	}

	trigger := Trigger(cfg.AlarmTime, s.now(), cfg.SmartAlarm, s.window)

	h, err := s.notifier.Schedule(ctx, trigger, s.content(cfg))
	if err != nil {
		if _, ok := apperr.As(err); ok {
			return "", err
		}

		return "", errSchedule.Wrap(err)
	}

	cfg.Trigger = trigger
	cfg.Handle = string(h)

	if err := s.db.SaveAlarm(&cfg); err != nil {
		_ = s.notifier.Cancel(h)
		return "", errStore.Wrap(err)
	}

	s.current = &cfg

	s.log.InfoContext(ctx, "alarm scheduled",
		slog.String("session", cfg.SessionID),
		slog.Time("trigger", trigger),
	)

	return h, nil
}

// Cancel disarms the current alarm. It is a no-op when nothing is
// scheduled.
func (s *Scheduler) Cancel(ctx context.Context) error {
	cfg := s.current

	if cfg == nil {
		stored, err := s.db.GetAlarm()
		if err != nil {
			return errStore.Wrap(err)
		}

		cfg = stored
	}

	if cfg == nil {
		return nil
	}

	if err := s.notifier.Cancel(Handle(cfg.Handle)); err != nil {
		s.log.WarnContext(ctx, "cancelling alarm failed", slog.Any("error", err))
	}

	if err := s.db.DeleteAlarm(); err != nil {
		return errStore.Wrap(err)
	}

	s.current = nil

	return nil
}

// Restore re-arms the stored alarm of sessionID after a restart. Alarms
// belonging to another session are removed.
func (s *Scheduler) Restore(ctx context.Context, sessionID string) error {
	stored, err := s.db.GetAlarm()
	if err != nil {
		return errStore.Wrap(err)
	}

	if stored == nil {
		return nil
	}

	// the alarm went off or was missed while Slumber was not running
	if stored.SessionID != sessionID || !stored.Trigger.After(s.now()) {
		return s.Cancel(ctx)
	}

	_, err = s.Schedule(ctx, *stored)

	return err
}
