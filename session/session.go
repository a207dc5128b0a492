// Package session sequences the adapters that make up a night: the tracked
// session, its alarm and its ambient sound.
package session

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ayoisaiah/slumber/alarm"
	"github.com/ayoisaiah/slumber/audio"
	"github.com/ayoisaiah/slumber/internal/models"
	"github.com/ayoisaiah/slumber/internal/pathutil"
	"github.com/ayoisaiah/slumber/tracker"
)

// Outcome is the result of starting or resuming a session. The session is
// always set; AlarmErr and SoundErr report adapters that failed without
// stopping the session.
type Outcome struct {
	Session  *models.SleepSession
	AlarmErr error
	SoundErr error
}

// Degraded reports whether the session runs without an alarm it asked for.
func (o *Outcome) Degraded() bool {
	return o.AlarmErr != nil
}

// Controller drives the tracker, alarm scheduler and sound player together.
// The alarm scheduler and player are optional.
type Controller struct {
	tracker    *tracker.Tracker
	alarms     *alarm.Scheduler
	player     *audio.Player
	catalog    *audio.Catalog
	log        *slog.Logger
	baseURL    string
	statusPath string
}

type Option func(*Controller)

// WithAlarms arms the session alarm through s.
func WithAlarms(s *alarm.Scheduler) Option {
	return func(c *Controller) {
		c.alarms = s
	}
}

// WithPlayer plays ambient sounds from catalog through p. Sounds missing
// from the cache are streamed from baseURL.
func WithPlayer(p *audio.Player, catalog *audio.Catalog, baseURL string) Option {
	return func(c *Controller) {
		c.player = p
		c.catalog = catalog
		c.baseURL = baseURL
	}
}

// WithStatusFile records the running session in path for the status
// command.
func WithStatusFile(path string) Option {
	return func(c *Controller) {
		c.statusPath = path
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// New returns a Controller for t.
func New(t *tracker.Tracker, opts ...Option) *Controller {
	c := &Controller{
		tracker: t,
		log:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Controller) Tracker() *tracker.Tracker {
	return c.tracker
}

// Player returns the sound player, or nil when sounds are unavailable.
func (c *Controller) Player() *audio.Player {
	return c.player
}

// Alarm returns the armed alarm, if any.
func (c *Controller) Alarm() *models.AlarmConfig {
	if c.alarms == nil {
		return nil
	}

	return c.alarms.Current()
}

// Start begins a session, then arms its alarm and starts its sound. Only a
// failure to record the session is returned as an error.
func (c *Controller) Start(
	ctx context.Context,
	opts tracker.StartOptions,
) (*Outcome, error) {
	sess, err := c.tracker.Start(ctx, opts)
	if err != nil {
		return nil, err
	}

	out := &Outcome{Session: sess}

	if !sess.AlarmTime.IsZero() {
		out.AlarmErr = c.armAlarm(ctx, sess)
	} else {
		// a replaced session may have left its alarm armed
		c.cancelAlarm(ctx)
	}

	if sess.SleepSoundsEnabled && sess.Sound != "" {
		out.SoundErr = c.PlaySound(ctx, sess.Sound)
	}

	c.writeStatus(ctx, sess)

	return out, nil
}

// Resume picks up the active session after a restart, restoring its alarm
// and sound.
func (c *Controller) Resume(ctx context.Context) (*Outcome, error) {
	sess := c.tracker.Active()
	if sess == nil {
		return nil, errNothingToResume
	}

	out := &Outcome{Session: sess}

	if c.alarms != nil {
		out.AlarmErr = c.alarms.Restore(ctx, sess.ID)
	}

	if sess.SleepSoundsEnabled && sess.Sound != "" {
		out.SoundErr = c.PlaySound(ctx, sess.Sound)
	}

	c.writeStatus(ctx, sess)

	return out, nil
}

func (c *Controller) armAlarm(ctx context.Context, sess *models.SleepSession) error {
	if c.alarms == nil {
		return nil
	}

	_, err := c.alarms.Schedule(ctx, models.AlarmConfig{
		AlarmTime:  sess.AlarmTime,
		SessionID:  sess.ID,
		SmartAlarm: sess.SmartAlarmEnabled,
	})
	if err != nil {
		c.log.WarnContext(ctx, "session continues without an alarm",
			slog.String("id", sess.ID),
			slog.Any("error", err),
		)
	}

	return err
}

// SetAlarm re-arms the alarm of the active session for alarmTime.
func (c *Controller) SetAlarm(
	ctx context.Context,
	alarmTime time.Time,
	smart bool,
) (*models.AlarmConfig, error) {
	sess := c.tracker.Active()
	if sess == nil {
		return nil, errNothingToResume
	}

	if c.alarms == nil {
		return nil, errNoAlarms
	}

	_, err := c.alarms.Schedule(ctx, models.AlarmConfig{
		AlarmTime:  alarmTime,
		SessionID:  sess.ID,
		SmartAlarm: smart,
	})
	if err != nil {
		return nil, err
	}

	return c.alarms.Current(), nil
}

// CancelAlarm disarms the alarm. It is safe to call when none is armed.
func (c *Controller) CancelAlarm(ctx context.Context) error {
	if c.alarms == nil {
		return nil
	}

	return c.alarms.Cancel(ctx)
}

func (c *Controller) cancelAlarm(ctx context.Context) {
	if err := c.CancelAlarm(ctx); err != nil {
		c.log.WarnContext(ctx, "cancelling alarm failed", slog.Any("error", err))
	}
}

// resolve maps a sound reference to its catalogue entry. References
// missing from the catalogue are treated as file paths or URLs.
func (c *Controller) resolve(ref string) (id, source, name string) {
	if c.catalog != nil {
		if s, err := c.catalog.Find(ref); err == nil {
			return s.ID, s.Source(c.baseURL), s.Name
		}
	}

	base := filepath.Base(ref)

	return pathutil.StripExtension(base), ref, base
}

// PlaySound loops the referenced sound, stopping whatever was playing. A
// failed load is tried again only through RetrySound.
func (c *Controller) PlaySound(ctx context.Context, ref string) error {
	if c.player == nil {
		return errNoPlayer
	}

	id, source, name := c.resolve(ref)

	return c.player.Play(ctx, id, source, name)
}

// RetrySound replays the last sound after a failure.
func (c *Controller) RetrySound(ctx context.Context) error {
	if c.player == nil {
		return errNoPlayer
	}

	return c.player.Retry(ctx)
}

func (c *Controller) stopSound(ctx context.Context) {
	if c.player == nil {
		return
	}

	if err := c.player.Stop(); err != nil {
		c.log.WarnContext(ctx, "stopping sound failed", slog.Any("error", err))
	}
}

// End closes the active session, then disarms its alarm and stops its
// sound. Nothing is torn down when the session cannot be closed.
func (c *Controller) End(
	ctx context.Context,
	wakeUps int,
	notes string,
) (*models.SleepSession, error) {
	sess, err := c.tracker.End(ctx, wakeUps, notes)
	if err != nil {
		return nil, err
	}

	c.teardown(ctx)

	return sess, nil
}

// Discard abandons the active session and tears down its alarm and sound.
func (c *Controller) Discard(ctx context.Context) error {
	if err := c.tracker.Discard(ctx); err != nil {
		return err
	}

	c.teardown(ctx)

	return nil
}

// Detach stops the sound of a session that keeps running after the screen
// is closed. The alarm stays recorded so that Resume can restore it.
func (c *Controller) Detach(ctx context.Context) {
	c.stopSound(ctx)
	c.removeStatus()
}

func (c *Controller) teardown(ctx context.Context) {
	c.cancelAlarm(ctx)
	c.stopSound(ctx)
	c.removeStatus()
}

func (c *Controller) writeStatus(ctx context.Context, sess *models.SleepSession) {
	if c.statusPath == "" {
		return
	}

	st := &Status{
		PID:       os.Getpid(),
		SessionID: sess.ID,
		StartTime: sess.StartTime,
		AlarmTime: sess.AlarmTime,
		Sound:     sess.Sound,
	}

	if a := c.Alarm(); a != nil {
		st.Trigger = a.Trigger
	}

	if err := WriteStatus(c.statusPath, st); err != nil {
		c.log.WarnContext(ctx, "writing status file failed", slog.Any("error", err))
	}
}

func (c *Controller) removeStatus() {
	if c.statusPath == "" {
		return
	}

	_ = os.Remove(c.statusPath)
}
