package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/slumber/alarm"
	"github.com/ayoisaiah/slumber/internal/clock"
	"github.com/ayoisaiah/slumber/internal/config"
	"github.com/ayoisaiah/slumber/internal/models"
	"github.com/ayoisaiah/slumber/internal/pathutil"
	"github.com/ayoisaiah/slumber/internal/quality"
	"github.com/ayoisaiah/slumber/internal/timeutil"
	"github.com/ayoisaiah/slumber/internal/ui"
	"github.com/ayoisaiah/slumber/report"
	"github.com/ayoisaiah/slumber/session"
	"github.com/ayoisaiah/slumber/store"
	"github.com/ayoisaiah/slumber/syncer"
	"github.com/ayoisaiah/slumber/timer"
	"github.com/ayoisaiah/slumber/tracker"
)

func startOptions(cfg *config.Config) tracker.StartOptions {
	return tracker.StartOptions{
		StartTime:     cfg.CLI.StartTime,
		AlarmTime:     cfg.CLI.AlarmTime,
		Sound:         cfg.AmbientSound(),
		SoundsEnabled: cfg.SoundsEnabled(),
		SmartAlarm:    cfg.SmartAlarm(),
		Recorder:      cfg.CLI.Recorder,
	}
}

// defaultAction returns to the active session if there is one, or starts
// a new one.
func defaultAction(ctx *cli.Context) error {
	d, err := build(ctx, withPrompt(), withAlarms())
	if err != nil {
		return err
	}

	defer d.Close()

	if d.tracker.Active() != nil {
		return resume(ctx, d)
	}

	return start(ctx, d)
}

// startAction begins a new session. An active session is replaced.
func startAction(ctx *cli.Context) error {
	d, err := build(ctx, withPrompt(), withAlarms())
	if err != nil {
		return err
	}

	defer d.Close()

	return start(ctx, d)
}

// resumeAction returns to the active session after the screen was closed
// or Slumber was restarted.
func resumeAction(ctx *cli.Context) error {
	d, err := build(ctx, withAlarms())
	if err != nil {
		return err
	}

	defer d.Close()

	return resume(ctx, d)
}

func start(ctx *cli.Context, d *deps) error {
	if prev := d.tracker.Active(); prev != nil {
		report.Warn(fmt.Sprintf(
			"Replacing the session started at %s",
			prev.StartTime.Format(timeLayout(d.cfg)),
		))
	}

	out, err := d.ctrl.Start(ctx.Context, startOptions(d.cfg))
	if err != nil {
		return err
	}

	return show(ctx, d, out)
}

func resume(ctx *cli.Context, d *deps) error {
	out, err := d.ctrl.Resume(ctx.Context)
	if err != nil {
		return err
	}

	return show(ctx, d, out)
}

// show runs the session screen and reports how the session was left.
func show(ctx *cli.Context, d *deps, out *session.Outcome) error {
	ended, err := timer.Run(ctx.Context, d.ctrl, out, d.cfg)
	if err != nil {
		return err
	}

	if out.Degraded() {
		report.Warn(alarm.DegradedMsg)
		report.Error(out.AlarmErr)
	}

	if out.SoundErr != nil {
		report.Error(out.SoundErr)
	}

	if ended == nil {
		report.Info(
			"Your session is still running. Use 'slumber resume' to return to it or 'slumber end' to close it.",
		)

		return nil
	}

	report.Success(endedSummary(ended))

	if st := d.syncer.Status(); !st.OK() {
		report.SyncWarning(st.Message)
	}

	return nil
}

// endedSummary describes a closed session in one line.
func endedSummary(sess *models.SleepSession) string {
	hrs, mins := timeutil.MinsToHoursAndMins(sess.DurationMinutes)

	return fmt.Sprintf(
		"Slept %dh %dm with %d wake-up(s). Quality: %s/10 (%s)",
		hrs,
		mins,
		sess.WakeUps,
		ui.Quality(sess.Quality),
		quality.LabelFor(sess.Quality),
	)
}

// endAction closes the active session without the session screen.
func endAction(ctx *cli.Context) error {
	d, err := build(ctx, withAlarms())
	if err != nil {
		return err
	}

	defer d.Close()

	ended, err := d.ctrl.End(ctx.Context, ctx.Int("wake-ups"), ctx.String("notes"))
	if err != nil {
		return err
	}

	report.Success(endedSummary(ended))

	if st := d.syncer.Status(); !st.OK() {
		report.SyncWarning(st.Message)
	}

	return nil
}

func discardAction(ctx *cli.Context) error {
	d, err := build(ctx, withAlarms())
	if err != nil {
		return err
	}

	defer d.Close()

	if err := d.ctrl.Discard(ctx.Context); err != nil {
		return err
	}

	report.Success("Session discarded")

	return nil
}

func timeLayout(cfg *config.Config) string {
	if cfg.Display.TwentyFourHour {
		return "Jan 02 15:04"
	}

	return "Jan 02 03:04 PM"
}

// runningStatus describes a session shown by another Slumber process.
func runningStatus(st *session.Status, now time.Time, layout string) []string {
	lines := []string{
		fmt.Sprintf("Sleeping since %s (%s)",
			st.StartTime.Format(layout),
			clock.Format(clock.Elapsed(st.StartTime, now)),
		),
	}

	if !st.Trigger.IsZero() {
		lines = append(lines, fmt.Sprintf("Alarm: %s", st.Trigger.Format(layout)))
	}

	if st.Sound != "" {
		lines = append(lines, fmt.Sprintf("Sound: %s", st.Sound))
	}

	return lines
}

// sessionStatus describes the active session read from the store.
func sessionStatus(
	sess *models.SleepSession,
	cfg *models.AlarmConfig,
	now time.Time,
	layout string,
) []string {
	if sess == nil {
		return []string{"No active sleep session"}
	}

	lines := []string{
		fmt.Sprintf("Sleeping since %s (%s), screen closed",
			sess.StartTime.Format(layout),
			clock.Format(clock.Elapsed(sess.StartTime, now)),
		),
	}

	switch {
	case cfg != nil && cfg.SessionID == sess.ID:
		lines = append(lines, fmt.Sprintf("Alarm: %s", cfg.Trigger.Format(layout)))
	case !sess.AlarmTime.IsZero():
		lines = append(lines, "Alarm: not armed, use 'slumber resume' to restore it")
	}

	return lines
}

// syncLines describes the sync indicator.
func syncLines(st syncer.Status, guest bool) []string {
	if guest {
		return []string{"Sync: guest mode, sessions stay on this device"}
	}

	line := "Sync: never synced"
	if !st.LastSync.IsZero() {
		line = "Sync: last synced " + humanize.Time(st.LastSync)
	}

	if st.Pending > 0 {
		line += fmt.Sprintf(", %d waiting to upload", st.Pending)
	}

	return []string{line}
}

// statusReport describes the active session and returns its start time,
// which is zero when no session is active.
func statusReport(ctx *cli.Context) ([]string, time.Time, error) {
	st, err := session.ReadStatus(pathutil.StatusFilePath())
	if err != nil {
		return nil, time.Time{}, err
	}

	if st != nil && st.Running() {
		cfg, err := loadConfig(ctx, false)
		if err != nil {
			return nil, time.Time{}, err
		}

		return runningStatus(st, time.Now(), timeLayout(cfg)), st.StartTime, nil
	}

	d, err := build(ctx)
	if errors.Is(err, store.ErrSlumberRunning) {
		return []string{"Slumber is busy in another terminal"}, time.Time{}, nil
	}

	if err != nil {
		return nil, time.Time{}, err
	}

	defer d.Close()

	// a leftover status file from a process that is gone
	if st != nil {
		_ = os.Remove(pathutil.StatusFilePath())
	}

	cfg, err := d.db.GetAlarm()
	if err != nil {
		return nil, time.Time{}, err
	}

	active := d.tracker.Active()

	lines := sessionStatus(active, cfg, time.Now(), timeLayout(d.cfg))
	lines = append(lines, syncLines(d.syncer.Status(), d.syncer.Guest())...)

	if active == nil {
		return lines, time.Time{}, nil
	}

	return lines, active.StartTime, nil
}

// watch redraws the elapsed time of a session started at start until ctx
// is done.
func watch(ctx context.Context, start time.Time, details []string) error {
	area, err := pterm.DefaultArea.Start()
	if err != nil {
		return err
	}

	c := clock.New()
	defer c.Stop()

	for reading := range c.Start(ctx, start) {
		lines := append([]string{"Asleep for " + reading}, details...)
		area.Update(strings.Join(lines, "\n"))
	}

	return area.Stop()
}

// statusAction handles the status command and prints the status of the
// active session.
func statusAction(ctx *cli.Context) error {
	lines, start, err := statusReport(ctx)
	if err != nil {
		return err
	}

	if !ctx.Bool("watch") || start.IsZero() {
		pterm.Println(strings.Join(lines, "\n"))
		return nil
	}

	return watch(ctx.Context, start, lines)
}
