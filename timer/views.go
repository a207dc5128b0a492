package timer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/ayoisaiah/slumber/alarm"
	"github.com/ayoisaiah/slumber/internal/clock"
)

func (t *Timer) headerView() string {
	title := t.styles.title.Render("Slumber")
	since := t.styles.hint.Render(
		" · asleep since " + t.sess.StartTime.Format(t.timeFmt),
	)

	return title + since
}

// clockView shows the elapsed time and progress towards the sleep target.
func (t *Timer) clockView() string {
	var s strings.Builder

	s.WriteString(t.styles.clock.Render(clock.Format(t.elapsed)))
	s.WriteString("\n")

	if t.target > 0 {
		percent := min(float64(t.elapsed)/float64(t.target), 1)

		s.WriteString(t.progress.ViewAs(percent))
		s.WriteString("\n")
		s.WriteString(t.styles.hint.Render(
			fmt.Sprintf("%.0f%% of your %s goal", percent*100, t.target),
		))
		s.WriteString("\n")
	}

	return s.String()
}

func (t *Timer) soundView() string {
	p := t.ctrl.Player()
	if p == nil || !t.sess.SleepSoundsEnabled {
		return t.styles.hint.Render("♪ sounds off")
	}

	st := p.State()

	switch {
	case st.Err != nil:
		msg := t.styles.err.Render("♪ " + st.Err.Error())
		if p.CanRetry() {
			msg += t.styles.hint.Render(" (press r to retry)")
		}

		return msg
	case st.Loading:
		return t.styles.hint.Render("♪ loading " + st.Name + "…")
	case !st.Loaded:
		return t.styles.hint.Render("♪ " + t.sess.Sound + " not loaded")
	case st.Playing:
		return t.styles.good.Render(
			fmt.Sprintf("♪ %s playing at %.0f%%", st.Name, st.Volume*100),
		)
	default:
		return t.styles.hint.Render(
			fmt.Sprintf("♪ %s paused at %.0f%%", st.Name, st.Volume*100),
		)
	}
}

func (t *Timer) alarmView() string {
	if t.sess.AlarmTime.IsZero() {
		return t.styles.hint.Render("⏰ no alarm")
	}

	a := t.ctrl.Alarm()
	if a == nil {
		return t.styles.warning.Render("⏰ " + alarm.DegradedMsg)
	}

	text := "⏰ " + a.AlarmTime.Format(t.timeFmt)
	if a.SmartAlarm {
		text += " (smart, from " + a.Trigger.Format(t.timeFmt) + ")"
	}

	return t.styles.good.Render(text)
}

func (t *Timer) syncView() string {
	st := t.ctrl.Tracker().SyncStatus()

	switch {
	case !st.OK():
		return t.styles.warning.Render("☁ " + st.Message)
	case st.Pending > 0:
		return t.styles.warning.Render(fmt.Sprintf("☁ %d record(s) waiting to sync", st.Pending))
	case st.LastSync.IsZero():
		return t.styles.hint.Render("☁ saved on this device")
	default:
		return t.styles.good.Render("☁ synced " + st.LastSync.Format(t.timeFmt))
	}
}

func (t *Timer) statusView() string {
	var s strings.Builder

	if t.err != nil {
		s.WriteString("\n" + t.styles.err.Render(t.err.Error()))
	}

	if t.notice != "" {
		s.WriteString("\n" + t.styles.hint.Render(t.notice))
	}

	return s.String()
}

func (t *Timer) View() string {
	if t.ended != nil {
		return ""
	}

	var s strings.Builder

	s.WriteString(t.headerView())
	s.WriteString("\n")
	s.WriteString(t.clockView())
	s.WriteString("\n")
	s.WriteString(strings.Join([]string{
		t.soundView(),
		t.alarmView(),
		t.syncView(),
	}, "\n"))
	s.WriteString(t.statusView())

	if t.form != nil {
		s.WriteString("\n\n" + t.form.View())
		s.WriteString("\n" + t.help.ShortHelpView([]key.Binding{t.keys.esc}))
	} else {
		s.WriteString("\n\n" + t.help.View(t.keys))
	}

	return t.styles.base.Render(s.String())
}
