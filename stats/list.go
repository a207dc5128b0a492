package stats

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/slumber/internal/config"
	"github.com/ayoisaiah/slumber/internal/models"
	"github.com/ayoisaiah/slumber/internal/ui"
)

const notesWidth = 30

func dateTimeLayout(display config.DisplayConfig) string {
	if display.TwentyFourHour {
		return "Jan 02, 2006 15:04"
	}

	return "Jan 02, 2006 03:04 PM"
}

func sessionRows(
	sessions []models.SleepSession,
	display config.DisplayConfig,
) [][]string {
	layout := dateTimeLayout(display)

	rows := [][]string{
		{"#", "START", "END", "SLEPT", "WAKE-UPS", "QUALITY", "NOTES", "SYNCED"},
	}

	for i := range sessions {
		sess := sessions[i]

		endDate := ""
		if !sess.EndTime.IsZero() {
			endDate = sess.EndTime.Format(layout)
		}

		synced := ui.Yellow("pending")
		if sess.Synced {
			synced = ui.Green("yes")
		}

		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			sess.StartTime.Format(layout),
			endDate,
			formatDuration(time.Duration(sess.DurationMinutes) * time.Minute),
			strconv.Itoa(sess.WakeUps),
			ui.Quality(sess.Quality),
			ui.Truncate(sess.Notes, notesWidth),
			synced,
		})
	}

	return rows
}

// List prints a table of the sessions that started within the filter
// bounds, most recent first.
func (s *Stats) List(
	w io.Writer,
	f *config.FilterConfig,
	display config.DisplayConfig,
) error {
	sessions, err := s.Sessions(f)
	if err != nil {
		return err
	}

	sessions = filterSessions(sessions)

	if len(sessions) == 0 {
		pterm.Info.Println(noSessionsMsg)
		return nil
	}

	slices.Reverse(sessions)

	if err := ui.PrintTable(w, sessionRows(sessions, display)); err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%d sessions\n", len(sessions))

	return err
}
