package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/slumber/internal/config"
	"github.com/ayoisaiah/slumber/internal/models"
	"github.com/ayoisaiah/slumber/internal/ui"
	"github.com/ayoisaiah/slumber/journal"
	"github.com/ayoisaiah/slumber/report"
)

// linkWindow is how long after waking up a journal entry is still linked
// to the night it follows.
const linkWindow = 12 * time.Hour

// linkedSession picks the session a new journal entry is about: the
// active one, or the last night if it ended recently.
func linkedSession(
	active *models.SleepSession,
	history []models.SleepSession,
	now time.Time,
) string {
	if active != nil {
		return active.ID
	}

	if len(history) > 0 && now.Sub(history[0].EndTime) <= linkWindow {
		return history[0].ID
	}

	return ""
}

func journalAddAction(ctx *cli.Context) error {
	text := strings.Join(ctx.Args().Slice(), " ")
	mood := ctx.Int("mood")

	// fail before opening the store
	if err := journal.Validate(strings.TrimSpace(text), mood); err != nil {
		return err
	}

	d, err := build(ctx)
	if err != nil {
		return err
	}

	defer d.Close()

	sessionID := linkedSession(d.tracker.Active(), d.tracker.History(), time.Now())

	entry, err := d.journal().Add(ctx.Context, text, mood, sessionID)
	if err != nil {
		return err
	}

	report.Success(fmt.Sprintf("Journal entry saved (mood: %s)", journal.Moods[entry.Mood]))

	if st := d.syncer.Status(); !st.OK() {
		report.SyncWarning(st.Message)
	}

	return nil
}

func journalRows(entries []models.JournalEntry, layout string) [][]string {
	rows := [][]string{{"DATE", "MOOD", "ENTRY", "SYNCED"}}

	for i := range entries {
		e := &entries[i]

		synced := ""
		if e.Synced {
			synced = ui.Green("✔")
		}

		rows = append(rows, []string{
			e.CreatedAt.Format(layout),
			strconv.Itoa(e.Mood) + " " + journal.Moods[e.Mood],
			ui.Truncate(e.Text, 50),
			synced,
		})
	}

	return rows
}

func journalListAction(ctx *cli.Context) error {
	f, err := config.Filter(ctx)
	if err != nil {
		return err
	}

	d, err := build(ctx)
	if err != nil {
		return err
	}

	defer d.Close()

	entries, err := d.journal().List(f.StartTime, f.EndTime)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		report.Info("No journal entries in this period")
		return nil
	}

	return ui.PrintTable(config.Stdout, journalRows(entries, timeLayout(d.cfg)))
}
