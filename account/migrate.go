package account

import (
	"context"
	"log/slog"
	"time"

	"github.com/ayoisaiah/slumber/remote"
	"github.com/ayoisaiah/slumber/store"
)

const migratedKeyPrefix = "guest_migrated:"

// MigrationReport summarises a guest migration.
type MigrationReport struct {
	Errors      []error
	Sessions    int
	Journal     int
	Failed      int
	AlreadyDone bool
}

// MigrateGuest uploads the sessions and journal entries created in guest
// mode to userID's account and stamps them with the user id locally. It
// runs once per user; an interrupted or partially failed migration is
// picked up again on the next call.
func MigrateGuest(
	ctx context.Context,
	db store.DB,
	r remote.Store,
	userID string,
) (MigrationReport, error) {
	var report MigrationReport

	flag := migratedKeyPrefix + userID

	done, err := db.Get(flag)
	if err != nil {
		return report, err
	}

	if done != "" {
		report.AlreadyDone = true
		return report, nil
	}

	if err := migrateSessions(ctx, db, r, userID, &report); err != nil {
		return report, err
	}

	if err := migrateJournal(ctx, db, r, userID, &report); err != nil {
		return report, err
	}

	if err := stampActive(db, userID); err != nil {
		return report, err
	}

	if report.Failed > 0 {
		return report, errMigration.Fmt(report.Failed)
	}

	if err := db.Set(flag, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return report, err
	}

	slog.InfoContext(ctx, "guest data migrated",
		slog.String("user", userID),
		slog.Int("sessions", report.Sessions),
		slog.Int("journal", report.Journal),
	)

	return report, nil
}

func migrateSessions(
	ctx context.Context,
	db store.DB,
	r remote.Store,
	userID string,
	report *MigrationReport,
) error {
	sessions, err := db.GetSessions(time.Time{}, time.Time{})
	if err != nil {
		return err
	}

	for i := range sessions {
		sess := sessions[i]

		if sess.UserID != "" {
			continue
		}

		sess.UserID = userID

		if err := r.InsertSession(ctx, &sess); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, err)

			continue
		}

		sess.Synced = true

		if err := db.SaveSession(&sess); err != nil {
			return err
		}

		report.Sessions++
	}

	return nil
}

func migrateJournal(
	ctx context.Context,
	db store.DB,
	r remote.Store,
	userID string,
	report *MigrationReport,
) error {
	entries, err := db.GetJournal(time.Time{}, time.Time{})
	if err != nil {
		return err
	}

	for i := range entries {
		entry := entries[i]

		if entry.UserID != "" {
			continue
		}

		entry.UserID = userID

		if err := r.InsertJournal(ctx, &entry); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, err)

			continue
		}

		entry.Synced = true

		if err := db.SaveJournal(&entry); err != nil {
			return err
		}

		report.Journal++
	}

	return nil
}

// stampActive assigns a session started in guest mode to the user.
func stampActive(db store.DB, userID string) error {
	active, err := db.GetActive()
	if err != nil || active == nil || active.UserID != "" {
		return err
	}

	active.UserID = userID

	return db.SaveActive(active)
}

// HasGuestData reports whether any local record still belongs to no one.
func HasGuestData(db store.DB) (bool, error) {
	sessions, err := db.GetSessions(time.Time{}, time.Time{})
	if err != nil {
		return false, err
	}

	for i := range sessions {
		if sessions[i].UserID == "" {
			return true, nil
		}
	}

	entries, err := db.GetJournal(time.Time{}, time.Time{})
	if err != nil {
		return false, err
	}

	for i := range entries {
		if entries[i].UserID == "" {
			return true, nil
		}
	}

	return false, nil
}
