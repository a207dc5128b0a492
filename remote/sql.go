package remote

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ayoisaiah/slumber/internal/models"
)

// SQLStore is a Store backed by database/sql.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
}

func (s *SQLStore) migrate(ctx context.Context) error {
	ts := s.dialect.timestamp()

	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS sleep_sessions (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	start_time %[1]s NOT NULL,
	end_time %[1]s NOT NULL,
	alarm_time %[1]s NULL,
	duration_minutes INTEGER NOT NULL,
	wake_ups INTEGER NOT NULL,
	quality INTEGER NOT NULL,
	sound TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	sleep_sounds_enabled BOOLEAN NOT NULL DEFAULT FALSE,
	smart_alarm_enabled BOOLEAN NOT NULL DEFAULT FALSE,
	sleep_recorder_enabled BOOLEAN NOT NULL DEFAULT FALSE
)`, ts),
		`CREATE INDEX IF NOT EXISTS idx_sleep_sessions_user
	ON sleep_sessions (user_id, start_time)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS journal_entries (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	session_id TEXT NOT NULL DEFAULT '',
	created_at %s NOT NULL,
	mood INTEGER NOT NULL,
	body TEXT NOT NULL
)`, ts),
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t.UTC(), Valid: !t.IsZero()}
}

func (s *SQLStore) InsertSession(
	ctx context.Context,
	sess *models.SleepSession,
) error {
	if sess.State() != models.StateClosed {
		return errSessionNotClosed
	}

	query := s.dialect.rebind(`INSERT INTO sleep_sessions (
	id, user_id, start_time, end_time, alarm_time, duration_minutes,
	wake_ups, quality, sound, notes, sleep_sounds_enabled,
	smart_alarm_enabled, sleep_recorder_enabled
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO NOTHING`)

	_, err := s.db.ExecContext(
		ctx,
		query,
		sess.ID,
		sess.UserID,
		sess.StartTime.UTC(),
		sess.EndTime.UTC(),
		nullTime(sess.AlarmTime),
		sess.DurationMinutes,
		sess.WakeUps,
		sess.Quality,
		sess.Sound,
		sess.Notes,
		sess.SleepSoundsEnabled,
		sess.SmartAlarmEnabled,
		sess.SleepRecorderEnabled,
	)
	if err != nil {
		return errInsert.Fmt("session", sess.ID).Wrap(err)
	}

	return nil
}

func (s *SQLStore) InsertJournal(
	ctx context.Context,
	entry *models.JournalEntry,
) error {
	query := s.dialect.rebind(`INSERT INTO journal_entries (
	id, user_id, session_id, created_at, mood, body
) VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO NOTHING`)

	_, err := s.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.UserID,
		entry.SessionID,
		entry.CreatedAt.UTC(),
		entry.Mood,
		entry.Text,
	)
	if err != nil {
		return errInsert.Fmt("journal entry", entry.ID).Wrap(err)
	}

	return nil
}

func (s *SQLStore) ListSessions(
	ctx context.Context,
	userID string,
) ([]models.SleepSession, error) {
	query := s.dialect.rebind(`SELECT
	id, user_id, start_time, end_time, alarm_time, duration_minutes,
	wake_ups, quality, sound, notes, sleep_sounds_enabled,
	smart_alarm_enabled, sleep_recorder_enabled
FROM sleep_sessions
WHERE user_id = ?
ORDER BY start_time DESC`)

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errQuery.Wrap(err)
	}

	defer rows.Close()

	var sessions []models.SleepSession

	for rows.Next() {
		var (
			sess  models.SleepSession
			alarm sql.NullTime
		)

		err := rows.Scan(
			&sess.ID,
			&sess.UserID,
			&sess.StartTime,
			&sess.EndTime,
			&alarm,
			&sess.DurationMinutes,
			&sess.WakeUps,
			&sess.Quality,
			&sess.Sound,
			&sess.Notes,
			&sess.SleepSoundsEnabled,
			&sess.SmartAlarmEnabled,
			&sess.SleepRecorderEnabled,
		)
		if err != nil {
			return nil, errQuery.Wrap(err)
		}

		if alarm.Valid {
			sess.AlarmTime = alarm.Time
		}

		sess.Synced = true

		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, errQuery.Wrap(err)
	}

	return sessions, nil
}

// Close ends the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
