// Package remote persists sessions and journal entries to a SQL database
// shared across devices.
package remote

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/ayoisaiah/slumber/internal/models"
)

// Store is the remote persistence boundary.
type Store interface {
	// InsertSession records a closed session. Inserting the same session
	// twice is a no-op.
	InsertSession(ctx context.Context, sess *models.SleepSession) error
	// InsertJournal records a journal entry. Inserting the same entry twice
	// is a no-op.
	InsertJournal(ctx context.Context, entry *models.JournalEntry) error
	// ListSessions returns the sessions of a user, most recent first.
	ListSessions(ctx context.Context, userID string) ([]models.SleepSession, error)
	Close() error
}

type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
)

// rebind rewrites ? placeholders into the $n form used by Postgres.
func (d dialect) rebind(query string) string {
	if d != dialectPostgres {
		return query
	}

	var b strings.Builder

	n := 0

	for _, r := range query {
		if r != '?' {
			b.WriteRune(r)
			continue
		}

		n++

		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}

	return b.String()
}

func (d dialect) timestamp() string {
	if d == dialectPostgres {
		return "TIMESTAMPTZ"
	}

	return "TIMESTAMP"
}

// Open connects to the database named by dsn and prepares the schema.
// postgres:// and postgresql:// URLs use lib/pq; sqlite:// paths and file:
// URIs use the pure Go SQLite driver.
func Open(ctx context.Context, dsn string) (*SQLStore, error) {
	var (
		db  *sql.DB
		d   dialect
		err error
	)

	switch {
	case strings.HasPrefix(dsn, "postgres://"),
		strings.HasPrefix(dsn, "postgresql://"):
		var connector *pq.Connector

		connector, err = pq.NewConnector(dsn)
		if err != nil {
			return nil, errUnsupportedDSN.Fmt(redact(dsn)).Wrap(err)
		}

		db, d = sql.OpenDB(connector), dialectPostgres
	case strings.HasPrefix(dsn, "sqlite://"):
		db, err = sql.Open("sqlite", strings.TrimPrefix(dsn, "sqlite://"))
	case strings.HasPrefix(dsn, "file:"):
		db, err = sql.Open("sqlite", dsn)
	default:
		return nil, errUnsupportedDSN.Fmt(redact(dsn))
	}

	if err != nil {
		return nil, errConnect.Wrap(err)
	}

	if d == dialectSQLite {
		// SQLite allows one writer at a time
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errConnect.Wrap(err)
	}

	s := &SQLStore{db: db, dialect: d}

	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, errSchema.Wrap(err)
	}

	return s, nil
}

// redact hides the password of a connection URL.
func redact(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	scheme := strings.Index(dsn, "://")

	if at < 0 || scheme < 0 || at < scheme {
		return dsn
	}

	userInfo := dsn[scheme+3 : at]

	user, _, found := strings.Cut(userInfo, ":")
	if !found {
		return dsn
	}

	return dsn[:scheme+3] + user + ":xxxxx" + dsn[at:]
}
