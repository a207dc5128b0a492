// Package store connects to the local data store and manages sessions,
// alarms, journal entries and the sync outbox.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/slumber/internal/models"
	"github.com/ayoisaiah/slumber/internal/timeutil"
)

const (
	sessionBucket = "sessions"
	activeBucket  = "active"
	alarmBucket   = "alarm"
	journalBucket = "journal"
	outboxBucket  = "outbox"
	kvBucket      = "kv"
)

var (
	activeKey = []byte("session")
	alarmKey  = []byte("alarm")
)

var buckets = []string{
	sessionBucket,
	activeBucket,
	alarmBucket,
	journalBucket,
	outboxBucket,
	kvBucket,
}

var (
	ErrSlumberRunning = errors.New(
		"is Slumber already running? Only one instance can be active at a time",
	)
	errSessionNotFound = errors.New("session not found")
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
	path string
}

func putJSON(tx *bolt.Tx, bucket string, key []byte, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return tx.Bucket([]byte(bucket)).Put(key, value)
}

func (c *Client) SaveSession(sess *models.SleepSession) error {
	return c.Update(func(tx *bolt.Tx) error {
		return putJSON(tx, sessionBucket, timeutil.ToKey(sess.StartTime), sess)
	})
}

func (c *Client) CommitSession(sess *models.SleepSession) error {
	return c.Update(func(tx *bolt.Tx) error {
		err := putJSON(tx, sessionBucket, timeutil.ToKey(sess.StartTime), sess)
		if err != nil {
			return err
		}

		return tx.Bucket([]byte(activeBucket)).Delete(activeKey)
	})
}

func (c *Client) GetSession(startTime time.Time) (*models.SleepSession, error) {
	var sess *models.SleepSession

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(sessionBucket)).Get(timeutil.ToKey(startTime))
		if len(b) == 0 {
			return errSessionNotFound
		}

		sess = &models.SleepSession{}

		return json.Unmarshal(b, sess)
	})

	return sess, err
}

// scanRange walks the keys of a time-keyed bucket between start and end and
// hands every value to fn.
func (c *Client) scanRange(
	bucket string,
	startTime, endTime time.Time,
	fn func(v []byte) error,
) error {
	return c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(bucket)).Cursor()

		minKey := timeutil.ToKey(startTime)

		var maxKey []byte
		if !endTime.IsZero() {
			maxKey = timeutil.ToKey(endTime)
		}

		for k, v := cur.Seek(minKey); k != nil; k, v = cur.Next() {
			if maxKey != nil && bytes.Compare(k, maxKey) > 0 {
				break
			}

			if err := fn(v); err != nil {
				return err
			}
		}

		return nil
	})
}

func (c *Client) GetSessions(
	startTime, endTime time.Time,
) ([]models.SleepSession, error) {
	var sessions []models.SleepSession

	err := c.scanRange(sessionBucket, startTime, endTime, func(v []byte) error {
		var sess models.SleepSession
		if err := json.Unmarshal(v, &sess); err != nil {
			return err
		}

		sessions = append(sessions, sess)

		return nil
	})

	return sessions, err
}

func (c *Client) SaveActive(sess *models.SleepSession) error {
	return c.Update(func(tx *bolt.Tx) error {
		return putJSON(tx, activeBucket, activeKey, sess)
	})
}

func (c *Client) GetActive() (*models.SleepSession, error) {
	var sess *models.SleepSession

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(activeBucket)).Get(activeKey)
		if len(b) == 0 {
			return nil
		}

		sess = &models.SleepSession{}

		return json.Unmarshal(b, sess)
	})

	return sess, err
}

func (c *Client) DeleteActive() error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(activeBucket)).Delete(activeKey)
	})
}

func (c *Client) SaveAlarm(cfg *models.AlarmConfig) error {
	return c.Update(func(tx *bolt.Tx) error {
		return putJSON(tx, alarmBucket, alarmKey, cfg)
	})
}

func (c *Client) GetAlarm() (*models.AlarmConfig, error) {
	var cfg *models.AlarmConfig

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(alarmBucket)).Get(alarmKey)
		if len(b) == 0 {
			return nil
		}

		cfg = &models.AlarmConfig{}

		return json.Unmarshal(b, cfg)
	})

	return cfg, err
}

func (c *Client) DeleteAlarm() error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(alarmBucket)).Delete(alarmKey)
	})
}

func (c *Client) SaveJournal(entry *models.JournalEntry) error {
	key := append(timeutil.ToKey(entry.CreatedAt), []byte(entry.ID)...)

	return c.Update(func(tx *bolt.Tx) error {
		return putJSON(tx, journalBucket, key, entry)
	})
}

func (c *Client) GetJournal(
	startTime, endTime time.Time,
) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(journalBucket)).Cursor()

		minKey := timeutil.ToKey(startTime)

		for k, v := cur.Seek(minKey); k != nil; k, v = cur.Next() {
			var entry models.JournalEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return err
			}

			// keys carry the entry id after the timestamp
			if !endTime.IsZero() && entry.CreatedAt.After(endTime) {
				break
			}

			entries = append(entries, entry)
		}

		return nil
	})

	return entries, err
}

func (c *Client) Enqueue(item *models.OutboxItem) error {
	return c.Update(func(tx *bolt.Tx) error {
		return putJSON(tx, outboxBucket, []byte(item.Key()), item)
	})
}

func (c *Client) Pending() ([]models.OutboxItem, error) {
	var items []models.OutboxItem

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(outboxBucket)).ForEach(func(_, v []byte) error {
			var item models.OutboxItem
			if err := json.Unmarshal(v, &item); err != nil {
				return err
			}

			items = append(items, item)

			return nil
		})
	})

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].QueuedAt.Before(items[j].QueuedAt)
	})

	return items, err
}

func (c *Client) Dequeue(key string) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(outboxBucket)).Delete([]byte(key))
	})
}

func (c *Client) Get(key string) (string, error) {
	var value string

	err := c.View(func(tx *bolt.Tx) error {
		value = string(tx.Bucket([]byte(kvBucket)).Get([]byte(key)))
		return nil
	})

	return value, err
}

func (c *Client) Set(key, value string) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(kvBucket)).Put([]byte(key), []byte(value))
	})
}

func (c *Client) Open() error {
	db, err := openDB(c.path)
	if err != nil {
		return err
	}

	c.DB = db

	return nil
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		// the file lock is held by another process
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, ErrSlumberRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Client{
		DB:   db,
		path: dbPath,
	}, nil
}
