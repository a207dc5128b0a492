// Package models holds the records Slumber stores locally and remotely.
package models

import (
	"encoding/json"
	"time"
)

// State is the lifecycle position of a sleep session.
type State string

const (
	StateNone   State = "NONE"
	StateActive State = "ACTIVE"
	StateClosed State = "CLOSED"
)

// SleepSession is one night (or nap) from going to bed until waking up.
type SleepSession struct {
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	AlarmTime            time.Time `json:"alarm_time"`
	ID                   string    `json:"id"`
	UserID               string    `json:"user_id,omitempty"`
	Sound                string    `json:"sound,omitempty"`
	Notes                string    `json:"notes,omitempty"`
	DurationMinutes      int       `json:"duration_minutes"`
	WakeUps              int       `json:"wake_ups"`
	Quality              int       `json:"quality"`
	SleepSoundsEnabled   bool      `json:"sleep_sounds_enabled"`
	SmartAlarmEnabled    bool      `json:"smart_alarm_enabled"`
	SleepRecorderEnabled bool      `json:"sleep_recorder_enabled"`
	Synced               bool      `json:"synced"`
}

// State reports where the session is in its lifecycle. A nil session is in
// StateNone.
func (s *SleepSession) State() State {
	switch {
	case s == nil:
		return StateNone
	case s.EndTime.IsZero():
		return StateActive
	default:
		return StateClosed
	}
}

// Duration returns the length of a closed session, or the time slept so far
// for an active one.
func (s *SleepSession) Duration(now time.Time) time.Duration {
	end := s.EndTime
	if end.IsZero() {
		end = now
	}

	if end.Before(s.StartTime) {
		return 0
	}

	return end.Sub(s.StartTime)
}

// AlarmConfig describes the wake-up alarm of the active session. It only
// lives as long as that session does.
type AlarmConfig struct {
	AlarmTime  time.Time `json:"alarm_time"`
	Trigger    time.Time `json:"trigger"`
	SessionID  string    `json:"session_id"`
	Handle     string    `json:"handle"`
	SmartAlarm bool      `json:"smart_alarm"`
}

// JournalEntry is a free-form note about the user's sleep.
type JournalEntry struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	Text      string    `json:"text"`
	Mood      int       `json:"mood"`
	Synced    bool      `json:"synced"`
}

// OutboxKind identifies the record type held by an outbox item.
type OutboxKind string

const (
	OutboxSession OutboxKind = "session"
	OutboxJournal OutboxKind = "journal"
)

// OutboxItem is a record that could not be written to the remote store and
// is waiting for the next sync.
type OutboxItem struct {
	QueuedAt  time.Time       `json:"queued_at"`
	Kind      OutboxKind      `json:"kind"`
	ID        string          `json:"id"`
	LastError string          `json:"last_error,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	Attempts  int             `json:"attempts"`
}

// Key returns the outbox key of the item.
func (o *OutboxItem) Key() string {
	return string(o.Kind) + ":" + o.ID
}
