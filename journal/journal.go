// Package journal keeps free-form notes about the user's sleep.
package journal

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ayoisaiah/slumber/internal/apperr"
	"github.com/ayoisaiah/slumber/internal/models"
	"github.com/ayoisaiah/slumber/store"
	"github.com/ayoisaiah/slumber/syncer"
)

const (
	MinMood      = 1
	MaxMood      = 5
	MaxTextChars = 2000
)

var (
	errEmptyText = &apperr.Error{
		Message: "a journal entry cannot be empty",
		Code:    apperr.CodeValidation,
	}

	errTextTooLong = &apperr.Error{
		Message: "a journal entry must be at most %d characters, got %d",
		Code:    apperr.CodeValidation,
	}

	errInvalidMood = &apperr.Error{
		Message: "mood must be between %d and %d, got %d",
		Code:    apperr.CodeValidation,
	}
)

// Moods names each mood score.
var Moods = map[int]string{
	1: "awful",
	2: "bad",
	3: "okay",
	4: "good",
	5: "great",
}

// Book stores journal entries locally and pushes them to the remote store.
type Book struct {
	db     store.DB
	syncer *syncer.Syncer
	now    func() time.Time
	userID string
}

// New returns a Book writing entries for userID (empty in guest mode).
func New(db store.DB, s *syncer.Syncer, userID string) *Book {
	return &Book{
		db:     db,
		syncer: s,
		now:    time.Now,
		userID: userID,
	}
}

// Validate checks an entry before it is stored.
func Validate(text string, mood int) error {
	if strings.TrimSpace(text) == "" {
		return errEmptyText
	}

	if n := utf8.RuneCountInString(text); n > MaxTextChars {
		return errTextTooLong.Fmt(MaxTextChars, n)
	}

	if mood < MinMood || mood > MaxMood {
		return errInvalidMood.Fmt(MinMood, MaxMood, mood)
	}

	return nil
}

// Add records an entry. sessionID links it to a session and may be empty.
// A failed upload leaves the entry queued for the next sync and is not
// returned as an error.
func (b *Book) Add(
	ctx context.Context,
	text string,
	mood int,
	sessionID string,
) (*models.JournalEntry, error) {
	text = strings.TrimSpace(text)

	if err := Validate(text, mood); err != nil {
		return nil, err
	}

	entry := &models.JournalEntry{
		ID:        uuid.NewString(),
		UserID:    b.userID,
		SessionID: sessionID,
		CreatedAt: b.now(),
		Text:      text,
		Mood:      mood,
	}

	if err := b.db.SaveJournal(entry); err != nil {
		return nil, err
	}

	if err := b.syncer.PushJournal(ctx, entry); err != nil {
		slog.WarnContext(ctx, "journal entry kept locally", slog.Any("error", err))
	}

	return entry, nil
}

// List returns the entries created within the bounds, most recent first.
func (b *Book) List(start, end time.Time) ([]models.JournalEntry, error) {
	entries, err := b.db.GetJournal(start, end)
	if err != nil {
		return nil, err
	}

	slices.Reverse(entries)

	return entries, nil
}
