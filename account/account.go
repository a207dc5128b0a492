// Package account signs users in to a remote database and moves the
// records they created as a guest over to their account.
package account

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/ayoisaiah/slumber/internal/config"
	"github.com/ayoisaiah/slumber/store"
)

const (
	service = "slumber"
	userKey = "account:user"
)

// Account is a signed-in user.
type Account struct {
	UserID string
	DSN    string
}

// Login stores the connection string in the OS keyring and remembers the
// user as the current one.
func Login(_ context.Context, db store.DB, userID, dsn string) (*Account, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errEmptyUser
	}

	if !config.ValidDSN(dsn) {
		return nil, errInvalidDSN
	}

	if err := keyring.Set(service, userID, dsn); err != nil {
		return nil, errKeyring.Wrap(err)
	}

	if err := db.Set(userKey, userID); err != nil {
		return nil, err
	}

	slog.Info("logged in", slog.String("user", userID))

	return &Account{UserID: userID, DSN: dsn}, nil
}

// Logout forgets the current user and their credentials. Records stay on
// this device.
func Logout(_ context.Context, db store.DB) error {
	userID, err := db.Get(userKey)
	if err != nil {
		return err
	}

	if userID == "" {
		return nil
	}

	err = keyring.Delete(service, userID)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return errKeyring.Wrap(err)
	}

	return db.Set(userKey, "")
}

// Current returns the signed-in account, or nil in guest mode.
func Current(db store.DB) (*Account, error) {
	userID, err := db.Get(userKey)
	if err != nil {
		return nil, err
	}

	if userID == "" {
		return nil, nil
	}

	dsn, err := keyring.Get(service, userID)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, errCredentialsMissing.Fmt(userID)
	}

	if err != nil {
		return nil, errKeyring.Wrap(err)
	}

	return &Account{UserID: userID, DSN: dsn}, nil
}
