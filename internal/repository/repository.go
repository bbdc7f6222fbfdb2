// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"
	"time"

	"eldercare/internal/model"
)

// Clock abstracts time retrieval so record timestamps are deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// ProfileStore owns the single identity profile of the installation.
type ProfileStore interface {
	// Get returns the persisted profile, reconciling from the elder-info
	// record or the configured default seed when absent. The result is
	// always fully populated (empty strings allowed).
	Get(ctx context.Context) (model.Profile, error)
	// Save persists the profile and propagates name/birth date to the
	// elder-info record if one exists.
	Save(ctx context.Context, p model.Profile) error
}

// UserDatabase owns the embedded user records and the capped login audit log.
type UserDatabase interface {
	// UpsertFromProfile derives credentials from the profile and inserts or
	// overwrites the record with that username. Returns the derived
	// credentials for display.
	UpsertFromProfile(ctx context.Context, p model.Profile) (model.Credentials, error)
	// EnsureDefaultUser seeds one user from the profile when the database
	// holds no users at all.
	EnsureDefaultUser(ctx context.Context, p model.Profile) error
	// FindByUsername loads a user by exact username; errs.ErrNotFound when
	// no record matches.
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// Users lists all records in insertion order.
	Users(ctx context.Context) ([]model.User, error)
	// AppendLoginEvent records an authentication attempt, evicting the
	// oldest entries beyond the retention cap.
	AppendLoginEvent(ctx context.Context, username string, status model.LoginStatus) error
	// LoginEvents lists retained audit entries, oldest first.
	LoginEvents(ctx context.Context) ([]model.LoginEvent, error)
}

// SessionStore owns the single persisted session record.
type SessionStore interface {
	// Get returns the current session, or (nil, nil) when the record is
	// missing, malformed, or not marked authenticated.
	Get(ctx context.Context) (*model.Session, error)
	// Save persists the session, replacing any previous one.
	Save(ctx context.Context, s model.Session) error
	// Clear removes the persisted session entirely.
	Clear(ctx context.Context) error
}
