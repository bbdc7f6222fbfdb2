package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"eldercare/internal/errs"
	"eldercare/internal/model"
	"eldercare/internal/repository"
	"eldercare/internal/storage"
)

// SessionStore persists the single login session of the installation.
type SessionStore struct {
	kv storage.KV
}

var _ repository.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates a SessionStore over the given store.
func NewSessionStore(kv storage.KV) *SessionStore {
	return &SessionStore{kv: kv}
}

// Get returns the current session. Missing, unreadable, or
// not-authenticated records all read as no session; a partially valid
// record is never trusted.
func (s *SessionStore) Get(ctx context.Context) (*model.Session, error) {
	raw, err := s.kv.Get(ctx, sessionKey)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var sess model.Session
	if json.Unmarshal(raw, &sess) != nil {
		return nil, nil
	}
	if !sess.IsAuthenticated {
		return nil, nil
	}
	return &sess, nil
}

func (s *SessionStore) Save(ctx context.Context, sess model.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := s.kv.Set(ctx, sessionKey, raw); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, sessionKey); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
