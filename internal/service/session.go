package service

import (
	"context"

	"go.uber.org/zap"

	"eldercare/internal/model"
	"eldercare/internal/repository"
)

// SessionManager exposes the session lifecycle to the routing/guard layer.
// The lifecycle has two states: unauthenticated and authenticated. A
// successful Authenticate moves forward; Logout or an invalid persisted
// record moves back.
type SessionManager struct {
	sessions repository.SessionStore
	logger   *zap.Logger
}

// NewSessionManager constructs a SessionManager.
func NewSessionManager(sessions repository.SessionStore, logger *zap.Logger) *SessionManager {
	return &SessionManager{sessions: sessions, logger: logger}
}

// Current returns the persisted session, or nil when none is valid.
func (m *SessionManager) Current(ctx context.Context) (*model.Session, error) {
	return m.sessions.Get(ctx)
}

// Logout removes the persisted session.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.logger.Info("session cleared")
	return m.sessions.Clear(ctx)
}

// HasPermission is the predicate consumed by route guards: true iff the
// session is non-nil and grants the tag. A nil session never grants access.
func HasPermission(s *model.Session, tag model.Permission) bool {
	return s.HasPermission(tag)
}
