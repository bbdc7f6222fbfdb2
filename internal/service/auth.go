// Package service contains application services for authentication and sessions.
package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"eldercare/internal/derive"
	"eldercare/internal/errs"
	"eldercare/internal/model"
	"eldercare/internal/repository"
)

// unknownUsername labels audit entries for attempts whose username
// normalizes to nothing.
const unknownUsername = "unknown"

// AuthService defines authentication and bootstrap operations.
type AuthService interface {
	// Authenticate validates credentials, persists a session on success and
	// records the attempt in the audit log either way. A non-matching
	// attempt returns errs.ErrInvalidCredentials; any other error is a
	// storage failure.
	Authenticate(ctx context.Context, username, password string) (*model.Session, error)
	// CreateUser saves the identity profile and upserts the derived user,
	// returning the generated credentials for display. The caller is
	// responsible for ensuring elder name and birth date are non-empty.
	CreateUser(ctx context.Context, p model.Profile) (model.Credentials, error)
	// Bootstrap guarantees the installation is loggable-into: it
	// materializes the profile and seeds a default user when the database
	// holds none.
	Bootstrap(ctx context.Context) error
}

type AuthServiceImpl struct {
	profiles repository.ProfileStore
	users    repository.UserDatabase
	sessions repository.SessionStore
	clock    repository.Clock
	logger   *zap.Logger
}

var _ AuthService = (*AuthServiceImpl)(nil)

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(
	profiles repository.ProfileStore,
	users repository.UserDatabase,
	sessions repository.SessionStore,
	clock repository.Clock,
	logger *zap.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		profiles: profiles,
		users:    users,
		sessions: sessions,
		clock:    clock,
		logger:   logger,
	}
}

func (s *AuthServiceImpl) Authenticate(ctx context.Context, username, password string) (*model.Session, error) {
	name := derive.NormalizeUsername(username)
	pass := derive.NormalizePassword(password)

	u, err := s.users.FindByUsername(ctx, name)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}
	if err != nil || u.Password != pass {
		audited := name
		if audited == "" {
			audited = unknownUsername
		}
		if aerr := s.users.AppendLoginEvent(ctx, audited, model.LoginFailure); aerr != nil {
			s.logger.Warn("recording failed login", zap.Error(aerr))
		}
		s.logger.Info("login rejected", zap.String("username", audited))
		return nil, errs.ErrInvalidCredentials
	}

	sess := model.Session{
		IsAuthenticated: true,
		Username:        u.Username,
		Role:            u.Role,
		Permissions:     u.Permissions,
		LoginAt:         s.clock.Now(),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	if aerr := s.users.AppendLoginEvent(ctx, u.Username, model.LoginSuccess); aerr != nil {
		s.logger.Warn("recording successful login", zap.Error(aerr))
	}
	s.logger.Info("login accepted",
		zap.String("username", u.Username),
		zap.String("role", string(u.Role)),
	)
	return &sess, nil
}

func (s *AuthServiceImpl) CreateUser(ctx context.Context, p model.Profile) (model.Credentials, error) {
	if err := s.profiles.Save(ctx, p); err != nil {
		return model.Credentials{}, err
	}
	creds, err := s.users.UpsertFromProfile(ctx, p)
	if err != nil {
		return model.Credentials{}, err
	}
	s.logger.Info("user registered", zap.String("username", creds.Username))
	return creds, nil
}

func (s *AuthServiceImpl) Bootstrap(ctx context.Context) error {
	p, err := s.profiles.Get(ctx)
	if err != nil {
		return err
	}
	return s.users.EnsureDefaultUser(ctx, p)
}
