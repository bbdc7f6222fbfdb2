package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"eldercare/internal/config"
	"eldercare/internal/model"
	"eldercare/internal/repository"
	kvrepo "eldercare/internal/repository/kv"
	"eldercare/internal/service"
	"eldercare/internal/storage"
)

// careApp is the application layer between the CLI commands and the
// services. It constructs all dependencies from config and manages the
// store lifecycle on Close.
type careApp struct {
	store    storage.KV
	profiles repository.ProfileStore
	users    repository.UserDatabase
	auth     service.AuthService
	sessions *service.SessionManager
	logger   *zap.Logger
}

// newApp reads the config, opens the store and wires the services. It also
// seeds the default user so a fresh install is always loggable-into. The
// caller must defer app.Close().
func newApp(ctx context.Context) (*careApp, error) {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg, err := config.ReadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config (run `care init` first?): %w", err)
	}

	store, err := storage.NewFromConfig(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	logger := zap.NewNop()
	if verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			store.Close()
			return nil, err
		}
	}

	seed := model.Profile{
		ElderName:     cfg.DefaultProfile.ElderName,
		BirthDate:     cfg.DefaultProfile.BirthDate,
		CaregiverName: cfg.DefaultProfile.CaregiverName,
		Sex:           cfg.DefaultProfile.Sex,
	}
	clock := repository.RealClock{}
	profiles := kvrepo.NewProfileStore(store, seed)
	users := kvrepo.NewUserDatabase(store, clock)
	sessions := kvrepo.NewSessionStore(store)

	auth := service.NewAuthService(profiles, users, sessions, clock, logger)
	if err := auth.Bootstrap(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("bootstrapping default user: %w", err)
	}

	return &careApp{
		store:    store,
		profiles: profiles,
		users:    users,
		auth:     auth,
		sessions: service.NewSessionManager(sessions, logger),
		logger:   logger,
	}, nil
}

func (a *careApp) Close() error {
	_ = a.logger.Sync()
	return a.store.Close()
}
