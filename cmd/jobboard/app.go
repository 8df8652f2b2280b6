package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hireboard/job-portal/internal/core/navigation"
	"github.com/hireboard/job-portal/internal/core/ports"
	"github.com/hireboard/job-portal/internal/core/service"
	"github.com/hireboard/job-portal/internal/core/session"
	dbmongo "github.com/hireboard/job-portal/internal/infrastructure/db/mongo"
	dbredis "github.com/hireboard/job-portal/internal/infrastructure/db/redis"
	"github.com/hireboard/job-portal/internal/infrastructure/mockapi"
	"github.com/hireboard/job-portal/internal/infrastructure/remote"
	"github.com/hireboard/job-portal/internal/infrastructure/sessionstore"
	"github.com/hireboard/job-portal/internal/pkg/config"
)

// app is one wired session: transport, facade, session manager and guard.
type app struct {
	jobs      *service.JobService
	companies *service.CompanyService
	session   *session.Manager
	guard     *navigation.Guard

	closers []func() error
}

func newBackend(cfg *config.Config, log zerolog.Logger) (*mockapi.Backend, error) {
	return mockapi.New(mockapi.Options{
		Latency:     cfg.Mock.Latency,
		BcryptCost:  cfg.Mock.BcryptCost,
		TokenSecret: cfg.Mock.TokenSecret,
		Seed:        cfg.Mock.Seed,
	}, log.With().Str("component", "mockapi").Logger())
}

// openStore connects the configured session store. The returned closer may be nil.
func openStore(ctx context.Context, cfg *config.Config) (ports.SessionStore, func() error, error) {
	switch cfg.Session.Store {
	case config.StoreMemory:
		return sessionstore.NewMemory(), nil, nil
	case config.StoreRedis:
		client, err := dbredis.Connect(ctx, dbredis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, nil, err
		}
		return sessionstore.NewRedis(client, cfg.Session.Key), client.Close, nil
	case config.StoreMongo:
		conn, err := dbmongo.Connect(ctx, dbmongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, err
		}
		return sessionstore.NewMongo(conn.Database, cfg.Session.Key), conn.Close, nil
	case config.StoreFile:
		path := cfg.Session.File
		if path == "" {
			path = sessionstore.DefaultFilePath()
		}
		return sessionstore.NewFile(path), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}

// openApp wires the session core and restores any persisted session.
func openApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app, error) {
	var transport ports.Transport
	if cfg.BackendURL != "" {
		transport = remote.NewClient(cfg.BackendURL, nil, log.With().Str("component", "remote").Logger())
	} else {
		backend, err := newBackend(cfg, log)
		if err != nil {
			return nil, err
		}
		transport = backend
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	a := &app{
		jobs:      service.NewJobService(transport),
		companies: service.NewCompanyService(transport),
	}
	if closeStore != nil {
		a.closers = append(a.closers, closeStore)
	}

	a.session = session.New(session.Deps{
		Jobs:   a.jobs,
		Auth:   service.NewAuthService(transport),
		Users:  service.NewUserService(transport),
		Store:  store,
		Logger: log.With().Str("component", "session").Logger(),
	})

	routes, err := navigation.DefaultTable()
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.guard = navigation.NewGuard(routes, a.session, log.With().Str("component", "navigation").Logger())

	if err := a.session.Init(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) Close() error {
	if a.session != nil {
		a.session.Dispose()
	}
	var errs []error
	for _, closeFn := range a.closers {
		errs = append(errs, closeFn())
	}
	return errors.Join(errs...)
}

// withApp opens an app for the duration of fn.
func (c *cli) withApp(ctx context.Context, fn func(*app) error) error {
	a, err := openApp(ctx, c.cfg, c.log)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			c.log.Warn().Err(err).Msg("close")
		}
	}()
	return fn(a)
}
