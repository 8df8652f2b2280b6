package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hireboard/job-portal/internal/api"
	"github.com/hireboard/job-portal/internal/core/ports"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the mock backend over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.serve(cmd.Context())
		},
	}
}

func (c *cli) serve(ctx context.Context) error {
	if c.cfg.BackendURL != "" {
		return errors.New("serve hosts the backend itself; unset BACKEND_URL")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := newBackend(c.cfg, c.log)
	if err != nil {
		return err
	}

	health := map[string]ports.Pinger{}
	store, closeStore, err := openStore(ctx, c.cfg)
	if err != nil {
		return err
	}
	if closeStore != nil {
		defer func() { _ = closeStore() }()
	}
	if p, ok := store.(ports.Pinger); ok {
		health["session_store"] = p
	}

	e := api.NewRouter(api.Deps{
		Backend: backend,
		Health:  health,
		Logger:  c.log.With().Str("component", "http").Logger(),
	})

	errCh := make(chan error, 1)
	go func() {
		c.log.Info().Str("port", c.cfg.Port).Msg("starting HTTP server")
		errCh <- e.Start(":" + c.cfg.Port)
	}()

	select {
	case <-ctx.Done():
		c.log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
