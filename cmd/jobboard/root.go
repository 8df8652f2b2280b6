package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"github.com/hireboard/job-portal/internal/pkg/config"
	"github.com/hireboard/job-portal/pkg/logger"
)

// cli is the state shared by every subcommand.
type cli struct {
	cfg    *config.Config
	log    zerolog.Logger
	output string
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "jobboard",
		Short:         "Job board",
		Long:          `Serve the mock job board API, or log in and manage job postings from the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&c.output, "output", "o", formatTable, "output format: table, json or yaml")

	root.AddCommand(
		newServeCmd(c),
		newLoginCmd(c),
		newLogoutCmd(c),
		newWhoamiCmd(c),
		newJobsCmd(c),
		newUsersCmd(c),
		newCompaniesCmd(c),
		newNavigateCmd(c),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	switch c.output {
	case formatTable, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown output format %q", c.output)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.LoadWith(cmd.Context(), envconfig.OsLookuper())
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.log = logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "jobboard",
	})
	return nil
}
