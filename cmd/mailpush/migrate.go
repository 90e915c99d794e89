package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailpush/core/config"
	"github.com/dmitrymomot/mailpush/core/logger"
	"github.com/dmitrymomot/mailpush/core/mail/pgstore"
	"github.com/dmitrymomot/mailpush/integration/database/pg"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending PostgreSQL migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg pg.Config
			if err := config.Load(&cfg); err != nil {
				return err
			}
			if !cfg.Enabled() {
				return errors.New("PG_CONN_URL is not set")
			}

			ctx := cmd.Context()
			pool, err := pg.Connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			return pg.Migrate(ctx, pool, cfg, pgstore.Migrations(), logger.New(logger.WithOutput(cmd.ErrOrStderr())))
		},
	}
}
