package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/leadhub/internal/db/migrations"
	"github.com/dmitrymomot/leadhub/pkg/config"
	"github.com/dmitrymomot/leadhub/pkg/pg"
)

var ErrMissingFlag = errors.New("missing required flag")

// openDB connects with the PostgreSQL settings alone, so database commands
// do not need the server configuration.
func openDB(ctx context.Context) (*pgxpool.Pool, pg.Config, error) {
	var cfg pg.Config
	if err := config.Load(&cfg); err != nil {
		return nil, cfg, err
	}
	pool, err := pg.Connect(ctx, cfg)
	if err != nil {
		return nil, cfg, err
	}
	return pool, cfg, nil
}

func newMigrateCommand() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}

	step := func(use, short string, fn func(context.Context, *pgxpool.Pool, pg.Config, *cobra.Command) error) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				pool, cfg, err := openDB(cmd.Context())
				if err != nil {
					return err
				}
				defer pool.Close()
				return fn(cmd.Context(), pool, cfg, cmd)
			},
		}
	}

	migrate.AddCommand(
		step("up", "Apply all pending migrations", func(ctx context.Context, pool *pgxpool.Pool, cfg pg.Config, cmd *cobra.Command) error {
			return pg.Migrate(ctx, pool, migrations.FS, cfg, loggerFrom(cmd))
		}),
		step("down", "Roll back the latest migration", func(ctx context.Context, pool *pgxpool.Pool, cfg pg.Config, cmd *cobra.Command) error {
			return pg.Rollback(ctx, pool, migrations.FS, cfg, loggerFrom(cmd))
		}),
		step("status", "Print migration status", func(ctx context.Context, pool *pgxpool.Pool, cfg pg.Config, cmd *cobra.Command) error {
			return pg.MigrationStatus(ctx, pool, migrations.FS, cfg, loggerFrom(cmd))
		}),
	)
	return migrate
}

func requireFlag(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: --%s", ErrMissingFlag, name)
	}
	return nil
}
