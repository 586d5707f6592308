// Package cmd implements the leadhub command line.
package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/leadhub/internal/app"
	"github.com/dmitrymomot/leadhub/pkg/config"
	"github.com/dmitrymomot/leadhub/pkg/logger"
)

// BuildInfo is set by the main package from ldflags.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

type loggerKey struct{}

// NewRootCommand builds the command tree. Configuration comes from the
// environment and an optional .env file.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "leadhub",
		Short:         "B2B marketplace connecting buyers with manufacturers",
		Version:       info.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var cfg app.LogConfig
			if err := config.Load(&cfg); err != nil {
				return err
			}
			if verbose {
				cfg.Level = "debug"
			}
			log := app.NewLogger(cfg).With(
				slog.String("version", info.Version),
				slog.String("commit", info.Commit),
				slog.String("build_date", info.BuildDate),
			)
			logger.SetAsDefault(log)
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, log))
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newSeedCommand(),
		newCreateAdminCommand(),
	)
	return root
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context, info BuildInfo) error {
	return NewRootCommand(info).ExecuteContext(ctx)
}

func loggerFrom(cmd *cobra.Command) *slog.Logger {
	if log, ok := cmd.Context().Value(loggerKey{}).(*slog.Logger); ok {
		return log
	}
	return slog.New(slog.DiscardHandler)
}
