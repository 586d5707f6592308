package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/leadhub/internal/app"
	"github.com/dmitrymomot/leadhub/pkg/config"
	"github.com/dmitrymomot/leadhub/pkg/logger"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := loggerFrom(cmd)

			var cfg app.Config
			if err := config.Load(&cfg); err != nil {
				return err
			}

			a, err := app.New(cmd.Context(), cfg, log)
			if err != nil {
				log.ErrorContext(cmd.Context(), "failed to start", logger.Error(err))
				return err
			}
			defer a.Close()

			return a.Run(cmd.Context())
		},
	}
}
