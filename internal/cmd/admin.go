package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/leadhub/internal/db/repository"
	"github.com/dmitrymomot/leadhub/svc/auth"
)

func newCreateAdminCommand() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Grant the admin role to a registered user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag("email", email); err != nil {
				return err
			}

			pool, _, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			svc := auth.NewService(repository.NewAccounts(pool), auth.WithLogger(loggerFrom(cmd)))
			user, created, err := svc.CreateAdminByEmail(cmd.Context(), email)
			if err != nil {
				return err
			}

			status := "granted"
			if !created {
				status = "already granted"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "admin role %s: %s (%s)\n", status, user.Email, user.ID)
			return err
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email of the registered user")
	return cmd
}
