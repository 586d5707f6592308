package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/leadhub/internal/db/repository"
	"github.com/dmitrymomot/leadhub/internal/seed"
	"github.com/dmitrymomot/leadhub/svc/catalog"
)

func newSeedCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import manufacturers and products from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag("file", file); err != nil {
				return err
			}
			log := loggerFrom(cmd)

			fh, err := os.Open(file)
			if err != nil {
				return err
			}
			defer fh.Close()

			doc, err := seed.Parse(fh)
			if err != nil {
				return err
			}

			pool, _, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			svc := catalog.NewService(repository.NewCatalog(pool), catalog.WithLogger(log))
			res, err := seed.Load(cmd.Context(), svc, doc, log)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d manufacturers, %d products\n", res.Manufacturers, res.Products)
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "seed YAML file")
	return cmd
}
