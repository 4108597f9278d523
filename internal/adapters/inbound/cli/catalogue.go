package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/happyshop/happyshop/internal/adapters/outbound/config"
	"github.com/happyshop/happyshop/internal/adapters/outbound/tui"
)

func newCatalogueCmd(flags *globalFlags) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "catalogue",
		Aliases: []string{"catalog"},
		Short:   "List every product in the store",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openShop(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			products, err := s.store.Search(cmd.Context(), "")
			if err != nil {
				return fmt.Errorf("listing catalogue: %w", err)
			}
			if jsonOutput {
				return renderJSON(cmd, products)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderProducts(products, s.cfg.Currency))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output products as JSON")
	cmd.AddCommand(newCatalogueSeedCmd(flags))

	return cmd
}

func newCatalogueSeedCmd(flags *globalFlags) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the catalogue file into the configured store",
		Long:  "Upsert every product of the catalogue file (or the built-in catalogue) into the configured store.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openShop(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			path := s.cfg.Catalogue
			if file != "" {
				path = file
			}
			products, err := config.LoadCatalogue(path)
			if err != nil {
				return err
			}
			if err := s.store.Seed(cmd.Context(), products); err != nil {
				return fmt.Errorf("seeding %s store: %w", s.cfg.Store.Driver, err)
			}
			s.logger.Info("catalogue seeded", "driver", s.cfg.Store.Driver, "products", len(products))
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d products into the %s store\n", len(products), s.cfg.Store.Driver)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Catalogue file (defaults to the configured catalogue)")

	return cmd
}
