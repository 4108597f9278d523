package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/happyshop/happyshop/internal/adapters/outbound/tui"
	"github.com/happyshop/happyshop/internal/domain"
)

func newSearchCmd(flags *globalFlags) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search products by id or description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := strings.TrimSpace(strings.Join(args, " "))
			if keyword == "" {
				return fmt.Errorf("%s", domain.NoticeEmptyKeyword)
			}

			s, err := openShop(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			products, err := s.store.Search(cmd.Context(), keyword)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			if jsonOutput {
				return renderJSON(cmd, products)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderProducts(products, s.cfg.Currency))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output products as JSON")

	return cmd
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
