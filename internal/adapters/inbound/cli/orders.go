package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/happyshop/happyshop/internal/adapters/outbound/orderlog"
	"github.com/happyshop/happyshop/internal/adapters/outbound/tui"
)

func newOrdersCmd(flags *globalFlags) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Show confirmed orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			orders, err := orderlog.New(cfg.OrderLog).Load()
			if err != nil {
				return fmt.Errorf("loading orders: %w", err)
			}
			if jsonOutput {
				return renderJSON(cmd, orders)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderOrders(orders, cfg.Currency))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output orders as JSON")

	return cmd
}
