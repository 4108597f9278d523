package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	verbose    bool
	trace      bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "happyshop",
		Short: "Search, fill a trolley, check out",
		Long:  "HappyShop is a point-of-sale shopping flow: search the catalogue, collect items in a trolley and check out against a shared inventory store.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Config file (default ./.happyshop.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log at debug level")
	cmd.PersistentFlags().BoolVar(&flags.trace, "trace", false, "Print checkout trace spans to stderr")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newShopCmd(flags))
	cmd.AddCommand(newSearchCmd(flags))
	cmd.AddCommand(newCatalogueCmd(flags))
	cmd.AddCommand(newOrdersCmd(flags))
	cmd.AddCommand(newMCPCmd(flags))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
