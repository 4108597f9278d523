package cli

import (
	mcpadapter "github.com/happyshop/happyshop/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the HappyShop MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(flags))
	return cmd
}

func newMCPServeCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HappyShop MCP server (stdio)",
		Long:  "Start the HappyShop MCP server using stdio transport. One shopping session is shared by every tool call.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openShop(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			srv := mcpadapter.NewHappyShopMCPServer(s.newSession(), s.orders, s.logger)
			return server.ServeStdio(srv)
		},
	}

	return cmd
}
