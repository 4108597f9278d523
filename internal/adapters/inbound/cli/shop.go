package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/happyshop/happyshop/internal/adapters/outbound/tui"
)

func newShopCmd(flags *globalFlags) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Start an interactive shopping session",
		Long:  "Read commands from stdin (search, add, checkout, cancel, close, view, help, quit) and show the shop after each one.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openShop(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			session := s.newSession()
			out := cmd.OutOrStdout()
			render := func() {
				v := session.View()
				if plain {
					fmt.Fprintf(out, "image: %s\nstatus: %s\ntrolley:\n%s\nreceipt:\n%s\n", v.ImageRef, v.Status, v.Trolley, v.Receipt)
					return
				}
				fmt.Fprint(out, tui.RenderView(v))
			}

			fmt.Fprint(out, tui.RenderHelp())
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					break
				}
				c, err := parseLine(scanner.Text())
				if err != nil {
					fmt.Fprintf(out, "error: %v\n", err)
					continue
				}

				switch c.local {
				case localQuit:
					return nil
				case localHelp:
					fmt.Fprint(out, tui.RenderHelp())
					continue
				case localView:
					render()
					continue
				}
				if c.intent.Kind == 0 {
					continue
				}

				if _, err := session.Handle(cmd.Context(), c.intent); err != nil {
					fmt.Fprintf(out, "error: %v\n", err)
					continue
				}
				if len(session.Results()) > 1 && c.intent.Keyword != "" {
					fmt.Fprint(out, tui.RenderProducts(session.Results(), s.cfg.Currency))
				}
				render()
			}
			return scanner.Err()
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print the view without styling")

	return cmd
}
