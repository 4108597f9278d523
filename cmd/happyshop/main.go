package main

import (
	"fmt"
	"os"

	"github.com/happyshop/happyshop/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "happyshop:", err)
		os.Exit(1)
	}
}
