package main

import (
	"os"

	"github.com/custodia-labs/threatfeed-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		// cobra already printed the error; exit non-zero.
		os.Exit(1)
	}
}
