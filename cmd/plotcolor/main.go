// Command plotcolor converts colors and renders colormaps from the command line.
package main

import (
	"os"

	"github.com/soma-tiles/plotcolor/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
