// Command maki discovers, picks, and runs Makefile targets.
package main

import (
	"os"

	"github.com/maki-build/maki/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
