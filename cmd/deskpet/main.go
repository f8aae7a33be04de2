// Package main is the entry point for the deskpet CLI/TUI.
package main

import (
	"os"

	"github.com/deskpet-io/deskpet/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
