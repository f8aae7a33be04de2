// Package main is the entry point for the deskpetd host process.
package main

import (
	"os"

	"github.com/deskpet-io/deskpet/internal/daemon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
