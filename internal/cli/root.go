// Package cli implements the deskpet CLI commands.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "deskpet",
	Short: "A small pet that lives on your desktop",
	Long: `Deskpet runs a pet in a window owned by the deskpetd host.
The pet wanders around the screen on its own, greets you when clicked and
can be dragged anywhere. Run "deskpet run" to open it in the terminal.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add subcommands (alphabetical)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(hideCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(quitCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(versionCmd)
}
