package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/deskpet-io/deskpet/internal/config"
	"github.com/deskpet-io/deskpet/internal/tui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the pet in the terminal",
	Long: `Open the pet in the terminal.

The host daemon is started if it isn't running. Closing the UI leaves the
host running; choose Quit from the pet's menu to stop both.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("deskpet run needs an interactive terminal")
	}

	info, err := EnsureDaemon()
	if err != nil {
		return err
	}

	client, conn, err := dialDaemon(info, tuiOrigin)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Fail fast with a clear message rather than inside the UI.
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	_, err = client.Status(ctx)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to reach daemon at %s: %w", info.Addr(), err)
	}

	store, err := config.OpenStorage()
	if err != nil {
		return fmt.Errorf("failed to open settings storage: %w", err)
	}
	defer store.Close()

	live, err := config.NewLiveSettings(context.Background(), store)
	if err != nil {
		return err
	}

	return tui.Run(client, live)
}
