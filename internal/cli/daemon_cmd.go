package cli

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deskpet-io/deskpet/internal/config"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Manage the deskpet host",
	Long:  `Manage the deskpetd host process that owns the pet window.`,
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	RunE:  runDaemonStatus,
}

var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the daemon",
	RunE:  runDaemonStart,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the daemon",
	RunE:  runDaemonStop,
}

func init() {
	daemonCmd.AddCommand(daemonStartCmd)
	daemonCmd.AddCommand(daemonStatusCmd)
	daemonCmd.AddCommand(daemonStopCmd)
}

func runDaemonStart(cmd *cobra.Command, args []string) error {
	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if running && info != nil {
		fmt.Printf("Daemon is already running (PID %d, port %d).\n", info.PID, info.Port)
		return nil
	}

	// Clean up stale daemon info if it exists
	if info != nil {
		_ = config.RemoveDaemonInfo()
	}

	fmt.Print("Starting daemon...")
	info, err = startDaemon()
	if err != nil {
		fmt.Println()
		return err
	}

	fmt.Printf(" started (PID %d, port %d).\n", info.PID, info.Port)
	return nil
}

func runDaemonStatus(cmd *cobra.Command, args []string) error {
	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return err
	}

	if !running || info == nil {
		fmt.Println("Daemon is not running.")
		return nil
	}

	uptime := time.Since(info.StartedAt).Truncate(time.Second)

	fmt.Println(styleSuccess.Render("Daemon is running."))
	printField("Host", info.Host)
	printField("Port", fmt.Sprint(info.Port))
	if info.WebPort > 0 {
		printField("Web port", fmt.Sprint(info.WebPort))
	}
	printField("PID", fmt.Sprint(info.PID))
	printField("Uptime", uptime.String())

	// Version and window come from the host itself.
	client, conn, err := dialDaemon(info, clientOrigin)
	if err != nil {
		return nil
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	status, err := client.Status(ctx)
	if err != nil {
		fmt.Println(styleWarning.Render("\nHost is not answering: ") + styleHint.Render(err.Error()))
		return nil
	}
	printField("Version", status.Version)

	window, err := client.Window(ctx)
	if err != nil {
		return nil
	}
	fmt.Println()
	printField("Window", fmt.Sprintf("(%d, %d) %dx%d", window.X, window.Y, window.Width, window.Height))
	printField("Screen", fmt.Sprintf("%dx%d", window.ScreenWidth, window.ScreenHeight))
	printField("Visible", yesNo(window.Visible))
	printField("On top", yesNo(window.AlwaysOnTop))
	return nil
}

func runDaemonStop(cmd *cobra.Command, args []string) error {
	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if !running || info == nil {
		fmt.Println("Daemon is not running.")
		return nil
	}

	// Try a Quit request first; fall back to SIGTERM.
	if err := requestQuit(); err == nil && waitForDaemonExit(3*time.Second) {
		fmt.Println("Daemon stopped.")
		return nil
	}

	// Send SIGTERM to the daemon process
	process, err := os.FindProcess(info.PID)
	if err != nil {
		return fmt.Errorf("failed to find daemon process: %w", err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to send stop signal: %w", err)
	}

	if waitForDaemonExit(5 * time.Second) {
		fmt.Println("Daemon stopped.")
		return nil
	}

	return fmt.Errorf("daemon did not stop within timeout")
}

func requestQuit() error {
	client, conn, err := connectDaemon()
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return client.Quit(ctx)
}

func printField(label, value string) {
	fmt.Printf("  %s %s\n", styleLabel.Render(fmt.Sprintf("%-15s", label+":")), styleValue.Render(value))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
