// Package cmd implements the deskpetd command line.
package cmd

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deskpet-io/deskpet/internal/config"
	"github.com/deskpet-io/deskpet/internal/daemon/window"
	"github.com/deskpet-io/deskpet/internal/models"
)

var (
	foreground bool
	port       int
	webPort    int
	screenFlag string
	sizeFlag   string
)

var rootCmd = &cobra.Command{
	Use:           "deskpetd",
	Short:         "Deskpet host process",
	Long:          "deskpetd owns the pet window and serves the positioning service to the pet UI.",
	SilenceUsage:  true,
	SilenceErrors: false,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDaemon()
	},
}

func init() {
	rootCmd.Flags().BoolVar(&foreground, "foreground", false, "Run in foreground (no system tray)")
	rootCmd.Flags().IntVar(&port, "port", 0, "Port to listen on (0 for dynamic allocation)")
	rootCmd.Flags().IntVar(&webPort, "web-port", -1, "Port for the grpc-web bridge (0 for dynamic, -1 to disable)")
	rootCmd.Flags().StringVar(&screenFlag, "screen", fmt.Sprintf("%dx%d", models.DefaultScreenWidth, models.DefaultScreenHeight), "Screen size as WIDTHxHEIGHT")
	rootCmd.Flags().StringVar(&sizeFlag, "size", fmt.Sprintf("%dx%d", models.DefaultWindowWidth, models.DefaultWindowHeight), "Pet window size as WIDTHxHEIGHT")
}

// Execute runs the deskpetd root command.
func Execute() error {
	return rootCmd.Execute()
}

func runDaemon() error {
	log.SetPrefix("[deskpetd] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if err := config.EnsureGlobalDir(); err != nil {
		return fmt.Errorf("failed to create global directory: %w", err)
	}

	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if running {
		return fmt.Errorf("daemon already running on port %d (PID %d)", info.Port, info.PID)
	}

	win, err := newWindow()
	if err != nil {
		return err
	}

	opts := hostOptions{port: port, webPort: webPort, window: win}
	if foreground {
		log.Println("Running in foreground mode (no system tray)")
		return runForeground(opts)
	}
	log.Println("Running in background mode (with system tray)")
	return runWithTray(opts)
}

// newWindow builds the pet window from flags and stored settings.
func newWindow() (*window.Window, error) {
	sw, sh, err := parseGeometry(screenFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid --screen: %w", err)
	}
	ww, wh, err := parseGeometry(sizeFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid --size: %w", err)
	}
	win, err := window.New(window.WithScreen(sw, sh), window.WithSize(ww, wh))
	if err != nil {
		return nil, err
	}

	settings := loadSettings()
	win.SetAlwaysOnTop(settings.AlwaysOnTop)
	if settings.ShowOnStart {
		win.Show()
	}
	return win, nil
}

// loadSettings reads the stored settings, falling back to defaults.
func loadSettings() *models.PetSettings {
	store, err := config.OpenStorage()
	if err != nil {
		log.Printf("Failed to open storage, using default settings: %v", err)
		return models.NewPetSettings()
	}
	defer store.Close()

	settings, err := config.LoadSettings(context.Background(), store)
	if err != nil {
		log.Printf("Failed to load settings, using defaults: %v", err)
		return models.NewPetSettings()
	}
	return settings
}

// parseGeometry parses "WIDTHxHEIGHT" into positive integers.
func parseGeometry(s string) (int, int, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("expected WIDTHxHEIGHT, got %q", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return 0, 0, fmt.Errorf("bad width %q", w)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return 0, 0, fmt.Errorf("bad height %q", h)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("size must be positive, got %dx%d", width, height)
	}
	return width, height, nil
}
