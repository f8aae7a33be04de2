package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/deskpet-io/deskpet/internal/config"
	"github.com/deskpet-io/deskpet/internal/daemon/server"
	"github.com/deskpet-io/deskpet/internal/daemon/tray"
	"github.com/deskpet-io/deskpet/internal/daemon/window"
	"github.com/deskpet-io/deskpet/internal/models"
)

type hostOptions struct {
	port    int
	webPort int // -1 disables the web bridge
	window  *window.Window
}

func newServer(opts hostOptions) (*server.Server, error) {
	srv, err := server.New(server.Config{
		Port:      opts.port,
		EnableWeb: opts.webPort >= 0,
		WebPort:   max(opts.webPort, 0),
		Window:    opts.window,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	if err := config.SaveDaemonInfo(srv.Info()); err != nil {
		srv.Stop()
		return nil, fmt.Errorf("failed to write daemon info: %w", err)
	}

	log.Printf("Daemon started on port %d (PID %d)", srv.Port(), os.Getpid())
	return srv, nil
}

func cleanup(srv *server.Server) {
	if srv != nil {
		srv.Stop()
	}
	if err := config.RemoveDaemonInfo(); err != nil {
		log.Printf("Failed to remove daemon info: %v", err)
	}
	fmt.Println("Daemon stopped")
}

// runForeground runs the daemon without a system tray, blocking on signals.
func runForeground(opts hostOptions) error {
	srv, err := newServer(opts)
	if err != nil {
		return err
	}
	opts.window.OnChange(func(info models.WindowInfo) {
		log.Printf("[window] at (%d, %d) visible=%v", info.X, info.Y, info.Visible)
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("Received signal %v, shutting down...", sig)
	case err := <-errCh:
		log.Printf("Server error: %v", err)
	}

	cleanup(srv)
	return nil
}

// runWithTray runs the daemon with a system tray icon on the main goroutine.
// systray.Run must occupy the main goroutine on macOS (Cocoa requirement).
func runWithTray(opts hostOptions) error {
	var srv *server.Server
	var startErr error

	onStart := func() {
		srv, startErr = newServer(opts)
		if startErr != nil {
			tray.Quit()
			return
		}
		opts.window.OnChange(tray.UpdateWindow)

		go func() {
			if err := srv.Serve(); err != nil {
				log.Printf("Server error: %v", err)
				tray.Quit()
			}
		}()

		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			sig := <-sigCh
			log.Printf("Received signal %v, shutting down...", sig)
			tray.Quit()
		}()
	}

	onExit := func() {
		if startErr != nil {
			return
		}
		cleanup(srv)
	}

	// The tray needs its state before the server exists; srv is created
	// inside onStart.
	lazyState := &lazyHostState{getSrv: func() *server.Server { return srv }, window: opts.window}

	tray.Run(lazyState, onStart, onExit)
	return startErr
}

// lazyHostState wraps server.TrayState with lazy initialization.
type lazyHostState struct {
	getSrv func() *server.Server
	window *window.Window
}

func (l *lazyHostState) Port() int {
	if srv := l.getSrv(); srv != nil {
		return server.NewTrayState(srv).Port()
	}
	return 0
}

func (l *lazyHostState) Window() models.WindowInfo {
	return l.window.Info()
}

func (l *lazyHostState) ToggleVisible() models.WindowInfo {
	if srv := l.getSrv(); srv != nil {
		return server.NewTrayState(srv).ToggleVisible()
	}
	return l.window.Info()
}

func (l *lazyHostState) RandomMove() models.WindowInfo {
	if srv := l.getSrv(); srv != nil {
		return server.NewTrayState(srv).RandomMove()
	}
	return l.window.Info()
}

func (l *lazyHostState) RequestShutdown() {
	if srv := l.getSrv(); srv != nil {
		server.NewTrayState(srv).RequestShutdown()
		return
	}
	tray.Quit()
}
