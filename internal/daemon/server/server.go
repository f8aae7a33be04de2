// Package server implements the gRPC server for the host process.
package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"sync"
	"syscall"
	"time"

	"google.golang.org/grpc"

	"github.com/deskpet-io/deskpet/internal/daemon/window"
	"github.com/deskpet-io/deskpet/internal/hostapi"
	"github.com/deskpet-io/deskpet/internal/models"
)

// quitDelay gives the Quit response time to reach the client before the
// process starts shutting down.
const quitDelay = 100 * time.Millisecond

// Config configures a Server.
type Config struct {
	// Host is the interface to listen on. Empty means localhost.
	Host string
	// Port is the gRPC port. Pass 0 for dynamic allocation.
	Port int
	// EnableWeb starts the grpc-web bridge on WebPort (0 = dynamic).
	EnableWeb bool
	WebPort   int
	// Window is the pet window the services act on.
	Window *window.Window
	// RequestShutdown is called when a client asks the host to quit.
	// Defaults to sending SIGINT to the current process.
	RequestShutdown func()
}

// Server is the host's gRPC server.
type Server struct {
	grpcServer *grpc.Server
	listener   net.Listener
	host       string
	port       int

	web         *http.Server
	webListener net.Listener
	webPort     int

	window    *window.Window
	startedAt time.Time

	shutdownOnce sync.Once
	shutdown     func()
}

// New creates a new server listening on the configured ports.
func New(cfg Config) (*Server, error) {
	if cfg.Window == nil {
		return nil, fmt.Errorf("server requires a window")
	}
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	lc := &net.ListenConfig{}
	listener, err := lc.Listen(context.TODO(), "tcp", net.JoinHostPort(host, fmt.Sprint(cfg.Port)))
	if err != nil {
		return nil, fmt.Errorf("failed to listen: %w", err)
	}

	srv := &Server{
		grpcServer: grpc.NewServer(),
		listener:   listener,
		host:       host,
		// Get actual port if dynamically allocated
		port:      listener.Addr().(*net.TCPAddr).Port,
		window:    cfg.Window,
		startedAt: time.Now(),
		shutdown:  cfg.RequestShutdown,
	}
	if srv.shutdown == nil {
		srv.shutdown = signalSelf
	}

	hostapi.RegisterPositionServiceServer(srv.grpcServer, &positionService{server: srv})
	hostapi.RegisterDaemonServiceServer(srv.grpcServer, &daemonService{server: srv})

	if cfg.EnableWeb {
		webListener, err := lc.Listen(context.TODO(), "tcp", net.JoinHostPort(host, fmt.Sprint(cfg.WebPort)))
		if err != nil {
			_ = listener.Close()
			return nil, fmt.Errorf("failed to listen for web clients: %w", err)
		}
		srv.webListener = webListener
		srv.webPort = webListener.Addr().(*net.TCPAddr).Port
		srv.web = newWebServer(srv.grpcServer)
	}

	return srv, nil
}

// Host returns the interface the server listens on.
func (s *Server) Host() string {
	return s.host
}

// Port returns the port the server is listening on.
func (s *Server) Port() int {
	return s.port
}

// WebPort returns the grpc-web port, or 0 if the bridge is disabled.
func (s *Server) WebPort() int {
	return s.webPort
}

// Window returns the pet window served by this server.
func (s *Server) Window() *window.Window {
	return s.window
}

// Info describes the running server for daemon.yaml.
func (s *Server) Info() *models.DaemonInfo {
	info := models.NewDaemonInfo(s.host, s.port, os.Getpid())
	info.WebPort = s.webPort
	info.StartedAt = s.startedAt
	return info
}

// Serve starts serving requests. This blocks until Stop is called.
func (s *Server) Serve() error {
	if s.web != nil {
		go func() {
			log.Printf("[server] grpc-web bridge on port %d", s.webPort)
			if err := s.web.Serve(s.webListener); err != nil && err != http.ErrServerClosed {
				log.Printf("[server] web bridge error: %v", err)
			}
		}()
	}
	return s.grpcServer.Serve(s.listener)
}

// Stop gracefully stops the server.
func (s *Server) Stop() {
	if s.web != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = s.web.Shutdown(ctx)
	}
	s.grpcServer.GracefulStop()
}

// requestShutdown triggers the shutdown hook once, after quitDelay.
func (s *Server) requestShutdown() {
	s.shutdownOnce.Do(func() {
		time.AfterFunc(quitDelay, s.shutdown)
	})
}

// signalSelf sends SIGINT to the current process to trigger a graceful shutdown.
func signalSelf() {
	p, err := os.FindProcess(os.Getpid())
	if err != nil {
		return
	}
	_ = p.Signal(syscall.SIGINT)
}

// TrayState adapts a Server to the tray.HostState interface.
type TrayState struct {
	srv *Server
}

// NewTrayState creates a TrayState for the given server.
func NewTrayState(srv *Server) *TrayState {
	return &TrayState{srv: srv}
}

// Port returns the port the server is listening on.
func (t *TrayState) Port() int {
	return t.srv.Port()
}

// Window returns a snapshot of the pet window.
func (t *TrayState) Window() models.WindowInfo {
	return t.srv.window.Info()
}

// ToggleVisible shows a hidden window and hides a visible one.
func (t *TrayState) ToggleVisible() models.WindowInfo {
	if t.srv.window.Info().Visible {
		return t.srv.window.Hide()
	}
	return t.srv.window.Show()
}

// RandomMove moves the window to a random position.
func (t *TrayState) RandomMove() models.WindowInfo {
	t.srv.window.Move(t.srv.window.RandomPosition())
	return t.srv.window.Info()
}

// RequestShutdown shuts the host down the same way a Quit request does.
func (t *TrayState) RequestShutdown() {
	t.srv.requestShutdown()
}
