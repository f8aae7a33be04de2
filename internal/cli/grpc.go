package cli

import (
	"fmt"

	"google.golang.org/grpc"

	"github.com/deskpet-io/deskpet/internal/config"
	"github.com/deskpet-io/deskpet/internal/hostapi"
	"github.com/deskpet-io/deskpet/internal/models"
)

// Origins name the caller in request metadata.
const (
	clientOrigin = "deskpet-cli"
	tuiOrigin    = "deskpet-tui"
)

// connectDaemon establishes a gRPC connection to the running host.
func connectDaemon() (*hostapi.Client, *grpc.ClientConn, error) {
	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load daemon info: %w", err)
	}
	if !running || info == nil {
		return nil, nil, fmt.Errorf("daemon not running. Start it with 'deskpet daemon start'")
	}
	return dialDaemon(info, clientOrigin)
}

func dialDaemon(info *models.DaemonInfo, origin string) (*hostapi.Client, *grpc.ClientConn, error) {
	return hostapi.Dial(info.Addr(), origin)
}
