package server

import (
	"context"
	"log"
	"os"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/deskpet-io/deskpet/internal/buildinfo"
	"github.com/deskpet-io/deskpet/internal/hostapi"
)

type positionService struct {
	server *Server
}

func (s *positionService) GetRandomPosition(_ context.Context, _ *hostapi.Request) (*hostapi.Position, error) {
	x, y := s.server.window.RandomPosition()
	return &hostapi.Position{X: int32(x), Y: int32(y)}, nil
}

func (s *positionService) MoveWindow(_ context.Context, req *hostapi.MoveRequest) (*emptypb.Empty, error) {
	if req.X < 0 || req.Y < 0 {
		return nil, status.Errorf(codes.InvalidArgument, "position (%d, %d) is off screen", req.X, req.Y)
	}
	s.server.window.Move(int(req.X), int(req.Y))
	return &emptypb.Empty{}, nil
}

func (s *positionService) Quit(_ context.Context, req *hostapi.Request) (*emptypb.Empty, error) {
	log.Printf("[server] quit requested by %s", origin(req.Meta))
	s.server.requestShutdown()
	return &emptypb.Empty{}, nil
}

func (s *positionService) GetWindow(context.Context, *hostapi.Request) (*hostapi.Window, error) {
	return hostapi.WindowFromModel(s.server.window.Info()), nil
}

func (s *positionService) ShowWindow(context.Context, *hostapi.Request) (*hostapi.Window, error) {
	return hostapi.WindowFromModel(s.server.window.Show()), nil
}

func (s *positionService) HideWindow(context.Context, *hostapi.Request) (*hostapi.Window, error) {
	return hostapi.WindowFromModel(s.server.window.Hide()), nil
}

func (s *positionService) GetScreenSize(context.Context, *hostapi.Request) (*hostapi.ScreenSize, error) {
	info := s.server.window.Info()
	return &hostapi.ScreenSize{Width: int32(info.ScreenWidth), Height: int32(info.ScreenHeight)}, nil
}

type daemonService struct {
	server *Server
}

func (s *daemonService) GetStatus(context.Context, *hostapi.Request) (*hostapi.DaemonStatus, error) {
	return &hostapi.DaemonStatus{
		Version:   buildinfo.Version,
		Host:      s.server.host,
		Port:      int32(s.server.port),
		WebPort:   int32(s.server.webPort),
		Pid:       int32(os.Getpid()),
		StartedAt: timestamppb.New(s.server.startedAt),
	}, nil
}

func origin(meta *hostapi.RequestMeta) string {
	if meta == nil || meta.Origin == "" {
		return "unknown client"
	}
	return meta.Origin + " " + meta.ClientID
}
