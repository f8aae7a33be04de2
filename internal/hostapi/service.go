// Package hostapi is the wire contract between the pet presentation and the
// host process: message types, gRPC service descriptors and a client.
package hostapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

// Fully qualified service names.
const (
	PositionServiceName = "deskpet.PositionService"
	DaemonServiceName   = "deskpet.DaemonService"
)

// Method names, as they appear on the wire.
const (
	MethodGetRandomPosition = "/" + PositionServiceName + "/GetRandomPosition"
	MethodMoveWindow        = "/" + PositionServiceName + "/MoveWindow"
	MethodQuit              = "/" + PositionServiceName + "/Quit"
	MethodGetWindow         = "/" + PositionServiceName + "/GetWindow"
	MethodShowWindow        = "/" + PositionServiceName + "/ShowWindow"
	MethodHideWindow        = "/" + PositionServiceName + "/HideWindow"
	MethodGetScreenSize     = "/" + PositionServiceName + "/GetScreenSize"
	MethodGetStatus         = "/" + DaemonServiceName + "/GetStatus"
)

// PositionServiceServer is the server interface for PositionService.
type PositionServiceServer interface {
	GetRandomPosition(context.Context, *Request) (*Position, error)
	MoveWindow(context.Context, *MoveRequest) (*emptypb.Empty, error)
	Quit(context.Context, *Request) (*emptypb.Empty, error)
	GetWindow(context.Context, *Request) (*Window, error)
	ShowWindow(context.Context, *Request) (*Window, error)
	HideWindow(context.Context, *Request) (*Window, error)
	GetScreenSize(context.Context, *Request) (*ScreenSize, error)
}

// DaemonServiceServer is the server interface for DaemonService.
type DaemonServiceServer interface {
	GetStatus(context.Context, *Request) (*DaemonStatus, error)
}

// unary builds a method handler that decodes Req and calls fn on the
// registered implementation, going through the interceptor when one is set.
func unary[S, Req, Resp any](fullMethod string, fn func(S, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return fn(srv.(S), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return fn(srv.(S), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// PositionServiceDesc describes PositionService for grpc.ServiceRegistrar.
var PositionServiceDesc = grpc.ServiceDesc{
	ServiceName: PositionServiceName,
	HandlerType: (*PositionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetRandomPosition", Handler: unary(MethodGetRandomPosition, PositionServiceServer.GetRandomPosition)},
		{MethodName: "MoveWindow", Handler: unary(MethodMoveWindow, PositionServiceServer.MoveWindow)},
		{MethodName: "Quit", Handler: unary(MethodQuit, PositionServiceServer.Quit)},
		{MethodName: "GetWindow", Handler: unary(MethodGetWindow, PositionServiceServer.GetWindow)},
		{MethodName: "ShowWindow", Handler: unary(MethodShowWindow, PositionServiceServer.ShowWindow)},
		{MethodName: "HideWindow", Handler: unary(MethodHideWindow, PositionServiceServer.HideWindow)},
		{MethodName: "GetScreenSize", Handler: unary(MethodGetScreenSize, PositionServiceServer.GetScreenSize)},
	},
	Metadata: "deskpet/host.proto",
}

// DaemonServiceDesc describes DaemonService for grpc.ServiceRegistrar.
var DaemonServiceDesc = grpc.ServiceDesc{
	ServiceName: DaemonServiceName,
	HandlerType: (*DaemonServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetStatus", Handler: unary(MethodGetStatus, DaemonServiceServer.GetStatus)},
	},
	Metadata: "deskpet/host.proto",
}

// RegisterPositionServiceServer registers srv with the gRPC server.
func RegisterPositionServiceServer(s grpc.ServiceRegistrar, srv PositionServiceServer) {
	s.RegisterService(&PositionServiceDesc, srv)
}

// RegisterDaemonServiceServer registers srv with the gRPC server.
func RegisterDaemonServiceServer(s grpc.ServiceRegistrar, srv DaemonServiceServer) {
	s.RegisterService(&DaemonServiceDesc, srv)
}
