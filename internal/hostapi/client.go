package hostapi

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/deskpet-io/deskpet/internal/pet"
)

// Client calls the host over gRPC. It implements pet.Positioner.
type Client struct {
	conn grpc.ClientConnInterface
	meta *RequestMeta
}

var _ pet.Positioner = (*Client)(nil)

// Dial opens a connection to the host at addr and wraps it in a Client.
// origin names the calling program in request metadata.
func Dial(addr, origin string) (*Client, *grpc.ClientConn, error) {
	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to daemon: %w", err)
	}
	return NewClient(conn, origin), conn, nil
}

// NewClient wraps an existing connection. Each client gets a fresh ID.
func NewClient(conn grpc.ClientConnInterface, origin string) *Client {
	return &Client{
		conn: conn,
		meta: &RequestMeta{Origin: origin, ClientID: uuid.NewString()},
	}
}

// ClientID returns the ID sent with every request.
func (c *Client) ClientID() string {
	return c.meta.ClientID
}

func (c *Client) invoke(ctx context.Context, method string, in, out any) error {
	return c.conn.Invoke(ctx, method, in, out, grpc.CallContentSubtype(CodecName))
}

func (c *Client) request() *Request {
	return &Request{Meta: c.meta}
}

// RandomPosition asks the host for a random on-screen window position.
func (c *Client) RandomPosition(ctx context.Context) (pet.Position, error) {
	out := new(Position)
	if err := c.invoke(ctx, MethodGetRandomPosition, c.request(), out); err != nil {
		return pet.Position{}, err
	}
	return pet.Position{X: int(out.X), Y: int(out.Y)}, nil
}

// MoveWindow moves the pet window to pos.
func (c *Client) MoveWindow(ctx context.Context, pos pet.Position) error {
	in := &MoveRequest{Meta: c.meta, X: int32(pos.X), Y: int32(pos.Y)}
	return c.invoke(ctx, MethodMoveWindow, in, new(emptypb.Empty))
}

// Quit asks the host process to terminate.
func (c *Client) Quit(ctx context.Context) error {
	return c.invoke(ctx, MethodQuit, c.request(), new(emptypb.Empty))
}

// Window returns the current window state.
func (c *Client) Window(ctx context.Context) (*Window, error) {
	out := new(Window)
	if err := c.invoke(ctx, MethodGetWindow, c.request(), out); err != nil {
		return nil, err
	}
	return out, nil
}

// ShowWindow makes the pet window visible.
func (c *Client) ShowWindow(ctx context.Context) (*Window, error) {
	out := new(Window)
	if err := c.invoke(ctx, MethodShowWindow, c.request(), out); err != nil {
		return nil, err
	}
	return out, nil
}

// HideWindow hides the pet window.
func (c *Client) HideWindow(ctx context.Context) (*Window, error) {
	out := new(Window)
	if err := c.invoke(ctx, MethodHideWindow, c.request(), out); err != nil {
		return nil, err
	}
	return out, nil
}

// ScreenSize returns the host's screen size.
func (c *Client) ScreenSize(ctx context.Context) (*ScreenSize, error) {
	out := new(ScreenSize)
	if err := c.invoke(ctx, MethodGetScreenSize, c.request(), out); err != nil {
		return nil, err
	}
	return out, nil
}

// Status returns the host's daemon status.
func (c *Client) Status(ctx context.Context) (*DaemonStatus, error) {
	out := new(DaemonStatus)
	if err := c.invoke(ctx, MethodGetStatus, c.request(), out); err != nil {
		return nil, err
	}
	return out, nil
}
