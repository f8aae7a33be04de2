package hostapi

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/deskpet-io/deskpet/internal/models"
	"github.com/deskpet-io/deskpet/internal/pet"
)

type fakeHost struct {
	mu      sync.Mutex
	window  Window
	metas   []*RequestMeta
	quits   int
	started time.Time
}

func (f *fakeHost) record(m *RequestMeta) {
	f.mu.Lock()
	f.metas = append(f.metas, m)
	f.mu.Unlock()
}

func (f *fakeHost) GetRandomPosition(_ context.Context, req *Request) (*Position, error) {
	f.record(req.Meta)
	return &Position{X: 640, Y: 360}, nil
}

func (f *fakeHost) MoveWindow(_ context.Context, req *MoveRequest) (*emptypb.Empty, error) {
	f.record(req.Meta)
	if req.X < 0 || req.Y < 0 {
		return nil, status.Errorf(codes.InvalidArgument, "negative position (%d, %d)", req.X, req.Y)
	}
	f.mu.Lock()
	f.window.X, f.window.Y = req.X, req.Y
	f.mu.Unlock()
	return &emptypb.Empty{}, nil
}

func (f *fakeHost) Quit(_ context.Context, req *Request) (*emptypb.Empty, error) {
	f.record(req.Meta)
	f.mu.Lock()
	f.quits++
	f.mu.Unlock()
	return &emptypb.Empty{}, nil
}

func (f *fakeHost) GetWindow(context.Context, *Request) (*Window, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w := f.window
	return &w, nil
}

func (f *fakeHost) ShowWindow(ctx context.Context, req *Request) (*Window, error) {
	f.mu.Lock()
	f.window.Visible = true
	f.mu.Unlock()
	return f.GetWindow(ctx, req)
}

func (f *fakeHost) HideWindow(ctx context.Context, req *Request) (*Window, error) {
	f.mu.Lock()
	f.window.Visible = false
	f.mu.Unlock()
	return f.GetWindow(ctx, req)
}

func (f *fakeHost) GetScreenSize(context.Context, *Request) (*ScreenSize, error) {
	return &ScreenSize{Width: 1920, Height: 1080}, nil
}

func (f *fakeHost) GetStatus(context.Context, *Request) (*DaemonStatus, error) {
	return &DaemonStatus{
		Version:   "1.2.3",
		Host:      "localhost",
		Port:      4242,
		Pid:       99,
		StartedAt: timestamppb.New(f.started),
	}, nil
}

func serve(t *testing.T, host *fakeHost) *Client {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := grpc.NewServer()
	RegisterPositionServiceServer(srv, host)
	RegisterDaemonServiceServer(srv, host)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	client, conn, err := Dial(lis.Addr().String(), "test")
	if err != nil {
		t.Fatalf("Dial() error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return client
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestCodecIsRegistered(t *testing.T) {
	if encoding.GetCodec(CodecName) == nil {
		t.Fatalf("codec %q not registered", CodecName)
	}
}

func TestCodecHandlesProtoAndPlainValues(t *testing.T) {
	c := jsonCodec{}

	ts := timestamppb.New(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	data, err := c.Marshal(ts)
	if err != nil {
		t.Fatalf("Marshal(timestamp) error: %v", err)
	}
	if string(data) != `"2026-01-02T03:04:05Z"` {
		t.Errorf("timestamp encoded as %s, want RFC 3339 string", data)
	}

	data, err = c.Marshal(&MoveRequest{X: 3, Y: 4})
	if err != nil {
		t.Fatalf("Marshal(MoveRequest) error: %v", err)
	}
	if string(data) != `{"x":3,"y":4}` {
		t.Errorf("MoveRequest encoded as %s", data)
	}
}

func TestPositionerContract(t *testing.T) {
	host := &fakeHost{}
	client := serve(t, host)
	ctx := testContext(t)

	var positioner pet.Positioner = client

	pos, err := positioner.RandomPosition(ctx)
	if err != nil {
		t.Fatalf("RandomPosition() error: %v", err)
	}
	if pos != (pet.Position{X: 640, Y: 360}) {
		t.Errorf("RandomPosition() = %s", pos)
	}

	if err := positioner.MoveWindow(ctx, pet.Position{X: 10, Y: 20}); err != nil {
		t.Fatalf("MoveWindow() error: %v", err)
	}
	w, err := client.Window(ctx)
	if err != nil {
		t.Fatalf("Window() error: %v", err)
	}
	if w.X != 10 || w.Y != 20 {
		t.Errorf("window at (%d, %d), want (10, 20)", w.X, w.Y)
	}

	if err := positioner.Quit(ctx); err != nil {
		t.Fatalf("Quit() error: %v", err)
	}

	host.mu.Lock()
	defer host.mu.Unlock()
	if host.quits != 1 {
		t.Errorf("quits = %d, want 1", host.quits)
	}
	for _, m := range host.metas {
		if m == nil || m.Origin != "test" || m.ClientID != client.ClientID() {
			t.Errorf("request meta = %+v, want origin test and client id %s", m, client.ClientID())
		}
	}
}

func TestMoveWindowInvalidArgument(t *testing.T) {
	client := serve(t, &fakeHost{})

	err := client.MoveWindow(testContext(t), pet.Position{X: -1, Y: 5})
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("MoveWindow(-1, 5) error = %v, want InvalidArgument", err)
	}
}

func TestWindowVisibilityAndScreen(t *testing.T) {
	client := serve(t, &fakeHost{})
	ctx := testContext(t)

	w, err := client.ShowWindow(ctx)
	if err != nil || !w.Visible {
		t.Fatalf("ShowWindow() = %+v, %v", w, err)
	}
	w, err = client.HideWindow(ctx)
	if err != nil || w.Visible {
		t.Fatalf("HideWindow() = %+v, %v", w, err)
	}

	size, err := client.ScreenSize(ctx)
	if err != nil {
		t.Fatalf("ScreenSize() error: %v", err)
	}
	if size.Width != 1920 || size.Height != 1080 {
		t.Errorf("ScreenSize() = %dx%d", size.Width, size.Height)
	}
}

func TestStatusCarriesTimestamp(t *testing.T) {
	started := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	client := serve(t, &fakeHost{started: started})

	st, err := client.Status(testContext(t))
	if err != nil {
		t.Fatalf("Status() error: %v", err)
	}
	if st.Version != "1.2.3" || st.Port != 4242 || st.Pid != 99 {
		t.Errorf("Status() = %+v", st)
	}
	if !st.StartedAt.AsTime().Equal(started) {
		t.Errorf("StartedAt = %s, want %s", st.StartedAt.AsTime(), started)
	}
}

func TestUnreachableHost(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := lis.Addr().String()
	_ = lis.Close()

	client, conn, err := Dial(addr, "test")
	if err != nil {
		t.Fatalf("Dial() error: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if _, err := client.RandomPosition(ctx); err == nil {
		t.Error("RandomPosition() against a closed port succeeded")
	}
}

func TestWindowModelConversion(t *testing.T) {
	in := models.WindowInfo{X: 1, Y: 2, Width: 300, Height: 300, ScreenWidth: 1920, ScreenHeight: 1080, Visible: true}
	if got := WindowFromModel(in).Model(); got != in {
		t.Errorf("conversion changed window: %+v", got)
	}
}
