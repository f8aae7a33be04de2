package server

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/deskpet-io/deskpet/internal/daemon/window"
	"github.com/deskpet-io/deskpet/internal/hostapi"
	"github.com/deskpet-io/deskpet/internal/pet"
)

type testHost struct {
	srv       *Server
	client    *hostapi.Client
	shutdowns atomic.Int32
}

func startServer(t *testing.T, web bool) *testHost {
	t.Helper()
	win, err := window.New()
	if err != nil {
		t.Fatal(err)
	}

	h := &testHost{}
	srv, err := New(Config{
		Host:            "127.0.0.1",
		EnableWeb:       web,
		Window:          win,
		RequestShutdown: func() { h.shutdowns.Add(1) },
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	go func() { _ = srv.Serve() }()
	t.Cleanup(srv.Stop)
	h.srv = srv

	client, conn, err := hostapi.Dial(net.JoinHostPort("127.0.0.1", strconv.Itoa(srv.Port())), "server-test")
	if err != nil {
		t.Fatalf("Dial() error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	h.client = client
	return h
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestNewRequiresWindow(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("New() without a window succeeded")
	}
}

func TestRandomPositionKeepsWindowOnScreen(t *testing.T) {
	h := startServer(t, false)
	ctx := testContext(t)

	for i := 0; i < 20; i++ {
		pos, err := h.client.RandomPosition(ctx)
		if err != nil {
			t.Fatalf("RandomPosition() error: %v", err)
		}
		if pos.X < 0 || pos.X >= 1620 || pos.Y < 0 || pos.Y >= 780 {
			t.Fatalf("RandomPosition() = %s, outside [0,1620)x[0,780)", pos)
		}
	}
}

func TestMoveWindow(t *testing.T) {
	h := startServer(t, false)
	ctx := testContext(t)

	if err := h.client.MoveWindow(ctx, pet.Position{X: 42, Y: 24}); err != nil {
		t.Fatalf("MoveWindow() error: %v", err)
	}
	if info := h.srv.Window().Info(); info.X != 42 || info.Y != 24 {
		t.Errorf("window at (%d, %d), want (42, 24)", info.X, info.Y)
	}

	// Past the edge is clamped, not rejected.
	if err := h.client.MoveWindow(ctx, pet.Position{X: 9999, Y: 9999}); err != nil {
		t.Fatalf("MoveWindow() error: %v", err)
	}
	if info := h.srv.Window().Info(); info.X != 1620 || info.Y != 780 {
		t.Errorf("window at (%d, %d), want (1620, 780)", info.X, info.Y)
	}

	err := h.client.MoveWindow(ctx, pet.Position{X: -5, Y: 0})
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("MoveWindow(-5, 0) error = %v, want InvalidArgument", err)
	}
}

func TestQuitRequestsShutdownOnce(t *testing.T) {
	h := startServer(t, false)
	ctx := testContext(t)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := h.client.Quit(ctx); err != nil {
			t.Fatalf("Quit() error: %v", err)
		}
	}
	deadline := time.Now().Add(2 * time.Second)
	for h.shutdowns.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if elapsed := time.Since(start); elapsed < quitDelay {
		t.Errorf("shutdown after %s, want >= %s", elapsed, quitDelay)
	}
	time.Sleep(2 * quitDelay)
	if n := h.shutdowns.Load(); n != 1 {
		t.Errorf("shutdowns = %d, want 1", n)
	}
}

func TestVisibilityAndScreen(t *testing.T) {
	h := startServer(t, false)
	ctx := testContext(t)

	w, err := h.client.ShowWindow(ctx)
	if err != nil || !w.Visible {
		t.Fatalf("ShowWindow() = %+v, %v", w, err)
	}
	w, err = h.client.HideWindow(ctx)
	if err != nil || w.Visible {
		t.Fatalf("HideWindow() = %+v, %v", w, err)
	}
	if h.srv.Window().Info().Visible {
		t.Error("window model still visible")
	}

	size, err := h.client.ScreenSize(ctx)
	if err != nil {
		t.Fatalf("ScreenSize() error: %v", err)
	}
	if size.Width != 1920 || size.Height != 1080 {
		t.Errorf("ScreenSize() = %dx%d", size.Width, size.Height)
	}
}

func TestGetStatus(t *testing.T) {
	h := startServer(t, false)

	st, err := h.client.Status(testContext(t))
	if err != nil {
		t.Fatalf("Status() error: %v", err)
	}
	if int(st.Port) != h.srv.Port() || st.Host != "127.0.0.1" {
		t.Errorf("Status() = %+v", st)
	}
	if st.WebPort != 0 {
		t.Errorf("WebPort = %d with the bridge disabled", st.WebPort)
	}
	if st.StartedAt == nil || time.Since(st.StartedAt.AsTime()) > time.Minute {
		t.Errorf("StartedAt = %v", st.StartedAt)
	}
}

func TestTrayState(t *testing.T) {
	h := startServer(t, false)
	ts := NewTrayState(h.srv)

	if ts.Port() != h.srv.Port() {
		t.Errorf("Port() = %d", ts.Port())
	}
	if !ts.ToggleVisible().Visible {
		t.Error("first toggle did not show the window")
	}
	if ts.ToggleVisible().Visible {
		t.Error("second toggle did not hide the window")
	}
	info := ts.RandomMove()
	if info.X < 0 || info.X > 1620 || info.Y < 0 || info.Y > 780 {
		t.Errorf("RandomMove() placed window at (%d, %d)", info.X, info.Y)
	}
}

func TestWebBridge(t *testing.T) {
	h := startServer(t, true)
	if h.srv.WebPort() == 0 {
		t.Fatal("web bridge enabled but WebPort() = 0")
	}
	webAddr := net.JoinHostPort("127.0.0.1", strconv.Itoa(h.srv.WebPort()))

	t.Run("native gRPC over h2c", func(t *testing.T) {
		client, conn, err := hostapi.Dial(webAddr, "web-test")
		if err != nil {
			t.Fatalf("Dial() error: %v", err)
		}
		defer conn.Close()

		st, err := client.Status(testContext(t))
		if err != nil {
			t.Fatalf("Status() via web port error: %v", err)
		}
		if int(st.WebPort) != h.srv.WebPort() {
			t.Errorf("WebPort = %d, want %d", st.WebPort, h.srv.WebPort())
		}
	})

	t.Run("grpc-web json call", func(t *testing.T) {
		resp, frames := postGrpcWeb(t, webAddr, hostapi.MethodGetRandomPosition, "application/grpc-web+json", []byte(`{"meta":{"origin":"web"}}`))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		if len(frames) < 2 {
			t.Fatalf("got %d frames, want data and trailers", len(frames))
		}
		if frames[0].flag != 0 {
			t.Fatalf("first frame flag = %#x, want data", frames[0].flag)
		}
		var pos hostapi.Position
		if err := json.Unmarshal(frames[0].data, &pos); err != nil {
			t.Fatalf("decode %q: %v", frames[0].data, err)
		}
		if pos.X < 0 || pos.X >= 1620 || pos.Y < 0 || pos.Y >= 780 {
			t.Errorf("position (%d, %d) is off screen", pos.X, pos.Y)
		}
		trailers := strings.ToLower(string(frames[len(frames)-1].data))
		if !strings.Contains(trailers, "grpc-status: 0") {
			t.Errorf("trailers = %q, want grpc-status 0", trailers)
		}
	})

	for _, ct := range []string{"application/grpc-web", "application/grpc-web+proto"} {
		t.Run("grpc-web rejects "+ct, func(t *testing.T) {
			resp, _ := postGrpcWeb(t, webAddr, hostapi.MethodGetRandomPosition, ct, []byte{})
			if resp.StatusCode != http.StatusUnsupportedMediaType {
				t.Errorf("status = %d, want 415", resp.StatusCode)
			}
			if got := resp.Header.Get("grpc-status"); got != strconv.Itoa(int(codes.Unimplemented)) {
				t.Errorf("grpc-status = %q, want Unimplemented", got)
			}
			if got := resp.Header.Get("grpc-message"); !strings.Contains(got, "application/grpc-web+json") {
				t.Errorf("grpc-message = %q, want the accepted type named", got)
			}
			if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
				t.Errorf("Access-Control-Allow-Origin = %q", got)
			}
		})
	}

	t.Run("plain request is not found", func(t *testing.T) {
		resp, err := http.Get("http://" + webAddr + "/")
		if err != nil {
			t.Fatalf("GET error: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
	})

	t.Run("cors preflight", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodOptions, "http://"+webAddr+hostapi.MethodGetRandomPosition, nil)
		if err != nil {
			t.Fatal(err)
		}
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", "POST")
		req.Header.Set("Access-Control-Request-Headers", "content-type,x-grpc-web")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("OPTIONS error: %v", err)
		}
		resp.Body.Close()
		if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
			t.Errorf("Access-Control-Allow-Origin = %q", got)
		}
	})
}

type webFrame struct {
	flag byte
	data []byte
}

// postGrpcWeb sends one length-prefixed message as a grpc-web call and
// splits the response body into frames.
func postGrpcWeb(t *testing.T, addr, method, contentType string, msg []byte) (*http.Response, []webFrame) {
	t.Helper()
	body := make([]byte, 5+len(msg))
	binary.BigEndian.PutUint32(body[1:5], uint32(len(msg)))
	copy(body[5:], msg)

	req, err := http.NewRequestWithContext(testContext(t), http.MethodPost, "http://"+addr+method, bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Grpc-Web", "1")
	req.Header.Set("Origin", "http://localhost:5173")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST %s: %v", method, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	var frames []webFrame
	for len(raw) >= 5 {
		n := int(binary.BigEndian.Uint32(raw[1:5]))
		if len(raw) < 5+n {
			t.Fatalf("truncated frame: want %d bytes, have %d", n, len(raw)-5)
		}
		frames = append(frames, webFrame{flag: raw[0], data: raw[5 : 5+n]})
		raw = raw[5+n:]
	}
	return resp, frames
}

func TestIsJSONGrpcWeb(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"application/grpc-web+json", true},
		{"application/grpc-web-text+json", true},
		{"Application/GRPC-Web+JSON; charset=utf-8", true},
		{"application/grpc-web", false},
		{"application/grpc-web+proto", false},
		{"application/grpc-web-text", false},
	}
	for _, tt := range tests {
		if got := isJSONGrpcWeb(tt.contentType); got != tt.want {
			t.Errorf("isJSONGrpcWeb(%q) = %v, want %v", tt.contentType, got, tt.want)
		}
	}
}

func TestAllowLocalOrigin(t *testing.T) {
	tests := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"http://localhost:3000", true},
		{"http://127.0.0.1:8080", true},
		{"wails://wails", true},
		{"https://example.com", false},
	}
	for _, tt := range tests {
		if got := allowLocalOrigin(tt.origin); got != tt.want {
			t.Errorf("allowLocalOrigin(%q) = %v, want %v", tt.origin, got, tt.want)
		}
	}
}
