package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/improbable-eng/grpc-web/go/grpcweb"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"

	"github.com/deskpet-io/deskpet/internal/hostapi"
)

// Content types the bridge accepts. The host's messages are plain structs
// carried by the JSON codec, so the default proto subtype cannot decode them.
const (
	grpcWebJSON     = "application/grpc-web+" + hostapi.CodecName
	grpcWebTextJSON = "application/grpc-web-text+" + hostapi.CodecName
)

const unsupportedCodecMessage = "unsupported content type: use " + grpcWebJSON + " or " + grpcWebTextJSON

// newWebServer exposes the gRPC server to browser and webview clients.
// grpc-web requests must use the JSON subtype and are translated; native
// gRPC over cleartext HTTP/2 is passed straight through.
func newWebServer(grpcServer *grpc.Server) *http.Server {
	wrapped := grpcweb.WrapServer(grpcServer,
		grpcweb.WithOriginFunc(allowLocalOrigin),
	)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case wrapped.IsGrpcWebRequest(r):
			if !isJSONGrpcWeb(r.Header.Get("Content-Type")) {
				rejectCodec(w, r)
				return
			}
			wrapped.ServeHTTP(w, r)
		case wrapped.IsAcceptableGrpcCorsRequest(r):
			wrapped.ServeHTTP(w, r)
		case r.ProtoMajor == 2 && strings.HasPrefix(r.Header.Get("Content-Type"), "application/grpc"):
			grpcServer.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})

	return &http.Server{
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func isJSONGrpcWeb(contentType string) bool {
	ct, _, _ := strings.Cut(contentType, ";")
	ct = strings.ToLower(strings.TrimSpace(ct))
	return ct == grpcWebJSON || ct == grpcWebTextJSON
}

// rejectCodec answers a grpc-web call in a codec the host cannot decode with
// a trailers-only Unimplemented status that names the accepted types.
func rejectCodec(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	if origin := r.Header.Get("Origin"); origin != "" && allowLocalOrigin(origin) {
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Expose-Headers", "grpc-status, grpc-message")
	}
	h.Set("Content-Type", grpcWebJSON)
	h.Set("grpc-status", strconv.Itoa(int(codes.Unimplemented)))
	h.Set("grpc-message", unsupportedCodecMessage)
	w.WriteHeader(http.StatusUnsupportedMediaType)
}

// allowLocalOrigin accepts pages served from this machine and webview
// schemes that send no host.
func allowLocalOrigin(origin string) bool {
	if origin == "" || origin == "null" {
		return true
	}
	for _, prefix := range []string{"http://localhost", "http://127.0.0.1", "https://localhost", "wails://", "file://"} {
		if strings.HasPrefix(origin, prefix) {
			return true
		}
	}
	return false
}
