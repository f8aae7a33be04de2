package hostapi

import (
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/deskpet-io/deskpet/internal/models"
)

// RequestMeta identifies the client making a request.
type RequestMeta struct {
	Origin   string `json:"origin"`
	ClientID string `json:"clientId"`
}

// Request is the argument of calls that take no parameters.
type Request struct {
	Meta *RequestMeta `json:"meta,omitempty"`
}

// Position is a window position in screen pixels.
type Position struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// MoveRequest asks the host to move the pet window.
type MoveRequest struct {
	Meta *RequestMeta `json:"meta,omitempty"`
	X    int32        `json:"x"`
	Y    int32        `json:"y"`
}

// Window is the host's view of the pet window.
type Window struct {
	X            int32 `json:"x"`
	Y            int32 `json:"y"`
	Width        int32 `json:"width"`
	Height       int32 `json:"height"`
	ScreenWidth  int32 `json:"screenWidth"`
	ScreenHeight int32 `json:"screenHeight"`
	Visible      bool  `json:"visible"`
	AlwaysOnTop  bool  `json:"alwaysOnTop"`
}

// ScreenSize is the size of the screen the window lives on.
type ScreenSize struct {
	Width  int32 `json:"width"`
	Height int32 `json:"height"`
}

// DaemonStatus represents the current status of the host process.
type DaemonStatus struct {
	Version   string                 `json:"version"`
	Host      string                 `json:"host"`
	Port      int32                  `json:"port"`
	WebPort   int32                  `json:"webPort,omitempty"`
	Pid       int32                  `json:"pid"`
	StartedAt *timestamppb.Timestamp `json:"startedAt,omitempty"`
}

// WindowFromModel converts the host window model to its wire form.
func WindowFromModel(w models.WindowInfo) *Window {
	return &Window{
		X:            int32(w.X),
		Y:            int32(w.Y),
		Width:        int32(w.Width),
		Height:       int32(w.Height),
		ScreenWidth:  int32(w.ScreenWidth),
		ScreenHeight: int32(w.ScreenHeight),
		Visible:      w.Visible,
		AlwaysOnTop:  w.AlwaysOnTop,
	}
}

// Model converts the wire form back to the window model.
func (w *Window) Model() models.WindowInfo {
	return models.WindowInfo{
		X:            int(w.X),
		Y:            int(w.Y),
		Width:        int(w.Width),
		Height:       int(w.Height),
		ScreenWidth:  int(w.ScreenWidth),
		ScreenHeight: int(w.ScreenHeight),
		Visible:      w.Visible,
		AlwaysOnTop:  w.AlwaysOnTop,
	}
}
