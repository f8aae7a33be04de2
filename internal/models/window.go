package models

// Default pet window and screen geometry, in pixels.
const (
	DefaultWindowWidth  = 300
	DefaultWindowHeight = 300
	DefaultScreenWidth  = 1920
	DefaultScreenHeight = 1080
)

// WindowInfo is a snapshot of the host-side pet window.
type WindowInfo struct {
	X            int  `json:"x"`
	Y            int  `json:"y"`
	Width        int  `json:"width"`
	Height       int  `json:"height"`
	ScreenWidth  int  `json:"screenWidth"`
	ScreenHeight int  `json:"screenHeight"`
	Visible      bool `json:"visible"`
	AlwaysOnTop  bool `json:"alwaysOnTop"`
}
