// Package tray implements the system tray icon and menu for the host process.
package tray

import "github.com/deskpet-io/deskpet/internal/models"

// HostState gives the tray access to the host it controls.
type HostState interface {
	Port() int
	Window() models.WindowInfo
	ToggleVisible() models.WindowInfo
	RandomMove() models.WindowInfo
	RequestShutdown()
}
