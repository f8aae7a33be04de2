package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"

	"github.com/deskpet-io/deskpet/internal/buildinfo"
	"github.com/deskpet-io/deskpet/internal/models"
)

var (
	state   HostState
	onStart func()
	onExit  func()

	readyMu sync.Mutex
	ready   bool

	portItem       *systray.MenuItem
	positionItem   *systray.MenuItem
	visibilityItem *systray.MenuItem
	moveItem       *systray.MenuItem
	quitItem       *systray.MenuItem
)

// Run starts the system tray. This blocks the calling goroutine (must be main).
// onStartFn is called when the tray is ready (launch gRPC server here).
// onExitFn is called when the tray exits (cleanup here).
func Run(s HostState, onStartFn, onExitFn func()) {
	state = s
	onStart = onStartFn
	onExit = onExitFn
	systray.Run(onReady, onQuit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

func onReady() {
	systray.SetTemplateIcon(iconData, iconData)
	systray.SetTooltip("deskpet")

	header := systray.AddMenuItem("Deskpet Host "+buildinfo.Short(), "")
	header.Disable()

	portItem = systray.AddMenuItem("Starting...", "")
	portItem.Disable()
	positionItem = systray.AddMenuItem("", "")
	positionItem.Disable()

	systray.AddSeparator()

	visibilityItem = systray.AddMenuItem("Show Pet", "Show or hide the pet window")
	moveItem = systray.AddMenuItem("Random Move", "Move the pet somewhere else")
	quitItem = systray.AddMenuItem("Quit", "Shut down the deskpet host")

	if onStart != nil {
		onStart()
	}

	readyMu.Lock()
	ready = true
	readyMu.Unlock()

	if state != nil {
		portItem.SetTitle(fmt.Sprintf("Running on port: %d", state.Port()))
		UpdateWindow(state.Window())
	}

	go handleClicks()
}

func onQuit() {
	if onExit != nil {
		onExit()
	}
}

// menuAction is a clickable tray entry.
type menuAction int

const (
	actionToggleVisible menuAction = iota
	actionRandomMove
	actionQuit
)

func handleClicks() {
	for {
		var a menuAction
		select {
		case <-visibilityItem.ClickedCh:
			a = actionToggleVisible
		case <-moveItem.ClickedCh:
			a = actionRandomMove
		case <-quitItem.ClickedCh:
			a = actionQuit
		}
		if info, changed := runAction(state, a); changed {
			UpdateWindow(info)
		}
	}
}

// runAction performs a menu entry against the host. It reports the new
// window state when the entry changed it.
func runAction(s HostState, a menuAction) (models.WindowInfo, bool) {
	if s == nil {
		return models.WindowInfo{}, false
	}
	switch a {
	case actionToggleVisible:
		return s.ToggleVisible(), true
	case actionRandomMove:
		return s.RandomMove(), true
	case actionQuit:
		s.RequestShutdown()
	}
	return models.WindowInfo{}, false
}

// UpdateWindow refreshes the menu and tooltip from the window state.
// Calls made before the tray is ready are ignored.
func UpdateWindow(info models.WindowInfo) {
	readyMu.Lock()
	defer readyMu.Unlock()
	if !ready {
		return
	}

	positionItem.SetTitle(formatPosition(info))
	visibilityItem.SetTitle(visibilityTitle(info))
	systray.SetTooltip(formatTooltip(info))
}

func formatPosition(info models.WindowInfo) string {
	return fmt.Sprintf("Pet at %d, %d", info.X, info.Y)
}

func visibilityTitle(info models.WindowInfo) string {
	if info.Visible {
		return "Hide Pet"
	}
	return "Show Pet"
}

func formatTooltip(info models.WindowInfo) string {
	if !info.Visible {
		return "deskpet (hidden)"
	}
	return fmt.Sprintf("deskpet at %d, %d", info.X, info.Y)
}
