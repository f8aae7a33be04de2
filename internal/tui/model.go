package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/deskpet-io/deskpet/internal/config"
	"github.com/deskpet-io/deskpet/internal/hostapi"
	"github.com/deskpet-io/deskpet/internal/models"
	"github.com/deskpet-io/deskpet/internal/pet"
)

// Minimum terminal size for the stage.
const (
	minWidth  = 40
	minHeight = 12
)

// Overlay constants.
const (
	overlayNone     = 0
	overlayHelp     = 1
	overlaySettings = 2
)

// Model is the root Bubbletea model for the pet UI.
type Model struct {
	ctrl *pet.Controller
	host windowSource
	live *config.LiveSettings

	connected bool
	snap      pet.Snapshot
	window    models.WindowInfo
	settings  models.PetSettings

	// UI state
	activeOverlay int
	menuCursor    int
	settingsForm  *SettingsForm
	help          help.Model
	width         int
	height        int

	// Status display
	err       error
	showSaved bool

	// Mouse state. pressedOnPet is set between a left press on the sprite
	// and its release; dragging once the pointer has moved.
	pressedOnPet bool
	pressX       int
	pressY       int
	dragging     bool
	dragCol      int
	dragRow      int

	// Program reference for goroutine Send()
	program *programRef
}

// NewModel creates the initial UI model. live may be nil, which disables
// the settings form.
func NewModel(ctrl *pet.Controller, host windowSource, live *config.LiveSettings, program *programRef) Model {
	settings := *models.NewPetSettings()
	if live != nil {
		settings = live.Current()
	}
	window := models.WindowInfo{
		Width:        models.DefaultWindowWidth,
		Height:       models.DefaultWindowHeight,
		ScreenWidth:  models.DefaultScreenWidth,
		ScreenHeight: models.DefaultScreenHeight,
		Visible:      true,
	}
	return Model{
		ctrl:     ctrl,
		host:     host,
		live:     live,
		settings: settings,
		window:   window,
		help:     newHelp(),
		program:  program,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadWindowCmd(m.host),
		pollWindowTick(),
		tea.EnableMouseAllMotion,
	)
}

// Update processes messages and returns an updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// ── Window resize ──────────────────────────────────────────────
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	// ── Input ──────────────────────────────────────────────────────
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	// ── Pet controller ─────────────────────────────────────────────
	case PetEventMsg:
		ev := msg.Event
		m.snap = pet.Snapshot{State: ev.State, Message: ev.Message, MenuOpen: ev.MenuOpen}
		switch ev.Type {
		case pet.EventMoved:
			m.window.X, m.window.Y = ev.Position.X, ev.Position.Y
		case pet.EventMenuChanged:
			if ev.MenuOpen {
				m.menuCursor = 0
			}
		case pet.EventQuit:
			return m, m.doQuit()
		}
		return m, nil

	// ── Host ───────────────────────────────────────────────────────
	case WindowLoadedMsg:
		m.connected = true
		if !m.dragging {
			m.window = msg.Window.Model()
		}
		return m, nil

	case TickMsg:
		return m, tea.Batch(loadWindowCmd(m.host), pollWindowTick())

	case DaemonDisconnectedMsg:
		return m, m.doQuit()

	// ── Settings ───────────────────────────────────────────────────
	case SettingsChangedMsg:
		m.settings = msg.Settings
		if m.settingsForm != nil {
			m.settingsForm.Load(msg.Settings)
		}
		return m, nil

	case SettingsSavedMsg:
		m.settings = msg.Settings
		m.showSaved = true
		return m, clearSavedAfter(2 * time.Second)

	// ── Status ─────────────────────────────────────────────────────
	case ErrorMsg:
		m.err = msg.Err
		return m, clearErrorAfter(5 * time.Second)

	case ClearErrorMsg:
		m.err = nil
		return m, nil

	case ClearSavedMsg:
		m.showSaved = false
		return m, nil
	}

	return m, nil
}

// refresh re-reads the controller after a call so the next frame shows it.
func (m *Model) refresh() {
	m.snap = m.ctrl.Snapshot()
}

// handleKey processes key events.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.Quit) && (msg.String() == "ctrl+c" || m.activeOverlay == overlayNone) {
		return m.doQuit()
	}

	switch m.activeOverlay {
	case overlayHelp:
		if key.Matches(msg, keys.Help, keys.Close) {
			m.activeOverlay = overlayNone
		}
		return nil
	case overlaySettings:
		return m.handleSettingsKey(msg)
	}

	if m.snap.MenuOpen {
		return m.handleMenuKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Click):
		m.ctrl.OnPetClick()
		m.refresh()
	case key.Matches(msg, keys.Menu):
		m.ctrl.OnRightClick()
		m.menuCursor = 0
		m.refresh()
	case key.Matches(msg, keys.Speak, keys.Move, keys.QuitHost):
		return m.selectMenuItem(menuIndexForKey(msg))
	case key.Matches(msg, keys.Help):
		m.activeOverlay = overlayHelp
	case key.Matches(msg, keys.Settings):
		if m.live != nil {
			m.settingsForm = NewSettingsForm(m.settings)
			m.activeOverlay = overlaySettings
		}
	}
	return nil
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Up):
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.menuCursor < len(menuItems)-1 {
			m.menuCursor++
		}
	case key.Matches(msg, keys.Select):
		return m.selectMenuItem(m.menuCursor)
	case key.Matches(msg, keys.Speak, keys.Move, keys.QuitHost):
		return m.selectMenuItem(menuIndexForKey(msg))
	case key.Matches(msg, keys.Close, keys.Menu):
		m.ctrl.OnRightClick()
		m.refresh()
	}
	return nil
}

func menuIndexForKey(msg tea.KeyMsg) int {
	switch {
	case key.Matches(msg, keys.Speak):
		return 0
	case key.Matches(msg, keys.Move):
		return 1
	default:
		return 2
	}
}

// selectMenuItem runs a context menu entry. Every entry closes the menu.
func (m *Model) selectMenuItem(i int) tea.Cmd {
	switch i {
	case 0:
		m.ctrl.OnMenuSpeak()
	case 1:
		m.ctrl.OnMenuRandomMove()
	case 2:
		m.ctrl.OnMenuQuit()
	}
	m.refresh()
	return nil
}

func (m *Model) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	f := m.settingsForm
	changed := false
	switch {
	case key.Matches(msg, settingsKeys.Close):
		m.activeOverlay = overlayNone
		m.settingsForm = nil
		return nil
	case key.Matches(msg, settingsKeys.Up):
		f.MoveUp()
	case key.Matches(msg, settingsKeys.Down):
		f.MoveDown()
	case key.Matches(msg, settingsKeys.Toggle):
		changed = f.Toggle()
	case key.Matches(msg, settingsKeys.Less):
		changed = f.Adjust(-1)
	case key.Matches(msg, settingsKeys.More):
		changed = f.Adjust(1)
	}
	if changed {
		return saveSettingsCmd(m.live, f.Settings())
	}
	return nil
}

// doQuit closes the UI. The host keeps running unless the pet asked it to quit.
func (m *Model) doQuit() tea.Cmd {
	m.program.Clear()
	return tea.Quit
}

// ── Mouse handling ───────────────────────────────────────────────

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.activeOverlay != overlayNone || !m.window.Visible {
		return nil
	}

	layout := computeLayout(m.width, m.height, m.window)
	x, y := msg.X, msg.Y-layout.top
	col, row := layout.cellFor(pet.Position{X: m.window.X, Y: m.window.Y})

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonRight:
			m.ctrl.OnRightClick()
			m.menuCursor = 0
			m.refresh()
		case tea.MouseButtonLeft:
			if m.snap.MenuOpen {
				menu := renderMenu(m.menuCursor)
				left, top := menuPosition(menu, col, row, layout)
				if i := menuItemAt(x, y, left, top, menu); i >= 0 {
					return m.selectMenuItem(i)
				}
			}
			if hitsSprite(x, y, col, row) {
				m.pressedOnPet = true
				m.pressX, m.pressY = x, y
				m.dragCol, m.dragRow = col, row
			}
		}

	case tea.MouseActionMotion:
		if !m.pressedOnPet {
			return nil
		}
		if !m.dragging && (x != m.pressX || y != m.pressY) {
			m.dragging = true
			m.ctrl.BeginDrag()
			m.refresh()
		}
		if m.dragging {
			m.dragCol, m.dragRow = layout.clampCell(col+x-m.pressX, row+y-m.pressY)
		}

	case tea.MouseActionRelease:
		if !m.pressedOnPet {
			return nil
		}
		m.pressedOnPet = false
		if m.dragging {
			m.dragging = false
			pos := layout.positionFor(m.dragCol, m.dragRow)
			m.window.X, m.window.Y = pos.X, pos.Y
			m.ctrl.EndDrag(pos)
		} else {
			m.ctrl.OnPetClick()
		}
		m.refresh()
	}
	return nil
}

// ── View ─────────────────────────────────────────────────────────

// View renders the UI.
func (m Model) View() string {
	if m.width < minWidth || m.height < minHeight {
		sizeStr := fmt.Sprintf("%dx%d", m.width, m.height)
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(colorYellow).
			Render(lipgloss.JoinVertical(lipgloss.Center,
				"Terminal too small",
				lipgloss.NewStyle().Foreground(colorDim).Render(
					fmt.Sprintf("Need %dx%d, have ", minWidth, minHeight)+lipgloss.NewStyle().Bold(true).Render(sizeStr),
				),
			))
	}

	if !m.connected {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(colorDim).
			Render("Connecting to daemon...")
	}

	layout := computeLayout(m.width, m.height, m.window)
	col, row := layout.cellFor(pet.Position{X: m.window.X, Y: m.window.Y})
	if m.dragging {
		col, row = m.dragCol, m.dragRow
	}

	header := renderHeader(m.snap.State, m.window, m.settings, m.width)
	var stage string
	if m.window.Visible {
		stage = renderStage(layout, m.snap, col, row, m.menuCursor)
	} else {
		stage = lipgloss.NewStyle().
			Width(layout.width).
			Height(layout.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(colorDim).
			Render("The pet is hidden. Run 'deskpet show' to bring it back.")
	}
	statusBar := renderStatusBar(&m, m.width)

	view := lipgloss.JoinVertical(lipgloss.Left, header, stage, statusBar)

	switch m.activeOverlay {
	case overlayHelp:
		view = renderOverlay(view, renderHelp(m.help, m.width), m.width, m.height)
	case overlaySettings:
		if m.settingsForm != nil {
			view = renderOverlay(view, m.settingsForm.View(32), m.width, m.height)
		}
	}

	return view
}

var _ windowSource = (*hostapi.Client)(nil)
