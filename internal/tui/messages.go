package tui

import (
	"github.com/deskpet-io/deskpet/internal/hostapi"
	"github.com/deskpet-io/deskpet/internal/models"
	"github.com/deskpet-io/deskpet/internal/pet"
)

// PetEventMsg carries a change published by the pet controller.
type PetEventMsg struct {
	Event pet.Event
}

// WindowLoadedMsg carries the host's view of the pet window.
type WindowLoadedMsg struct {
	Window *hostapi.Window
}

// SettingsChangedMsg carries settings after a live reload.
type SettingsChangedMsg struct {
	Settings models.PetSettings
}

// SettingsSavedMsg signals settings were written from the settings form.
type SettingsSavedMsg struct {
	Settings models.PetSettings
}

// DaemonDisconnectedMsg signals the host is gone.
type DaemonDisconnectedMsg struct{}

// ErrorMsg carries an error to display.
type ErrorMsg struct {
	Err error
}

// TickMsg is a periodic tick for polling the window.
type TickMsg struct{}

// ClearErrorMsg clears the error display.
type ClearErrorMsg struct{}

// ClearSavedMsg clears the "Saved" indicator.
type ClearSavedMsg struct{}
