package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/deskpet-io/deskpet/internal/models"
)

// FieldType defines the type of a settings field.
type FieldType int

const (
	fieldToggle FieldType = iota
	fieldSeconds
)

// SettingsField is a single field in the settings form.
type SettingsField struct {
	Label string
	Type  FieldType
	get   func(*models.PetSettings) any
	set   func(*models.PetSettings, any)
}

var settingsFields = []SettingsField{
	{
		Label: "Auto-move",
		Type:  fieldToggle,
		get:   func(s *models.PetSettings) any { return s.AutoMove },
		set:   func(s *models.PetSettings, v any) { s.AutoMove = v.(bool) },
	},
	{
		Label: "Move interval",
		Type:  fieldSeconds,
		get:   func(s *models.PetSettings) any { return s.MoveIntervalSeconds() },
		set:   func(s *models.PetSettings, v any) { s.SetMoveIntervalSeconds(v.(int)) },
	},
	{
		Label: "Always on top",
		Type:  fieldToggle,
		get:   func(s *models.PetSettings) any { return s.AlwaysOnTop },
		set:   func(s *models.PetSettings, v any) { s.AlwaysOnTop = v.(bool) },
	},
	{
		Label: "Show on start",
		Type:  fieldToggle,
		get:   func(s *models.PetSettings) any { return s.ShowOnStart },
		set:   func(s *models.PetSettings, v any) { s.ShowOnStart = v.(bool) },
	},
}

// SettingsForm edits a copy of the pet settings.
type SettingsForm struct {
	settings models.PetSettings
	cursor   int
}

// NewSettingsForm creates a form over s.
func NewSettingsForm(s models.PetSettings) *SettingsForm {
	return &SettingsForm{settings: s}
}

// Settings returns the edited settings.
func (f *SettingsForm) Settings() models.PetSettings {
	return f.settings
}

// Load replaces the form values, keeping the cursor.
func (f *SettingsForm) Load(s models.PetSettings) {
	f.settings = s
}

// MoveUp moves cursor up.
func (f *SettingsForm) MoveUp() {
	if f.cursor > 0 {
		f.cursor--
	}
}

// MoveDown moves cursor down.
func (f *SettingsForm) MoveDown() {
	if f.cursor < len(settingsFields)-1 {
		f.cursor++
	}
}

// Toggle flips the boolean field under the cursor.
func (f *SettingsForm) Toggle() bool {
	field := settingsFields[f.cursor]
	if field.Type != fieldToggle {
		return false
	}
	field.set(&f.settings, !field.get(&f.settings).(bool))
	return true
}

// Adjust changes the seconds field under the cursor by delta, within
// the allowed interval range.
func (f *SettingsForm) Adjust(delta int) bool {
	field := settingsFields[f.cursor]
	if field.Type != fieldSeconds {
		return false
	}
	cur := field.get(&f.settings).(int)
	next := clampInt(cur+delta, models.MinMoveInterval/1000, models.MaxMoveInterval/1000)
	if next == cur {
		return false
	}
	field.set(&f.settings, next)
	return true
}

// View renders the settings form.
func (f *SettingsForm) View(width int) string {
	lines := []string{overlayTitleStyle.Render("Pet Settings")}
	for i, field := range settingsFields {
		label := settingsLabelStyle.Render(field.Label + ":")

		var val string
		switch field.Type {
		case fieldToggle:
			if field.get(&f.settings).(bool) {
				val = settingsToggleOn.Render("[ON]")
			} else {
				val = settingsToggleOff.Render("[OFF]")
			}
		case fieldSeconds:
			val = settingsValueStyle.Render(fmt.Sprintf("◂ %2ds ▸", field.get(&f.settings).(int)))
		}

		line := label + " " + val
		if i == f.cursor {
			line = settingsCursorStyle.Width(width).Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", lipgloss.NewStyle().Foreground(colorDim).Render("Space toggle  ←/→ adjust  Esc close"))
	return overlayStyle.Render(strings.Join(lines, "\n"))
}
