package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

func newHelp() help.Model {
	h := help.New()
	h.ShortSeparator = "  "
	h.Styles.ShortKey = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(colorDim)
	h.Styles.FullKey = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(colorDim)
	return h
}

// renderHelp renders the help overlay content.
func renderHelp(h help.Model, width int) string {
	maxWidth := 60
	if width-4 < maxWidth {
		maxWidth = width - 4
	}
	if maxWidth < 30 {
		maxWidth = 30
	}

	sections := []string{
		overlayTitleStyle.Render("Keyboard & Mouse"),
		h.FullHelpView(keys.FullHelp()),
		"",
		lipgloss.NewStyle().Foreground(colorCyan).Bold(true).Render("Mouse"),
		overlayDimStyle.Render("click pet: greet   right-click: menu   drag pet: move"),
		"",
		overlayDimStyle.Render("Press Esc or ? to close"),
	}
	return overlayStyle.Width(maxWidth).Render(strings.Join(sections, "\n"))
}
