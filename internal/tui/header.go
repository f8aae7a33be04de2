package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/deskpet-io/deskpet/internal/models"
	"github.com/deskpet-io/deskpet/internal/pet"
)

func renderHeader(state pet.State, window models.WindowInfo, settings models.PetSettings, width int) string {
	dot := lipgloss.NewStyle().Foreground(colorCyan).Render("●")
	name := lipgloss.NewStyle().Bold(true).Render("Deskpet")

	left := fmt.Sprintf(" %s %s  %s", dot, name, renderStateBadge(state))

	auto := "auto-move off"
	if settings.AutoMove {
		auto = fmt.Sprintf("auto-move every %ds", settings.MoveIntervalSeconds())
	}
	pos := fmt.Sprintf("(%d, %d)", window.X, window.Y)
	if !window.Visible {
		pos += " hidden"
	}
	right := lipgloss.NewStyle().Foreground(colorDim).Render(auto+"  "+pos) + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return headerStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func renderStateBadge(state pet.State) string {
	switch state {
	case pet.StateWalking:
		return badgeWalkingStyle.Render("● Walking")
	case pet.StateDragging:
		return badgeDraggingStyle.Render("● Dragging")
	default:
		return badgeIdleStyle.Render("● Idle")
	}
}
