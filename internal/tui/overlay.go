package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// renderOverlay renders an overlay centered on top of a dimmed base view.
func renderOverlay(base, overlayContent string, width, height int) string {
	baseLines := strings.Split(base, "\n")
	for i, line := range baseLines {
		baseLines[i] = overlayDimStyle.Render(ansi.Strip(line))
	}
	dimmed := strings.Join(baseLines, "\n")

	overlayWidth, overlayHeight := lipgloss.Size(overlayContent)

	top := (height - overlayHeight) / 2
	left := (width - overlayWidth) / 2
	if top < 1 {
		top = 1
	}
	if left < 1 {
		left = 1
	}

	return placeOverlay(dimmed, overlayContent, left, top)
}

// placeOverlay draws content over base with its top-left corner at
// (left, top), using ANSI-aware slicing. Rows past the end of base are dropped.
func placeOverlay(base, content string, left, top int) string {
	result := strings.Split(base, "\n")
	for i, line := range strings.Split(content, "\n") {
		row := top + i
		if row < 0 || row >= len(result) {
			continue
		}
		bg := result[row]
		bgWidth := lipgloss.Width(bg)

		leftPart := ansi.Truncate(bg, left, "")
		if pad := left - lipgloss.Width(leftPart); pad > 0 {
			leftPart += strings.Repeat(" ", pad)
		}

		rightPart := ""
		rightStart := left + lipgloss.Width(line)
		if rightStart < bgWidth {
			rightPart = ansi.Cut(bg, rightStart, bgWidth)
		}

		result[row] = leftPart + "\033[0m" + line + "\033[0m" + rightPart
	}
	return strings.Join(result, "\n")
}
