package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/deskpet-io/deskpet/internal/models"
	"github.com/deskpet-io/deskpet/internal/pet"
)

// Sprite size in cells. Every sprite row is exactly spriteWidth wide.
const (
	spriteWidth  = 7
	spriteHeight = 3
)

// Maximum bubble text width in cells, before the border.
const bubbleMaxText = 30

var sprites = map[pet.State][]string{
	pet.StateIdle: {
		` /\_/\ `,
		`( o.o )`,
		` > ^ < `,
	},
	pet.StateWalking: {
		` /\_/\ `,
		`( ^.^ )`,
		` /   \ `,
	},
	pet.StateDragging: {
		` /\_/\ `,
		`( O.O )`,
		` \/ \/ `,
	},
}

// menuItems are the context menu entries, in display order.
var menuItems = []string{"Speak", "Random move", "Quit"}

// stageLayout maps the host screen onto the terminal area between the
// header and the status bar.
type stageLayout struct {
	top    int // first terminal row of the stage
	width  int
	height int

	maxX int // largest window X on the host screen
	maxY int
}

func computeLayout(width, height int, window models.WindowInfo) stageLayout {
	// Reserve: 1 line header, 1 line status bar
	stageHeight := height - 2
	if stageHeight < spriteHeight {
		stageHeight = spriteHeight
	}
	if width < spriteWidth {
		width = spriteWidth
	}

	return stageLayout{
		top:    1,
		width:  width,
		height: stageHeight,
		maxX:   max(window.ScreenWidth-window.Width, 0),
		maxY:   max(window.ScreenHeight-window.Height, 0),
	}
}

// cellFor returns the stage cell of the sprite's top-left corner for a
// window position.
func (l stageLayout) cellFor(pos pet.Position) (col, row int) {
	return scale(pos.X, l.maxX, l.width-spriteWidth), scale(pos.Y, l.maxY, l.height-spriteHeight)
}

// positionFor is the inverse of cellFor.
func (l stageLayout) positionFor(col, row int) pet.Position {
	return pet.Position{
		X: scale(col, l.width-spriteWidth, l.maxX),
		Y: scale(row, l.height-spriteHeight, l.maxY),
	}
}

// clampCell keeps a sprite cell inside the stage.
func (l stageLayout) clampCell(col, row int) (int, int) {
	return clampInt(col, 0, l.width-spriteWidth), clampInt(row, 0, l.height-spriteHeight)
}

// scale maps v from [0, from] onto [0, to], rounding to the nearest cell.
func scale(v, from, to int) int {
	if from <= 0 || to <= 0 {
		return 0
	}
	v = clampInt(v, 0, from)
	return (v*to + from/2) / from
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// hitsSprite reports whether stage cell (x, y) is on the sprite at (col, row).
func hitsSprite(x, y, col, row int) bool {
	return x >= col && x < col+spriteWidth && y >= row && y < row+spriteHeight
}

func renderSprite(state pet.State) string {
	lines, ok := sprites[state]
	if !ok {
		lines = sprites[pet.StateIdle]
	}
	style := petIdleStyle
	switch state {
	case pet.StateWalking:
		style = petWalkingStyle
	case pet.StateDragging:
		style = petDraggingStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

func renderBubble(message string) string {
	return bubbleStyle.Render(ansi.Truncate(message, bubbleMaxText, "…"))
}

// bubblePosition puts the bubble above the sprite, or below it when there
// is no room, keeping it inside the stage horizontally.
func bubblePosition(bubble string, col, row int, l stageLayout) (left, top int) {
	w, h := lipgloss.Size(bubble)
	left = clampInt(col+spriteWidth/2-w/2, 0, l.width-w)
	top = row - h
	if top < 0 {
		top = row + spriteHeight
	}
	return left, top
}

func renderMenu(cursor int) string {
	width := 0
	for _, item := range menuItems {
		width = max(width, lipgloss.Width(item))
	}
	lines := make([]string, len(menuItems))
	for i, item := range menuItems {
		style := menuItemStyle
		if i == cursor {
			style = menuSelectedStyle
		}
		lines[i] = style.Width(width + 2).Render(item)
	}
	return menuStyle.Render(strings.Join(lines, "\n"))
}

// menuPosition puts the menu to the right of the sprite, or to its left
// when it would run off the stage.
func menuPosition(menu string, col, row int, l stageLayout) (left, top int) {
	w, h := lipgloss.Size(menu)
	left = col + spriteWidth + 1
	if left+w > l.width {
		left = max(col-w-1, 0)
	}
	top = clampInt(row, 0, l.height-h)
	return left, top
}

// menuItemAt returns the menu entry under stage cell (x, y), or -1.
func menuItemAt(x, y, left, top int, menu string) int {
	w, _ := lipgloss.Size(menu)
	if x <= left || x >= left+w-1 {
		return -1
	}
	i := y - top - 1 // skip the top border
	if i < 0 || i >= len(menuItems) {
		return -1
	}
	return i
}

// renderStage draws the pet, its bubble and the menu on an empty stage.
func renderStage(l stageLayout, snap pet.Snapshot, col, row, menuCursor int) string {
	blank := strings.Repeat(" ", l.width)
	lines := make([]string, l.height)
	for i := range lines {
		lines[i] = blank
	}
	stage := strings.Join(lines, "\n")

	stage = placeOverlay(stage, renderSprite(snap.State), col, row)

	if snap.Message != "" {
		bubble := renderBubble(snap.Message)
		left, top := bubblePosition(bubble, col, row, l)
		stage = placeOverlay(stage, bubble, left, top)
	}

	if snap.MenuOpen {
		menu := renderMenu(menuCursor)
		left, top := menuPosition(menu, col, row, l)
		stage = placeOverlay(stage, menu, left, top)
	}

	return stage
}
