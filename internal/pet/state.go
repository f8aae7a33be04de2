// Package pet implements the pet behavior controller: the pet's observable
// state, the autonomous movement timer, transient greetings, the context
// menu, and the requests it sends to the host that owns the window.
package pet

import (
	"context"
	"fmt"
)

// State is the pet's observable behavior state.
type State int

// Pet states. Dragging is entered only through BeginDrag.
const (
	StateIdle State = iota
	StateWalking
	StateDragging
)

// String returns the presentation class name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWalking:
		return "walking"
	case StateDragging:
		return "dragging"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Position is a pair of screen coordinates in pixels.
type Position struct {
	X int
	Y int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Positioner is the host-side capability the controller drives.
// The controller never retries; errors are logged and dropped.
type Positioner interface {
	// RandomPosition returns a window position inside the visible screen.
	RandomPosition(ctx context.Context) (Position, error)
	// MoveWindow moves the pet window.
	MoveWindow(ctx context.Context, pos Position) error
	// Quit asks the host process to terminate.
	Quit(ctx context.Context) error
}
