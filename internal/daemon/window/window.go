// Package window models the pet window owned by the host process.
package window

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/deskpet-io/deskpet/internal/models"
)

// Window is the host-side pet window: a rectangle inside fixed screen bounds.
// It is safe for concurrent use.
type Window struct {
	mu       sync.Mutex
	info     models.WindowInfo
	intn     func(n int) int
	onChange func(models.WindowInfo)
}

// Option configures a Window.
type Option func(*Window)

// WithScreen sets the screen size in pixels.
func WithScreen(width, height int) Option {
	return func(w *Window) {
		w.info.ScreenWidth = width
		w.info.ScreenHeight = height
	}
}

// WithSize sets the window size in pixels.
func WithSize(width, height int) Option {
	return func(w *Window) {
		w.info.Width = width
		w.info.Height = height
	}
}

// WithRand replaces the source of random positions. intn must return a
// value in [0, n).
func WithRand(intn func(n int) int) Option {
	return func(w *Window) {
		w.intn = intn
	}
}

// New creates a hidden window at the origin of a default-sized screen.
func New(opts ...Option) (*Window, error) {
	w := &Window{
		info: models.WindowInfo{
			Width:        models.DefaultWindowWidth,
			Height:       models.DefaultWindowHeight,
			ScreenWidth:  models.DefaultScreenWidth,
			ScreenHeight: models.DefaultScreenHeight,
		},
		intn: rand.IntN,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.info.Width <= 0 || w.info.Height <= 0 {
		return nil, fmt.Errorf("invalid window size %dx%d", w.info.Width, w.info.Height)
	}
	if w.info.ScreenWidth < w.info.Width || w.info.ScreenHeight < w.info.Height {
		return nil, fmt.Errorf("window %dx%d does not fit on screen %dx%d",
			w.info.Width, w.info.Height, w.info.ScreenWidth, w.info.ScreenHeight)
	}
	return w, nil
}

// OnChange registers fn to be called after every change, outside the lock.
func (w *Window) OnChange(fn func(models.WindowInfo)) {
	w.mu.Lock()
	w.onChange = fn
	w.mu.Unlock()
}

// Info returns a snapshot of the window.
func (w *Window) Info() models.WindowInfo {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.info
}

// RandomPosition picks a top-left corner that keeps the whole window on
// screen: x in [0, screenW-winW), y in [0, screenH-winH).
func (w *Window) RandomPosition() (x, y int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.randIn(w.info.ScreenWidth - w.info.Width), w.randIn(w.info.ScreenHeight - w.info.Height)
}

func (w *Window) randIn(span int) int {
	if span <= 0 {
		return 0
	}
	return w.intn(span)
}

// Move places the window at (x, y), clamped so it stays on screen.
// It returns the position actually applied.
func (w *Window) Move(x, y int) (int, int) {
	w.mu.Lock()
	w.info.X = clamp(x, 0, w.info.ScreenWidth-w.info.Width)
	w.info.Y = clamp(y, 0, w.info.ScreenHeight-w.info.Height)
	x, y = w.info.X, w.info.Y
	w.unlockAndNotify()
	return x, y
}

// Show makes the window visible.
func (w *Window) Show() models.WindowInfo {
	return w.update(func(info *models.WindowInfo) { info.Visible = true })
}

// Hide hides the window.
func (w *Window) Hide() models.WindowInfo {
	return w.update(func(info *models.WindowInfo) { info.Visible = false })
}

// SetAlwaysOnTop sets the always-on-top flag.
func (w *Window) SetAlwaysOnTop(on bool) models.WindowInfo {
	return w.update(func(info *models.WindowInfo) { info.AlwaysOnTop = on })
}

func (w *Window) update(fn func(*models.WindowInfo)) models.WindowInfo {
	w.mu.Lock()
	fn(&w.info)
	info := w.info
	w.unlockAndNotify()
	return info
}

// unlockAndNotify releases the lock and reports the new state.
func (w *Window) unlockAndNotify() {
	info, fn := w.info, w.onChange
	w.mu.Unlock()
	if fn != nil {
		fn(info)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
