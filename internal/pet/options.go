package pet

import (
	"math/rand/v2"
	"time"

	"github.com/deskpet-io/deskpet/internal/models"
)

// Defaults for Options.
const (
	DefaultTickInterval   = 5000 * time.Millisecond
	DefaultDwellTime      = 2000 * time.Millisecond
	DefaultMessageTTL     = 3000 * time.Millisecond
	DefaultMoveThreshold  = 0.7
	DefaultRequestTimeout = 5 * time.Second
)

// DefaultGreetings are the phrases a click picks from.
var DefaultGreetings = []string{
	"你好呀！ 😊",
	"要一起玩吗？ 🎮",
	"今天过得怎么样？ ✨",
	"我在这里陪你哦~ 💖",
	"点击我试试看！ 🌟",
}

// Options configures a Controller. Zero values take the defaults above.
type Options struct {
	TickInterval   time.Duration
	DwellTime      time.Duration
	MessageTTL     time.Duration
	RequestTimeout time.Duration

	// MoveThreshold is compared against Rand on each tick; a draw strictly
	// above it starts a move. nil means DefaultMoveThreshold. Use Threshold
	// to set it, including to 0.
	MoveThreshold *float64

	Greetings []string

	// Rand returns a uniform value in [0, 1).
	Rand func() float64

	// DisableAutoMove turns the autonomous tick off.
	DisableAutoMove bool

	// MenuMoveKeepsState makes the "random move" menu entry reposition the
	// window without the Idle -> Walking -> Idle transition.
	MenuMoveKeepsState bool
}

// Threshold returns a MoveThreshold value.
func Threshold(v float64) *float64 {
	return &v
}

// OptionsFromSettings derives the tick configuration from persisted settings.
func OptionsFromSettings(s models.PetSettings) Options {
	return Options{
		TickInterval:    time.Duration(s.ClampedMoveInterval()) * time.Millisecond,
		DisableAutoMove: !s.AutoMove,
	}
}

func (o Options) withDefaults() Options {
	if o.TickInterval <= 0 {
		o.TickInterval = DefaultTickInterval
	}
	if o.DwellTime <= 0 {
		o.DwellTime = DefaultDwellTime
	}
	if o.MessageTTL <= 0 {
		o.MessageTTL = DefaultMessageTTL
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = DefaultRequestTimeout
	}
	if o.MoveThreshold == nil {
		o.MoveThreshold = Threshold(DefaultMoveThreshold)
	}
	if len(o.Greetings) == 0 {
		o.Greetings = DefaultGreetings
	}
	if o.Rand == nil {
		o.Rand = rand.Float64
	}
	return o
}
