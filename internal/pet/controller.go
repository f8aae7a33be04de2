package pet

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/deskpet-io/deskpet/internal/models"
)

const (
	eventBuffer  = 64
	outboxBuffer = 16
)

// Controller owns the pet's state. All state lives on a single loop
// goroutine; public methods hand closures to that loop and wait for them.
// Timer callbacks and host responses are posted to the same loop, so they
// run one at a time in arrival order.
type Controller struct {
	svc  Positioner
	opts Options

	cmds   chan func()
	outbox chan outboundRequest
	events chan Event
	done   chan struct{} // closed when the loop exits

	lifeMu  sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	stopped bool
	wg      sync.WaitGroup

	// Loop-owned fields. Never touched outside the loop goroutine.
	state     State
	message   string
	menuOpen  bool
	quitting  bool
	autoMove  bool
	tickEvery time.Duration
	ticker    *time.Ticker
	dwell     *time.Timer
	dwellGen  uint64
	msgTimer  *time.Timer
	msgGen    uint64
}

type outboundRequest struct {
	name string
	do   func(ctx context.Context) error
}

// New creates a controller that drives svc. Call Start before using it.
func New(svc Positioner, opts Options) *Controller {
	opts = opts.withDefaults()
	return &Controller{
		svc:       svc,
		opts:      opts,
		cmds:      make(chan func()),
		outbox:    make(chan outboundRequest, outboxBuffer),
		events:    make(chan Event, eventBuffer),
		done:      make(chan struct{}),
		state:     StateIdle,
		autoMove:  !opts.DisableAutoMove,
		tickEvery: opts.TickInterval,
	}
}

// Start launches the loop and arms the autonomous tick.
// Calls made before Start are ignored.
func (c *Controller) Start(ctx context.Context) {
	c.lifeMu.Lock()
	defer c.lifeMu.Unlock()
	if c.started || c.stopped {
		return
	}
	c.started = true
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.armTicker()

	c.wg.Add(2)
	go c.loop()
	go c.dispatch()
}

// Stop tears the controller down: the tick and all timers are disposed, the
// events channel is closed, and pending host requests are flushed.
// It blocks until every goroutine has exited.
func (c *Controller) Stop() {
	c.lifeMu.Lock()
	defer c.lifeMu.Unlock()
	if c.stopped {
		return
	}
	c.stopped = true
	if !c.started {
		close(c.done)
		close(c.events)
		return
	}
	c.cancel()
	c.wg.Wait()
}

// Events returns the channel of changes for the presentation layer.
// It is closed by Stop.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// Snapshot returns the current renderable state.
func (c *Controller) Snapshot() Snapshot {
	var s Snapshot
	c.do(func() {
		s = Snapshot{State: c.state, Message: c.message, MenuOpen: c.menuOpen}
	})
	return s
}

// State returns the current pet state.
func (c *Controller) State() State {
	return c.Snapshot().State
}

// Message returns the active greeting, or "".
func (c *Controller) Message() string {
	return c.Snapshot().Message
}

// MenuOpen reports whether the context menu is visible.
func (c *Controller) MenuOpen() bool {
	return c.Snapshot().MenuOpen
}

// OnPetClick shows a random greeting. State is untouched.
func (c *Controller) OnPetClick() {
	c.do(c.speak)
}

// OnRightClick toggles the context menu.
func (c *Controller) OnRightClick() {
	c.do(func() {
		c.setMenu(!c.menuOpen)
	})
}

// OnMenuSpeak closes the menu and greets as if the pet was clicked.
func (c *Controller) OnMenuSpeak() {
	c.do(func() {
		c.setMenu(false)
		c.speak()
	})
}

// OnMenuRandomMove closes the menu and moves the window to a random position.
func (c *Controller) OnMenuRandomMove() {
	c.do(func() {
		c.setMenu(false)
		c.requestMove(!c.opts.MenuMoveKeepsState)
	})
}

// OnMenuQuit closes the menu and asks the host to terminate. Only the first
// call sends the request.
func (c *Controller) OnMenuQuit() {
	c.do(func() {
		c.setMenu(false)
		if c.quitting {
			return
		}
		c.quitting = true
		c.stopTicker()
		c.stopDwell()
		c.enqueue("quit", func(ctx context.Context) error {
			return c.svc.Quit(ctx)
		})
		c.emit(Event{Type: EventQuit})
	})
}

// BeginDrag puts the pet in the Dragging state. A pending return to Idle
// is cancelled so it cannot fire mid-drag.
func (c *Controller) BeginDrag() {
	c.do(func() {
		if c.quitting {
			return
		}
		c.stopDwell()
		c.setState(StateDragging)
	})
}

// EndDrag drops the pet at pos and returns it to Idle.
// It does nothing unless a drag is in progress.
func (c *Controller) EndDrag(pos Position) {
	c.do(func() {
		if c.state != StateDragging {
			return
		}
		c.moveWindow(pos)
		c.setState(StateIdle)
	})
}

// ApplySettings re-arms the autonomous tick from live settings.
func (c *Controller) ApplySettings(s models.PetSettings) {
	c.do(func() {
		c.autoMove = s.AutoMove
		c.tickEvery = time.Duration(s.ClampedMoveInterval()) * time.Millisecond
		c.armTicker()
	})
}

// do runs fn on the loop and waits for it. It returns false if the loop is
// not running.
func (c *Controller) do(fn func()) bool {
	c.lifeMu.Lock()
	running := c.started && !c.stopped
	c.lifeMu.Unlock()
	if !running {
		return false
	}

	finished := make(chan struct{})
	select {
	case c.cmds <- func() { fn(); close(finished) }:
	case <-c.done:
		return false
	}
	<-finished
	return true
}

// post hands fn to the loop without waiting for it to run.
func (c *Controller) post(fn func()) {
	select {
	case c.cmds <- fn:
	case <-c.done:
	}
}

func (c *Controller) loop() {
	defer c.wg.Done()
	defer close(c.done)
	defer c.teardown()

	for {
		var tick <-chan time.Time
		if c.ticker != nil {
			tick = c.ticker.C
		}

		select {
		case <-c.ctx.Done():
			return
		case fn := <-c.cmds:
			fn()
		case <-tick:
			c.handleTick()
		}
	}
}

func (c *Controller) teardown() {
	c.stopTicker()
	c.stopDwell()
	c.stopMessageTimer()
	close(c.events)
}

// dispatch sends fire-and-forget requests to the host in issue order. Once
// the loop has exited it flushes whatever is still queued.
func (c *Controller) dispatch() {
	defer c.wg.Done()
	for {
		select {
		case req := <-c.outbox:
			c.send(req)
		case <-c.done:
			for {
				select {
				case req := <-c.outbox:
					c.send(req)
				default:
					return
				}
			}
		}
	}
}

func (c *Controller) send(req outboundRequest) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.ctx), c.opts.RequestTimeout)
	defer cancel()
	if err := req.do(ctx); err != nil {
		log.Printf("[pet] %s request failed: %v", req.name, err)
	}
}

func (c *Controller) enqueue(name string, fn func(ctx context.Context) error) {
	select {
	case c.outbox <- outboundRequest{name: name, do: fn}:
	default:
		log.Printf("[pet] dropping %s request: outbox full", name)
	}
}

// handleTick decides whether the pet wanders off on its own.
func (c *Controller) handleTick() {
	if !c.autoMove || c.quitting || c.state != StateIdle {
		return
	}
	if c.opts.Rand() <= *c.opts.MoveThreshold {
		return
	}
	c.requestMove(true)
}

// requestMove asks the host for a target. The state does not change until
// the answer arrives; a failed request leaves the pet where it is.
func (c *Controller) requestMove(walk bool) {
	if c.quitting {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(c.ctx, c.opts.RequestTimeout)
		defer cancel()

		pos, err := c.svc.RandomPosition(ctx)
		if err != nil {
			log.Printf("[pet] position request failed: %v", err)
			return
		}
		c.post(func() {
			c.commitMove(pos, walk)
		})
	}()
}

func (c *Controller) commitMove(pos Position, walk bool) {
	if c.quitting {
		return
	}
	if c.state == StateDragging {
		log.Printf("[pet] dropping move to %s: drag in progress", pos)
		return
	}
	if walk {
		c.setState(StateWalking)
		c.armDwell()
	}
	c.moveWindow(pos)
}

func (c *Controller) moveWindow(pos Position) {
	c.enqueue("move", func(ctx context.Context) error {
		return c.svc.MoveWindow(ctx, pos)
	})
	c.emit(Event{Type: EventMoved, Position: pos})
}

// armDwell schedules the return to Idle, replacing any pending one.
func (c *Controller) armDwell() {
	c.stopDwell()
	gen := c.dwellGen
	c.dwell = time.AfterFunc(c.opts.DwellTime, func() {
		c.post(func() {
			if gen != c.dwellGen {
				return
			}
			c.dwell = nil
			if c.state == StateWalking {
				c.setState(StateIdle)
			}
		})
	})
}

func (c *Controller) stopDwell() {
	c.dwellGen++
	if c.dwell != nil {
		c.dwell.Stop()
		c.dwell = nil
	}
}

func (c *Controller) speak() {
	if len(c.opts.Greetings) == 0 {
		return
	}
	n := len(c.opts.Greetings)
	i := int(c.opts.Rand() * float64(n))
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	c.showMessage(c.opts.Greetings[i])
}

// showMessage replaces the active message and restarts its expiry.
func (c *Controller) showMessage(text string) {
	c.stopMessageTimer()
	c.message = text
	c.emit(Event{Type: EventMessageChanged})

	gen := c.msgGen
	c.msgTimer = time.AfterFunc(c.opts.MessageTTL, func() {
		c.post(func() {
			if gen != c.msgGen {
				return
			}
			c.msgTimer = nil
			c.message = ""
			c.emit(Event{Type: EventMessageChanged})
		})
	})
}

func (c *Controller) stopMessageTimer() {
	c.msgGen++
	if c.msgTimer != nil {
		c.msgTimer.Stop()
		c.msgTimer = nil
	}
}

func (c *Controller) setMenu(open bool) {
	if c.menuOpen == open {
		return
	}
	c.menuOpen = open
	c.emit(Event{Type: EventMenuChanged})
}

func (c *Controller) setState(s State) {
	if c.state == s {
		return
	}
	log.Printf("[pet] state %s -> %s", c.state, s)
	c.state = s
	c.emit(Event{Type: EventStateChanged})
}

// armTicker starts, re-times, or stops the autonomous tick to match the
// current settings.
func (c *Controller) armTicker() {
	if !c.autoMove || c.quitting {
		c.stopTicker()
		return
	}
	if c.ticker == nil {
		c.ticker = time.NewTicker(c.tickEvery)
		return
	}
	c.ticker.Reset(c.tickEvery)
}

func (c *Controller) stopTicker() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}

// emit fills in the current view and publishes ev without blocking the loop.
func (c *Controller) emit(ev Event) {
	ev.State = c.state
	ev.Message = c.message
	ev.MenuOpen = c.menuOpen
	select {
	case c.events <- ev:
	default:
		log.Printf("[pet] dropping %s event: channel full", ev.Type)
	}
}
