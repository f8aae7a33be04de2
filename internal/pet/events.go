package pet

// EventType identifies what changed.
type EventType int

// Event types published to the presentation layer.
const (
	EventStateChanged EventType = iota
	EventMessageChanged
	EventMenuChanged
	EventMoved
	EventQuit
)

func (t EventType) String() string {
	switch t {
	case EventStateChanged:
		return "state-changed"
	case EventMessageChanged:
		return "message-changed"
	case EventMenuChanged:
		return "menu-changed"
	case EventMoved:
		return "moved"
	case EventQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Event carries a change plus the controller's view at the time it happened.
// Position is set only for EventMoved.
type Event struct {
	Type     EventType
	State    State
	Message  string
	MenuOpen bool
	Position Position
}

// Snapshot is the renderable controller state.
type Snapshot struct {
	State    State
	Message  string
	MenuOpen bool
}
