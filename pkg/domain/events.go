package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventMove        EventType = "move"
	EventIllegalMove EventType = "illegal_move"
	EventPhase       EventType = "phase"
	EventTruncate    EventType = "truncate"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// MoveEvent is emitted after a move was accepted and appended.
type MoveEvent struct {
	EventBase
	NodeID   NodeID `json:"node_id"`
	Move     Move   `json:"move"`
	Captured int    `json:"captured"`
	// Reused is true when the move matched an existing child.
	Reused bool `json:"reused"`
}

// IllegalMoveEvent is emitted when the rules engine rejects a move.
type IllegalMoveEvent struct {
	EventBase
	Move Move  `json:"move"`
	Err  error `json:"-"`
}

// PhaseEvent is emitted when the game changes phase.
type PhaseEvent struct {
	EventBase
	From Phase `json:"from"`
	To   Phase `json:"to"`
}

// TruncateEvent is emitted after a node and its subtree were removed.
type TruncateEvent struct {
	EventBase
	NodeID  NodeID `json:"node_id"`
	Removed int    `json:"removed"`
}

// LifecycleHooks defines callbacks for game observability.
type LifecycleHooks struct {
	OnMove        func(*MoveEvent)
	OnIllegalMove func(*IllegalMoveEvent)
	OnPhase       func(*PhaseEvent)
	OnTruncate    func(*TruncateEvent)
}

// NewEventBase stamps an event with the current time.
func NewEventBase(t EventType) EventBase {
	return EventBase{Timestamp: time.Now(), Type: t}
}
