package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies what changed in the graph.
type EventType string

const (
	EventNodeUpserted         EventType = "node_upserted"
	EventRelationshipUpserted EventType = "relationship_upserted"
	EventGraphReset           EventType = "graph_reset"
)

// Event is a graph-change notification delivered to subscribers. UIs use
// these to offer a metadata reload when the label or type inventory may
// have changed.
type Event struct {
	ID      string    `json:"id"`
	Type    EventType `json:"type"`
	Label   string    `json:"label,omitempty"`
	RelType string    `json:"relType,omitempty"`
	At      time.Time `json:"at"`
}

// NewEvent builds an event with a fresh ID and timestamp.
func NewEvent(eventType EventType) Event {
	return Event{
		ID:   uuid.New().String(),
		Type: eventType,
		At:   time.Now().UTC(),
	}
}

// NodeUpserted returns an event for a created or updated node.
func NodeUpserted(label string) Event {
	e := NewEvent(EventNodeUpserted)
	e.Label = label
	return e
}

// RelationshipUpserted returns an event for a created or updated relationship.
func RelationshipUpserted(relType string) Event {
	e := NewEvent(EventRelationshipUpserted)
	e.RelType = relType
	return e
}

// GraphReset returns an event for a full wipe of the store.
func GraphReset() Event {
	return NewEvent(EventGraphReset)
}
