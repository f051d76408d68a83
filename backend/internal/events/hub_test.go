package events

import (
	"testing"
	"time"
)

func TestHub_Broadcast(t *testing.T) {
	hub := NewHub()
	events, cancel := hub.Subscribe()
	defer cancel()

	hub.Broadcast(NodeUpserted("Module"))

	select {
	case event := <-events:
		if event.Type != EventNodeUpserted {
			t.Errorf("Expected type %q, got %q", EventNodeUpserted, event.Type)
		}
		if event.Label != "Module" {
			t.Errorf("Expected label 'Module', got %q", event.Label)
		}
		if event.ID == "" {
			t.Error("Expected non-empty event ID")
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for event")
	}
}

func TestHub_DropsSlowSubscriber(t *testing.T) {
	hub := NewHub()
	events, cancel := hub.Subscribe()
	defer cancel()

	// Never read: fill the buffer and overflow it.
	for i := 0; i < subscriberBuffer+1; i++ {
		hub.Broadcast(RelationshipUpserted("CONTAINS"))
	}

	if got := hub.SubscriberCount(); got != 0 {
		t.Errorf("Expected slow subscriber to be dropped, %d still registered", got)
	}

	// The hub closes the channel after the buffered events.
	drained := 0
	for range events {
		drained++
	}
	if drained != subscriberBuffer {
		t.Errorf("Expected %d buffered events, drained %d", subscriberBuffer, drained)
	}
}

func TestHub_CancelIsIdempotent(t *testing.T) {
	hub := NewHub()
	_, cancel := hub.Subscribe()

	cancel()
	cancel()

	if got := hub.SubscriberCount(); got != 0 {
		t.Errorf("Expected 0 subscribers after cancel, got %d", got)
	}
}

func TestHub_BroadcastToMultipleSubscribers(t *testing.T) {
	hub := NewHub()

	first, cancelFirst := hub.Subscribe()
	defer cancelFirst()
	second, cancelSecond := hub.Subscribe()
	defer cancelSecond()

	hub.Broadcast(GraphReset())

	for name, ch := range map[string]<-chan Event{"first": first, "second": second} {
		select {
		case event := <-ch:
			if event.Type != EventGraphReset {
				t.Errorf("%s: expected type %q, got %q", name, EventGraphReset, event.Type)
			}
		case <-time.After(time.Second):
			t.Fatalf("%s: timed out waiting for event", name)
		}
	}
}
