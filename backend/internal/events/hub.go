package events

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/logger"
)

const (
	// Buffered events per subscriber before it is considered too slow.
	subscriberBuffer = 16

	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
)

// Hub fans graph-change events out to subscribers. Broadcast never blocks:
// a subscriber that cannot keep up with its buffer is dropped.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[*subscriber]struct{}
	logger      *zap.Logger
}

type subscriber struct {
	events chan Event
	once   sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() { close(s.events) })
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[*subscriber]struct{}),
		logger:      logger.Get(),
	}
}

// Subscribe registers a listener. The returned cancel func must be called
// when the listener is done; the channel is closed by the hub.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	sub := &subscriber{events: make(chan Event, subscriberBuffer)}

	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		_, ok := h.subscribers[sub]
		delete(h.subscribers, sub)
		h.mu.Unlock()
		if ok {
			sub.close()
		}
	}
	return sub.events, cancel
}

// Broadcast delivers an event to every subscriber without blocking.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	var slow []*subscriber
	for sub := range h.subscribers {
		select {
		case sub.events <- event:
		default:
			slow = append(slow, sub)
		}
	}
	h.mu.RUnlock()

	if len(slow) == 0 {
		return
	}

	h.mu.Lock()
	for _, sub := range slow {
		if _, ok := h.subscribers[sub]; ok {
			delete(h.subscribers, sub)
			sub.close()
		}
	}
	h.mu.Unlock()

	h.logger.Warn("Dropped slow event subscribers", zap.Int("count", len(slow)))
}

// SubscriberCount returns the number of active subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin access is governed by the API's CORS configuration;
	// the websocket endpoint accepts any origin the browser lets through.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades the request to a websocket connection and streams events
// over it until the client disconnects or falls behind.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	events, cancel := h.Subscribe()
	h.logger.Debug("Event subscriber connected", zap.String("remote", conn.RemoteAddr().String()))

	// Reading is required to process close and pong control frames.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	go func() {
		defer conn.Close()
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()

		for {
			select {
			case event, ok := <-events:
				if !ok {
					_ = conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseGoingAway, "subscriber dropped"),
						time.Now().Add(writeTimeout))
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteJSON(event); err != nil {
					cancel()
					return
				}
			case <-ticker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					cancel()
					return
				}
			}
		}
	}()

	return nil
}
