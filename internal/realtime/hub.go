package realtime

// Package realtime implements the battle-scoped publish/subscribe channel.
// The engine publishes fire-and-forget events; UI clients subscribe over a
// websocket to the topic of the battle they are watching. Events are not
// consumed by the engine itself and delivery is best-effort.

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/triadlabs/triad-cards/internal/logging"
)

// Event is a named message broadcast to one topic.
type Event struct {
	Type    string      `json:"type"`
	Topic   string      `json:"topic"`
	Payload interface{} `json:"payload,omitempty"`
}

// Publisher is the side of the hub the engine depends on.
type Publisher interface {
	Publish(topic string, ev Event)
}

type subscriber struct {
	ch chan []byte
}

// Hub fans events out to websocket subscribers keyed by topic.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*subscriber]struct{})}
}

// Publish broadcasts an event to every subscriber of the topic. Slow
// subscribers are skipped rather than blocking the publisher.
func (h *Hub) Publish(topic string, ev Event) {
	ev.Topic = topic
	b, err := json.Marshal(ev)
	if err != nil {
		logging.Error("realtime event marshal failed", err, logging.Fields{"type": ev.Type})
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs[topic] {
		select {
		case s.ch <- b:
		default:
		}
	}
}

func (h *Hub) subscribe(topic string) *subscriber {
	s := &subscriber{ch: make(chan []byte, 16)}
	h.mu.Lock()
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[*subscriber]struct{})
	}
	h.subs[topic][s] = struct{}{}
	h.mu.Unlock()
	return s
}

func (h *Hub) unsubscribe(topic string, s *subscriber) {
	h.mu.Lock()
	if set := h.subs[topic]; set != nil {
		delete(set, s)
		if len(set) == 0 {
			delete(h.subs, topic)
		}
	}
	h.mu.Unlock()
}

// Serve upgrades the request to a websocket and streams topic events until
// the client disconnects. Clients only receive; inbound messages are
// discarded by CloseRead.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, topic string) error {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		return err
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	s := h.subscribe(topic)
	defer h.unsubscribe(topic, s)

	// CloseRead returns a context that is cancelled when the client closes
	// the connection.
	ctx := conn.CloseRead(r.Context())
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-s.ch:
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := conn.Write(writeCtx, websocket.MessageText, msg)
			cancel()
			if err != nil {
				return err
			}
		}
	}
}
