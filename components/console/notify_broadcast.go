package console

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// BroadcastNotifier fans out notifications to in-process subscribers so the
// browser can surface toasts without polling. It satisfies Notifier and can
// sit in front of another notifier via Tee.
type BroadcastNotifier struct {
	mu   sync.RWMutex
	subs map[int]chan Notification
	next int
}

// NewBroadcastNotifier creates a broadcast notifier with no subscribers.
func NewBroadcastNotifier() *BroadcastNotifier {
	return &BroadcastNotifier{
		subs: make(map[int]chan Notification),
	}
}

// Notify delivers the message to every subscriber. Slow subscribers drop
// messages rather than block the mutation that produced them.
func (n *BroadcastNotifier) Notify(_ context.Context, level NotifyLevel, message string) {
	event := Notification{Level: level, Message: message}
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, ch := range n.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribe returns a channel of notifications and a cancel func.
func (n *BroadcastNotifier) Subscribe() (<-chan Notification, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.next
	n.next++
	ch := make(chan Notification, 8)
	n.subs[id] = ch
	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if sub, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the request and streams notifications as JSON.
func (n *BroadcastNotifier) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer conn.Close()

	events, cancel := n.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}

// ServeSSE provides a Server-Sent Events endpoint for notifications.
func (n *BroadcastNotifier) ServeSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	events, cancel := n.Subscribe()
	defer cancel()

	encoder := json.NewEncoder(w)
	flusher, _ := w.(http.Flusher)

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			w.Write([]byte("data: "))
			if err := encoder.Encode(event); err != nil {
				return
			}
			w.Write([]byte("\n"))
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}

// Tee combines notifiers so a mutation can both buffer toasts for the next
// response and push them to live subscribers.
func Tee(notifiers ...Notifier) Notifier {
	return teeNotifier(notifiers)
}

type teeNotifier []Notifier

func (t teeNotifier) Notify(ctx context.Context, level NotifyLevel, message string) {
	for _, n := range t {
		if n != nil {
			n.Notify(ctx, level, message)
		}
	}
}
