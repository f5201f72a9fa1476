package console

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestBroadcastNotifierSubscribe(t *testing.T) {
	notifier := NewBroadcastNotifier()
	ch, cancel := notifier.Subscribe()
	defer cancel()

	notifier.Notify(context.Background(), NotifySuccess, "Usuario creado")
	select {
	case event := <-ch:
		if event.Level != NotifySuccess || event.Message != "Usuario creado" {
			t.Fatalf("unexpected event: %+v", event)
		}
	default:
		t.Fatalf("expected event to be delivered")
	}
}

func TestBroadcastNotifierDropsWhenSubscriberIsFull(t *testing.T) {
	notifier := NewBroadcastNotifier()
	ch, cancel := notifier.Subscribe()
	defer cancel()

	for i := 0; i < 20; i++ {
		notifier.Notify(context.Background(), NotifyInfo, "mensaje")
	}
	if len(ch) != cap(ch) {
		t.Fatalf("expected buffer to be full, len = %d cap = %d", len(ch), cap(ch))
	}
}

func TestBroadcastNotifierCancelClosesChannel(t *testing.T) {
	notifier := NewBroadcastNotifier()
	ch, cancel := notifier.Subscribe()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed after cancel")
	}
	// A second cancel must be a no-op.
	cancel()
	notifier.Notify(context.Background(), NotifyInfo, "nadie escucha")
}

func TestBroadcastNotifierWebSocket(t *testing.T) {
	notifier := NewBroadcastNotifier()
	server := httptest.NewServer(http.HandlerFunc(notifier.ServeWebSocket))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// The handler subscribes after the handshake completes; wait for it.
	deadline := time.Now().Add(2 * time.Second)
	for {
		notifier.mu.RLock()
		subscribed := len(notifier.subs) > 0
		notifier.mu.RUnlock()
		if subscribed {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("subscriber never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	notifier.Notify(context.Background(), NotifyError, "No se pudo eliminar")

	var event Notification
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("read: %v", err)
	}
	if event.Level != NotifyError || event.Message != "No se pudo eliminar" {
		t.Fatalf("unexpected event: %+v", event)
	}
}

func TestTeeNotifierFansOut(t *testing.T) {
	buffered := &CollectingNotifier{}
	broadcast := NewBroadcastNotifier()
	ch, cancel := broadcast.Subscribe()
	defer cancel()

	Tee(buffered, nil, broadcast).Notify(context.Background(), NotifyInfo, "hola")

	if pending := buffered.Drain(); len(pending) != 1 || pending[0].Message != "hola" {
		t.Fatalf("buffered notifier missed the message: %#v", pending)
	}
	select {
	case event := <-ch:
		if event.Message != "hola" {
			t.Fatalf("unexpected event: %+v", event)
		}
	default:
		t.Fatal("broadcast notifier missed the message")
	}
}
