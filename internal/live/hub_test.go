package live

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"clubhub/pkg/logger"
)

func testClient(userID string, buffer int) *Client {
	return &Client{userID: userID, send: make(chan []byte, buffer)}
}

func receiveEvent(t *testing.T, c *Client) *Event {
	t.Helper()
	select {
	case payload, ok := <-c.send:
		if !ok {
			t.Fatal("send channel closed unexpectedly")
		}
		var event Event
		if err := json.Unmarshal(payload, &event); err != nil {
			t.Fatalf("bad event payload: %v", err)
		}
		return &event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(logger.GetDefault())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func TestRegisterDeliversWelcomeFromHub(t *testing.T) {
	hub := startHub(t)

	client := testClient("user-a", sendBuffer)
	hub.Register(client)

	event := receiveEvent(t, client)
	if event.Type != EventConnected {
		t.Fatalf("got %q, want connected", event.Type)
	}
	payload, _ := event.Payload.(map[string]interface{})
	if payload["user_id"] != "user-a" {
		t.Errorf("payload = %v", payload)
	}
}

func TestSeatStatusFanOut(t *testing.T) {
	hub := startHub(t)

	first := testClient("user-a", sendBuffer)
	second := testClient("user-b", sendBuffer)
	hub.Register(first)
	hub.Register(second)

	// Every connection is welcomed, then each first connection announces its
	// own user, fanned out to everyone.
	if event := receiveEvent(t, first); event.Type != EventConnected {
		t.Fatalf("got %q, want connected", event.Type)
	}
	if event := receiveEvent(t, first); event.Type != EventUserConnected {
		t.Fatalf("got %q, want user_connected", event.Type)
	}
	if event := receiveEvent(t, first); event.Type != EventUserConnected {
		t.Fatalf("got %q, want user_connected", event.Type)
	}
	if event := receiveEvent(t, second); event.Type != EventConnected {
		t.Fatalf("got %q, want connected", event.Type)
	}
	if event := receiveEvent(t, second); event.Type != EventUserConnected {
		t.Fatalf("got %q, want user_connected", event.Type)
	}

	hub.SeatStatusChanged("pc-1", "PC-101", "OCCUPIED", "#F44336")

	for _, c := range []*Client{first, second} {
		event := receiveEvent(t, c)
		if event.Type != EventSeatStatusChanged {
			t.Fatalf("got %q, want seat_status_changed", event.Type)
		}
		payload, _ := event.Payload.(map[string]interface{})
		if payload["computer_id"] != "pc-1" || payload["status"] != "OCCUPIED" {
			t.Errorf("payload = %v", payload)
		}
	}
}

func TestSlowClientDropped(t *testing.T) {
	hub := startHub(t)

	// Room for its welcome only; its own presence broadcast overflows it.
	slow := testClient("user-a", 1)
	healthy := testClient("user-b", sendBuffer)
	hub.Register(slow)
	hub.Register(healthy)

	if event := receiveEvent(t, healthy); event.Type != EventConnected {
		t.Fatalf("got %q, want connected", event.Type)
	}
	if event := receiveEvent(t, healthy); event.Type != EventUserConnected {
		t.Fatalf("got %q, want user_connected", event.Type)
	}

	hub.SeatStatusChanged("pc-1", "PC-101", "OCCUPIED", "#F44336")

	if event := receiveEvent(t, healthy); event.Type != EventSeatStatusChanged {
		t.Fatalf("healthy client got %q", event.Type)
	}

	// The slow client still holds its buffered welcome; after the overflow
	// the hub closed the channel instead of blocking on it.
	if event := receiveEvent(t, slow); event.Type != EventConnected {
		t.Fatalf("slow client got %q, want connected", event.Type)
	}
	select {
	case payload, ok := <-slow.send:
		if ok {
			t.Fatalf("slow client received %s, want closed channel", payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("slow client's channel was not closed")
	}
}

func TestUnregisterLastConnectionAnnouncesDisconnect(t *testing.T) {
	hub := startHub(t)

	observer := testClient("observer", sendBuffer)
	hub.Register(observer)
	if event := receiveEvent(t, observer); event.Type != EventConnected {
		t.Fatalf("got %q, want connected", event.Type)
	}
	if event := receiveEvent(t, observer); event.Type != EventUserConnected {
		t.Fatalf("got %q, want user_connected", event.Type)
	}

	leaving := testClient("user-a", sendBuffer)
	hub.Register(leaving)
	if event := receiveEvent(t, observer); event.Type != EventUserConnected {
		t.Fatalf("got %q, want user_connected", event.Type)
	}

	hub.Unregister(leaving)
	if event := receiveEvent(t, observer); event.Type != EventUserDisconnected {
		t.Fatalf("got %q, want user_disconnected", event.Type)
	}

	// Drain what the leaving client had buffered before it left, then the
	// channel must be closed.
	if event := receiveEvent(t, leaving); event.Type != EventConnected {
		t.Fatalf("got %q, want connected", event.Type)
	}
	if event := receiveEvent(t, leaving); event.Type != EventUserConnected {
		t.Fatalf("got %q, want user_connected", event.Type)
	}
	select {
	case _, ok := <-leaving.send:
		if ok {
			t.Fatal("expected closed channel for unregistered client")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("unregistered client's channel was not closed")
	}
}

func TestSecondConnectionSameUserNoPresenceEvent(t *testing.T) {
	hub := startHub(t)

	observer := testClient("observer", sendBuffer)
	hub.Register(observer)
	if event := receiveEvent(t, observer); event.Type != EventConnected {
		t.Fatalf("got %q, want connected", event.Type)
	}
	if event := receiveEvent(t, observer); event.Type != EventUserConnected {
		t.Fatalf("got %q, want user_connected", event.Type)
	}

	hub.Register(testClient("user-a", sendBuffer))
	if event := receiveEvent(t, observer); event.Type != EventUserConnected {
		t.Fatalf("got %q, want user_connected", event.Type)
	}

	// A second tab for the same user is welcomed but must not re-announce
	// the user.
	secondTab := testClient("user-a", sendBuffer)
	hub.Register(secondTab)
	if event := receiveEvent(t, secondTab); event.Type != EventConnected {
		t.Fatalf("got %q, want connected", event.Type)
	}

	hub.SeatStatusChanged("pc-1", "PC-101", "RESERVED", "#FF9800")

	if event := receiveEvent(t, observer); event.Type != EventSeatStatusChanged {
		t.Fatalf("got %q, want seat_status_changed", event.Type)
	}
	if event := receiveEvent(t, secondTab); event.Type != EventSeatStatusChanged {
		t.Fatalf("got %q, want seat_status_changed", event.Type)
	}
}
