package live

import (
	"encoding/json"
	"time"
)

const (
	EventConnected         = "connected"
	EventSeatStatusChanged = "seat_status_changed"
	EventUserConnected     = "user_connected"
	EventUserDisconnected  = "user_disconnected"
	EventPong              = "pong"
)

type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type SeatStatusPayload struct {
	ComputerID string `json:"computer_id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	Color      string `json:"color"`
}

type UserPresencePayload struct {
	UserID string `json:"user_id"`
}

func newEvent(eventType string, payload interface{}) *Event {
	return &Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

func encodeEvent(event *Event) ([]byte, error) {
	return json.Marshal(event)
}
