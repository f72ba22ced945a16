package live

import (
	"context"

	"clubhub/pkg/logger"
)

// Hub fans occupancy events out to every connected client. The clients map
// is touched only by the Run goroutine; everything else goes through the
// channels.
type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Event
	log        *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Event, 64),
		log:        log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
			// The welcome is sent here rather than by the handler so that
			// only the Run goroutine ever writes to a send channel it may
			// also close.
			h.welcome(client)
			if !ok {
				h.deliver(newEvent(EventUserConnected, UserPresencePayload{UserID: client.userID}))
			}
		case client := <-h.unregister:
			set, ok := h.clients[client.userID]
			if !ok {
				continue
			}
			if _, exists := set[client]; exists {
				delete(set, client)
				close(client.send)
			}
			if len(set) == 0 {
				delete(h.clients, client.userID)
				h.deliver(newEvent(EventUserDisconnected, UserPresencePayload{UserID: client.userID}))
			}
		case event := <-h.broadcast:
			h.deliver(event)
		case <-ctx.Done():
			for userID, set := range h.clients {
				for client := range set {
					close(client.send)
				}
				delete(h.clients, userID)
			}
			return
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// SeatStatusChanged queues a status event for every connected client. Never
// blocks the caller: if the hub's queue is full the event is dropped, the
// next full re-derivation will catch clients up.
func (h *Hub) SeatStatusChanged(computerID, name, status, color string) {
	event := newEvent(EventSeatStatusChanged, SeatStatusPayload{
		ComputerID: computerID,
		Name:       name,
		Status:     status,
		Color:      color,
	})
	select {
	case h.broadcast <- event:
	default:
		h.log.LogBroadcastDropped("hub")
	}
}

func (h *Hub) welcome(client *Client) {
	encoded, err := encodeEvent(newEvent(EventConnected, UserPresencePayload{UserID: client.userID}))
	if err != nil {
		h.log.Error("failed to encode event", "type", EventConnected, "error", err)
		return
	}
	select {
	case client.send <- encoded:
	default:
		h.log.LogBroadcastDropped(client.userID)
	}
}

func (h *Hub) deliver(event *Event) {
	encoded, err := encodeEvent(event)
	if err != nil {
		h.log.Error("failed to encode event", "type", event.Type, "error", err)
		return
	}

	for userID, set := range h.clients {
		for client := range set {
			select {
			case client.send <- encoded:
			default:
				// Slow consumer: drop only this client.
				delete(set, client)
				close(client.send)
				h.log.LogBroadcastDropped(userID)
			}
		}
		if len(set) == 0 {
			delete(h.clients, userID)
		}
	}
}
