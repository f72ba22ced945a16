package notifications

import "time"

// ClubEvent is the envelope for everything published to the club event topic.
type ClubEvent struct {
	Type       string            `json:"type"`
	ComputerID string            `json:"computer_id,omitempty"`
	UserID     string            `json:"user_id,omitempty"`
	ObjectID   string            `json:"object_id,omitempty"`
	Amount     float64           `json:"amount,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// Key routes events for the same computer (or object) to one partition so
// consumers see their transitions in order.
func (e *ClubEvent) Key() string {
	if e.ComputerID != "" {
		return e.ComputerID
	}
	if e.ObjectID != "" {
		return e.ObjectID
	}
	return e.UserID
}
