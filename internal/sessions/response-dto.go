package sessions

import (
	"time"

	"github.com/google/uuid"
)

type SessionResponse struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	ComputerID    uuid.UUID  `json:"computer_id"`
	ReservationID *uuid.UUID `json:"reservation_id,omitempty"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	Status        Status     `json:"status"`
	PricePerHour  float64    `json:"price_per_hour"`
	TotalPrice    float64    `json:"total_price"`
	StartedBy     uuid.UUID  `json:"started_by"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toSessionResponse(s *Session) SessionResponse {
	return SessionResponse{
		ID:            s.ID,
		UserID:        s.UserID,
		ComputerID:    s.ComputerID,
		ReservationID: s.ReservationID,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		Status:        s.Status,
		PricePerHour:  s.PricePerHour,
		TotalPrice:    s.TotalPrice,
		StartedBy:     s.StartedBy,
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
	}
}
