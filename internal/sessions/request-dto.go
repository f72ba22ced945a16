package sessions

import "github.com/google/uuid"

type StartSessionRequest struct {
	ComputerID    uuid.UUID  `json:"computer_id" validate:"required"`
	UserID        uuid.UUID  `json:"user_id" validate:"required"`
	ReservationID *uuid.UUID `json:"reservation_id"`
	Notes         string     `json:"notes" validate:"omitempty,max=500"`
}

type InterruptSessionRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}
