package bookings

import (
	"time"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	ComputerID uuid.UUID `json:"computer_id" validate:"required"`
	StartTime  time.Time `json:"start_time" validate:"required"`
	EndTime    time.Time `json:"end_time" validate:"required"`
}

type PayReservationRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=BALANCE CARD CASH ONLINE"`
}

type CancelReservationRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type AvailabilityRequest struct {
	ComputerID uuid.UUID `form:"computer_id" binding:"required"`
	StartTime  time.Time `form:"start_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime    time.Time `form:"end_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}
