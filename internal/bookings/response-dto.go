package bookings

import (
	"time"

	"github.com/google/uuid"
)

type AvailabilityResponse struct {
	Available      bool    `json:"available"`
	Reason         string  `json:"reason,omitempty"`
	EstimatedPrice float64 `json:"estimated_price,omitempty"`
}

type ReservationResponse struct {
	ID            uuid.UUID     `json:"id"`
	UserID        uuid.UUID     `json:"user_id"`
	ComputerID    uuid.UUID     `json:"computer_id"`
	StartTime     time.Time     `json:"start_time"`
	EndTime       time.Time     `json:"end_time"`
	Status        Status        `json:"status"`
	TotalPrice    float64       `json:"total_price"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	CancelledAt   *time.Time    `json:"cancelled_at,omitempty"`
	CancelReason  string        `json:"cancel_reason,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

func toReservationResponse(r *Reservation) ReservationResponse {
	return ReservationResponse{
		ID:            r.ID,
		UserID:        r.UserID,
		ComputerID:    r.ComputerID,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Status:        r.Status,
		TotalPrice:    r.TotalPrice,
		PaymentStatus: r.PaymentStatus,
		PaymentMethod: r.PaymentMethod,
		CancelledAt:   r.CancelledAt,
		CancelReason:  r.CancelReason,
		CreatedAt:     r.CreatedAt,
	}
}

func toReservationResponses(reservations []Reservation) []ReservationResponse {
	responses := make([]ReservationResponse, 0, len(reservations))
	for i := range reservations {
		responses = append(responses, toReservationResponse(&reservations[i]))
	}
	return responses
}
