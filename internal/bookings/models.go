package bookings

import (
	"time"

	"github.com/google/uuid"
)

// Reservation is a claim on a computer over a half-open [start, end) window.
// Rows are never deleted; every state change is a status transition.
type Reservation struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	ComputerID    uuid.UUID     `gorm:"type:uuid;not null;index:idx_reservations_computer" json:"computer_id"`
	StartTime     time.Time     `gorm:"not null" json:"start_time"`
	EndTime       time.Time     `gorm:"not null" json:"end_time"`
	Status        Status        `gorm:"type:varchar(20);not null;default:'PENDING';check:status IN ('PENDING', 'CONFIRMED', 'ACTIVE', 'COMPLETED', 'CANCELLED', 'NO_SHOW')" json:"status"`
	TotalPrice    float64       `gorm:"not null;check:total_price >= 0" json:"total_price"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'PENDING';check:payment_status IN ('PENDING', 'PAID', 'REFUNDED', 'FAILED')" json:"payment_status"`
	PaymentMethod string        `gorm:"type:varchar(20)" json:"payment_method,omitempty"`
	CancelledAt   *time.Time    `json:"cancelled_at,omitempty"`
	CancelReason  string        `gorm:"type:varchar(500)" json:"cancel_reason,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (Reservation) TableName() string {
	return "reservations"
}

// Overlaps reports whether the reservation's window intersects [start, end).
// Touching endpoints do not overlap.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.StartTime.Before(end) && start.Before(r.EndTime)
}

func (r *Reservation) IsTerminal() bool {
	switch r.Status {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}
