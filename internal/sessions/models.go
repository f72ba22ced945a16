package sessions

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive      Status = "ACTIVE"
	StatusCompleted   Status = "COMPLETED"
	StatusInterrupted Status = "INTERRUPTED"
)

// Session is actual seat time, started and ended by an admin at the desk.
// PricePerHour is snapshotted at start so later tariff changes do not affect
// a running session.
type Session struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	ComputerID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"computer_id"`
	ReservationID *uuid.UUID `gorm:"type:uuid" json:"reservation_id,omitempty"`
	StartTime     time.Time  `gorm:"not null" json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	Status        Status     `gorm:"type:varchar(20);not null;default:'ACTIVE';check:status IN ('ACTIVE', 'COMPLETED', 'INTERRUPTED')" json:"status"`
	PricePerHour  float64    `gorm:"not null" json:"price_per_hour"`
	TotalPrice    float64    `gorm:"not null;default:0" json:"total_price"`
	StartedBy     uuid.UUID  `gorm:"type:uuid;not null" json:"started_by"`
	Notes         string     `gorm:"type:varchar(500)" json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Session) TableName() string {
	return "sessions"
}
