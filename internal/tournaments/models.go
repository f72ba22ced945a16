package tournaments

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft        Status = "DRAFT"
	StatusRegistration Status = "REGISTRATION"
	StatusInProgress   Status = "IN_PROGRESS"
	StatusCompleted    Status = "COMPLETED"
	StatusCancelled    Status = "CANCELLED"
)

type Tournament struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name                 string    `gorm:"type:varchar(200);not null" json:"name"`
	Description          string    `gorm:"type:text" json:"description,omitempty"`
	Game                 string    `gorm:"type:varchar(100);not null" json:"game"`
	StartTime            time.Time `gorm:"not null" json:"start_time"`
	RegistrationDeadline time.Time `gorm:"not null" json:"registration_deadline"`
	MaxParticipants      int       `gorm:"not null;check:max_participants > 0" json:"max_participants"`
	CurrentParticipants  int       `gorm:"not null;default:0" json:"current_participants"`
	EntryFee             float64   `gorm:"not null;default:0;check:entry_fee >= 0" json:"entry_fee"`
	PrizePool            float64   `gorm:"not null;default:0" json:"prize_pool"`
	Status               Status    `gorm:"type:varchar(20);not null;default:'DRAFT';check:status IN ('DRAFT', 'REGISTRATION', 'IN_PROGRESS', 'COMPLETED', 'CANCELLED')" json:"status"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (Tournament) TableName() string {
	return "tournaments"
}

type Registration struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	TournamentID  uuid.UUID `gorm:"type:uuid;not null" json:"tournament_id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	TeamName      string    `gorm:"type:varchar(100)" json:"team_name,omitempty"`
	PaymentStatus string    `gorm:"type:varchar(20);not null;default:'PENDING'" json:"payment_status"`
	RegisteredAt  time.Time `gorm:"autoCreateTime" json:"registered_at"`
}

func (Registration) TableName() string {
	return "tournament_registrations"
}
