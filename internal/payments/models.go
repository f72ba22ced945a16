package payments

import (
	"time"

	"github.com/google/uuid"
)

type PaymentType string

const (
	TypeBooking      PaymentType = "BOOKING"
	TypeTournament   PaymentType = "TOURNAMENT"
	TypeBalanceTopUp PaymentType = "BALANCE_TOP_UP"
)

type Method string

const (
	MethodCash    Method = "CASH"
	MethodCard    Method = "CARD"
	MethodOnline  Method = "ONLINE"
	MethodBalance Method = "BALANCE"
)

type PaymentStatus string

const (
	StatusPending  PaymentStatus = "PENDING"
	StatusPaid     PaymentStatus = "PAID"
	StatusRefunded PaymentStatus = "REFUNDED"
	StatusFailed   PaymentStatus = "FAILED"
)

// Payment is the append-only audit trail. Every charge, refund and top-up
// gets a row; other features insert theirs inside their own transactions.
type Payment struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	ReservationID *uuid.UUID    `gorm:"type:uuid" json:"reservation_id,omitempty"`
	TournamentID  *uuid.UUID    `gorm:"type:uuid" json:"tournament_id,omitempty"`
	Amount        float64       `gorm:"not null;check:amount >= 0" json:"amount"`
	PaymentType   PaymentType   `gorm:"type:varchar(20);not null" json:"payment_type"`
	PaymentMethod Method        `gorm:"type:varchar(20);not null" json:"payment_method"`
	Status        PaymentStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	TransactionID string        `gorm:"type:varchar(100)" json:"transaction_id,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

func (Payment) TableName() string {
	return "payments"
}
