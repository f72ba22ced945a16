package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrComputerNotFound    = errors.New("computer not found")
	ErrComputerUnavailable = errors.New("computer is not available for booking")
	ErrTimeSlotTaken       = errors.New("time slot is already taken")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// bookingComputer is the slice of the computers row the engine needs. Read
// through Table() to keep the features decoupled.
type bookingComputer struct {
	ID           uuid.UUID `gorm:"column:id"`
	Status       string    `gorm:"column:status"`
	PricePerHour float64   `gorm:"column:price_per_hour"`
	IsActive     bool      `gorm:"column:is_active"`
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Reservation, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]Reservation, error)

	GetComputerInfo(ctx context.Context, computerID uuid.UUID) (*bookingComputer, error)
	HasBlockingOverlap(ctx context.Context, computerID uuid.UUID, start, end time.Time) (bool, error)

	CreateReservationAtomic(ctx context.Context, reservation *Reservation) error
	PayWithBalance(ctx context.Context, reservation *Reservation) error
	MarkPaid(ctx context.Context, reservation *Reservation, method, transactionID string) error
	MarkPaymentFailed(ctx context.Context, reservationID uuid.UUID, method string) error
	CancelWithRefund(ctx context.Context, reservation *Reservation, now time.Time, reason string, refund bool) error

	CoveredComputerIDs(ctx context.Context, at time.Time) (map[uuid.UUID]struct{}, error)
	HasCoveringReservation(ctx context.Context, computerID uuid.UUID, at time.Time) (bool, error)
	BlockedComputerIDs(ctx context.Context, start, end time.Time) (map[uuid.UUID]struct{}, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	var reservation Reservation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Reservation, error) {
	var reservations []Reservation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reservations).Error
	return reservations, err
}

func (r *repository) ListActiveByUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]Reservation, error) {
	var reservations []Reservation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status IN ?", []Status{StatusPending, StatusConfirmed, StatusActive}).
		Where("end_time > ?", now).
		Order("start_time ASC").
		Find(&reservations).Error
	return reservations, err
}

func (r *repository) GetComputerInfo(ctx context.Context, computerID uuid.UUID) (*bookingComputer, error) {
	var computer bookingComputer
	err := r.db.WithContext(ctx).
		Table("computers").
		Select("id, status, price_per_hour, is_active").
		Where("id = ?", computerID).
		First(&computer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComputerNotFound
		}
		return nil, err
	}
	return &computer, nil
}

func (r *repository) HasBlockingOverlap(ctx context.Context, computerID uuid.UUID, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Reservation{}).
		Where("computer_id = ?", computerID).
		Where("status IN ?", BlockingStatuses).
		Where("start_time < ? AND end_time > ?", end, start).
		Count(&count).Error
	return count > 0, err
}

// CreateReservationAtomic performs the availability check and the insert in
// one transaction, serialized per computer by a row lock. The exclusion
// constraint reservations_no_overlap backstops the check; a violation is
// reported as ErrTimeSlotTaken.
func (r *repository) CreateReservationAtomic(ctx context.Context, reservation *Reservation) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var computer bookingComputer
		err := tx.Table("computers").
			Select("id, status, price_per_hour, is_active").
			Where("id = ?", reservation.ComputerID).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&computer).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrComputerNotFound
			}
			return fmt.Errorf("failed to lock computer: %w", err)
		}

		if !computer.IsActive {
			return ErrComputerNotFound
		}
		if computer.Status == "MAINTENANCE" || computer.Status == "BROKEN" {
			return ErrComputerUnavailable
		}

		var overlapping int64
		err = tx.Model(&Reservation{}).
			Where("computer_id = ?", reservation.ComputerID).
			Where("status IN ?", BlockingStatuses).
			Where("start_time < ? AND end_time > ?", reservation.EndTime, reservation.StartTime).
			Count(&overlapping).Error
		if err != nil {
			return fmt.Errorf("failed to check overlaps: %w", err)
		}
		if overlapping > 0 {
			return ErrTimeSlotTaken
		}

		reservation.TotalPrice = PriceFor(reservation.StartTime, reservation.EndTime, computer.PricePerHour)
		if reservation.TotalPrice == 0 {
			reservation.Status = StatusConfirmed
			reservation.PaymentStatus = PaymentPaid
		} else {
			reservation.Status = StatusPending
			reservation.PaymentStatus = PaymentPending
		}

		if err := tx.Create(reservation).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}
		return nil
	})

	if isOverlapConstraintViolation(err) {
		return ErrTimeSlotTaken
	}
	return err
}

func (r *repository) PayWithBalance(ctx context.Context, reservation *Reservation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Conditional decrement; no read-modify-write, no overdraft.
		result := tx.Table("users").
			Where("id = ? AND balance >= ?", reservation.UserID, reservation.TotalPrice).
			Update("balance", gorm.Expr("balance - ?", reservation.TotalPrice))
		if result.Error != nil {
			return fmt.Errorf("failed to debit balance: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrInsufficientBalance
		}

		if err := markReservationPaid(tx, reservation, "BALANCE"); err != nil {
			return err
		}
		return insertPaymentRecord(tx, reservation, reservation.TotalPrice, "BALANCE", "PAID", "")
	})
}

func (r *repository) MarkPaid(ctx context.Context, reservation *Reservation, method, transactionID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := markReservationPaid(tx, reservation, method); err != nil {
			return err
		}
		return insertPaymentRecord(tx, reservation, reservation.TotalPrice, method, "PAID", transactionID)
	})
}

func (r *repository) MarkPaymentFailed(ctx context.Context, reservationID uuid.UUID, method string) error {
	return r.db.WithContext(ctx).Model(&Reservation{}).
		Where("id = ?", reservationID).
		Updates(map[string]interface{}{
			"payment_status": PaymentFailed,
			"payment_method": method,
			"updated_at":     time.Now(),
		}).Error
}

func (r *repository) CancelWithRefund(ctx context.Context, reservation *Reservation, now time.Time, reason string, refund bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":        StatusCancelled,
			"cancelled_at":  now,
			"cancel_reason": reason,
			"updated_at":    now,
		}
		if refund {
			updates["payment_status"] = PaymentRefunded
		}

		result := tx.Model(&Reservation{}).
			Where("id = ? AND status IN ?", reservation.ID, BlockingStatuses).
			Updates(updates)
		if result.Error != nil {
			return fmt.Errorf("failed to cancel reservation: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrReservationNotFound
		}

		if !refund {
			return nil
		}

		err := tx.Table("users").
			Where("id = ?", reservation.UserID).
			Update("balance", gorm.Expr("balance + ?", reservation.TotalPrice)).Error
		if err != nil {
			return fmt.Errorf("failed to credit balance: %w", err)
		}
		return insertPaymentRecord(tx, reservation, reservation.TotalPrice, "BALANCE", "REFUNDED", "")
	})
}

func (r *repository) CoveredComputerIDs(ctx context.Context, at time.Time) (map[uuid.UUID]struct{}, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&Reservation{}).
		Distinct("computer_id").
		Where("status = ?", StatusConfirmed).
		Where("start_time <= ? AND end_time > ?", at, at).
		Pluck("computer_id", &ids).Error
	if err != nil {
		return nil, err
	}
	covered := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		covered[id] = struct{}{}
	}
	return covered, nil
}

func (r *repository) HasCoveringReservation(ctx context.Context, computerID uuid.UUID, at time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Reservation{}).
		Where("computer_id = ?", computerID).
		Where("status = ?", StatusConfirmed).
		Where("start_time <= ? AND end_time > ?", at, at).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) BlockedComputerIDs(ctx context.Context, start, end time.Time) (map[uuid.UUID]struct{}, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&Reservation{}).
		Distinct("computer_id").
		Where("status IN ?", BlockingStatuses).
		Where("start_time < ? AND end_time > ?", end, start).
		Pluck("computer_id", &ids).Error
	if err != nil {
		return nil, err
	}
	blocked := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		blocked[id] = struct{}{}
	}
	return blocked, nil
}

func markReservationPaid(tx *gorm.DB, reservation *Reservation, method string) error {
	result := tx.Model(&Reservation{}).
		Where("id = ? AND payment_status = ?", reservation.ID, PaymentPending).
		Updates(map[string]interface{}{
			"payment_status": PaymentPaid,
			"payment_method": method,
			"status":         StatusConfirmed,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark reservation paid: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func insertPaymentRecord(tx *gorm.DB, reservation *Reservation, amount float64, method, status, transactionID string) error {
	record := map[string]interface{}{
		"user_id":        reservation.UserID,
		"reservation_id": reservation.ID,
		"amount":         amount,
		"payment_type":   "BOOKING",
		"payment_method": method,
		"status":         status,
		"created_at":     time.Now(),
	}
	if transactionID != "" {
		record["transaction_id"] = transactionID
	}
	if err := tx.Table("payments").Create(record).Error; err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}
	return nil
}

func isOverlapConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01" && pgErr.ConstraintName == "reservations_no_overlap"
	}
	return false
}
