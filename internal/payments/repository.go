package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (float64, error)
	TopUpAtomic(ctx context.Context, userID uuid.UUID, amount float64, method Method, transactionID string) (*Payment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Payment, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetBalance(ctx context.Context, userID uuid.UUID) (float64, error) {
	var row struct {
		Balance float64 `gorm:"column:balance"`
	}
	err := r.db.WithContext(ctx).
		Table("users").
		Select("balance").
		Where("id = ?", userID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return row.Balance, nil
}

// TopUpAtomic credits the balance and records the payment in one transaction.
// The credit is a single UPDATE expression so concurrent top-ups never lose
// an increment.
func (r *repository) TopUpAtomic(ctx context.Context, userID uuid.UUID, amount float64, method Method, transactionID string) (*Payment, error) {
	payment := &Payment{
		UserID:        userID,
		Amount:        amount,
		PaymentType:   TypeBalanceTopUp,
		PaymentMethod: method,
		Status:        StatusPaid,
		TransactionID: transactionID,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Table("users").
			Where("id = ?", userID).
			Update("balance", gorm.Expr("balance + ?", amount))
		if result.Error != nil {
			return fmt.Errorf("failed to credit balance: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("failed to record top-up: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Payment, error) {
	var payments []Payment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}
