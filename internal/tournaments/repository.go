package tournaments

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
	ErrTournamentNotFound  = errors.New("tournament not found")
	ErrRegistrationClosed  = errors.New("registration is closed")
	ErrDeadlinePassed      = errors.New("registration deadline has passed")
	ErrTournamentFull      = errors.New("tournament is full")
	ErrAlreadyRegistered   = errors.New("user is already registered")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

type Repository interface {
	List(ctx context.Context) ([]Tournament, error)
	ListUpcoming(ctx context.Context, now time.Time) ([]Tournament, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Tournament, error)
	Create(ctx context.Context, tournament *Tournament) error
	Update(ctx context.Context, tournament *Tournament) error

	RegisterAtomic(ctx context.Context, registration *Registration, now time.Time) error
	ListRegistrationsByUser(ctx context.Context, userID uuid.UUID) ([]Registration, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Tournament, error) {
	var tournaments []Tournament
	err := r.db.WithContext(ctx).
		Where("status != ?", StatusDraft).
		Order("start_time ASC").
		Find(&tournaments).Error
	return tournaments, err
}

func (r *repository) ListUpcoming(ctx context.Context, now time.Time) ([]Tournament, error) {
	var tournaments []Tournament
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusRegistration).
		Where("start_time > ?", now).
		Order("start_time ASC").
		Find(&tournaments).Error
	return tournaments, err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Tournament, error) {
	var tournament Tournament
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&tournament).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return &tournament, nil
}

func (r *repository) Create(ctx context.Context, tournament *Tournament) error {
	return r.db.WithContext(ctx).Create(tournament).Error
}

func (r *repository) Update(ctx context.Context, tournament *Tournament) error {
	tournament.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(tournament).Error
}

// RegisterAtomic checks deadline and capacity under a row lock, increments
// the participant counter, debits the entry fee from the balance, and
// records the registration, all in one transaction.
func (r *repository) RegisterAtomic(ctx context.Context, registration *Registration, now time.Time) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tournament struct {
			ID                   uuid.UUID `gorm:"column:id"`
			Status               string    `gorm:"column:status"`
			RegistrationDeadline time.Time `gorm:"column:registration_deadline"`
			MaxParticipants      int       `gorm:"column:max_participants"`
			CurrentParticipants  int       `gorm:"column:current_participants"`
			EntryFee             float64   `gorm:"column:entry_fee"`
		}
		err := tx.Table("tournaments").
			Select("id, status, registration_deadline, max_participants, current_participants, entry_fee").
			Where("id = ?", registration.TournamentID).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&tournament).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTournamentNotFound
			}
			return fmt.Errorf("failed to lock tournament: %w", err)
		}

		if tournament.Status != string(StatusRegistration) {
			return ErrRegistrationClosed
		}
		if !now.Before(tournament.RegistrationDeadline) {
			return ErrDeadlinePassed
		}
		if tournament.CurrentParticipants >= tournament.MaxParticipants {
			return ErrTournamentFull
		}

		var existing int64
		err = tx.Model(&Registration{}).
			Where("tournament_id = ? AND user_id = ?", registration.TournamentID, registration.UserID).
			Count(&existing).Error
		if err != nil {
			return fmt.Errorf("failed to check registration: %w", err)
		}
		if existing > 0 {
			return ErrAlreadyRegistered
		}

		registration.PaymentStatus = "PAID"
		if tournament.EntryFee > 0 {
			result := tx.Table("users").
				Where("id = ? AND balance >= ?", registration.UserID, tournament.EntryFee).
				Update("balance", gorm.Expr("balance - ?", tournament.EntryFee))
			if result.Error != nil {
				return fmt.Errorf("failed to debit entry fee: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return ErrInsufficientBalance
			}
		}

		if err := tx.Create(registration).Error; err != nil {
			return fmt.Errorf("failed to create registration: %w", err)
		}

		// Conditional increment; the lock serializes registrations, the
		// capacity guard in the WHERE clause backstops it.
		result := tx.Table("tournaments").
			Where("id = ? AND current_participants < max_participants", registration.TournamentID).
			Update("current_participants", gorm.Expr("current_participants + 1"))
		if result.Error != nil {
			return fmt.Errorf("failed to update participant count: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrTournamentFull
		}

		if tournament.EntryFee > 0 {
			record := map[string]interface{}{
				"user_id":        registration.UserID,
				"tournament_id":  registration.TournamentID,
				"amount":         tournament.EntryFee,
				"payment_type":   "TOURNAMENT",
				"payment_method": "BALANCE",
				"status":         "PAID",
				"created_at":     now,
			}
			if err := tx.Table("payments").Create(record).Error; err != nil {
				return fmt.Errorf("failed to record payment: %w", err)
			}
		}
		return nil
	})

	if isDuplicateRegistration(err) {
		return ErrAlreadyRegistered
	}
	return err
}

func (r *repository) ListRegistrationsByUser(ctx context.Context, userID uuid.UUID) ([]Registration, error) {
	var registrations []Registration
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("registered_at DESC").
		Find(&registrations).Error
	return registrations, err
}

func isDuplicateRegistration(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "idx_registrations_user_tournament"
	}
	return false
}
