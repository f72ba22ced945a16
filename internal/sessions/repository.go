package sessions

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
	ErrSessionNotFound     = errors.New("active session not found")
	ErrComputerNotFound    = errors.New("computer not found")
	ErrComputerUnavailable = errors.New("computer is out of service")
	ErrComputerOccupied    = errors.New("computer already has an active session")
	ErrComputerReserved    = errors.New("computer is reserved for another booking")
	ErrUserNotFound        = errors.New("user not found")
	ErrReservationInvalid  = errors.New("reservation cannot be activated for this session")
)

// ActiveSessionRow is the desk view of a running session, joined with the
// occupant and seat names.
type ActiveSessionRow struct {
	Session
	UserFullName string `gorm:"column:user_full_name" json:"user_full_name"`
	ComputerName string `gorm:"column:computer_name" json:"computer_name"`
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Session, error)
	ListActive(ctx context.Context) ([]ActiveSessionRow, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Session, error)

	StartAtomic(ctx context.Context, session *Session) error
	CloseAtomic(ctx context.Context, sessionID uuid.UUID, now time.Time, status Status, charge bool, notes string) (*Session, error)

	ActiveOccupants(ctx context.Context) (map[uuid.UUID]string, error)
	HasActiveSession(ctx context.Context, computerID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	var session Session
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *repository) ListActive(ctx context.Context) ([]ActiveSessionRow, error) {
	var rows []ActiveSessionRow
	err := r.db.WithContext(ctx).
		Table("sessions").
		Select("sessions.*, users.full_name AS user_full_name, computers.name AS computer_name").
		Joins("JOIN users ON users.id = sessions.user_id").
		Joins("JOIN computers ON computers.id = sessions.computer_id").
		Where("sessions.status = ?", StatusActive).
		Order("sessions.start_time ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Session, error) {
	var sessions []Session
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Find(&sessions).Error
	return sessions, err
}

// StartAtomic opens a session inside one transaction, serialized per computer
// by a row lock on the computers row. The partial unique index on active
// sessions backstops the occupancy check; a violation is reported as
// ErrComputerOccupied.
func (r *repository) StartAtomic(ctx context.Context, session *Session) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var computer struct {
			ID           uuid.UUID `gorm:"column:id"`
			Status       string    `gorm:"column:status"`
			PricePerHour float64   `gorm:"column:price_per_hour"`
			IsActive     bool      `gorm:"column:is_active"`
		}
		err := tx.Table("computers").
			Select("id, status, price_per_hour, is_active").
			Where("id = ?", session.ComputerID).
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

		var user struct {
			ID       uuid.UUID `gorm:"column:id"`
			IsActive bool      `gorm:"column:is_active"`
		}
		err = tx.Table("users").
			Select("id, is_active").
			Where("id = ?", session.UserID).
			First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to load user: %w", err)
		}
		if !user.IsActive {
			return ErrUserNotFound
		}

		var activeCount int64
		err = tx.Table("sessions").
			Where("computer_id = ? AND status = ?", session.ComputerID, StatusActive).
			Count(&activeCount).Error
		if err != nil {
			return fmt.Errorf("failed to check active sessions: %w", err)
		}
		if activeCount > 0 {
			return ErrComputerOccupied
		}

		// A confirmed reservation covering now blocks a walk-in unless it is
		// the very reservation being activated.
		covering := tx.Table("reservations").
			Where("computer_id = ? AND status = ?", session.ComputerID, "CONFIRMED").
			Where("start_time <= ? AND end_time > ?", session.StartTime, session.StartTime)
		if session.ReservationID != nil {
			covering = covering.Where("id != ?", *session.ReservationID)
		}
		var coveringCount int64
		if err := covering.Count(&coveringCount).Error; err != nil {
			return fmt.Errorf("failed to check reservations: %w", err)
		}
		if coveringCount > 0 {
			return ErrComputerReserved
		}

		if session.ReservationID != nil {
			result := tx.Table("reservations").
				Where("id = ? AND user_id = ? AND computer_id = ?", *session.ReservationID, session.UserID, session.ComputerID).
				Where("status IN ?", []string{"PENDING", "CONFIRMED"}).
				Updates(map[string]interface{}{
					"status":     "ACTIVE",
					"updated_at": session.StartTime,
				})
			if result.Error != nil {
				return fmt.Errorf("failed to activate reservation: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return ErrReservationInvalid
			}
		}

		session.PricePerHour = computer.PricePerHour
		session.Status = StatusActive
		if err := tx.Create(session).Error; err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
		return nil
	})

	if isActiveSessionConflict(err) {
		return ErrComputerOccupied
	}
	return err
}

// CloseAtomic ends an active session. charge=false leaves the price at zero
// (interrupted sessions are not billed). A linked reservation is completed
// regardless of its prior state.
func (r *repository) CloseAtomic(ctx context.Context, sessionID uuid.UUID, now time.Time, status Status, charge bool, notes string) (*Session, error) {
	var closed Session
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session Session
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND status = ?", sessionID, StatusActive).
			First(&session).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return fmt.Errorf("failed to lock session: %w", err)
		}

		totalPrice := 0.0
		if charge {
			totalPrice = PriceFor(session.StartTime, now, session.PricePerHour)
		}

		updates := map[string]interface{}{
			"end_time":    now,
			"status":      status,
			"total_price": totalPrice,
			"updated_at":  now,
		}
		if notes != "" {
			if session.Notes != "" {
				updates["notes"] = session.Notes + "\n" + notes
			} else {
				updates["notes"] = notes
			}
		}
		if err := tx.Model(&Session{}).Where("id = ?", session.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to close session: %w", err)
		}

		if session.ReservationID != nil {
			err := tx.Table("reservations").
				Where("id = ?", *session.ReservationID).
				Updates(map[string]interface{}{
					"status":     "COMPLETED",
					"updated_at": now,
				}).Error
			if err != nil {
				return fmt.Errorf("failed to complete reservation: %w", err)
			}
		}

		closed = session
		closed.EndTime = &now
		closed.Status = status
		closed.TotalPrice = totalPrice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &closed, nil
}

func (r *repository) ActiveOccupants(ctx context.Context) (map[uuid.UUID]string, error) {
	var rows []struct {
		ComputerID uuid.UUID `gorm:"column:computer_id"`
		FullName   string    `gorm:"column:full_name"`
	}
	err := r.db.WithContext(ctx).
		Table("sessions").
		Select("sessions.computer_id, users.full_name").
		Joins("JOIN users ON users.id = sessions.user_id").
		Where("sessions.status = ?", StatusActive).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	occupants := make(map[uuid.UUID]string, len(rows))
	for _, row := range rows {
		occupants[row.ComputerID] = row.FullName
	}
	return occupants, nil
}

func (r *repository) HasActiveSession(ctx context.Context, computerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Session{}).
		Where("computer_id = ? AND status = ?", computerID, StatusActive).
		Count(&count).Error
	return count > 0, err
}

func isActiveSessionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "idx_sessions_one_active_per_computer"
	}
	return false
}
