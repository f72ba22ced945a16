package computers

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrComputerNotFound = errors.New("computer not found")

type Repository interface {
	List(ctx context.Context, includeInactive bool) ([]Computer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Computer, error)
	Create(ctx context.Context, computer *Computer) error
	Update(ctx context.Context, computer *Computer) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	PlaceTaken(ctx context.Context, row, place int, excludeID *uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, includeInactive bool) ([]Computer, error) {
	var computers []Computer
	query := r.db.WithContext(ctx).Order("row ASC, place ASC")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&computers).Error; err != nil {
		return nil, err
	}
	return computers, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Computer, error) {
	var computer Computer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&computer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComputerNotFound
		}
		return nil, err
	}
	return &computer, nil
}

func (r *repository) Create(ctx context.Context, computer *Computer) error {
	return r.db.WithContext(ctx).Create(computer).Error
}

func (r *repository) Update(ctx context.Context, computer *Computer) error {
	computer.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(computer).Error
}

func (r *repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&Computer{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrComputerNotFound
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&Computer{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrComputerNotFound
	}
	return nil
}

func (r *repository) PlaceTaken(ctx context.Context, row, place int, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&Computer{}).
		Where("row = ? AND place = ?", row, place)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
