package computers

import (
	"time"

	"github.com/google/uuid"
)

// Computer is a bookable seat in the hall. Status holds the admin override
// only (AVAILABLE / MAINTENANCE / BROKEN); the status shown to clients is
// derived on read, see DeriveStatus.
type Computer struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name            string     `gorm:"type:varchar(100);not null" json:"name"`
	Row             int        `gorm:"not null;uniqueIndex:idx_computers_row_place;check:row > 0" json:"row"`
	Place           int        `gorm:"not null;uniqueIndex:idx_computers_row_place;check:place > 0" json:"place"`
	PricePerHour    float64    `gorm:"not null;check:price_per_hour >= 0" json:"price_per_hour"`
	Processor       string     `gorm:"type:varchar(100)" json:"processor"`
	RAM             string     `gorm:"type:varchar(50)" json:"ram"`
	GraphicsCard    string     `gorm:"type:varchar(100)" json:"graphics_card"`
	Monitor         string     `gorm:"type:varchar(100)" json:"monitor"`
	Status          Status     `gorm:"type:varchar(20);not null;default:'AVAILABLE';check:status IN ('AVAILABLE', 'OCCUPIED', 'RESERVED', 'MAINTENANCE', 'BROKEN')" json:"status"`
	LastMaintenance *time.Time `json:"last_maintenance,omitempty"`
	Notes           string     `gorm:"type:text" json:"notes,omitempty"`
	IsActive        bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (Computer) TableName() string {
	return "computers"
}

// IsOutOfService reports whether the admin override removes the computer
// from allocation entirely.
func (c *Computer) IsOutOfService() bool {
	return c.Status == StatusMaintenance || c.Status == StatusBroken
}
