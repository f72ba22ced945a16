package database

import (
	"clubhub/internal/bookings"
	"clubhub/internal/computers"
	"clubhub/internal/payments"
	"clubhub/internal/sessions"
	"clubhub/internal/tournaments"
	"clubhub/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&computers.Computer{},
		&bookings.Reservation{},
		&sessions.Session{},
		&payments.Payment{},
		&tournaments.Tournament{},
		&tournaments.Registration{},
	)
}
