package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the storage-level guards that concurrency control
// relies on. The exclusion constraint is the backstop for the
// check-then-insert reservation path: two overlapping blocking reservations
// on the same computer can never both commit, regardless of application
// locking.
func MigrateConstraints(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist;`).Error; err != nil {
		return err
	}

	err := db.Exec(`
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint WHERE conname = 'reservations_no_overlap'
			) THEN
				ALTER TABLE reservations
				ADD CONSTRAINT reservations_no_overlap
				EXCLUDE USING gist (
					computer_id WITH =,
					tsrange(start_time, end_time) WITH &&
				)
				WHERE (status IN ('PENDING', 'CONFIRMED', 'ACTIVE'));
			END IF;
		END $$;
	`).Error
	if err != nil {
		return err
	}

	// Partial unique index: at most one active session per computer.
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_one_active_per_computer
		ON sessions (computer_id)
		WHERE status = 'ACTIVE';
	`).Error
	if err != nil {
		return err
	}

	// Index for overlap queries on the booking hot path.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reservations_computer_window
		ON reservations (computer_id, start_time, end_time);
	`).Error
	if err != nil {
		return err
	}

	// One registration per user per tournament.
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_registrations_user_tournament
		ON tournament_registrations (user_id, tournament_id);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
