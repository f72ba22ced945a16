package tournaments

import "time"

type CreateTournamentRequest struct {
	Name                 string    `json:"name" validate:"required,min=1,max=200"`
	Description          string    `json:"description" validate:"omitempty,max=5000"`
	Game                 string    `json:"game" validate:"required,min=1,max=100"`
	StartTime            time.Time `json:"start_time" validate:"required"`
	RegistrationDeadline time.Time `json:"registration_deadline" validate:"required"`
	MaxParticipants      int       `json:"max_participants" validate:"required,min=2"`
	EntryFee             float64   `json:"entry_fee" validate:"omitempty,gte=0"`
	PrizePool            float64   `json:"prize_pool" validate:"omitempty,gte=0"`
}

type UpdateTournamentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=DRAFT REGISTRATION IN_PROGRESS COMPLETED CANCELLED"`
}

type RegisterRequest struct {
	TeamName string `json:"team_name" validate:"omitempty,max=100"`
}
