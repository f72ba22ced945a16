package computers

import "time"

type CreateComputerRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=100"`
	Row          int     `json:"row" validate:"required,min=1"`
	Place        int     `json:"place" validate:"required,min=1"`
	PricePerHour float64 `json:"price_per_hour" validate:"required,gt=0"`
	Processor    string  `json:"processor" validate:"omitempty,max=100"`
	RAM          string  `json:"ram" validate:"omitempty,max=50"`
	GraphicsCard string  `json:"graphics_card" validate:"omitempty,max=100"`
	Monitor      string  `json:"monitor" validate:"omitempty,max=100"`
	Notes        string  `json:"notes" validate:"omitempty,max=1000"`
}

type UpdateComputerRequest struct {
	Name         *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Row          *int     `json:"row" validate:"omitempty,min=1"`
	Place        *int     `json:"place" validate:"omitempty,min=1"`
	PricePerHour *float64 `json:"price_per_hour" validate:"omitempty,gt=0"`
	Processor    *string  `json:"processor" validate:"omitempty,max=100"`
	RAM          *string  `json:"ram" validate:"omitempty,max=50"`
	GraphicsCard *string  `json:"graphics_card" validate:"omitempty,max=100"`
	Monitor      *string  `json:"monitor" validate:"omitempty,max=100"`
	Notes        *string  `json:"notes" validate:"omitempty,max=1000"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=AVAILABLE MAINTENANCE BROKEN"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type AvailabilityQuery struct {
	StartTime time.Time `form:"start_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime   time.Time `form:"end_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}
