package computers

import (
	"time"

	"github.com/google/uuid"
)

type StatusDisplay struct {
	Status Status `json:"status"`
	Name   string `json:"name"`
	Color  string `json:"color"`
}

func NewStatusDisplay(s Status) StatusDisplay {
	return StatusDisplay{Status: s, Name: s.DisplayName(), Color: s.DisplayColor()}
}

type ComputerResponse struct {
	ID              uuid.UUID     `json:"id"`
	Name            string        `json:"name"`
	Row             int           `json:"row"`
	Place           int           `json:"place"`
	PricePerHour    float64       `json:"price_per_hour"`
	Processor       string        `json:"processor,omitempty"`
	RAM             string        `json:"ram,omitempty"`
	GraphicsCard    string        `json:"graphics_card,omitempty"`
	Monitor         string        `json:"monitor,omitempty"`
	Status          StatusDisplay `json:"status"`
	LastMaintenance *time.Time    `json:"last_maintenance,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	IsActive        bool          `json:"is_active"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// HallSeat is one cell of the hall scheme.
type HallSeat struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Row         int           `json:"row"`
	Place       int           `json:"place"`
	Status      StatusDisplay `json:"status"`
	CurrentUser string        `json:"current_user,omitempty"`
}

type HallRow struct {
	Row   int        `json:"row"`
	Seats []HallSeat `json:"seats"`
}

type HallSchemeResponse struct {
	Rows    []HallRow       `json:"rows"`
	Legend  []StatusDisplay `json:"legend"`
	Counts  map[Status]int  `json:"counts"`
	Updated time.Time       `json:"updated_at"`
}
