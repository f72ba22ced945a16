package computers

type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusOccupied    Status = "OCCUPIED"
	StatusReserved    Status = "RESERVED"
	StatusMaintenance Status = "MAINTENANCE"
	StatusBroken      Status = "BROKEN"
)

func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusAvailable, StatusOccupied, StatusReserved, StatusMaintenance, StatusBroken:
		return true
	}
	return false
}

// DeriveStatus resolves the status shown to clients. The admin override wins
// outright; an active session beats a covering reservation; otherwise the
// seat is free. OCCUPIED and RESERVED are never stored, only derived.
func DeriveStatus(override Status, hasActiveSession, hasCoveringReservation bool) Status {
	if override == StatusMaintenance || override == StatusBroken {
		return override
	}
	if hasActiveSession {
		return StatusOccupied
	}
	if hasCoveringReservation {
		return StatusReserved
	}
	return StatusAvailable
}

var statusDisplayNames = map[Status]string{
	StatusAvailable:   "Available",
	StatusOccupied:    "Occupied",
	StatusReserved:    "Reserved",
	StatusMaintenance: "Maintenance",
	StatusBroken:      "Out of order",
}

var statusDisplayColors = map[Status]string{
	StatusAvailable:   "#4CAF50",
	StatusOccupied:    "#F44336",
	StatusReserved:    "#FF9800",
	StatusMaintenance: "#9E9E9E",
	StatusBroken:      "#000000",
}

func (s Status) DisplayName() string {
	if name, ok := statusDisplayNames[s]; ok {
		return name
	}
	return string(s)
}

func (s Status) DisplayColor() string {
	if color, ok := statusDisplayColors[s]; ok {
		return color
	}
	return "#9E9E9E"
}
