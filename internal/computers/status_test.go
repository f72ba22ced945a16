package computers

import "testing"

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name        string
		override    Status
		session     bool
		reservation bool
		want        Status
	}{
		{"idle seat", StatusAvailable, false, false, StatusAvailable},
		{"active session", StatusAvailable, true, false, StatusOccupied},
		{"covering reservation", StatusAvailable, false, true, StatusReserved},
		{"session beats reservation", StatusAvailable, true, true, StatusOccupied},
		{"maintenance wins over session", StatusMaintenance, true, false, StatusMaintenance},
		{"maintenance wins over reservation", StatusMaintenance, false, true, StatusMaintenance},
		{"broken wins over everything", StatusBroken, true, true, StatusBroken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveStatus(tc.override, tc.session, tc.reservation)
			if got != tc.want {
				t.Errorf("DeriveStatus(%s, %v, %v) = %s, want %s", tc.override, tc.session, tc.reservation, got, tc.want)
			}
		})
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, valid := range []string{"AVAILABLE", "OCCUPIED", "RESERVED", "MAINTENANCE", "BROKEN"} {
		if !IsValidStatus(valid) {
			t.Errorf("IsValidStatus(%q) = false, want true", valid)
		}
	}
	for _, invalid := range []string{"", "available", "FREE", "OFFLINE"} {
		if IsValidStatus(invalid) {
			t.Errorf("IsValidStatus(%q) = true, want false", invalid)
		}
	}
}

func TestStatusDisplay(t *testing.T) {
	if got := StatusOccupied.DisplayColor(); got != "#F44336" {
		t.Errorf("occupied color = %q", got)
	}
	if got := StatusBroken.DisplayName(); got != "Out of order" {
		t.Errorf("broken name = %q", got)
	}
	if got := Status("UNKNOWN").DisplayColor(); got != "#9E9E9E" {
		t.Errorf("unknown status must fall back to the neutral color, got %q", got)
	}
}
