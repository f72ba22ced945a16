package sessions

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsActiveSessionConflict(t *testing.T) {
	activeIndex := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "idx_sessions_one_active_per_computer",
	}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unique violation on the active-session index",
			err:  activeIndex,
			want: true,
		},
		{
			name: "wrapped unique violation",
			err:  fmt.Errorf("failed to create session: %w", activeIndex),
			want: true,
		},
		{
			name: "unique violation on another index",
			err: &pgconn.PgError{
				Code:           "23505",
				ConstraintName: "idx_registrations_user_tournament",
			},
			want: false,
		},
		{
			name: "different error code on the same constraint",
			err: &pgconn.PgError{
				Code:           "23P01",
				ConstraintName: "idx_sessions_one_active_per_computer",
			},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("connection reset"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isActiveSessionConflict(tt.err); got != tt.want {
				t.Errorf("isActiveSessionConflict() = %v, want %v", got, tt.want)
			}
		})
	}
}
