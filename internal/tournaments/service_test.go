package tournaments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"clubhub/internal/shared/apperr"
	"clubhub/pkg/logger"
)

type stubRepository struct {
	tournament  *Tournament
	registerErr error
}

func (s *stubRepository) List(ctx context.Context) ([]Tournament, error) {
	return nil, nil
}

func (s *stubRepository) ListUpcoming(ctx context.Context, now time.Time) ([]Tournament, error) {
	return nil, nil
}

func (s *stubRepository) GetByID(ctx context.Context, id uuid.UUID) (*Tournament, error) {
	if s.tournament == nil {
		return nil, ErrTournamentNotFound
	}
	return s.tournament, nil
}

func (s *stubRepository) Create(ctx context.Context, tournament *Tournament) error {
	tournament.ID = uuid.New()
	s.tournament = tournament
	return nil
}

func (s *stubRepository) Update(ctx context.Context, tournament *Tournament) error {
	s.tournament = tournament
	return nil
}

func (s *stubRepository) RegisterAtomic(ctx context.Context, registration *Registration, now time.Time) error {
	if s.registerErr != nil {
		return s.registerErr
	}
	registration.ID = uuid.New()
	return nil
}

func (s *stubRepository) ListRegistrationsByUser(ctx context.Context, userID uuid.UUID) ([]Registration, error) {
	return nil, nil
}

func TestRegisterMapsRepositoryErrors(t *testing.T) {
	cases := []struct {
		name        string
		registerErr error
		kind        apperr.Kind
	}{
		{"tournament missing", ErrTournamentNotFound, apperr.KindNotFound},
		{"not open", ErrRegistrationClosed, apperr.KindPolicyViolation},
		{"deadline passed", ErrDeadlinePassed, apperr.KindPolicyViolation},
		{"full", ErrTournamentFull, apperr.KindPolicyViolation},
		{"duplicate", ErrAlreadyRegistered, apperr.KindConflict},
		{"cannot afford fee", ErrInsufficientBalance, apperr.KindPolicyViolation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubRepository{registerErr: tc.registerErr}
			svc := NewService(repo, nil, nil, logger.GetDefault())

			_, err := svc.Register(context.Background(), uuid.New(), uuid.New(), &RegisterRequest{})
			if !apperr.IsKind(err, tc.kind) {
				t.Errorf("got kind %s, want %s", apperr.KindOf(err), tc.kind)
			}
		})
	}
}

func TestRegisterSuccess(t *testing.T) {
	repo := &stubRepository{}
	svc := NewService(repo, nil, nil, logger.GetDefault())

	tournamentID := uuid.New()
	userID := uuid.New()
	registration, err := svc.Register(context.Background(), tournamentID, userID, &RegisterRequest{TeamName: "Night Owls"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if registration.TournamentID != tournamentID || registration.UserID != userID || registration.TeamName != "Night Owls" {
		t.Errorf("registration = %+v", registration)
	}
}

func TestCreateValidatesDeadline(t *testing.T) {
	repo := &stubRepository{}
	svc := NewService(repo, nil, nil, logger.GetDefault())

	start := time.Now().Add(7 * 24 * time.Hour)
	_, err := svc.Create(context.Background(), &CreateTournamentRequest{
		Name:                 "CS2 Open",
		Game:                 "Counter-Strike 2",
		StartTime:            start,
		RegistrationDeadline: start.Add(time.Hour),
		MaxParticipants:      16,
	})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("got kind %s, want VALIDATION", apperr.KindOf(err))
	}
}

func TestCreateStartsAsDraft(t *testing.T) {
	repo := &stubRepository{}
	svc := NewService(repo, nil, nil, logger.GetDefault())

	start := time.Now().Add(7 * 24 * time.Hour)
	tournament, err := svc.Create(context.Background(), &CreateTournamentRequest{
		Name:                 "CS2 Open",
		Game:                 "Counter-Strike 2",
		StartTime:            start,
		RegistrationDeadline: start.Add(-24 * time.Hour),
		MaxParticipants:      16,
		EntryFee:             50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tournament.Status != StatusDraft {
		t.Errorf("status = %s, want DRAFT", tournament.Status)
	}
}
