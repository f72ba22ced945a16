package computers

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"clubhub/internal/shared/apperr"
	"clubhub/pkg/logger"
)

type stubRepo struct {
	computers  []Computer
	statusSets map[uuid.UUID]map[string]interface{}
	placeTaken bool
}

func (s *stubRepo) List(ctx context.Context, includeInactive bool) ([]Computer, error) {
	if includeInactive {
		return s.computers, nil
	}
	active := make([]Computer, 0, len(s.computers))
	for _, c := range s.computers {
		if c.IsActive {
			active = append(active, c)
		}
	}
	return active, nil
}

func (s *stubRepo) GetByID(ctx context.Context, id uuid.UUID) (*Computer, error) {
	for i := range s.computers {
		if s.computers[i].ID == id {
			c := s.computers[i]
			return &c, nil
		}
	}
	return nil, ErrComputerNotFound
}

func (s *stubRepo) Create(ctx context.Context, computer *Computer) error {
	computer.ID = uuid.New()
	s.computers = append(s.computers, *computer)
	return nil
}

func (s *stubRepo) Update(ctx context.Context, computer *Computer) error {
	for i := range s.computers {
		if s.computers[i].ID == computer.ID {
			s.computers[i] = *computer
			return nil
		}
	}
	return ErrComputerNotFound
}

func (s *stubRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	for i := range s.computers {
		if s.computers[i].ID == id {
			s.computers[i].IsActive = false
			return nil
		}
	}
	return ErrComputerNotFound
}

func (s *stubRepo) UpdateStatus(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if s.statusSets == nil {
		s.statusSets = map[uuid.UUID]map[string]interface{}{}
	}
	s.statusSets[id] = updates
	for i := range s.computers {
		if s.computers[i].ID == id {
			if raw, ok := updates["status"]; ok {
				s.computers[i].Status = raw.(Status)
			}
			return nil
		}
	}
	return ErrComputerNotFound
}

func (s *stubRepo) PlaceTaken(ctx context.Context, row, place int, excludeID *uuid.UUID) (bool, error) {
	return s.placeTaken, nil
}

type stubSessions struct {
	occupants map[uuid.UUID]string
}

func (s *stubSessions) ActiveOccupants(ctx context.Context) (map[uuid.UUID]string, error) {
	return s.occupants, nil
}

func (s *stubSessions) HasActiveSession(ctx context.Context, computerID uuid.UUID) (bool, error) {
	_, ok := s.occupants[computerID]
	return ok, nil
}

type stubReservations struct {
	covered map[uuid.UUID]struct{}
	blocked map[uuid.UUID]struct{}
}

func (s *stubReservations) CoveredComputerIDs(ctx context.Context, at time.Time) (map[uuid.UUID]struct{}, error) {
	return s.covered, nil
}

func (s *stubReservations) HasCoveringReservation(ctx context.Context, computerID uuid.UUID, at time.Time) (bool, error) {
	_, ok := s.covered[computerID]
	return ok, nil
}

func (s *stubReservations) BlockedComputerIDs(ctx context.Context, start, end time.Time) (map[uuid.UUID]struct{}, error) {
	return s.blocked, nil
}

type broadcastCall struct {
	computerID string
	status     string
}

type stubBroadcaster struct {
	calls []broadcastCall
}

func (s *stubBroadcaster) SeatStatusChanged(computerID, name, status, color string) {
	s.calls = append(s.calls, broadcastCall{computerID: computerID, status: status})
}

func seat(name string, row, place int, status Status, active bool) Computer {
	return Computer{
		ID:           uuid.New(),
		Name:         name,
		Row:          row,
		Place:        place,
		PricePerHour: 150,
		Status:       status,
		IsActive:     active,
	}
}

func TestHallScheme(t *testing.T) {
	free := seat("PC-101", 1, 1, StatusAvailable, true)
	busy := seat("PC-102", 1, 2, StatusAvailable, true)
	reserved := seat("PC-201", 2, 1, StatusAvailable, true)
	broken := seat("PC-202", 2, 2, StatusBroken, true)
	inactive := seat("PC-203", 2, 3, StatusAvailable, false)

	repo := &stubRepo{computers: []Computer{free, busy, reserved, broken, inactive}}
	sessions := &stubSessions{occupants: map[uuid.UUID]string{busy.ID: "Dana K."}}
	reservations := &stubReservations{covered: map[uuid.UUID]struct{}{reserved.ID: {}}}

	svc := NewService(repo, sessions, reservations, nil, nil, nil, logger.GetDefault())

	scheme, err := svc.HallScheme(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(scheme.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(scheme.Rows))
	}
	if len(scheme.Rows[0].Seats) != 2 || len(scheme.Rows[1].Seats) != 2 {
		t.Errorf("row sizes = %d/%d, want 2/2 (inactive seats excluded)", len(scheme.Rows[0].Seats), len(scheme.Rows[1].Seats))
	}

	wantCounts := map[Status]int{
		StatusAvailable:   1,
		StatusOccupied:    1,
		StatusReserved:    1,
		StatusMaintenance: 0,
		StatusBroken:      1,
	}
	for status, want := range wantCounts {
		if scheme.Counts[status] != want {
			t.Errorf("counts[%s] = %d, want %d", status, scheme.Counts[status], want)
		}
	}

	occupied := scheme.Rows[0].Seats[1]
	if occupied.Status.Status != StatusOccupied || occupied.CurrentUser != "Dana K." {
		t.Errorf("occupied seat = %+v", occupied)
	}
}

func TestAvailableFiltersBlockedAndOutOfService(t *testing.T) {
	free := seat("PC-101", 1, 1, StatusAvailable, true)
	blocked := seat("PC-102", 1, 2, StatusAvailable, true)
	maintenance := seat("PC-103", 1, 3, StatusMaintenance, true)

	repo := &stubRepo{computers: []Computer{free, blocked, maintenance}}
	reservations := &stubReservations{blocked: map[uuid.UUID]struct{}{blocked.ID: {}}}

	svc := NewService(repo, &stubSessions{}, reservations, nil, nil, nil, logger.GetDefault())

	start := time.Now().Add(time.Hour)
	available, err := svc.Available(context.Background(), start, start.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(available) != 1 || available[0].ID != free.ID {
		t.Errorf("got %d available computers, want only %s", len(available), free.Name)
	}

	if _, err := svc.Available(context.Background(), start.Add(time.Hour), start); !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("inverted window: got kind %s, want VALIDATION", apperr.KindOf(err))
	}
}

func TestSetStatusStampsMaintenance(t *testing.T) {
	c := seat("PC-101", 1, 1, StatusAvailable, true)
	repo := &stubRepo{computers: []Computer{c}}
	broadcaster := &stubBroadcaster{}

	svc := NewService(repo, &stubSessions{}, &stubReservations{}, broadcaster, nil, nil, logger.GetDefault())

	resp, err := svc.SetStatus(context.Background(), c.ID, &SetStatusRequest{Status: "MAINTENANCE", Reason: "GPU fan replacement"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status.Status != StatusMaintenance {
		t.Errorf("status = %s, want MAINTENANCE", resp.Status.Status)
	}

	updates := repo.statusSets[c.ID]
	if updates == nil {
		t.Fatal("no status update recorded")
	}
	if _, ok := updates["last_maintenance"]; !ok {
		t.Error("last_maintenance must be stamped when entering MAINTENANCE")
	}
	if _, ok := updates["notes"]; !ok {
		t.Error("reason must be appended to notes")
	}

	if len(broadcaster.calls) != 1 || broadcaster.calls[0].status != string(StatusMaintenance) {
		t.Errorf("broadcast calls = %+v", broadcaster.calls)
	}
}

func TestAnnounceStatusPublishesDerived(t *testing.T) {
	c := seat("PC-101", 1, 1, StatusAvailable, true)
	repo := &stubRepo{computers: []Computer{c}}
	sessions := &stubSessions{occupants: map[uuid.UUID]string{c.ID: "Dana K."}}
	broadcaster := &stubBroadcaster{}

	svc := NewService(repo, sessions, &stubReservations{}, broadcaster, nil, nil, logger.GetDefault())

	if err := svc.AnnounceStatus(context.Background(), c.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(broadcaster.calls) != 1 {
		t.Fatalf("got %d broadcasts, want 1", len(broadcaster.calls))
	}
	if broadcaster.calls[0].status != string(StatusOccupied) {
		t.Errorf("broadcast status = %s, want OCCUPIED", broadcaster.calls[0].status)
	}

	if err := svc.AnnounceStatus(context.Background(), uuid.New()); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("unknown computer: got kind %s, want NOT_FOUND", apperr.KindOf(err))
	}
}

func TestCreateRejectsTakenPlace(t *testing.T) {
	repo := &stubRepo{placeTaken: true}
	svc := NewService(repo, &stubSessions{}, &stubReservations{}, nil, nil, nil, logger.GetDefault())

	_, err := svc.Create(context.Background(), &CreateComputerRequest{Name: "PC-101", Row: 1, Place: 1, PricePerHour: 150})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("got kind %s, want CONFLICT", apperr.KindOf(err))
	}
}
