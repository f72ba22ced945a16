package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"clubhub/internal/shared/apperr"
	"clubhub/pkg/logger"
)

type stubRepository struct {
	reservation      *Reservation
	computer         *bookingComputer
	createErr        error
	payBalanceErr    error
	markPaidErr      error
	cancelErr        error
	overlap          bool
	markedFailed     bool
	cancelRefund     bool
	cancelCalled     bool
	payBalanceCalled bool
	markPaidCalled   bool
	markPaidMethod   string
	markPaidTxnID    string
}

func (s *stubRepository) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	if s.reservation == nil {
		return nil, ErrReservationNotFound
	}
	res := *s.reservation
	return &res, nil
}

func (s *stubRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Reservation, error) {
	return nil, nil
}

func (s *stubRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]Reservation, error) {
	return nil, nil
}

func (s *stubRepository) GetComputerInfo(ctx context.Context, computerID uuid.UUID) (*bookingComputer, error) {
	if s.computer == nil {
		return nil, ErrComputerNotFound
	}
	return s.computer, nil
}

func (s *stubRepository) HasBlockingOverlap(ctx context.Context, computerID uuid.UUID, start, end time.Time) (bool, error) {
	return s.overlap, nil
}

func (s *stubRepository) CreateReservationAtomic(ctx context.Context, reservation *Reservation) error {
	if s.createErr != nil {
		return s.createErr
	}
	reservation.ID = uuid.New()
	return nil
}

func (s *stubRepository) PayWithBalance(ctx context.Context, reservation *Reservation) error {
	s.payBalanceCalled = true
	return s.payBalanceErr
}

func (s *stubRepository) MarkPaid(ctx context.Context, reservation *Reservation, method, transactionID string) error {
	s.markPaidCalled = true
	s.markPaidMethod = method
	s.markPaidTxnID = transactionID
	return s.markPaidErr
}

func (s *stubRepository) MarkPaymentFailed(ctx context.Context, reservationID uuid.UUID, method string) error {
	s.markedFailed = true
	return nil
}

func (s *stubRepository) CancelWithRefund(ctx context.Context, reservation *Reservation, now time.Time, reason string, refund bool) error {
	s.cancelCalled = true
	s.cancelRefund = refund
	return s.cancelErr
}

func (s *stubRepository) CoveredComputerIDs(ctx context.Context, at time.Time) (map[uuid.UUID]struct{}, error) {
	return nil, nil
}

func (s *stubRepository) HasCoveringReservation(ctx context.Context, computerID uuid.UUID, at time.Time) (bool, error) {
	return false, nil
}

func (s *stubRepository) BlockedComputerIDs(ctx context.Context, start, end time.Time) (map[uuid.UUID]struct{}, error) {
	return nil, nil
}

type stubGateway struct {
	transactionID string
	err           error
	called        bool
}

func (g *stubGateway) Charge(ctx context.Context, userID string, amount float64, method string) (string, error) {
	g.called = true
	return g.transactionID, g.err
}

type stubRegistry struct {
	announced []uuid.UUID
}

func (r *stubRegistry) AnnounceStatus(ctx context.Context, computerID uuid.UUID) error {
	r.announced = append(r.announced, computerID)
	return nil
}

func newTestService(repo Repository, gateway Gateway) (*service, *stubRegistry) {
	registry := &stubRegistry{}
	svc := NewService(repo, gateway, registry, nil, logger.GetDefault()).(*service)
	return svc, registry
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
}

func TestOverlapsHalfOpen(t *testing.T) {
	base := fixedNow()
	reservation := &Reservation{StartTime: base, EndTime: base.Add(2 * time.Hour)}

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"identical window", base, base.Add(2 * time.Hour), true},
		{"contained", base.Add(30 * time.Minute), base.Add(time.Hour), true},
		{"overlaps start", base.Add(-time.Hour), base.Add(time.Minute), true},
		{"overlaps end", base.Add(time.Hour), base.Add(3 * time.Hour), true},
		{"touches start", base.Add(-time.Hour), base, false},
		{"touches end", base.Add(2 * time.Hour), base.Add(3 * time.Hour), false},
		{"disjoint before", base.Add(-2 * time.Hour), base.Add(-time.Hour), false},
		{"disjoint after", base.Add(5 * time.Hour), base.Add(6 * time.Hour), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := reservation.Overlaps(tc.start, tc.end); got != tc.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tc.start, tc.end, got, tc.want)
			}
		})
	}
}

func TestPriceFor(t *testing.T) {
	start := fixedNow()

	cases := []struct {
		name  string
		hours time.Duration
		rate  float64
		want  float64
	}{
		{"whole hours", 2 * time.Hour, 150, 300},
		{"half hour", 30 * time.Minute, 150, 75},
		{"rounds to cents", 100 * time.Minute, 99.99, 166.65},
		{"free tier", 2 * time.Hour, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := PriceFor(start, start.Add(tc.hours), tc.rate)
			if got != tc.want {
				t.Errorf("PriceFor(%v at %v/h) = %v, want %v", tc.hours, tc.rate, got, tc.want)
			}
		})
	}
}

func TestCreateReservationValidation(t *testing.T) {
	repo := &stubRepository{}
	svc, _ := newTestService(repo, &stubGateway{})
	svc.now = fixedNow

	computerID := uuid.New()
	userID := uuid.New()

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		kind  apperr.Kind
	}{
		{"start after end", fixedNow().Add(3 * time.Hour), fixedNow().Add(2 * time.Hour), apperr.KindValidation},
		{"too short", fixedNow().Add(time.Hour), fixedNow().Add(time.Hour + 10*time.Minute), apperr.KindPolicyViolation},
		{"too long", fixedNow().Add(time.Hour), fixedNow().Add(26 * time.Hour), apperr.KindPolicyViolation},
		{"in the past", fixedNow().Add(-2 * time.Hour), fixedNow().Add(-time.Hour), apperr.KindPolicyViolation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), userID, &CreateReservationRequest{
				ComputerID: computerID,
				StartTime:  tc.start,
				EndTime:    tc.end,
			})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !apperr.IsKind(err, tc.kind) {
				t.Errorf("got kind %s, want %s", apperr.KindOf(err), tc.kind)
			}
		})
	}
}

func TestCreateReservationConflicts(t *testing.T) {
	cases := []struct {
		name      string
		createErr error
		kind      apperr.Kind
	}{
		{"slot taken", ErrTimeSlotTaken, apperr.KindConflict},
		{"out of service", ErrComputerUnavailable, apperr.KindConflict},
		{"missing computer", ErrComputerNotFound, apperr.KindNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubRepository{createErr: tc.createErr}
			svc, _ := newTestService(repo, &stubGateway{})
			svc.now = fixedNow

			_, err := svc.Create(context.Background(), uuid.New(), &CreateReservationRequest{
				ComputerID: uuid.New(),
				StartTime:  fixedNow().Add(time.Hour),
				EndTime:    fixedNow().Add(3 * time.Hour),
			})
			if !apperr.IsKind(err, tc.kind) {
				t.Errorf("got kind %s, want %s", apperr.KindOf(err), tc.kind)
			}
		})
	}
}

func TestCreateReservationAnnouncesStatus(t *testing.T) {
	repo := &stubRepository{}
	svc, registry := newTestService(repo, &stubGateway{})
	svc.now = fixedNow

	computerID := uuid.New()
	_, err := svc.Create(context.Background(), uuid.New(), &CreateReservationRequest{
		ComputerID: computerID,
		StartTime:  fixedNow().Add(time.Hour),
		EndTime:    fixedNow().Add(3 * time.Hour),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(registry.announced) != 1 || registry.announced[0] != computerID {
		t.Errorf("expected one announcement for %s, got %v", computerID, registry.announced)
	}
}

func TestPayForeignReservationForbidden(t *testing.T) {
	owner := uuid.New()
	repo := &stubRepository{reservation: &Reservation{
		ID:            uuid.New(),
		UserID:        owner,
		TotalPrice:    300,
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
	}}
	svc, _ := newTestService(repo, &stubGateway{})
	svc.now = fixedNow

	_, err := svc.Pay(context.Background(), repo.reservation.ID, uuid.New(), false, &PayReservationRequest{PaymentMethod: "BALANCE"})
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("got kind %s, want FORBIDDEN", apperr.KindOf(err))
	}
	if repo.payBalanceCalled {
		t.Error("balance must not be touched for a foreign reservation")
	}
}

func TestPayAlreadyPaidConflict(t *testing.T) {
	owner := uuid.New()
	repo := &stubRepository{reservation: &Reservation{
		ID:            uuid.New(),
		UserID:        owner,
		Status:        StatusConfirmed,
		PaymentStatus: PaymentPaid,
	}}
	svc, _ := newTestService(repo, &stubGateway{})

	_, err := svc.Pay(context.Background(), repo.reservation.ID, owner, false, &PayReservationRequest{PaymentMethod: "CARD"})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("got kind %s, want CONFLICT", apperr.KindOf(err))
	}
}

func TestPayInsufficientBalance(t *testing.T) {
	owner := uuid.New()
	repo := &stubRepository{
		reservation: &Reservation{
			ID:            uuid.New(),
			UserID:        owner,
			TotalPrice:    300,
			Status:        StatusPending,
			PaymentStatus: PaymentPending,
		},
		payBalanceErr: ErrInsufficientBalance,
	}
	svc, _ := newTestService(repo, &stubGateway{})

	_, err := svc.Pay(context.Background(), repo.reservation.ID, owner, false, &PayReservationRequest{PaymentMethod: "BALANCE"})
	if !apperr.IsKind(err, apperr.KindPolicyViolation) {
		t.Errorf("got kind %s, want POLICY_VIOLATION", apperr.KindOf(err))
	}
}

func TestPayGatewayDeclineLeavesReservation(t *testing.T) {
	owner := uuid.New()
	repo := &stubRepository{reservation: &Reservation{
		ID:            uuid.New(),
		UserID:        owner,
		TotalPrice:    300,
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
	}}
	gateway := &stubGateway{err: errors.New("card declined")}
	svc, _ := newTestService(repo, gateway)

	_, err := svc.Pay(context.Background(), repo.reservation.ID, owner, false, &PayReservationRequest{PaymentMethod: "CARD"})
	if !apperr.IsKind(err, apperr.KindUpstreamFailure) {
		t.Errorf("got kind %s, want UPSTREAM_FAILURE", apperr.KindOf(err))
	}
	if repo.markPaidCalled {
		t.Error("reservation must not be marked paid after a decline")
	}
	if !repo.markedFailed {
		t.Error("expected the failed attempt to be recorded")
	}
}

func TestPayGatewaySuccess(t *testing.T) {
	owner := uuid.New()
	repo := &stubRepository{reservation: &Reservation{
		ID:            uuid.New(),
		UserID:        owner,
		TotalPrice:    300,
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
	}}
	gateway := &stubGateway{transactionID: "txn_test"}
	svc, _ := newTestService(repo, gateway)

	_, err := svc.Pay(context.Background(), repo.reservation.ID, owner, false, &PayReservationRequest{PaymentMethod: "CARD"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.markPaidCalled || repo.markPaidMethod != "CARD" || repo.markPaidTxnID != "txn_test" {
		t.Errorf("MarkPaid called=%v method=%q txn=%q", repo.markPaidCalled, repo.markPaidMethod, repo.markPaidTxnID)
	}
}

func TestPayGatewaySuccessButAlreadyPaid(t *testing.T) {
	owner := uuid.New()
	repo := &stubRepository{
		reservation: &Reservation{
			ID:            uuid.New(),
			UserID:        owner,
			TotalPrice:    300,
			Status:        StatusPending,
			PaymentStatus: PaymentPending,
		},
		markPaidErr: ErrReservationNotFound,
	}
	gateway := &stubGateway{transactionID: "txn_test"}
	svc, _ := newTestService(repo, gateway)

	_, err := svc.Pay(context.Background(), repo.reservation.ID, owner, false, &PayReservationRequest{PaymentMethod: "CARD"})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("got kind %s, want CONFLICT", apperr.KindOf(err))
	}
	if !gateway.called {
		t.Error("expected the gateway to have been charged")
	}
}

func TestCancelCutoff(t *testing.T) {
	owner := uuid.New()
	repo := &stubRepository{reservation: &Reservation{
		ID:            uuid.New(),
		UserID:        owner,
		StartTime:     fixedNow().Add(90 * time.Minute),
		EndTime:       fixedNow().Add(3 * time.Hour),
		Status:        StatusConfirmed,
		PaymentStatus: PaymentPaid,
		TotalPrice:    300,
	}}
	svc, _ := newTestService(repo, &stubGateway{})
	svc.now = fixedNow

	_, err := svc.Cancel(context.Background(), repo.reservation.ID, owner, false, &CancelReservationRequest{})
	if !apperr.IsKind(err, apperr.KindPolicyViolation) {
		t.Errorf("got kind %s, want POLICY_VIOLATION", apperr.KindOf(err))
	}
	if repo.cancelCalled {
		t.Error("reservation must not be cancelled inside the cutoff")
	}
}

func TestCancelCutoffAdminBypass(t *testing.T) {
	owner := uuid.New()
	repo := &stubRepository{reservation: &Reservation{
		ID:            uuid.New(),
		UserID:        owner,
		StartTime:     fixedNow().Add(30 * time.Minute),
		EndTime:       fixedNow().Add(2 * time.Hour),
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
	}}
	svc, _ := newTestService(repo, &stubGateway{})
	svc.now = fixedNow

	if _, err := svc.Cancel(context.Background(), repo.reservation.ID, uuid.New(), true, &CancelReservationRequest{Reason: "desk override"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.cancelCalled {
		t.Error("expected cancellation")
	}
	if repo.cancelRefund {
		t.Error("unpaid reservation must not be refunded")
	}
}

func TestCancelPaidRefunds(t *testing.T) {
	owner := uuid.New()
	repo := &stubRepository{reservation: &Reservation{
		ID:            uuid.New(),
		UserID:        owner,
		StartTime:     fixedNow().Add(5 * time.Hour),
		EndTime:       fixedNow().Add(7 * time.Hour),
		Status:        StatusConfirmed,
		PaymentStatus: PaymentPaid,
		TotalPrice:    300,
	}}
	svc, _ := newTestService(repo, &stubGateway{})
	svc.now = fixedNow

	if _, err := svc.Cancel(context.Background(), repo.reservation.ID, owner, false, &CancelReservationRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.cancelRefund {
		t.Error("paid reservation must be refunded on cancel")
	}
}

func TestCancelActiveConflict(t *testing.T) {
	owner := uuid.New()
	repo := &stubRepository{reservation: &Reservation{
		ID:     uuid.New(),
		UserID: owner,
		Status: StatusActive,
	}}
	svc, _ := newTestService(repo, &stubGateway{})
	svc.now = fixedNow

	_, err := svc.Cancel(context.Background(), repo.reservation.ID, owner, false, &CancelReservationRequest{})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("got kind %s, want CONFLICT", apperr.KindOf(err))
	}
}

func TestCheckAvailability(t *testing.T) {
	computerID := uuid.New()

	t.Run("out of service", func(t *testing.T) {
		repo := &stubRepository{computer: &bookingComputer{ID: computerID, Status: "MAINTENANCE", IsActive: true, PricePerHour: 150}}
		svc, _ := newTestService(repo, &stubGateway{})

		result, err := svc.CheckAvailability(context.Background(), computerID, fixedNow().Add(time.Hour), fixedNow().Add(2*time.Hour))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Available {
			t.Error("expected unavailable")
		}
	})

	t.Run("blocked by overlap", func(t *testing.T) {
		repo := &stubRepository{
			computer: &bookingComputer{ID: computerID, Status: "AVAILABLE", IsActive: true, PricePerHour: 150},
			overlap:  true,
		}
		svc, _ := newTestService(repo, &stubGateway{})

		result, err := svc.CheckAvailability(context.Background(), computerID, fixedNow().Add(time.Hour), fixedNow().Add(2*time.Hour))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Available {
			t.Error("expected unavailable")
		}
	})

	t.Run("free with estimate", func(t *testing.T) {
		repo := &stubRepository{computer: &bookingComputer{ID: computerID, Status: "AVAILABLE", IsActive: true, PricePerHour: 150}}
		svc, _ := newTestService(repo, &stubGateway{})

		result, err := svc.CheckAvailability(context.Background(), computerID, fixedNow().Add(time.Hour), fixedNow().Add(3*time.Hour))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Available || result.EstimatedPrice != 300 {
			t.Errorf("got available=%v price=%v, want available with price 300", result.Available, result.EstimatedPrice)
		}
	})

	t.Run("inactive computer", func(t *testing.T) {
		repo := &stubRepository{computer: &bookingComputer{ID: computerID, Status: "AVAILABLE", IsActive: false}}
		svc, _ := newTestService(repo, &stubGateway{})

		_, err := svc.CheckAvailability(context.Background(), computerID, fixedNow().Add(time.Hour), fixedNow().Add(2*time.Hour))
		if !apperr.IsKind(err, apperr.KindNotFound) {
			t.Errorf("got kind %s, want NOT_FOUND", apperr.KindOf(err))
		}
	})
}
