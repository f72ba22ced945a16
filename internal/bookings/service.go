package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"clubhub/internal/shared/apperr"
	"clubhub/pkg/logger"
)

const (
	// CancellationCutoff is the fixed no-refund boundary before start time.
	CancellationCutoff = 2 * time.Hour

	MinDuration = 30 * time.Minute
	MaxDuration = 24 * time.Hour
)

// Gateway charges external payment methods. Declines come back as an error;
// the reservation is left untouched in that case.
type Gateway interface {
	Charge(ctx context.Context, userID string, amount float64, method string) (transactionID string, err error)
}

// Registry re-derives and publishes a computer's status after a transition.
// Implemented by the computers feature, wired via an adapter in api/routes.
type Registry interface {
	AnnounceStatus(ctx context.Context, computerID uuid.UUID) error
}

// Events publishes reservation lifecycle events to Kafka. Fire-and-forget.
type Events interface {
	PublishReservationEvent(ctx context.Context, eventType string, reservationID, userID string, amount float64)
}

type Service interface {
	CheckAvailability(ctx context.Context, computerID uuid.UUID, start, end time.Time) (*AvailabilityResponse, error)
	Create(ctx context.Context, userID uuid.UUID, req *CreateReservationRequest) (*ReservationResponse, error)
	Pay(ctx context.Context, reservationID, userID uuid.UUID, isAdmin bool, req *PayReservationRequest) (*ReservationResponse, error)
	Cancel(ctx context.Context, reservationID, userID uuid.UUID, isAdmin bool, req *CancelReservationRequest) (*ReservationResponse, error)
	Get(ctx context.Context, reservationID, userID uuid.UUID, isAdmin bool) (*ReservationResponse, error)
	ListMy(ctx context.Context, userID uuid.UUID) ([]ReservationResponse, error)
	ListMyActive(ctx context.Context, userID uuid.UUID) ([]ReservationResponse, error)
}

type service struct {
	repo     Repository
	gateway  Gateway
	registry Registry
	events   Events
	log      *logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, gateway Gateway, registry Registry, events Events, log *logger.Logger) Service {
	return &service{
		repo:     repo,
		gateway:  gateway,
		registry: registry,
		events:   events,
		log:      log,
		now:      time.Now,
	}
}

func (s *service) CheckAvailability(ctx context.Context, computerID uuid.UUID, start, end time.Time) (*AvailabilityResponse, error) {
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}

	computer, err := s.repo.GetComputerInfo(ctx, computerID)
	if err != nil {
		if err == ErrComputerNotFound {
			return nil, apperr.NotFound("computer not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to check availability", err)
	}
	if !computer.IsActive {
		return nil, apperr.NotFound("computer not found")
	}

	if computer.Status == "MAINTENANCE" || computer.Status == "BROKEN" {
		return &AvailabilityResponse{Available: false, Reason: "computer is out of service"}, nil
	}

	overlap, err := s.repo.HasBlockingOverlap(ctx, computerID, start, end)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to check availability", err)
	}
	if overlap {
		return &AvailabilityResponse{Available: false, Reason: "time slot is already taken"}, nil
	}

	price := PriceFor(start, end, computer.PricePerHour)
	return &AvailabilityResponse{Available: true, EstimatedPrice: price}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req *CreateReservationRequest) (*ReservationResponse, error) {
	if err := validateWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	if req.StartTime.Before(s.now()) {
		return nil, apperr.PolicyViolation("start_time must be in the future")
	}

	reservation := &Reservation{
		UserID:     userID,
		ComputerID: req.ComputerID,
		StartTime:  req.StartTime.UTC(),
		EndTime:    req.EndTime.UTC(),
	}

	if err := s.repo.CreateReservationAtomic(ctx, reservation); err != nil {
		switch err {
		case ErrComputerNotFound:
			return nil, apperr.NotFound("computer not found")
		case ErrComputerUnavailable:
			return nil, apperr.Conflict("computer is not available for booking")
		case ErrTimeSlotTaken:
			return nil, apperr.Conflict("time slot is already taken")
		default:
			return nil, apperr.Wrap(apperr.KindInternal, "failed to create reservation", err)
		}
	}

	s.log.LogReservationCreated(ctx, reservation.ID.String(), reservation.ComputerID.String(), userID.String())
	s.announce(ctx, reservation.ComputerID)
	if s.events != nil {
		s.events.PublishReservationEvent(ctx, "reservation_created", reservation.ID.String(), userID.String(), reservation.TotalPrice)
	}

	resp := toReservationResponse(reservation)
	return &resp, nil
}

func (s *service) Pay(ctx context.Context, reservationID, userID uuid.UUID, isAdmin bool, req *PayReservationRequest) (*ReservationResponse, error) {
	reservation, err := s.loadOwned(ctx, reservationID, userID, isAdmin)
	if err != nil {
		return nil, err
	}

	if reservation.PaymentStatus == PaymentPaid {
		return nil, apperr.Conflict("reservation is already paid")
	}
	if reservation.IsTerminal() {
		return nil, apperr.Conflict("reservation is no longer payable")
	}

	switch req.PaymentMethod {
	case "BALANCE":
		if err := s.repo.PayWithBalance(ctx, reservation); err != nil {
			switch err {
			case ErrInsufficientBalance:
				return nil, apperr.PolicyViolation("insufficient balance")
			case ErrReservationNotFound:
				return nil, apperr.Conflict("reservation is already paid")
			default:
				return nil, apperr.Wrap(apperr.KindInternal, "failed to process payment", err)
			}
		}
	default:
		transactionID, err := s.gateway.Charge(ctx, reservation.UserID.String(), reservation.TotalPrice, req.PaymentMethod)
		if err != nil {
			if ferr := s.repo.MarkPaymentFailed(ctx, reservation.ID, req.PaymentMethod); ferr != nil {
				s.log.ErrorWithContext(ctx, "failed to record payment failure", ferr, nil)
			}
			return nil, apperr.Wrap(apperr.KindUpstreamFailure, "payment was declined", err)
		}
		if err := s.repo.MarkPaid(ctx, reservation, req.PaymentMethod, transactionID); err != nil {
			// The gateway charge stands with no paid reservation; keep the
			// transaction id on record for reconciliation.
			s.log.ErrorWithContext(ctx, "payment captured but reservation not marked paid", err, map[string]interface{}{
				"reservation_id": reservation.ID.String(),
				"transaction_id": transactionID,
			})
			if err == ErrReservationNotFound {
				return nil, apperr.Conflict("reservation is already paid")
			}
			return nil, apperr.Wrap(apperr.KindInternal, "failed to process payment", err)
		}
	}

	s.announce(ctx, reservation.ComputerID)
	if s.events != nil {
		s.events.PublishReservationEvent(ctx, "reservation_paid", reservation.ID.String(), reservation.UserID.String(), reservation.TotalPrice)
	}

	updated, err := s.repo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to reload reservation", err)
	}
	resp := toReservationResponse(updated)
	return &resp, nil
}

func (s *service) Cancel(ctx context.Context, reservationID, userID uuid.UUID, isAdmin bool, req *CancelReservationRequest) (*ReservationResponse, error) {
	reservation, err := s.loadOwned(ctx, reservationID, userID, isAdmin)
	if err != nil {
		return nil, err
	}

	if reservation.IsTerminal() {
		return nil, apperr.Conflict("reservation is already finished")
	}
	if reservation.Status == StatusActive {
		return nil, apperr.Conflict("cannot cancel a reservation in progress")
	}

	now := s.now()
	if !isAdmin && reservation.StartTime.Sub(now) < CancellationCutoff {
		return nil, apperr.PolicyViolation("reservations can only be cancelled at least 2 hours before start")
	}

	refund := reservation.PaymentStatus == PaymentPaid && reservation.TotalPrice > 0
	if err := s.repo.CancelWithRefund(ctx, reservation, now, req.Reason, refund); err != nil {
		if err == ErrReservationNotFound {
			return nil, apperr.Conflict("reservation is already finished")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to cancel reservation", err)
	}

	s.log.LogReservationCancelled(ctx, reservation.ID.String(), reservation.UserID.String(), refund)
	s.announce(ctx, reservation.ComputerID)
	if s.events != nil {
		s.events.PublishReservationEvent(ctx, "reservation_cancelled", reservation.ID.String(), reservation.UserID.String(), reservation.TotalPrice)
	}

	updated, err := s.repo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to reload reservation", err)
	}
	resp := toReservationResponse(updated)
	return &resp, nil
}

func (s *service) Get(ctx context.Context, reservationID, userID uuid.UUID, isAdmin bool) (*ReservationResponse, error) {
	reservation, err := s.loadOwned(ctx, reservationID, userID, isAdmin)
	if err != nil {
		return nil, err
	}
	resp := toReservationResponse(reservation)
	return &resp, nil
}

func (s *service) ListMy(ctx context.Context, userID uuid.UUID) ([]ReservationResponse, error) {
	reservations, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list reservations", err)
	}
	return toReservationResponses(reservations), nil
}

func (s *service) ListMyActive(ctx context.Context, userID uuid.UUID) ([]ReservationResponse, error) {
	reservations, err := s.repo.ListActiveByUser(ctx, userID, s.now())
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list reservations", err)
	}
	return toReservationResponses(reservations), nil
}

func (s *service) loadOwned(ctx context.Context, reservationID, userID uuid.UUID, isAdmin bool) (*Reservation, error) {
	reservation, err := s.repo.GetByID(ctx, reservationID)
	if err != nil {
		if err == ErrReservationNotFound {
			return nil, apperr.NotFound("reservation not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to get reservation", err)
	}
	if reservation.UserID != userID && !isAdmin {
		return nil, apperr.Forbidden("reservation belongs to another user")
	}
	return reservation, nil
}

func (s *service) announce(ctx context.Context, computerID uuid.UUID) {
	if s.registry == nil {
		return
	}
	if err := s.registry.AnnounceStatus(ctx, computerID); err != nil {
		s.log.Warn("failed to announce computer status", "computer_id", computerID.String(), "error", err)
	}
}

func validateWindow(start, end time.Time) error {
	if !start.Before(end) {
		return apperr.New(apperr.KindValidation, "start_time must be before end_time")
	}
	duration := end.Sub(start)
	if duration < MinDuration {
		return apperr.PolicyViolation("reservation must be at least 30 minutes")
	}
	if duration > MaxDuration {
		return apperr.PolicyViolation("reservation cannot exceed 24 hours")
	}
	return nil
}
