package sessions

import (
	"context"
	"time"

	"github.com/google/uuid"

	"clubhub/internal/shared/apperr"
	"clubhub/pkg/logger"
)

// Registry re-derives and publishes a computer's status after a transition.
// Wired via an adapter in api/routes.
type Registry interface {
	AnnounceStatus(ctx context.Context, computerID uuid.UUID) error
}

// Events publishes session lifecycle events to Kafka. Fire-and-forget.
type Events interface {
	PublishSessionEvent(ctx context.Context, eventType string, sessionID, computerID, userID string)
}

type Service interface {
	Start(ctx context.Context, adminID uuid.UUID, req *StartSessionRequest) (*SessionResponse, error)
	End(ctx context.Context, sessionID uuid.UUID) (*SessionResponse, error)
	Interrupt(ctx context.Context, sessionID uuid.UUID, req *InterruptSessionRequest) (*SessionResponse, error)
	ListActive(ctx context.Context) ([]ActiveSessionRow, error)
	ListMy(ctx context.Context, userID uuid.UUID) ([]SessionResponse, error)
}

type service struct {
	repo     Repository
	registry Registry
	events   Events
	log      *logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, registry Registry, events Events, log *logger.Logger) Service {
	return &service{
		repo:     repo,
		registry: registry,
		events:   events,
		log:      log,
		now:      time.Now,
	}
}

func (s *service) Start(ctx context.Context, adminID uuid.UUID, req *StartSessionRequest) (*SessionResponse, error) {
	session := &Session{
		UserID:        req.UserID,
		ComputerID:    req.ComputerID,
		ReservationID: req.ReservationID,
		StartTime:     s.now().UTC(),
		StartedBy:     adminID,
		Notes:         req.Notes,
	}

	if err := s.repo.StartAtomic(ctx, session); err != nil {
		switch err {
		case ErrComputerNotFound:
			return nil, apperr.NotFound("computer not found")
		case ErrUserNotFound:
			return nil, apperr.NotFound("user not found")
		case ErrComputerUnavailable:
			return nil, apperr.Conflict("computer is out of service")
		case ErrComputerOccupied:
			return nil, apperr.Conflict("computer already has an active session")
		case ErrComputerReserved:
			return nil, apperr.Conflict("computer is reserved for another booking")
		case ErrReservationInvalid:
			return nil, apperr.Conflict("reservation cannot be activated for this session")
		default:
			return nil, apperr.Wrap(apperr.KindInternal, "failed to start session", err)
		}
	}

	s.log.LogSessionStarted(ctx, session.ID.String(), session.ComputerID.String(), session.UserID.String())
	s.announce(ctx, session.ComputerID)
	if s.events != nil {
		s.events.PublishSessionEvent(ctx, "session_started", session.ID.String(), session.ComputerID.String(), session.UserID.String())
	}

	resp := toSessionResponse(session)
	return &resp, nil
}

func (s *service) End(ctx context.Context, sessionID uuid.UUID) (*SessionResponse, error) {
	session, err := s.repo.CloseAtomic(ctx, sessionID, s.now().UTC(), StatusCompleted, true, "")
	if err != nil {
		if err == ErrSessionNotFound {
			return nil, apperr.NotFound("active session not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to end session", err)
	}

	s.log.LogSessionEnded(ctx, session.ID.String(), session.TotalPrice)
	s.announce(ctx, session.ComputerID)
	if s.events != nil {
		s.events.PublishSessionEvent(ctx, "session_ended", session.ID.String(), session.ComputerID.String(), session.UserID.String())
	}

	resp := toSessionResponse(session)
	return &resp, nil
}

func (s *service) Interrupt(ctx context.Context, sessionID uuid.UUID, req *InterruptSessionRequest) (*SessionResponse, error) {
	notes := "interrupted"
	if req.Reason != "" {
		notes = "interrupted: " + req.Reason
	}

	session, err := s.repo.CloseAtomic(ctx, sessionID, s.now().UTC(), StatusInterrupted, false, notes)
	if err != nil {
		if err == ErrSessionNotFound {
			return nil, apperr.NotFound("active session not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to interrupt session", err)
	}

	s.announce(ctx, session.ComputerID)
	if s.events != nil {
		s.events.PublishSessionEvent(ctx, "session_interrupted", session.ID.String(), session.ComputerID.String(), session.UserID.String())
	}

	resp := toSessionResponse(session)
	return &resp, nil
}

func (s *service) ListActive(ctx context.Context) ([]ActiveSessionRow, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list active sessions", err)
	}
	return rows, nil
}

func (s *service) ListMy(ctx context.Context, userID uuid.UUID) ([]SessionResponse, error) {
	sessions, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list sessions", err)
	}
	responses := make([]SessionResponse, 0, len(sessions))
	for i := range sessions {
		responses = append(responses, toSessionResponse(&sessions[i]))
	}
	return responses, nil
}

func (s *service) announce(ctx context.Context, computerID uuid.UUID) {
	if s.registry == nil {
		return
	}
	if err := s.registry.AnnounceStatus(ctx, computerID); err != nil {
		s.log.Warn("failed to announce computer status", "computer_id", computerID.String(), "error", err)
	}
}
