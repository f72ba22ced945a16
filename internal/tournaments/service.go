package tournaments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"clubhub/internal/shared/apperr"
	"clubhub/internal/shared/constants"
	"clubhub/pkg/cache"
	"clubhub/pkg/logger"
)

// Events publishes tournament events to Kafka. Fire-and-forget.
type Events interface {
	PublishTournamentEvent(ctx context.Context, eventType string, tournamentID, userID string)
}

type Service interface {
	List(ctx context.Context) ([]Tournament, error)
	ListUpcoming(ctx context.Context) ([]Tournament, error)
	Get(ctx context.Context, id uuid.UUID) (*Tournament, error)
	Create(ctx context.Context, req *CreateTournamentRequest) (*Tournament, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *UpdateTournamentStatusRequest) (*Tournament, error)
	Register(ctx context.Context, tournamentID, userID uuid.UUID, req *RegisterRequest) (*Registration, error)
	MyRegistrations(ctx context.Context, userID uuid.UUID) ([]Registration, error)
}

type service struct {
	repo   Repository
	events Events
	cache  cache.Service
	log    *logger.Logger
	now    func() time.Time
}

func NewService(repo Repository, events Events, cacheService cache.Service, log *logger.Logger) Service {
	return &service{
		repo:   repo,
		events: events,
		cache:  cacheService,
		log:    log,
		now:    time.Now,
	}
}

func (s *service) List(ctx context.Context) ([]Tournament, error) {
	tournaments, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list tournaments", err)
	}
	return tournaments, nil
}

func (s *service) ListUpcoming(ctx context.Context) ([]Tournament, error) {
	if s.cache != nil {
		var cached []Tournament
		if err := s.cache.Get(ctx, constants.CACHE_KEY_TOURNAMENTS_UPCOMING, &cached); err == nil {
			return cached, nil
		}
	}

	tournaments, err := s.repo.ListUpcoming(ctx, s.now())
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list tournaments", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, constants.CACHE_KEY_TOURNAMENTS_UPCOMING, tournaments, constants.TTL_TOURNAMENTS_UPCOMING); err != nil {
			s.log.Warn("failed to cache upcoming tournaments", "error", err)
		}
	}
	return tournaments, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Tournament, error) {
	tournament, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == ErrTournamentNotFound {
			return nil, apperr.NotFound("tournament not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to get tournament", err)
	}
	return tournament, nil
}

func (s *service) Create(ctx context.Context, req *CreateTournamentRequest) (*Tournament, error) {
	if !req.RegistrationDeadline.Before(req.StartTime) {
		return nil, apperr.New(apperr.KindValidation, "registration_deadline must be before start_time")
	}

	tournament := &Tournament{
		Name:                 req.Name,
		Description:          req.Description,
		Game:                 req.Game,
		StartTime:            req.StartTime.UTC(),
		RegistrationDeadline: req.RegistrationDeadline.UTC(),
		MaxParticipants:      req.MaxParticipants,
		EntryFee:             req.EntryFee,
		PrizePool:            req.PrizePool,
		Status:               StatusDraft,
	}

	if err := s.repo.Create(ctx, tournament); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create tournament", err)
	}

	s.invalidateUpcoming(ctx)
	return tournament, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, req *UpdateTournamentStatusRequest) (*Tournament, error) {
	tournament, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == ErrTournamentNotFound {
			return nil, apperr.NotFound("tournament not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to get tournament", err)
	}

	tournament.Status = Status(req.Status)
	if err := s.repo.Update(ctx, tournament); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to update tournament", err)
	}

	s.invalidateUpcoming(ctx)
	return tournament, nil
}

func (s *service) Register(ctx context.Context, tournamentID, userID uuid.UUID, req *RegisterRequest) (*Registration, error) {
	registration := &Registration{
		TournamentID: tournamentID,
		UserID:       userID,
		TeamName:     req.TeamName,
	}

	if err := s.repo.RegisterAtomic(ctx, registration, s.now()); err != nil {
		switch err {
		case ErrTournamentNotFound:
			return nil, apperr.NotFound("tournament not found")
		case ErrRegistrationClosed:
			return nil, apperr.PolicyViolation("tournament is not open for registration")
		case ErrDeadlinePassed:
			return nil, apperr.PolicyViolation("registration deadline has passed")
		case ErrTournamentFull:
			return nil, apperr.PolicyViolation("tournament is full")
		case ErrAlreadyRegistered:
			return nil, apperr.Conflict("user is already registered for this tournament")
		case ErrInsufficientBalance:
			return nil, apperr.PolicyViolation("insufficient balance for the entry fee")
		default:
			return nil, apperr.Wrap(apperr.KindInternal, "failed to register", err)
		}
	}

	s.invalidateUpcoming(ctx)
	if s.events != nil {
		s.events.PublishTournamentEvent(ctx, "tournament_registration", tournamentID.String(), userID.String())
	}
	return registration, nil
}

func (s *service) MyRegistrations(ctx context.Context, userID uuid.UUID) ([]Registration, error) {
	registrations, err := s.repo.ListRegistrationsByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list registrations", err)
	}
	return registrations, nil
}

func (s *service) invalidateUpcoming(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, constants.CACHE_KEY_TOURNAMENTS_UPCOMING); err != nil {
		s.log.Warn("failed to invalidate tournament cache", "error", err)
	}
}
