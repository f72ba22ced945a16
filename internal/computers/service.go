package computers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"clubhub/internal/shared/apperr"
	"clubhub/internal/shared/constants"
	"clubhub/pkg/cache"
	"clubhub/pkg/logger"
)

// SessionSource reports live occupancy. Implemented by the sessions feature
// and wired through an adapter in api/routes to avoid a circular dependency.
type SessionSource interface {
	ActiveOccupants(ctx context.Context) (map[uuid.UUID]string, error)
	HasActiveSession(ctx context.Context, computerID uuid.UUID) (bool, error)
}

// ReservationSource reports reservation coverage. Implemented by the bookings
// feature, wired the same way.
type ReservationSource interface {
	CoveredComputerIDs(ctx context.Context, at time.Time) (map[uuid.UUID]struct{}, error)
	HasCoveringReservation(ctx context.Context, computerID uuid.UUID, at time.Time) (bool, error)
	BlockedComputerIDs(ctx context.Context, start, end time.Time) (map[uuid.UUID]struct{}, error)
}

// Broadcaster pushes seat status changes to connected clients. Nil-safe on
// the service side so tests and degraded startups work without a hub.
type Broadcaster interface {
	SeatStatusChanged(computerID, name, status, color string)
}

// Events publishes club events to Kafka. Fire-and-forget.
type Events interface {
	PublishSeatStatusChanged(ctx context.Context, computerID, name, status string)
}

type Service interface {
	List(ctx context.Context, includeInactive bool) ([]ComputerResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*ComputerResponse, error)
	Create(ctx context.Context, req *CreateComputerRequest) (*ComputerResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateComputerRequest) (*ComputerResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	SetStatus(ctx context.Context, id uuid.UUID, req *SetStatusRequest) (*ComputerResponse, error)
	Available(ctx context.Context, start, end time.Time) ([]ComputerResponse, error)
	HallScheme(ctx context.Context) (*HallSchemeResponse, error)

	// AnnounceStatus re-derives a computer's status after a session or
	// reservation transition, invalidates cached read models, and notifies
	// the broadcaster and Kafka. Other features call this through adapters.
	AnnounceStatus(ctx context.Context, computerID uuid.UUID) error
}

type service struct {
	repo         Repository
	sessions     SessionSource
	reservations ReservationSource
	broadcaster  Broadcaster
	events       Events
	cache        cache.Service
	log          *logger.Logger
}

func NewService(repo Repository, sessions SessionSource, reservations ReservationSource, broadcaster Broadcaster, events Events, cacheService cache.Service, log *logger.Logger) Service {
	return &service{
		repo:         repo,
		sessions:     sessions,
		reservations: reservations,
		broadcaster:  broadcaster,
		events:       events,
		cache:        cacheService,
		log:          log,
	}
}

func (s *service) List(ctx context.Context, includeInactive bool) ([]ComputerResponse, error) {
	computers, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list computers", err)
	}

	occupants, covered, err := s.occupancySnapshot(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]ComputerResponse, 0, len(computers))
	for i := range computers {
		responses = append(responses, s.toResponse(&computers[i], occupants, covered))
	}
	return responses, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ComputerResponse, error) {
	computer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == ErrComputerNotFound {
			return nil, apperr.NotFound("computer not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to get computer", err)
	}

	derived, _, err := s.deriveOne(ctx, computer)
	if err != nil {
		return nil, err
	}

	resp := toComputerResponse(computer, derived)
	return &resp, nil
}

func (s *service) Create(ctx context.Context, req *CreateComputerRequest) (*ComputerResponse, error) {
	taken, err := s.repo.PlaceTaken(ctx, req.Row, req.Place, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to check place", err)
	}
	if taken {
		return nil, apperr.Conflict("a computer already occupies this row and place")
	}

	computer := &Computer{
		Name:         req.Name,
		Row:          req.Row,
		Place:        req.Place,
		PricePerHour: req.PricePerHour,
		Processor:    req.Processor,
		RAM:          req.RAM,
		GraphicsCard: req.GraphicsCard,
		Monitor:      req.Monitor,
		Notes:        req.Notes,
		Status:       StatusAvailable,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, computer); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create computer", err)
	}

	s.invalidateReadModels(ctx)

	resp := toComputerResponse(computer, StatusAvailable)
	return &resp, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req *UpdateComputerRequest) (*ComputerResponse, error) {
	computer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == ErrComputerNotFound {
			return nil, apperr.NotFound("computer not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to get computer", err)
	}

	row := computer.Row
	place := computer.Place
	if req.Row != nil {
		row = *req.Row
	}
	if req.Place != nil {
		place = *req.Place
	}
	if row != computer.Row || place != computer.Place {
		taken, err := s.repo.PlaceTaken(ctx, row, place, &id)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to check place", err)
		}
		if taken {
			return nil, apperr.Conflict("a computer already occupies this row and place")
		}
	}

	if req.Name != nil {
		computer.Name = *req.Name
	}
	computer.Row = row
	computer.Place = place
	if req.PricePerHour != nil {
		computer.PricePerHour = *req.PricePerHour
	}
	if req.Processor != nil {
		computer.Processor = *req.Processor
	}
	if req.RAM != nil {
		computer.RAM = *req.RAM
	}
	if req.GraphicsCard != nil {
		computer.GraphicsCard = *req.GraphicsCard
	}
	if req.Monitor != nil {
		computer.Monitor = *req.Monitor
	}
	if req.Notes != nil {
		computer.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, computer); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to update computer", err)
	}

	s.invalidateReadModels(ctx)

	derived, _, err := s.deriveOne(ctx, computer)
	if err != nil {
		return nil, err
	}
	resp := toComputerResponse(computer, derived)
	return &resp, nil
}

func (s *service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if err == ErrComputerNotFound {
			return apperr.NotFound("computer not found")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to deactivate computer", err)
	}
	s.invalidateReadModels(ctx)
	return nil
}

func (s *service) SetStatus(ctx context.Context, id uuid.UUID, req *SetStatusRequest) (*ComputerResponse, error) {
	computer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == ErrComputerNotFound {
			return nil, apperr.NotFound("computer not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to get computer", err)
	}

	status := Status(req.Status)
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if status == StatusMaintenance {
		updates["last_maintenance"] = time.Now()
	}
	if req.Reason != "" {
		notes := computer.Notes
		if notes != "" {
			notes += "\n"
		}
		updates["notes"] = notes + time.Now().UTC().Format("2006-01-02 15:04") + ": " + req.Reason
	}

	if err := s.repo.UpdateStatus(ctx, id, updates); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to update computer status", err)
	}

	computer, err = s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to reload computer", err)
	}

	s.invalidateReadModels(ctx)

	derived, _, err := s.deriveOne(ctx, computer)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, computer, derived)

	resp := toComputerResponse(computer, derived)
	return &resp, nil
}

func (s *service) Available(ctx context.Context, start, end time.Time) ([]ComputerResponse, error) {
	if !start.Before(end) {
		return nil, apperr.New(apperr.KindValidation, "start_time must be before end_time")
	}

	computers, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list computers", err)
	}

	blocked := map[uuid.UUID]struct{}{}
	if s.reservations != nil {
		blocked, err = s.reservations.BlockedComputerIDs(ctx, start, end)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to check reservations", err)
		}
	}

	available := make([]ComputerResponse, 0, len(computers))
	for i := range computers {
		c := &computers[i]
		if c.IsOutOfService() {
			continue
		}
		if _, ok := blocked[c.ID]; ok {
			continue
		}
		available = append(available, toComputerResponse(c, StatusAvailable))
	}
	return available, nil
}

func (s *service) HallScheme(ctx context.Context) (*HallSchemeResponse, error) {
	if s.cache != nil {
		var cached HallSchemeResponse
		if err := s.cache.Get(ctx, constants.CACHE_KEY_HALL_SCHEME, &cached); err == nil {
			return &cached, nil
		}
	}

	computers, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list computers", err)
	}

	occupants, covered, err := s.occupancySnapshot(ctx)
	if err != nil {
		return nil, err
	}

	counts := map[Status]int{
		StatusAvailable:   0,
		StatusOccupied:    0,
		StatusReserved:    0,
		StatusMaintenance: 0,
		StatusBroken:      0,
	}

	rowIndex := map[int]int{}
	rows := []HallRow{}
	for i := range computers {
		c := &computers[i]
		_, hasSession := occupants[c.ID]
		_, hasReservation := covered[c.ID]
		derived := DeriveStatus(c.Status, hasSession, hasReservation)
		counts[derived]++

		seat := HallSeat{
			ID:          c.ID,
			Name:        c.Name,
			Row:         c.Row,
			Place:       c.Place,
			Status:      NewStatusDisplay(derived),
			CurrentUser: occupants[c.ID],
		}

		idx, ok := rowIndex[c.Row]
		if !ok {
			rows = append(rows, HallRow{Row: c.Row})
			idx = len(rows) - 1
			rowIndex[c.Row] = idx
		}
		rows[idx].Seats = append(rows[idx].Seats, seat)
	}

	legend := []StatusDisplay{
		NewStatusDisplay(StatusAvailable),
		NewStatusDisplay(StatusOccupied),
		NewStatusDisplay(StatusReserved),
		NewStatusDisplay(StatusMaintenance),
		NewStatusDisplay(StatusBroken),
	}

	scheme := &HallSchemeResponse{
		Rows:    rows,
		Legend:  legend,
		Counts:  counts,
		Updated: time.Now().UTC(),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, constants.CACHE_KEY_HALL_SCHEME, scheme, constants.TTL_HALL_SCHEME); err != nil {
			s.log.Warn("failed to cache hall scheme", "error", err)
		}
	}

	return scheme, nil
}

func (s *service) AnnounceStatus(ctx context.Context, computerID uuid.UUID) error {
	computer, err := s.repo.GetByID(ctx, computerID)
	if err != nil {
		if err == ErrComputerNotFound {
			return apperr.NotFound("computer not found")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to get computer", err)
	}

	s.invalidateReadModels(ctx)

	derived, _, err := s.deriveOne(ctx, computer)
	if err != nil {
		return err
	}
	s.publish(ctx, computer, derived)
	return nil
}

// occupancySnapshot collects one pass of session and reservation coverage so
// list endpoints derive every status from two queries instead of 2N.
func (s *service) occupancySnapshot(ctx context.Context) (map[uuid.UUID]string, map[uuid.UUID]struct{}, error) {
	occupants := map[uuid.UUID]string{}
	covered := map[uuid.UUID]struct{}{}

	if s.sessions != nil {
		var err error
		occupants, err = s.sessions.ActiveOccupants(ctx)
		if err != nil {
			return nil, nil, apperr.Wrap(apperr.KindInternal, "failed to check sessions", err)
		}
	}
	if s.reservations != nil {
		var err error
		covered, err = s.reservations.CoveredComputerIDs(ctx, time.Now())
		if err != nil {
			return nil, nil, apperr.Wrap(apperr.KindInternal, "failed to check reservations", err)
		}
	}
	return occupants, covered, nil
}

func (s *service) deriveOne(ctx context.Context, computer *Computer) (Status, bool, error) {
	hasSession := false
	hasReservation := false

	if s.sessions != nil {
		var err error
		hasSession, err = s.sessions.HasActiveSession(ctx, computer.ID)
		if err != nil {
			return "", false, apperr.Wrap(apperr.KindInternal, "failed to check sessions", err)
		}
	}
	if !hasSession && s.reservations != nil {
		var err error
		hasReservation, err = s.reservations.HasCoveringReservation(ctx, computer.ID, time.Now())
		if err != nil {
			return "", false, apperr.Wrap(apperr.KindInternal, "failed to check reservations", err)
		}
	}

	return DeriveStatus(computer.Status, hasSession, hasReservation), hasSession, nil
}

func (s *service) publish(ctx context.Context, computer *Computer, derived Status) {
	if s.broadcaster != nil {
		s.broadcaster.SeatStatusChanged(computer.ID.String(), computer.Name, string(derived), derived.DisplayColor())
	}
	if s.events != nil {
		s.events.PublishSeatStatusChanged(ctx, computer.ID.String(), computer.Name, string(derived))
	}
}

func (s *service) invalidateReadModels(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_COMPUTERS); err != nil {
		s.log.Warn("failed to invalidate computer caches", "error", err)
	}
}

func (s *service) toResponse(computer *Computer, occupants map[uuid.UUID]string, covered map[uuid.UUID]struct{}) ComputerResponse {
	_, hasSession := occupants[computer.ID]
	_, hasReservation := covered[computer.ID]
	return toComputerResponse(computer, DeriveStatus(computer.Status, hasSession, hasReservation))
}

func toComputerResponse(c *Computer, derived Status) ComputerResponse {
	return ComputerResponse{
		ID:              c.ID,
		Name:            c.Name,
		Row:             c.Row,
		Place:           c.Place,
		PricePerHour:    c.PricePerHour,
		Processor:       c.Processor,
		RAM:             c.RAM,
		GraphicsCard:    c.GraphicsCard,
		Monitor:         c.Monitor,
		Status:          NewStatusDisplay(derived),
		LastMaintenance: c.LastMaintenance,
		Notes:           c.Notes,
		IsActive:        c.IsActive,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
