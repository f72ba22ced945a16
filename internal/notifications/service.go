package notifications

import (
	"context"
	"time"

	"clubhub/pkg/logger"
)

// Service is the publishing facade the other features talk to through their
// local Events interfaces. A nil producer (Kafka disabled) turns every
// publish into a no-op; errors are logged and swallowed, never surfaced to
// the request path.
type Service struct {
	producer Producer
	log      *logger.Logger
}

func NewService(producer Producer, log *logger.Logger) *Service {
	return &Service{
		producer: producer,
		log:      log,
	}
}

func (s *Service) PublishSeatStatusChanged(ctx context.Context, computerID, name, status string) {
	s.publish(&ClubEvent{
		Type:       "seat_status_changed",
		ComputerID: computerID,
		Attributes: map[string]string{"name": name, "status": status},
	})
}

func (s *Service) PublishReservationEvent(ctx context.Context, eventType string, reservationID, userID string, amount float64) {
	s.publish(&ClubEvent{
		Type:     eventType,
		ObjectID: reservationID,
		UserID:   userID,
		Amount:   amount,
	})
}

func (s *Service) PublishSessionEvent(ctx context.Context, eventType string, sessionID, computerID, userID string) {
	s.publish(&ClubEvent{
		Type:       eventType,
		ObjectID:   sessionID,
		ComputerID: computerID,
		UserID:     userID,
	})
}

func (s *Service) PublishTournamentEvent(ctx context.Context, eventType string, tournamentID, userID string) {
	s.publish(&ClubEvent{
		Type:     eventType,
		ObjectID: tournamentID,
		UserID:   userID,
	})
}

func (s *Service) Close() error {
	if s.producer == nil {
		return nil
	}
	return s.producer.Close()
}

func (s *Service) publish(event *ClubEvent) {
	if s == nil || s.producer == nil {
		return
	}
	event.OccurredAt = time.Now().UTC()
	if err := s.producer.Publish(event); err != nil {
		s.log.Warn("failed to publish club event", "type", event.Type, "error", err)
	}
}
