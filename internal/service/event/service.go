package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/clinidesk/citas-api/internal/model"
	"github.com/clinidesk/citas-api/internal/repository"
	"github.com/clinidesk/citas-api/pkg/logger"
)

// Service records lifecycle events into the outbox table. The outbox
// processor publishes them to the broker out of band, so a broker outage
// never fails a mutation.
type Service struct {
	repo   repository.OutboxRepository
	logger *logger.Logger
}

func NewService(repo repository.OutboxRepository, logger *logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Record persists one outbox row for the given event. Failures are
// logged, not propagated: the mutation already succeeded.
func (s *Service) Record(ctx context.Context, eventType string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error(fmt.Errorf("failed to marshal event payload: %w", err), "dropping event", "event_type", eventType)
		return
	}

	evt := &model.OutboxEvent{
		EventType: eventType,
		Payload:   raw,
	}
	if err := s.repo.Create(ctx, evt); err != nil {
		s.logger.Error(err, "failed to record outbox event", "event_type", eventType)
	}
}
