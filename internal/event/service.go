package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/product-catalog/internal/storage/mq"
)

// Service consumes product lifecycle events and records them in the log.
type Service struct {
	logger     *slog.Logger
	mqConsumer mq.Consumer
}

// New creates a new event service.
func New(
	logger *slog.Logger,
	mqConsumer mq.Consumer,
) *Service {
	return &Service{
		logger:     logger.With(slog.String("service", "event")),
		mqConsumer: mqConsumer,
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	for _, topic := range ProductTopics {
		if err := s.mqConsumer.RegisterHandler(topic, s.handleMessage); err != nil {
			return nil, fmt.Errorf("register %s event handler: %w", topic, err)
		}
	}

	mqCleanup, err := s.mqConsumer.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("run mq consumer: %w", err)
	}

	cleanup := func() {
		mqCleanup()
	}

	return cleanup, nil
}

func (s *Service) handleMessage(ctx context.Context, msg mq.Message) error {
	var ev ProductEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		return fmt.Errorf("unmarshal %s event: %w", msg.Topic, err)
	}

	if err := s.handleProductEvent(ctx, msg.Topic, ev); err != nil {
		return fmt.Errorf("handle %s event: %w", msg.Topic, err)
	}

	return nil
}
