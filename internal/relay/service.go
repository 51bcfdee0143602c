package relay

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tuanvumaihuynh/product-catalog/internal/config"
	"github.com/tuanvumaihuynh/product-catalog/internal/repository"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/mq"
	"github.com/tuanvumaihuynh/product-catalog/pkg/ptr"
)

// Service publishes pending outbox messages to the broker. Each batch is
// locked, produced and marked processed in one transaction, so concurrent
// relays never publish the same message twice.
type Service struct {
	cfg           config.Relay
	logger        *slog.Logger
	db            db.Transactor
	outboxMsgRepo repository.OutboxMsgRepository
	mqProducer    mq.Producer
	relayedTotal  *prometheus.CounterVec

	stopChan chan struct{}
}

func NewService(
	cfg config.Relay,
	logger *slog.Logger,
	reg prometheus.Registerer,
	db db.Transactor,
	outboxMsgRepo repository.OutboxMsgRepository,
	mqProducer mq.Producer,
) *Service {
	relayedTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "product_catalog",
		Subsystem: "relay",
		Name:      "messages_total",
		Help:      "Outbox messages relayed to the broker, by result.",
	}, []string{"topic", "result"})
	reg.MustRegister(relayedTotal)

	return &Service{
		cfg:           cfg,
		logger:        logger.With(slog.String("service", "relay")),
		db:            db,
		outboxMsgRepo: outboxMsgRepo,
		mqProducer:    mqProducer,
		relayedTotal:  relayedTotal,
		stopChan:      make(chan struct{}),
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) CleanupFunc {
	ctx, cancel := context.WithCancel(ctx)

	stoppedChan := make(chan struct{})
	go func() {
		defer close(stoppedChan)
		s.run(ctx)
	}()

	return func() {
		close(s.stopChan)
		select {
		case <-stoppedChan:
		case <-time.After(s.cfg.ShutdownTimeout):
			cancel()
			<-stoppedChan
		}
		cancel()
	}
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			if _, err := s.RelayOnce(ctx); err != nil {
				s.logger.ErrorContext(ctx, "error relaying outbox msgs", slog.Any("error", err))
			}
		}
	}
}

// RelayOnce relays one batch and returns how many messages it handled.
// A message the broker rejects is still marked processed, with the error
// recorded on its row.
func (s *Service) RelayOnce(ctx context.Context) (int, error) {
	var n int

	err := s.db.WithTx(ctx, func(db db.DB) error {
		outboxMsgRepo := s.outboxMsgRepo.WithDB(db)

		//nolint:gosec
		outboxMsgs, err := outboxMsgRepo.LockUnprocessedOutboxMsgs(ctx, int32(s.cfg.BatchSize))
		if err != nil {
			return fmt.Errorf("lock unprocessed outbox msgs: %w", err)
		}

		if len(outboxMsgs) == 0 {
			return nil
		}

		s.logger.InfoContext(ctx, "relaying outbox msgs", slog.Int("count", len(outboxMsgs)))

		results := s.produceAll(ctx, outboxMsgs)

		if err := outboxMsgRepo.MarkOutboxMsgsProcessed(ctx, results); err != nil {
			return fmt.Errorf("mark outbox msgs processed: %w", err)
		}

		n = len(results)
		return nil
	})
	if err != nil {
		return 0, err
	}

	return n, nil
}

func (s *Service) produceAll(ctx context.Context, outboxMsgs []repository.OutboxMsg) []repository.OutboxMsgResult {
	results := make([]repository.OutboxMsgResult, 0, len(outboxMsgs))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for _, msg := range outboxMsgs {
		wg.Go(func() {
			res := repository.OutboxMsgResult{ID: msg.ID}

			err := s.mqProducer.Produce(ctx, mq.ProduceMsg{
				Topic:        msg.Topic,
				Headers:      msg.Headers,
				Payload:      msg.Payload,
				PartitionKey: msg.PartitionKey,
			})
			if err != nil {
				s.logger.ErrorContext(ctx,
					"error producing message",
					slog.String("outbox_msg_id", msg.ID.String()),
					slog.String("topic", msg.Topic),
					slog.Any("error", err),
				)
				res.Error = ptr.New(err.Error())
				s.relayedTotal.WithLabelValues(msg.Topic, "error").Inc()
			} else {
				s.relayedTotal.WithLabelValues(msg.Topic, "ok").Inc()
			}

			mu.Lock()
			results = append(results, res)
			mu.Unlock()
		})
	}

	wg.Wait()

	return results
}
