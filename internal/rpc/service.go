package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/tuanvumaihuynh/product-catalog/internal/config"
	"github.com/tuanvumaihuynh/product-catalog/internal/rpc/rpcerr"
	"github.com/tuanvumaihuynh/product-catalog/internal/service"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/mq"
	"github.com/tuanvumaihuynh/product-catalog/pkg/correlationid"
	"github.com/tuanvumaihuynh/product-catalog/pkg/msgheader"
	"github.com/tuanvumaihuynh/product-catalog/pkg/validator"
)

var tracer = otel.Tracer("internal/rpc")

// Operation names, also the request topic suffixes.
const (
	OpCreateProduct    = "create"
	OpFindAllProducts  = "find_all"
	OpFindOneProduct   = "find_one"
	OpUpdateProduct    = "update"
	OpRemoveProduct    = "remove"
	OpValidateProducts = "validate"
)

// Reply is the body of every reply record. Exactly one of Data and Error is set.
type Reply struct {
	Data  any                   `json:"data,omitempty"`
	Error *rpcerr.ErrorResponse `json:"error,omitempty"`
}

type opFunc func(ctx context.Context, payload []byte) (any, error)

// Service serves the catalog operations over request/reply messages.
type Service struct {
	cfg        config.RPC
	pagination config.Pagination
	logger     *slog.Logger
	metrics    *Metrics
	validator  validator.Validator
	mqConsumer mq.Consumer
	mqProducer mq.Producer
	productSvc service.ProductService
}

func New(
	cfg config.RPC,
	pagination config.Pagination,
	logger *slog.Logger,
	metrics *Metrics,
	validator validator.Validator,
	mqConsumer mq.Consumer,
	mqProducer mq.Producer,
	productSvc service.ProductService,
) *Service {
	return &Service{
		cfg:        cfg,
		pagination: pagination,
		logger:     logger.With(slog.String("service", "rpc")),
		metrics:    metrics,
		validator:  validator,
		mqConsumer: mqConsumer,
		mqProducer: mqProducer,
		productSvc: productSvc,
	}
}

type CleanupFunc func()

// Topic returns the request topic of an operation.
func (s *Service) Topic(op string) string {
	return s.cfg.TopicPrefix + "." + op
}

func (s *Service) operations() map[string]opFunc {
	return map[string]opFunc{
		OpCreateProduct:    s.createProduct,
		OpFindAllProducts:  s.findAllProducts,
		OpFindOneProduct:   s.findOneProduct,
		OpUpdateProduct:    s.updateProduct,
		OpRemoveProduct:    s.removeProduct,
		OpValidateProducts: s.validateProducts,
	}
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	for op, fn := range s.operations() {
		if err := s.mqConsumer.RegisterHandler(s.Topic(op), s.Handler(op, fn)); err != nil {
			return nil, fmt.Errorf("register %s handler: %w", op, err)
		}
	}

	mqCleanup, err := s.mqConsumer.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("run mq consumer: %w", err)
	}

	return CleanupFunc(mqCleanup), nil
}

// Handler adapts an operation to a message handler: it runs the operation
// under the handler timeout and sends the reply to the reply-to topic.
func (s *Service) Handler(op string, fn opFunc) mq.HandlerFunc {
	return func(ctx context.Context, msg mq.Message) error {
		ctx, correlationID := correlationid.Ensure(ctx)

		ctx, span := tracer.Start(ctx, "rpc "+op)
		defer span.End()

		s.metrics.InflightRequests.Inc()
		defer s.metrics.InflightRequests.Dec()
		start := time.Now()

		reply := s.invoke(ctx, op, fn, msg.Payload)

		status := 200
		if reply.Error != nil {
			status = reply.Error.Status
			if status >= 500 {
				span.SetStatus(codes.Error, reply.Error.Message)
			}
		}
		span.SetAttributes(attribute.Int("rpc.status", status))

		s.metrics.RequestsTotal.WithLabelValues(op, strconv.Itoa(status)).Inc()
		s.metrics.RequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

		replyTo := msg.Headers[msgheader.ReplyTo]
		if replyTo == "" {
			s.logger.DebugContext(ctx, "no reply-to header, dropping reply",
				slog.String("operation", op),
				slog.Int("status", status),
			)
			return nil
		}

		body, err := json.Marshal(reply)
		if err != nil {
			return fmt.Errorf("marshal %s reply: %w", op, err)
		}

		if err := s.mqProducer.Produce(ctx, mq.ProduceMsg{
			Topic:        replyTo,
			Headers:      msgheader.BuildHeaders(ctx),
			Payload:      body,
			PartitionKey: &correlationID,
		}); err != nil {
			return fmt.Errorf("produce %s reply: %w", op, err)
		}

		return nil
	}
}

func (s *Service) invoke(ctx context.Context, op string, fn opFunc, payload []byte) Reply {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.HandlerTimeout)
	defer cancel()

	data, err := fn(ctx, payload)
	if err == nil {
		return Reply{Data: data}
	}

	res := rpcerr.New(err)

	logLevel := slog.LevelInfo
	if res.Status >= 500 {
		logLevel = slog.LevelError
	} else if res.Status >= 400 {
		logLevel = slog.LevelWarn
	}
	s.logger.Log(ctx, logLevel, "rpc error",
		slog.String("operation", op),
		slog.Int("status", res.Status),
		slog.Any("error", err),
	)

	return Reply{Error: &res}
}
