package mq

import (
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"

	"github.com/tuanvumaihuynh/product-catalog/internal/config"
)

var tracer = otel.Tracer("internal/storage/mq")

// kafkaTracing instruments a client: produced records carry the trace context
// in their headers, fetched records get a span tagged with the client id and
// consumer group. Call it after the global tracer provider is installed.
func kafkaTracing(cfg config.Kafka, group string) kgo.Opt {
	opts := []kotel.TracerOpt{
		kotel.TracerProvider(otel.GetTracerProvider()),
		kotel.TracerPropagator(otel.GetTextMapPropagator()),
		kotel.ClientID(cfg.ClientID),
	}
	if group != "" {
		opts = append(opts, kotel.ConsumerGroup(group))
	}

	return kgo.WithHooks(kotel.NewTracer(opts...))
}
