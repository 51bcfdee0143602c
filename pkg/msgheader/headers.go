// Package msgheader moves request context (trace, correlation id) in and out of message headers.
package msgheader

import (
	"context"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/tuanvumaihuynh/product-catalog/pkg/correlationid"
)

// ReplyTo is the request header naming the topic the caller listens on for the reply.
const ReplyTo = "reply-to"

// BuildHeaders creates headers map with trace context and correlation ID injected from context.
func BuildHeaders(ctx context.Context) map[string]string {
	headers := map[string]string{}

	propagator := otel.GetTextMapPropagator()
	propagator.Inject(ctx, propagation.MapCarrier(headers))

	if correlationID, ok := correlationid.FromContext(ctx); ok {
		headers[correlationid.Header] = correlationID
	}

	return headers
}

// ExtractContextFromHeaders extracts trace context and correlation ID from headers map and injects them into context.
func ExtractContextFromHeaders(ctx context.Context, headers map[string]string) context.Context {
	propagator := otel.GetTextMapPropagator()
	ctx = propagator.Extract(ctx, propagation.MapCarrier(headers))

	if correlationID, ok := headers[correlationid.Header]; ok && correlationID != "" {
		ctx = correlationid.NewContext(ctx, correlationID)
	}

	return ctx
}

// FromRecord flattens Kafka record headers into a map. Later duplicates win.
func FromRecord(rec *kgo.Record) map[string]string {
	headers := make(map[string]string, len(rec.Headers))
	for _, h := range rec.Headers {
		headers[h.Key] = string(h.Value)
	}
	return headers
}

// ToRecord converts a headers map into Kafka record headers.
func ToRecord(headers map[string]string) []kgo.RecordHeader {
	out := make([]kgo.RecordHeader, 0, len(headers))
	for k, v := range headers {
		out = append(out, kgo.RecordHeader{
			Key:   k,
			Value: []byte(v),
		})
	}
	return out
}
