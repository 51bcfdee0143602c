package event

import (
	"context"
	"log/slog"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
)

const (
	TopicProductCreated = "product.created"
	TopicProductUpdated = "product.updated"
	TopicProductRemoved = "product.removed"
)

// ProductTopics lists every product lifecycle topic.
var ProductTopics = []string{
	TopicProductCreated,
	TopicProductUpdated,
	TopicProductRemoved,
}

// ProductEvent is the payload of every product lifecycle topic.
type ProductEvent struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}

func NewProductEvent(p model.Product) ProductEvent {
	return ProductEvent{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Available: p.Available,
	}
}

func (s *Service) handleProductEvent(ctx context.Context, topic string, ev ProductEvent) error {
	s.logger.InfoContext(ctx, "handling product event",
		slog.String("topic", topic),
		slog.Int64("product_id", ev.ProductID),
		slog.Bool("available", ev.Available),
	)
	return nil
}
