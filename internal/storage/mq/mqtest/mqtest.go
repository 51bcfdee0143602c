// Package mqtest provides in-memory mq implementations for tests.
package mqtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/tuanvumaihuynh/product-catalog/internal/storage/mq"
)

var (
	_ mq.Consumer = (*Consumer)(nil)
	_ mq.Producer = (*Producer)(nil)
)

// Consumer records registered handlers and lets tests deliver messages
// synchronously.
type Consumer struct {
	mu       sync.Mutex
	handlers map[string]mq.HandlerFunc
	closed   bool
}

func NewConsumer() *Consumer {
	return &Consumer{handlers: make(map[string]mq.HandlerFunc)}
}

func (c *Consumer) RegisterHandler(topic string, handler mq.HandlerFunc) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.handlers[topic]; ok {
		return fmt.Errorf("handler for topic %s already registered", topic)
	}
	c.handlers[topic] = handler
	return nil
}

func (c *Consumer) Run(context.Context) (mq.CleanupFunc, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.handlers) == 0 {
		return nil, fmt.Errorf("no handlers registered")
	}

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.closed = true
	}, nil
}

// Topics returns the topics a handler is registered for.
func (c *Consumer) Topics() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	topics := make([]string, 0, len(c.handlers))
	for t := range c.handlers {
		topics = append(topics, t)
	}
	return topics
}

func (c *Consumer) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Deliver hands msg to the handler registered for msg.Topic.
func (c *Consumer) Deliver(ctx context.Context, msg mq.Message) error {
	c.mu.Lock()
	h, ok := c.handlers[msg.Topic]
	c.mu.Unlock()

	if !ok {
		return fmt.Errorf("no handler for topic %s", msg.Topic)
	}
	return h(ctx, msg)
}

// Producer keeps every produced message in memory.
type Producer struct {
	mu   sync.Mutex
	msgs []mq.ProduceMsg
	Err  error
}

func NewProducer() *Producer {
	return &Producer{}
}

func (p *Producer) Produce(_ context.Context, msg mq.ProduceMsg) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Err != nil {
		return p.Err
	}
	p.msgs = append(p.msgs, msg)
	return nil
}

func (p *Producer) Messages() []mq.ProduceMsg {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]mq.ProduceMsg(nil), p.msgs...)
}
