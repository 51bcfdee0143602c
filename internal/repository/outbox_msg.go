package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db/sqlc"
)

type CreateOutboxMsgParams struct {
	Topic        string
	Headers      map[string]string
	Payload      json.RawMessage
	PartitionKey *string
}

type OutboxMsg struct {
	ID           uuid.UUID
	Topic        string
	Headers      map[string]string
	Payload      json.RawMessage
	PartitionKey *string
	CreatedAt    time.Time
}

// OutboxMsgResult is the relay outcome of one message. A nil Error marks success.
type OutboxMsgResult struct {
	ID    uuid.UUID
	Error *string
}

type OutboxMsgRepository interface {
	WithDB(db db.DB) OutboxMsgRepository
	CreateOutboxMsg(ctx context.Context, params CreateOutboxMsgParams) error
	// LockUnprocessedOutboxMsgs returns up to batchSize pending messages, oldest
	// first, locked until the surrounding transaction ends.
	LockUnprocessedOutboxMsgs(ctx context.Context, batchSize int32) ([]OutboxMsg, error)
	MarkOutboxMsgsProcessed(ctx context.Context, results []OutboxMsgResult) error
}

type outboxMsgRepository struct {
	db      db.DB
	queries sqlc.Queries
}

func NewOutboxMsgRepository(db db.DB, queries sqlc.Queries) OutboxMsgRepository {
	return &outboxMsgRepository{
		db:      db,
		queries: queries,
	}
}

func (r outboxMsgRepository) WithDB(db db.DB) OutboxMsgRepository {
	return &outboxMsgRepository{
		db:      db,
		queries: r.queries,
	}
}

func (r outboxMsgRepository) CreateOutboxMsg(ctx context.Context, params CreateOutboxMsgParams) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate uuid v7: %w", err)
	}

	var headers *json.RawMessage
	if len(params.Headers) > 0 {
		b, err := json.Marshal(params.Headers)
		if err != nil {
			return fmt.Errorf("marshal headers: %w", err)
		}
		raw := json.RawMessage(b)
		headers = &raw
	}

	if err := r.queries.OutboxMsgCreate(ctx, r.db, sqlc.OutboxMsgCreateParams{
		ID:           id,
		Topic:        params.Topic,
		Headers:      headers,
		Payload:      params.Payload,
		PartitionKey: params.PartitionKey,
		CreatedAt:    time.Now(),
	}); err != nil {
		return fmt.Errorf("outbox msg create: %w", err)
	}

	return nil
}

func (r outboxMsgRepository) LockUnprocessedOutboxMsgs(ctx context.Context, batchSize int32) ([]OutboxMsg, error) {
	rows, err := r.queries.OutboxMsgListUnprocessed(ctx, r.db, batchSize)
	if err != nil {
		return nil, fmt.Errorf("outbox msg list unprocessed: %w", err)
	}

	msgs := make([]OutboxMsg, 0, len(rows))
	for _, row := range rows {
		headers := map[string]string{}
		if row.Headers != nil {
			if err := json.Unmarshal(*row.Headers, &headers); err != nil {
				return nil, fmt.Errorf("unmarshal headers of %s: %w", row.ID, err)
			}
		}

		msgs = append(msgs, OutboxMsg{
			ID:           row.ID,
			Topic:        row.Topic,
			Headers:      headers,
			Payload:      row.Payload,
			PartitionKey: row.PartitionKey,
			CreatedAt:    row.CreatedAt,
		})
	}

	return msgs, nil
}

func (r outboxMsgRepository) MarkOutboxMsgsProcessed(ctx context.Context, results []OutboxMsgResult) error {
	if len(results) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(results))
	errs := make([]*string, 0, len(results))
	for _, res := range results {
		ids = append(ids, res.ID)
		errs = append(errs, res.Error)
	}

	_, err := r.db.Exec(ctx, `
		UPDATE outbox_messages AS o
		SET
			processed_at = NOW(),
			error        = e.error
		FROM (
			SELECT UNNEST(@ids::uuid[])  AS id,
				   UNNEST(@errors::text[]) AS error
		) AS e
		WHERE o.id = e.id;
	`, pgx.NamedArgs{
		"ids":    ids,
		"errors": errs,
	})
	if err != nil {
		return fmt.Errorf("outbox msg mark processed: %w", err)
	}

	return nil
}
