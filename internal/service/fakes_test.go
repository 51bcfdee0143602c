package service_test

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/repository"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

// fakeTx runs the function without a real transaction.
type fakeTx struct {
	calls int
}

func (f *fakeTx) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	f.calls++
	return txFunc(nil)
}

// memProductRepo is an in-memory products table ordered by id.
type memProductRepo struct {
	mu       sync.Mutex
	rows     []model.Product
	nextID   int64
	clock    time.Time
	countErr error
	findErr  error
	updErr   error
}

var _ repository.ProductRepository = (*memProductRepo)(nil)

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{
		nextID: 1,
		clock:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *memProductRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *memProductRepo) WithDB(db.DB) repository.ProductRepository { return r }

func matches(p model.Product, f repository.ProductFilter) bool {
	if f.ID != nil && p.ID != *f.ID {
		return false
	}
	if f.Available != nil && p.Available != *f.Available {
		return false
	}
	return true
}

func (r *memProductRepo) Count(_ context.Context, f repository.ProductFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.countErr != nil {
		return 0, r.countErr
	}

	var n int64
	for _, p := range r.rows {
		if matches(p, f) {
			n++
		}
	}
	return n, nil
}

func (r *memProductRepo) FindFirst(_ context.Context, f repository.ProductFilter) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return model.Product{}, r.findErr
	}

	for _, p := range r.rows {
		if matches(p, f) {
			return p, nil
		}
	}
	return model.Product{}, repository.ErrProductNotFound
}

func (r *memProductRepo) FindMany(_ context.Context, f repository.ProductFilter, params repository.FindManyParams) ([]model.ProductSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}
	if params.Skip < 0 || params.Skip > math.MaxInt32 || params.Take < 0 || params.Take > math.MaxInt32 {
		return nil, fmt.Errorf("skip/take out of range: %d/%d", params.Skip, params.Take)
	}

	var out []model.ProductSummary
	skipped := 0
	for _, p := range r.rows {
		if !matches(p, f) {
			continue
		}
		if skipped < params.Skip {
			skipped++
			continue
		}
		if len(out) == params.Take {
			break
		}
		out = append(out, model.ProductSummary{
			ID:        p.ID,
			Name:      p.Name,
			Price:     p.Price,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		})
	}
	return out, nil
}

func (r *memProductRepo) FindManyByIDs(_ context.Context, ids []int64, f repository.ProductFilter) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}

	var out []model.Product
	for _, p := range r.rows {
		if slices.Contains(ids, p.ID) && matches(p, repository.ProductFilter{Available: f.Available}) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Create(_ context.Context, params repository.CreateProductParams) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.tick()
	p := model.Product{
		ID:        r.nextID,
		Name:      params.Name,
		Price:     params.Price,
		Available: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.nextID++
	r.rows = append(r.rows, p)
	return p, nil
}

func (r *memProductRepo) Update(_ context.Context, f repository.ProductFilter, patch repository.UpdateProductPatch) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.updErr != nil {
		return model.Product{}, r.updErr
	}

	for i, p := range r.rows {
		if !matches(p, f) {
			continue
		}
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.Available != nil {
			p.Available = *patch.Available
		}
		p.UpdatedAt = r.tick()
		r.rows[i] = p
		return p, nil
	}
	return model.Product{}, repository.ErrProductNotFound
}

// memOutboxRepo records enqueued messages.
type memOutboxRepo struct {
	mu   sync.Mutex
	msgs []repository.CreateOutboxMsgParams
	err  error
}

var _ repository.OutboxMsgRepository = (*memOutboxRepo)(nil)

func (r *memOutboxRepo) WithDB(db.DB) repository.OutboxMsgRepository { return r }

func (r *memOutboxRepo) CreateOutboxMsg(_ context.Context, params repository.CreateOutboxMsgParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}
	r.msgs = append(r.msgs, params)
	return nil
}

func (r *memOutboxRepo) LockUnprocessedOutboxMsgs(context.Context, int32) ([]repository.OutboxMsg, error) {
	return nil, nil
}

func (r *memOutboxRepo) MarkOutboxMsgsProcessed(context.Context, []repository.OutboxMsgResult) error {
	return nil
}

func (r *memOutboxRepo) topics() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.msgs))
	for _, m := range r.msgs {
		out = append(out, m.Topic)
	}
	return out
}
