package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/event"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/repository"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
	"github.com/tuanvumaihuynh/product-catalog/pkg/msgheader"
	"github.com/tuanvumaihuynh/product-catalog/pkg/ptr"
)

type CreateProductParams struct {
	Name  string
	Price float64
}

type FindAllProductsParams struct {
	Page  int
	Limit int
}

// UpdateProductParams is a partial update. Nil fields are left unchanged.
type UpdateProductParams struct {
	Name  *string
	Price *float64
}

// ProductService is the catalog engine. Products with available=false are
// invisible to every operation and reported as not found.
type ProductService interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	FindAllProducts(ctx context.Context, params FindAllProductsParams) (model.ProductPage, error)
	FindOneProduct(ctx context.Context, id int64) (model.Product, error)
	UpdateProduct(ctx context.Context, id int64, params UpdateProductParams) (model.Product, error)
	// RemoveProduct soft-deletes the product and returns it as stored after
	// the flip, i.e. with Available set to false.
	RemoveProduct(ctx context.Context, id int64) (model.Product, error)
	// ValidateProducts returns one product per distinct id, in request order,
	// or a bad request error naming every id without an available product.
	ValidateProducts(ctx context.Context, ids []int64) ([]model.Product, error)
}

type productService struct {
	db            db.Transactor
	productRepo   repository.ProductRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewProductService(
	db db.Transactor,
	productRepo repository.ProductRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) ProductService {
	return &productService{
		db:            db,
		productRepo:   productRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

// visible composes the soft-delete predicate into a filter.
func visible(id *int64) repository.ProductFilter {
	return repository.ProductFilter{
		ID:        id,
		Available: ptr.New(true),
	}
}

func (s *productService) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	var product model.Product
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		var err error
		product, err = s.productRepo.
			WithDB(db).
			Create(ctx, repository.CreateProductParams{
				Name:  params.Name,
				Price: params.Price,
			})
		if err != nil {
			return fmt.Errorf("product repository create: %w", err)
		}

		return s.enqueueEvent(ctx, db, event.TopicProductCreated, product)
	}); err != nil {
		return model.Product{}, fmt.Errorf("db with tx: %w", err)
	}

	return product, nil
}

func (s *productService) FindAllProducts(ctx context.Context, params FindAllProductsParams) (model.ProductPage, error) {
	if params.Page < 1 || params.Limit < 1 {
		return model.ProductPage{}, apperr.ValidationErr.WithMsg("page and limit must be positive")
	}

	total, err := s.productRepo.Count(ctx, visible(nil))
	if err != nil {
		return model.ProductPage{}, fmt.Errorf("product repository count: %w", err)
	}

	meta := model.PageMeta{
		Total:    total,
		Page:     params.Page,
		LastPage: lastPage(total, params.Limit),
	}

	if params.Page > meta.LastPage {
		return model.ProductPage{
			Data: []model.ProductSummary{},
			Meta: meta,
		}, nil
	}

	// page <= lastPage, so skip < total and cannot overflow.
	skip := int64(params.Page-1) * int64(params.Limit)
	take := min(int64(params.Limit), total-skip)

	data, err := s.productRepo.FindMany(ctx, visible(nil), repository.FindManyParams{
		Skip: int(skip),
		Take: int(take),
	})
	if err != nil {
		return model.ProductPage{}, fmt.Errorf("product repository find many: %w", err)
	}
	if data == nil {
		data = []model.ProductSummary{}
	}

	return model.ProductPage{
		Data: data,
		Meta: meta,
	}, nil
}

func (s *productService) FindOneProduct(ctx context.Context, id int64) (model.Product, error) {
	product, err := s.productRepo.FindFirst(ctx, visible(&id))
	if err != nil {
		return model.Product{}, mapProductErr(id, err, "product repository find first")
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id int64, params UpdateProductParams) (model.Product, error) {
	return s.updateVisible(ctx, id, event.TopicProductUpdated, repository.UpdateProductPatch{
		Name:  params.Name,
		Price: params.Price,
	})
}

func (s *productService) RemoveProduct(ctx context.Context, id int64) (model.Product, error) {
	return s.updateVisible(ctx, id, event.TopicProductRemoved, repository.UpdateProductPatch{
		Available: ptr.New(false),
	})
}

// updateVisible patches an available product and records the change event in
// the same transaction.
func (s *productService) updateVisible(ctx context.Context, id int64, topic string, patch repository.UpdateProductPatch) (model.Product, error) {
	var product model.Product
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		var err error
		product, err = s.productRepo.
			WithDB(db).
			Update(ctx, visible(&id), patch)
		if err != nil {
			return mapProductErr(id, err, "product repository update")
		}

		return s.enqueueEvent(ctx, db, topic, product)
	}); err != nil {
		return model.Product{}, fmt.Errorf("db with tx: %w", err)
	}

	return product, nil
}

func (s *productService) ValidateProducts(ctx context.Context, ids []int64) ([]model.Product, error) {
	distinct := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}

	if len(distinct) == 0 {
		return []model.Product{}, nil
	}

	found, err := s.productRepo.FindManyByIDs(ctx, distinct, visible(nil))
	if err != nil {
		return nil, fmt.Errorf("product repository find many by ids: %w", err)
	}

	byID := make(map[int64]model.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	products := make([]model.Product, 0, len(distinct))
	var missing []int64
	for _, id := range distinct {
		p, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		products = append(products, p)
	}

	if len(missing) > 0 {
		slices.Sort(missing)
		return nil, apperr.NewProductsNotFoundErr(missing)
	}

	return products, nil
}

func (s *productService) enqueueEvent(ctx context.Context, db db.DB, topic string, product model.Product) error {
	payload, err := json.Marshal(event.NewProductEvent(product))
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := s.outboxMsgRepo.
		WithDB(db).
		CreateOutboxMsg(ctx, repository.CreateOutboxMsgParams{
			Topic:        topic,
			Headers:      msgheader.BuildHeaders(ctx),
			Payload:      payload,
			PartitionKey: ptr.New(strconv.FormatInt(product.ID, 10)),
		}); err != nil {
		return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
	}

	return nil
}

// mapProductErr turns a storage miss into the client facing not found error
// and wraps anything else with the failing call.
func mapProductErr(id int64, err error, op string) error {
	if errors.Is(err, repository.ErrProductNotFound) {
		return apperr.NewProductNotFoundErr(id)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func lastPage(total int64, limit int) int {
	last := total / int64(limit)
	if total%int64(limit) != 0 {
		last++
	}
	return int(last)
}
