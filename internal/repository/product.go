package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db/sqlc"
)

// ErrProductNotFound is returned when a lookup or an update matches no row.
var ErrProductNotFound = errors.New("product not found")

// ProductFilter narrows product queries. Nil fields do not filter.
type ProductFilter struct {
	ID        *int64
	Available *bool
}

type FindManyParams struct {
	Skip int
	Take int
}

type CreateProductParams struct {
	Name  string
	Price float64
}

// UpdateProductPatch holds the columns to change. Nil fields are left as is.
type UpdateProductPatch struct {
	Name      *string
	Price     *float64
	Available *bool
}

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	Count(ctx context.Context, filter ProductFilter) (int64, error)
	FindFirst(ctx context.Context, filter ProductFilter) (model.Product, error)
	FindMany(ctx context.Context, filter ProductFilter, params FindManyParams) ([]model.ProductSummary, error)
	FindManyByIDs(ctx context.Context, ids []int64, filter ProductFilter) ([]model.Product, error)
	Create(ctx context.Context, params CreateProductParams) (model.Product, error)
	// Update requires filter.ID and returns ErrProductNotFound when the filter matches no row.
	Update(ctx context.Context, filter ProductFilter, patch UpdateProductPatch) (model.Product, error)
}

type productRepository struct {
	db      db.DB
	queries sqlc.Queries
}

func NewProductRepository(db db.DB, queries sqlc.Queries) ProductRepository {
	return &productRepository{
		db:      db,
		queries: queries,
	}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{
		db:      db,
		queries: r.queries,
	}
}

func (r productRepository) Count(ctx context.Context, filter ProductFilter) (int64, error) {
	count, err := r.queries.ProductCount(ctx, r.db, sqlc.ProductCountParams{
		ID:        filter.ID,
		Available: filter.Available,
	})
	if err != nil {
		return 0, fmt.Errorf("product count: %w", err)
	}

	return count, nil
}

func (r productRepository) FindFirst(ctx context.Context, filter ProductFilter) (model.Product, error) {
	product, err := r.queries.ProductFindFirst(ctx, r.db, sqlc.ProductFindFirstParams{
		ID:        filter.ID,
		Available: filter.Available,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, ErrProductNotFound
		}
		return model.Product{}, fmt.Errorf("product find first: %w", err)
	}

	return sqlcProductToModelProduct(product)
}

func (r productRepository) FindMany(ctx context.Context, filter ProductFilter, params FindManyParams) ([]model.ProductSummary, error) {
	if params.Skip < 0 || params.Skip > math.MaxInt32 || params.Take < 0 || params.Take > math.MaxInt32 {
		return nil, fmt.Errorf("skip/take out of range: %d/%d", params.Skip, params.Take)
	}

	rows, err := r.queries.ProductFindMany(ctx, r.db, sqlc.ProductFindManyParams{
		ID:        filter.ID,
		Available: filter.Available,
		Skip:      int32(params.Skip),
		Take:      int32(params.Take),
	})
	if err != nil {
		return nil, fmt.Errorf("product find many: %w", err)
	}

	summaries := make([]model.ProductSummary, 0, len(rows))
	for _, row := range rows {
		price, err := numericToFloat64(row.Price)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, model.ProductSummary{
			ID:        row.ID,
			Name:      row.Name,
			Price:     price,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}

	return summaries, nil
}

func (r productRepository) FindManyByIDs(ctx context.Context, ids []int64, filter ProductFilter) ([]model.Product, error) {
	products, err := r.queries.ProductFindManyByIDs(ctx, r.db, sqlc.ProductFindManyByIDsParams{
		Ids:       ids,
		Available: filter.Available,
	})
	if err != nil {
		return nil, fmt.Errorf("product find many by ids: %w", err)
	}

	return sqlcProductsToModelProducts(products)
}

func (r productRepository) Create(ctx context.Context, params CreateProductParams) (model.Product, error) {
	price, err := float64ToNumeric(params.Price)
	if err != nil {
		return model.Product{}, err
	}

	product, err := r.queries.ProductCreate(ctx, r.db, sqlc.ProductCreateParams{
		Name:  params.Name,
		Price: price,
	})
	if err != nil {
		return model.Product{}, fmt.Errorf("create product: %w", err)
	}

	return sqlcProductToModelProduct(product)
}

func (r productRepository) Update(ctx context.Context, filter ProductFilter, patch UpdateProductPatch) (model.Product, error) {
	if filter.ID == nil {
		return model.Product{}, errors.New("update product: filter id is required")
	}

	var price pgtype.Numeric
	if patch.Price != nil {
		var err error
		if price, err = float64ToNumeric(*patch.Price); err != nil {
			return model.Product{}, err
		}
	}

	product, err := r.queries.ProductUpdate(ctx, r.db, sqlc.ProductUpdateParams{
		Name:         patch.Name,
		Price:        price,
		SetAvailable: patch.Available,
		ID:           *filter.ID,
		Available:    filter.Available,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, ErrProductNotFound
		}
		return model.Product{}, fmt.Errorf("update product: %w", err)
	}

	return sqlcProductToModelProduct(product)
}

func float64ToNumeric(f float64) (pgtype.Numeric, error) {
	var n pgtype.Numeric
	if err := n.Scan(strconv.FormatFloat(f, 'f', -1, 64)); err != nil {
		return n, fmt.Errorf("scan price: %w", err)
	}
	return n, nil
}

func numericToFloat64(n pgtype.Numeric) (float64, error) {
	f, err := n.Float64Value()
	if err != nil {
		return 0, fmt.Errorf("convert price to float64: %w", err)
	}
	return f.Float64, nil
}

func sqlcProductsToModelProducts(products []sqlc.Product) ([]model.Product, error) {
	modelProducts := make([]model.Product, 0, len(products))
	for _, product := range products {
		modelProduct, err := sqlcProductToModelProduct(product)
		if err != nil {
			return nil, fmt.Errorf("convert product to model product: %w", err)
		}
		modelProducts = append(modelProducts, modelProduct)
	}

	return modelProducts, nil
}

func sqlcProductToModelProduct(product sqlc.Product) (model.Product, error) {
	price, err := numericToFloat64(product.Price)
	if err != nil {
		return model.Product{}, err
	}

	return model.Product{
		ID:        product.ID,
		Name:      product.Name,
		Price:     price,
		Available: product.Available,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}, nil
}
