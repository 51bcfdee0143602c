package rpc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/service"
)

func (s *Service) createProduct(ctx context.Context, payload []byte) (any, error) {
	req, err := decode[createProductPayload](payload, false)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	product, err := s.productSvc.CreateProduct(ctx, service.CreateProductParams{
		Name:  req.Name,
		Price: *req.Price,
	})
	if err != nil {
		return nil, fmt.Errorf("product service create product: %w", err)
	}

	return product, nil
}

func (s *Service) findAllProducts(ctx context.Context, payload []byte) (any, error) {
	req, err := decode[findAllProductsPayload](payload, true)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	params, err := service.NewFindAllProductsParams(req.Page, req.Limit, s.pagination)
	if err != nil {
		return nil, err
	}

	page, err := s.productSvc.FindAllProducts(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("product service find all products: %w", err)
	}

	return page, nil
}

func (s *Service) findOneProduct(ctx context.Context, payload []byte) (any, error) {
	id, err := s.decodeID(payload)
	if err != nil {
		return nil, err
	}

	product, err := s.productSvc.FindOneProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product service find one product: %w", err)
	}

	return product, nil
}

func (s *Service) updateProduct(ctx context.Context, payload []byte) (any, error) {
	req, err := decode[updateProductPayload](payload, false)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	product, err := s.productSvc.UpdateProduct(ctx, int64(req.ID), service.UpdateProductParams{
		Name:  req.Name,
		Price: req.Price,
	})
	if err != nil {
		return nil, fmt.Errorf("product service update product: %w", err)
	}

	return product, nil
}

func (s *Service) removeProduct(ctx context.Context, payload []byte) (any, error) {
	id, err := s.decodeID(payload)
	if err != nil {
		return nil, err
	}

	product, err := s.productSvc.RemoveProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product service remove product: %w", err)
	}

	return product, nil
}

func (s *Service) validateProducts(ctx context.Context, payload []byte) (any, error) {
	ids, err := decode[[]model.ID](payload, false)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateVar(ids, "min=1,dive,gt=0"); err != nil {
		s.logger.DebugContext(ctx, "invalid product ids", slog.Any("error", err))
		return nil, apperr.ValidationErr.WithMsg("ids must be a non-empty list of positive integers")
	}

	products, err := s.productSvc.ValidateProducts(ctx, model.Int64s(ids))
	if err != nil {
		return nil, fmt.Errorf("product service validate products: %w", err)
	}

	return products, nil
}

func (s *Service) decodeID(payload []byte) (int64, error) {
	req, err := decode[productIDPayload](payload, false)
	if err != nil {
		return 0, err
	}
	if err := s.validator.Validate(req); err != nil {
		return 0, err
	}
	return int64(req.ID), nil
}
