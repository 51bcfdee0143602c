package service

import (
	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/config"
	"github.com/tuanvumaihuynh/product-catalog/pkg/ptr"
)

// NewFindAllProductsParams fills unset page and limit with their defaults
// (page 1, cfg.DefaultLimit) and rejects a limit above cfg.MaxLimit.
func NewFindAllProductsParams(page, limit *int, cfg config.Pagination) (FindAllProductsParams, error) {
	params := FindAllProductsParams{
		Page:  ptr.Deref(page, 1),
		Limit: ptr.Deref(limit, cfg.DefaultLimit),
	}

	if params.Page < 1 {
		return FindAllProductsParams{}, apperr.ValidationErr.WithMsg("page must be at least 1")
	}
	if params.Limit < 1 {
		return FindAllProductsParams{}, apperr.ValidationErr.WithMsg("limit must be at least 1")
	}
	if cfg.MaxLimit > 0 && params.Limit > cfg.MaxLimit {
		return FindAllProductsParams{}, apperr.ValidationErr.WithMsgf("limit must be at most %d", cfg.MaxLimit)
	}

	return params, nil
}
