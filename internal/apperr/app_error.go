package apperr

import (
	"fmt"
	"strings"

	"github.com/tuanvumaihuynh/product-catalog/pkg/zerror"
)

const (
	ValidationErrorCode       = "VALIDATION_FAILED"
	InvalidIDErrorCode        = "INVALID_ID"
	ProductNotFoundErrorCode  = "PRODUCT_NOT_FOUND"
	ProductsNotFoundErrorCode = "PRODUCTS_NOT_FOUND"
	InvalidPayloadErrorCode   = "INVALID_PAYLOAD"
)

var (
	ValidationErr       = zerror.NewValidationFailed(ValidationErrorCode, "validation error")
	InvalidIDErr        = zerror.NewBadRequest(InvalidIDErrorCode, "Invalid id")
	InvalidPayloadErr   = zerror.NewBadRequest(InvalidPayloadErrorCode, "invalid payload")
	ProductNotFoundErr  = zerror.NewNotFound(ProductNotFoundErrorCode, "product not found")
	ProductsNotFoundErr = zerror.NewBadRequest(ProductsNotFoundErrorCode, "some products were not found")
)

type ProductNotFoundDetails struct {
	ID int64 `json:"id"`
}

type ProductsNotFoundDetails struct {
	IDs []int64 `json:"ids"`
}

// NewProductNotFoundErr returns ProductNotFoundErr naming id.
func NewProductNotFoundErr(id int64) zerror.ZError {
	return ProductNotFoundErr.
		WithMsgf("Product #%d not found", id).
		WithDetails(ProductNotFoundDetails{ID: id})
}

// NewProductsNotFoundErr returns ProductsNotFoundErr naming the missing ids.
func NewProductsNotFoundErr(ids []int64) zerror.ZError {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprint(id))
	}

	return ProductsNotFoundErr.
		WithMsgf("Some products were not found: %s", strings.Join(parts, ", ")).
		WithDetails(ProductsNotFoundDetails{IDs: ids})
}
