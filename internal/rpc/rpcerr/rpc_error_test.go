package rpcerr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/rpc/rpcerr"
	"github.com/tuanvumaihuynh/product-catalog/pkg/validator"
	"github.com/tuanvumaihuynh/product-catalog/pkg/zerror"
)

func TestNew(t *testing.T) {
	t.Run("Should map wrapped not found", func(t *testing.T) {
		err := fmt.Errorf("db with tx: %w", apperr.NewProductNotFoundErr(5))

		res := rpcerr.New(err)
		assert.Equal(t, http.StatusNotFound, res.Status)
		assert.Equal(t, apperr.ProductNotFoundErrorCode, res.Code)
		assert.Equal(t, "Product #5 not found", res.Message)
		assert.Equal(t, apperr.ProductNotFoundDetails{ID: 5}, res.Details)
	})

	t.Run("Should map missing ids to bad request", func(t *testing.T) {
		res := rpcerr.New(apperr.NewProductsNotFoundErr([]int64{2}))
		assert.Equal(t, http.StatusBadRequest, res.Status)
		assert.Equal(t, apperr.ProductsNotFoundDetails{IDs: []int64{2}}, res.Details)
	})

	t.Run("Should map validation errors with field details", func(t *testing.T) {
		v, err := validator.NewDefaultValidator()
		require.NoError(t, err)

		verr := v.Validate(struct {
			Name string `json:"name" validate:"required"`
		}{})
		require.Error(t, verr)

		res := rpcerr.New(verr)
		assert.Equal(t, http.StatusBadRequest, res.Status)
		assert.Equal(t, apperr.ValidationErrorCode, res.Code)
		assert.Equal(t, []rpcerr.FieldError{{Field: "name", Message: "field is required"}}, res.Details)
	})

	t.Run("Should hide storage faults", func(t *testing.T) {
		res := rpcerr.New(errors.New("pq: relation products does not exist"))
		assert.Equal(t, rpcerr.InternalServerErr, res)
	})
}

func TestZErrorStatusToCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, rpcerr.ZErrorStatusToCode(zerror.StatusValidationFailed))
	assert.Equal(t, http.StatusGatewayTimeout, rpcerr.ZErrorStatusToCode(zerror.StatusTimeout))
	assert.Equal(t, http.StatusInternalServerError, rpcerr.ZErrorStatusToCode(zerror.StatusUnknown))
}
