package zerror_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-catalog/pkg/zerror"
)

func TestZError(t *testing.T) {
	notFound := zerror.NewNotFound("PRODUCT_NOT_FOUND", "product not found")

	t.Run("Should match predefined error after message and details change", func(t *testing.T) {
		err := fmt.Errorf("find one: %w", notFound.WithMsgf("Product #%d not found", 7).WithDetails(map[string]any{"id": 7}))

		assert.ErrorIs(t, err, notFound)

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, "Product #7 not found", zErr.Msg())
		assert.Equal(t, map[string]any{"id": 7}, zErr.Details())
		assert.Equal(t, zerror.StatusNotFound, zErr.Status())
	})

	t.Run("Should not match a different code", func(t *testing.T) {
		other := zerror.NewNotFound("ORDER_NOT_FOUND", "order not found")
		assert.NotErrorIs(t, notFound, other)
	})

	t.Run("Should unwrap parent", func(t *testing.T) {
		parent := errors.New("boom")
		err := notFound.WrapParent(parent)

		assert.ErrorIs(t, err, parent)
		assert.Contains(t, err.Error(), "Parent=(boom)")
	})

	t.Run("Should keep receiver when wrapping nil parent", func(t *testing.T) {
		assert.Nil(t, notFound.WrapParent(nil).Parent())
	})
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", zerror.StatusNotFound.String())
	assert.Equal(t, "UNKNOWN", zerror.Status(200).String())

	assert.True(t, zerror.StatusBadRequest.IsClientError())
	assert.True(t, zerror.StatusValidationFailed.IsClientError())
	assert.False(t, zerror.StatusInternalServerError.IsClientError())
	assert.False(t, zerror.StatusUnknown.IsClientError())
}
