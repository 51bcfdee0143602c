package correlationid_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/product-catalog/pkg/correlationid"
)

func TestCorrelationID(t *testing.T) {
	t.Run("Should return false on empty context", func(t *testing.T) {
		_, ok := correlationid.FromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("Should round trip through context", func(t *testing.T) {
		ctx := correlationid.NewContext(context.Background(), "abc")
		id, ok := correlationid.FromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, "abc", id)
	})

	t.Run("Should keep existing id on ensure", func(t *testing.T) {
		ctx := correlationid.NewContext(context.Background(), "abc")
		_, id := correlationid.Ensure(ctx)
		assert.Equal(t, "abc", id)
	})

	t.Run("Should generate uuid on ensure", func(t *testing.T) {
		ctx, id := correlationid.Ensure(context.Background())
		_, err := uuid.Parse(id)
		assert.NoError(t, err)

		got, ok := correlationid.FromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, id, got)
	})
}
