package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-catalog/internal/repository"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db/sqlc"
)

func TestWithTx(t *testing.T) {
	dbClient := newTestDB(t)
	repo := repository.NewProductRepository(dbClient, *sqlc.New())
	ctx := context.Background()
	errBoom := errors.New("boom")

	count := func() int64 {
		n, err := repo.Count(ctx, repository.ProductFilter{})
		require.NoError(t, err)
		return n
	}

	t.Run("Should roll back on error", func(t *testing.T) {
		before := count()

		err := dbClient.WithTx(ctx, func(tx db.DB) error {
			_, err := repo.WithDB(tx).Create(ctx, repository.CreateProductParams{Name: "Ghost", Price: 1})
			require.NoError(t, err)
			return errBoom
		})
		require.ErrorIs(t, err, errBoom)
		assert.Equal(t, before, count())
	})

	t.Run("Should roll back only the failed savepoint", func(t *testing.T) {
		before := count()

		err := dbClient.WithTx(ctx, func(tx db.DB) error {
			if _, err := repo.WithDB(tx).Create(ctx, repository.CreateProductParams{Name: "Kept", Price: 1}); err != nil {
				return err
			}

			innerErr := tx.WithTx(ctx, func(sp db.DB) error {
				_, err := repo.WithDB(sp).Create(ctx, repository.CreateProductParams{Name: "Dropped", Price: 1})
				require.NoError(t, err)
				return errBoom
			})
			assert.ErrorIs(t, innerErr, errBoom)

			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, before+1, count())
	})
}
