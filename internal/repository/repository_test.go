package repository_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-catalog/internal/config"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

// newTestDB starts a disposable PostgreSQL container, migrates it and
// returns a client. The test is skipped when Docker is not reachable.
func newTestDB(t *testing.T) *db.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker not available: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
	pool.MaxWait = time.Minute

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "17-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=catalog",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		//nolint:errcheck
		pool.Purge(resource)
	})
	require.NoError(t, resource.Expire(120))

	port, err := strconv.Atoi(resource.GetPort("5432/tcp"))
	require.NoError(t, err)

	cfg := config.Postgres{
		Host:            "localhost",
		Port:            port,
		User:            "test",
		Password:        "test",
		DB:              "catalog",
		SSLMode:         "disable",
		MaxConns:        4,
		MinConns:        1,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: time.Minute,
	}

	var pgxPool *pgxpool.Pool
	err = pool.Retry(func() error {
		p, err := db.NewPgxPool(context.Background(), cfg)
		if err != nil {
			return err
		}
		pgxPool = p
		return nil
	})
	require.NoError(t, err)
	t.Cleanup(pgxPool.Close)

	require.NoError(t, db.Migrate(context.Background(), pgxPool))

	return db.NewClient(pgxPool)
}
