package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// newPostgresDatabase starts a disposable postgres container. The test is
// skipped in short mode or when no container runtime is reachable.
func newPostgresDatabase(t *testing.T) *Database {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping postgres integration test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("storefront"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	db, err := NewPostgresDatabase(&config.DatabaseConfig{
		Host:         host,
		Port:         port.Int(),
		User:         "postgres",
		Password:     "storefront",
		DBName:       "storefront_test",
		SSLMode:      "disable",
		MaxOpenConns: 4,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestGormStateRepository_PostgresIntegration(t *testing.T) {
	db := newPostgresDatabase(t)
	repo := NewGormStateRepository(db.DB)
	ctx := context.Background()

	require.NoError(t, db.Ping())

	for _, ns := range shared.AllNamespaces() {
		require.NoError(t, repo.Save(ctx, ns, []byte(`"first"`)))
		require.NoError(t, repo.Save(ctx, ns, []byte(`"second"`)))

		got, found, err := repo.Load(ctx, ns)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `"second"`, string(got))

		version, err := repo.Version(ctx, ns)
		require.NoError(t, err)
		assert.Equal(t, 2, version)
	}
}
