//go:build integration

package liquify

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgresContainer creates an ephemeral PostgreSQL container for testing.
func setupPostgresContainer(t *testing.T) (*PostgresSnippetStore, func()) {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15",
		postgres.WithDatabase("liquify_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	store, err := NewPostgresSnippetStore(PostgresConfig{
		ConnectionString: connStr,
		AutoMigrate:      true,
		QueryTimeout:     30 * time.Second,
	})
	require.NoError(t, err, "failed to create postgres snippet store")

	cleanup := func() {
		if store != nil {
			_ = store.Close()
		}
		if container != nil {
			_ = container.Terminate(ctx)
		}
	}

	return store, cleanup
}

func TestPostgres_E2E_SnippetCRUD(t *testing.T) {
	store, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("Put and Get", func(t *testing.T) {
		snippet := &Snippet{Name: "header", Body: "<h1>Shop</h1>"}
		require.NoError(t, store.Put(ctx, snippet))
		assert.False(t, snippet.UpdatedAt.IsZero())

		got, err := store.Get(ctx, "header")
		require.NoError(t, err)
		assert.Equal(t, "header", got.Name)
		assert.Equal(t, "<h1>Shop</h1>", got.Body)
	})

	t.Run("Put replaces", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, &Snippet{Name: "header", Body: "<h1>New</h1>"}))

		got, err := store.Get(ctx, "header")
		require.NoError(t, err)
		assert.Equal(t, "<h1>New</h1>", got.Body)
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, &Snippet{Name: "footer", Body: "bye"}))

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"footer", "header"}, names)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "footer"))

		_, err := store.Get(ctx, "footer")
		assert.True(t, IsSnippetNotFound(err))
		assert.True(t, IsSnippetNotFound(store.Delete(ctx, "footer")))
	})

	t.Run("migrations are idempotent", func(t *testing.T) {
		require.NoError(t, store.RunMigrations(ctx))
	})
}

func TestPostgres_E2E_EngineRenderSnippet(t *testing.T) {
	store, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &Snippet{Name: "promo", Body: "<p>Sale</p>"}))
	engine := MustNew(WithSnippetStore(store))

	out, err := engine.RenderSnippet(ctx, "promo")
	require.NoError(t, err)
	assert.Equal(t, "<p>Sale</p>", out)

	out, err = engine.RenderSnippet(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestPostgres_E2E_ConcurrentPut(t *testing.T) {
	store, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, store.Put(ctx, &Snippet{
				Name: fmt.Sprintf("snippet-%02d", n),
				Body: fmt.Sprintf("body %d", n),
			}))
		}(i)
	}
	wg.Wait()

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, names, 10)
	assert.Equal(t, "snippet-00", names[0])
}

func TestPostgres_E2E_Close(t *testing.T) {
	store, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Close())
	assert.Error(t, store.Close())

	_, err := store.Get(ctx, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgStorageClosed)
}
