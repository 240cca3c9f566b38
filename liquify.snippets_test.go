package liquify

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySnippetStore_CRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySnippetStore()
	defer store.Close()

	snippet := &Snippet{Name: "header", Body: "<h1>Shop</h1>"}
	require.NoError(t, store.Put(ctx, snippet))
	assert.False(t, snippet.UpdatedAt.IsZero())

	got, err := store.Get(ctx, "header")
	require.NoError(t, err)
	assert.Equal(t, "<h1>Shop</h1>", got.Body)

	got.Body = "mutated"
	again, err := store.Get(ctx, "header")
	require.NoError(t, err)
	assert.Equal(t, "<h1>Shop</h1>", again.Body, "Get returns a copy")

	require.NoError(t, store.Put(ctx, &Snippet{Name: "header", Body: "<h1>New</h1>"}))
	got, err = store.Get(ctx, "header")
	require.NoError(t, err)
	assert.Equal(t, "<h1>New</h1>", got.Body)

	require.NoError(t, store.Put(ctx, &Snippet{Name: "footer"}))
	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"footer", "header"}, names)

	require.NoError(t, store.Delete(ctx, "header"))
	_, err = store.Get(ctx, "header")
	assert.True(t, IsSnippetNotFound(err))

	err = store.Delete(ctx, "header")
	assert.True(t, IsSnippetNotFound(err))
}

func TestMemorySnippetStore_Validation(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySnippetStore()

	err := store.Put(ctx, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgSnippetNil)

	err = store.Put(ctx, &Snippet{Body: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgSnippetEmptyName)
}

func TestMemorySnippetStore_Closed(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySnippetStore()
	require.NoError(t, store.Close())

	_, err := store.Get(ctx, "x")
	assert.Contains(t, err.Error(), ErrMsgStorageClosed)
	assert.False(t, IsSnippetNotFound(err))

	assert.Error(t, store.Put(ctx, &Snippet{Name: "x"}))
	assert.Error(t, store.Delete(ctx, "x"))
	_, err = store.List(ctx)
	assert.Error(t, err)
}

func TestMemorySnippetStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewMemorySnippetStore()
	_, err := store.Get(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Put(ctx, &Snippet{Name: "x"}), context.Canceled)
}

func TestMemorySnippetStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySnippetStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Put(ctx, &Snippet{Name: "shared", Body: "x"}))
		}()
		go func() {
			defer wg.Done()
			_, _ = store.Get(ctx, "shared")
		}()
	}
	wg.Wait()

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"shared"}, names)
}

func TestStorageError(t *testing.T) {
	err := &StorageError{Message: ErrMsgSnippetNotFound, Name: "footer"}
	assert.Equal(t, ErrMsgSnippetNotFound+": footer", err.Error())
	assert.Nil(t, err.Unwrap())

	assert.Equal(t, ErrMsgStorageClosed, NewStorageClosedError().Error())
}
