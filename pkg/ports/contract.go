package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunPageStoreContract runs a suite of tests to verify that a PageStore
// implementation adheres to the defined interface contract.
func RunPageStoreContract(t *testing.T, store PageStore) {
	ctx := context.Background()
	location := "/contract-test-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		page := &PageState{
			Location:   location,
			Body:       `<main id="content">hello</main>`,
			ScrollX:    0,
			ScrollY:    420,
			RenderedAt: time.Now().UTC().Truncate(time.Second),
		}

		err := store.Save(ctx, location, page)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, location)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, page.Body, loaded.Body)
		assert.Equal(t, page.ScrollY, loaded.ScrollY)
		assert.Equal(t, page.Location, loaded.Location)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "/non-existent"+location)
		assert.ErrorIs(t, err, ErrPageNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, location, &PageState{Location: location, Body: "v1"}))
		require.NoError(t, store.Save(ctx, location, &PageState{Location: location, Body: "v2"}))

		loaded, err := store.Load(ctx, location)
		require.NoError(t, err)
		assert.Equal(t, "v2", loaded.Body)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, location, &PageState{Location: location}))

		err := store.Delete(ctx, location)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, location)
		assert.ErrorIs(t, err, ErrPageNotFound, "Load after Delete should return ErrPageNotFound")
	})

	t.Run("List", func(t *testing.T) {
		loc1 := location + "-1"
		loc2 := location + "-2"
		_ = store.Save(ctx, loc1, &PageState{Location: loc1})
		_ = store.Save(ctx, loc2, &PageState{Location: loc2})

		defer func() {
			_ = store.Delete(ctx, loc1)
			_ = store.Delete(ctx, loc2)
		}()

		locations, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, locations, loc1)
		assert.Contains(t, locations, loc2)
	})
}
