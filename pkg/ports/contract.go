package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRouteStoreContract runs a suite of tests to verify that a RouteStore implementation
// adheres to the defined interface contract.
func RunRouteStoreContract(t *testing.T, store RouteStore) {
	ctx := context.Background()
	suffix := time.Now().Format("20060102150405")

	record := func(id string) *domain.RouteRecord {
		return &domain.RouteRecord{
			ID:         id,
			Maze:       "contract",
			Start:      "a",
			Policy:     domain.PolicyFirst,
			Outcome:    domain.OutcomeLooped,
			Cells:      []string{"a", "b", "a"},
			TravelTime: 15,
			Reachable:  true,
			CreatedAt:  time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		id := "contract-save-" + suffix
		rec := record(id)

		err := store.Save(ctx, rec)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, rec.Maze, loaded.Maze)
		assert.Equal(t, rec.Outcome, loaded.Outcome)
		assert.Equal(t, rec.Cells, loaded.Cells)
		assert.Equal(t, rec.TravelTime, loaded.TravelTime)
		assert.True(t, rec.CreatedAt.Equal(loaded.CreatedAt))

		// Stored records are isolated from the caller's copy.
		loaded.Cells[0] = "mutated"
		again, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "a", again.Cells[0])
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		id := "contract-overwrite-" + suffix
		require.NoError(t, store.Save(ctx, record(id)))

		updated := record(id)
		updated.TravelTime = domain.Unreachable
		updated.Reachable = false
		require.NoError(t, store.Save(ctx, updated))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.Unreachable, loaded.TravelTime)
		assert.False(t, loaded.Reachable)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+suffix)
		assert.ErrorIs(t, err, domain.ErrRouteNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		id := "contract-delete-" + suffix
		require.NoError(t, store.Save(ctx, record(id)))

		err := store.Delete(ctx, id)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrRouteNotFound, "Load after Delete should return ErrRouteNotFound")

		assert.NoError(t, store.Delete(ctx, id), "Deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := "contract-list-1-" + suffix
		id2 := "contract-list-2-" + suffix
		require.NoError(t, store.Save(ctx, record(id1)))
		require.NoError(t, store.Save(ctx, record(id2)))

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)

		require.NoError(t, store.Delete(ctx, id1))
		ids, err = store.List(ctx)
		require.NoError(t, err)
		assert.NotContains(t, ids, id1)
	})
}
