package repository

import (
	"context"
	"testing"

	"github.com/deppfellow/venues/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testVenueStore exercises the behavior every engine must share. missing is
// a well-formed id that no venue uses.
func testVenueStore(t *testing.T, store VenueStore, missing model.ID) {
	ctx := context.Background()

	_, err := store.IDs().Parse(missing.String())
	require.NoError(t, err, "missing id must be well-formed")

	t.Run("empty list is not nil", func(t *testing.T) {
		venues, err := store.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, venues)
		assert.Empty(t, venues)

		count, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	var created *model.Venue
	t.Run("create then list", func(t *testing.T) {
		created, err = store.Create(ctx, model.VenueParams{Name: "X", URL: "http://x", District: "Y"})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "X", created.Name)

		_, err = store.IDs().Parse(created.ID.String())
		require.NoError(t, err)

		second, err := store.Create(ctx, model.VenueParams{Name: "Z"})
		require.NoError(t, err)
		assert.NotEqual(t, created.ID, second.ID)

		venues, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, venues, 2)
		assert.Equal(t, *created, venues[0])
		assert.Equal(t, second.ID, venues[1].ID)

		count, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("update", func(t *testing.T) {
		require.NotNil(t, created)

		updated, err := store.Update(ctx, created.ID, model.VenueParams{Name: "X2", URL: "http://x2", District: "Y2"})
		require.NoError(t, err)
		assert.Equal(t, model.Venue{ID: created.ID, Name: "X2", URL: "http://x2", District: "Y2"}, *updated)

		venues, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, venues, *updated)
	})

	t.Run("update missing", func(t *testing.T) {
		_, err := store.Update(ctx, missing, model.VenueParams{Name: "ghost"})
		assert.ErrorIs(t, err, ErrNotFound)

		venues, err := store.List(ctx)
		require.NoError(t, err)
		assert.Len(t, venues, 2)
	})

	t.Run("delete", func(t *testing.T) {
		require.NotNil(t, created)

		require.NoError(t, store.Delete(ctx, created.ID))
		assert.ErrorIs(t, store.Delete(ctx, created.ID), ErrNotFound)
		assert.ErrorIs(t, store.Delete(ctx, missing), ErrNotFound)

		venues, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, venues, 1)
		assert.NotEqual(t, created.ID, venues[0].ID)

		_, err = store.Update(ctx, created.ID, model.VenueParams{Name: "back"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func testUserStore(t *testing.T, store UserStore) {
	ctx := context.Background()

	_, err := store.GetByUsername(ctx, "ada")
	assert.ErrorIs(t, err, ErrNotFound)

	user, err := store.Create(ctx, "ada", "$2a$10$hash")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ada", user.Username)

	_, err = store.Create(ctx, "ada", "$2a$10$other")
	assert.ErrorIs(t, err, ErrDuplicate)

	found, err := store.GetByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "$2a$10$hash", found.PasswordHash)

	_, err = store.GetByUsername(ctx, "Ada")
	assert.ErrorIs(t, err, ErrNotFound)
}
