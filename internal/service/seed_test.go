package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/deppfellow/venues/internal/model"
	"github.com/deppfellow/venues/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeeder_SeedsEmptyStoreOnce(t *testing.T) {
	dataset, err := LoadSeedDataset("")
	require.NoError(t, err)
	require.NotEmpty(t, dataset)

	store := repository.NewMemoryVenueStore()
	seeder, err := NewSeeder(newTestServer(t), store)
	require.NoError(t, err)

	ctx := context.Background()
	created, err := seeder.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(dataset), created)

	created, err = seeder.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Zero(t, created)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(dataset)), count)
}

func TestSeeder_SkipsNonEmptyStore(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryVenueStore()
	_, err := store.Create(ctx, seedParams("existing"))
	require.NoError(t, err)

	seeder, err := NewSeeder(newTestServer(t), store)
	require.NoError(t, err)

	created, err := seeder.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Zero(t, created)
}

func TestSeeder_LoadsConfiguredFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "venues.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"Only","url":"http://only","district":"One"}]`), 0o600))

	s := newTestServer(t)
	s.Config.Seed.File = path

	store := repository.NewMemoryVenueStore()
	seeder, err := NewSeeder(s, store)
	require.NoError(t, err)

	created, err := seeder.SeedIfEmpty(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	venues, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, "Only", venues[0].Name)

	s.Config.Seed.File = filepath.Join(t.TempDir(), "missing.json")
	_, err = NewSeeder(s, repository.NewMemoryVenueStore())
	assert.Error(t, err)
}

func TestLoadSeedDataset_RejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "venues.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":`), 0o600))

	_, err := LoadSeedDataset(path)
	assert.ErrorContains(t, err, "failed to parse seed dataset")
}

func TestNewService_BuildsSeederOnlyWhenEnabled(t *testing.T) {
	repos := &repository.Repositories{
		Venues: repository.NewMemoryVenueStore(),
		Users:  repository.NewMemoryUserStore(),
	}

	s := newTestServer(t)
	s.Config.Seed.File = filepath.Join(t.TempDir(), "missing.json")

	services, err := NewService(s, repos)
	require.NoError(t, err)
	assert.Nil(t, services.Seed)
	assert.NotNil(t, services.Venues)

	s.Config.Seed.Enabled = true
	_, err = NewService(s, repos)
	assert.Error(t, err)
}

func seedParams(name string) model.VenueParams {
	return model.VenueParams{Name: name}
}
