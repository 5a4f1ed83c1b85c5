package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/deppfellow/venues/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryVenueStore(t *testing.T) {
	testVenueStore(t, NewMemoryVenueStore(), "999")
}

func TestMemoryUserStore(t *testing.T) {
	testUserStore(t, NewMemoryUserStore())
}

func TestMemoryUserStore_ConcurrentSignupKeepsOneUser(t *testing.T) {
	store := NewMemoryUserStore()
	ctx := context.Background()

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		created    int
		duplicates int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.Create(ctx, "grace", fmt.Sprintf("hash-%d", i))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				created++
			} else if assert.ErrorIs(t, err, ErrDuplicate) {
				duplicates++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, 19, duplicates)
}

func TestMemoryVenueStore_IDsAreSequential(t *testing.T) {
	store := NewMemoryVenueStore()
	ctx := context.Background()

	first, err := store.Create(ctx, model.VenueParams{Name: "a"})
	require.NoError(t, err)
	second, err := store.Create(ctx, model.VenueParams{Name: "b"})
	require.NoError(t, err)

	assert.Equal(t, model.ID("1"), first.ID)
	assert.Equal(t, model.ID("2"), second.ID)
	assert.Equal(t, "sequential", store.IDs().Name())
}
