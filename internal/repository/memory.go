package repository

import (
	"context"
	"sync"
	"time"

	"github.com/deppfellow/venues/internal/model"
)

// MemoryVenueStore is an in-process venue store for local runs and tests.
// Ids are sequential, like the PostgreSQL engine.
type MemoryVenueStore struct {
	mu     sync.RWMutex
	ids    model.SequentialIDs
	nextID int64
	order  []model.ID
	venues map[model.ID]model.Venue
}

func NewMemoryVenueStore() *MemoryVenueStore {
	return &MemoryVenueStore{
		venues: make(map[model.ID]model.Venue),
	}
}

func (r *MemoryVenueStore) IDs() model.IDCodec {
	return r.ids
}

func (r *MemoryVenueStore) List(_ context.Context) ([]model.Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	venues := make([]model.Venue, 0, len(r.order))
	for _, id := range r.order {
		venues = append(venues, r.venues[id])
	}
	return venues, nil
}

func (r *MemoryVenueStore) Create(_ context.Context, params model.VenueParams) (*model.Venue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	venue := model.Venue{
		ID:       r.ids.Format(r.nextID),
		Name:     params.Name,
		URL:      params.URL,
		District: params.District,
	}
	r.venues[venue.ID] = venue
	r.order = append(r.order, venue.ID)

	return &venue, nil
}

func (r *MemoryVenueStore) Update(_ context.Context, id model.ID, params model.VenueParams) (*model.Venue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.venues[id]; !ok {
		return nil, ErrNotFound
	}

	venue := model.Venue{
		ID:       id,
		Name:     params.Name,
		URL:      params.URL,
		District: params.District,
	}
	r.venues[id] = venue

	return &venue, nil
}

func (r *MemoryVenueStore) Delete(_ context.Context, id model.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.venues[id]; !ok {
		return ErrNotFound
	}

	delete(r.venues, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryVenueStore) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.venues)), nil
}

// MemoryUserStore is an in-process credential store.
type MemoryUserStore struct {
	mu     sync.RWMutex
	ids    model.SequentialIDs
	nextID int64
	users  map[string]model.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users: make(map[string]model.User),
	}
}

func (r *MemoryUserStore) Create(_ context.Context, username, passwordHash string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[username]; ok {
		return nil, ErrDuplicate
	}

	r.nextID++
	user := model.User{
		ID:           r.ids.Format(r.nextID),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	r.users[username] = user

	return &user, nil
}

func (r *MemoryUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}
