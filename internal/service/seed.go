package service

import (
	"context"
	_ "embed"
	"encoding/json"
	"os"

	"github.com/deppfellow/venues/internal/model"
	"github.com/deppfellow/venues/internal/repository"
	"github.com/deppfellow/venues/internal/server"
	"github.com/pkg/errors"
)

//go:embed seed/venues.json
var defaultSeed []byte

// Seeder fills an empty venue collection from a fixed dataset. It runs once
// at startup or from the seed command, never while serving requests.
type Seeder struct {
	server  *server.Server
	venues  repository.VenueStore
	dataset []model.VenueParams
}

// NewSeeder loads the dataset from seed.file, or the embedded default.
func NewSeeder(s *server.Server, venues repository.VenueStore) (*Seeder, error) {
	dataset, err := LoadSeedDataset(s.Config.Seed.File)
	if err != nil {
		return nil, err
	}

	return &Seeder{
		server:  s,
		venues:  venues,
		dataset: dataset,
	}, nil
}

// LoadSeedDataset reads the venues in file, or the embedded default dataset
// when file is empty. It touches no storage.
func LoadSeedDataset(file string) ([]model.VenueParams, error) {
	raw := defaultSeed
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read seed file %s", file)
		}
		raw = data
	}

	var dataset []model.VenueParams
	if err := json.Unmarshal(raw, &dataset); err != nil {
		return nil, errors.Wrap(err, "failed to parse seed dataset")
	}
	return dataset, nil
}

// SeedIfEmpty inserts the dataset when the store holds no venues and
// reports how many venues it created. A non-empty store is left untouched.
func (s *Seeder) SeedIfEmpty(ctx context.Context) (int, error) {
	count, err := s.venues.Count(ctx)
	if err != nil {
		return 0, err
	}

	if count > 0 {
		s.server.Logger.Debug().Int64("venues", count).Msg("venue collection not empty, skipping seed")
		return 0, nil
	}

	for i, params := range s.dataset {
		if _, err := s.venues.Create(ctx, params); err != nil {
			return i, errors.Wrapf(err, "failed to seed venue %q", params.Name)
		}
	}

	s.server.Logger.Info().Int("venues", len(s.dataset)).Msg("seeded venue collection")
	return len(s.dataset), nil
}
