package service

import (
	"context"
	"errors"

	"github.com/deppfellow/venues/internal/errs"
	"github.com/deppfellow/venues/internal/middleware"
	"github.com/deppfellow/venues/internal/model"
	"github.com/deppfellow/venues/internal/repository"
	"github.com/deppfellow/venues/internal/server"
)

var (
	codeInvalidVenueID = "INVALID_VENUE_ID"
	codeVenueNotFound  = "VENUE_NOT_FOUND"
)

// LinkChecker schedules background reachability checks of venue URLs.
type LinkChecker interface {
	EnqueueLinkCheck(ctx context.Context, venue model.Venue) error
}

type VenueService struct {
	server *server.Server
	venues repository.VenueStore
	links  LinkChecker
}

func NewVenueService(s *server.Server, venues repository.VenueStore) *VenueService {
	return &VenueService{
		server: s,
		venues: venues,
	}
}

// List returns every venue in the store's default order.
func (v *VenueService) List(ctx context.Context) ([]model.Venue, error) {
	return v.venues.List(ctx)
}

func (v *VenueService) Create(ctx context.Context, params model.VenueParams) (*model.Venue, error) {
	venue, err := v.venues.Create(ctx, params)
	if err != nil {
		return nil, err
	}

	v.checkLink(ctx, *venue)
	return venue, nil
}

// Update rejects a malformed id before the store is consulted.
func (v *VenueService) Update(ctx context.Context, rawID string, params model.VenueParams) (*model.Venue, error) {
	id, err := v.parseID(rawID)
	if err != nil {
		return nil, err
	}

	venue, err := v.venues.Update(ctx, id, params)
	if err != nil {
		return nil, v.translate(err)
	}

	v.checkLink(ctx, *venue)
	return venue, nil
}

func (v *VenueService) Delete(ctx context.Context, rawID string) error {
	id, err := v.parseID(rawID)
	if err != nil {
		return err
	}

	if err := v.venues.Delete(ctx, id); err != nil {
		return v.translate(err)
	}
	return nil
}

func (v *VenueService) parseID(raw string) (model.ID, error) {
	id, err := v.venues.IDs().Parse(raw)
	if err != nil {
		return "", errs.NewBadRequestError("Invalid venue id", false, &codeInvalidVenueID, nil)
	}
	return id, nil
}

func (v *VenueService) translate(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return errs.NewNotFoundError("Venue not found", false, &codeVenueNotFound)
	}
	return err
}

// checkLink never fails the request; enqueue errors are only logged.
func (v *VenueService) checkLink(ctx context.Context, venue model.Venue) {
	if v.links == nil || venue.URL == "" {
		return
	}

	if err := v.links.EnqueueLinkCheck(ctx, venue); err != nil {
		middleware.LoggerFromContext(ctx, v.server.Logger).Warn().
			Err(err).
			Str("venue_id", venue.ID.String()).
			Msg("failed to enqueue venue link check")
	}
}
