package handler

import (
	"github.com/deppfellow/venues/internal/model"
	"github.com/deppfellow/venues/internal/server"
	"github.com/deppfellow/venues/internal/service"
	"github.com/labstack/echo/v4"
)

type VenueHandler struct {
	Handler
	venues *service.VenueService
}

func NewVenueHandler(s *server.Server, venues *service.VenueService) *VenueHandler {
	return &VenueHandler{
		Handler: NewHandler(s),
		venues:  venues,
	}
}

func (h *VenueHandler) ListVenues(c echo.Context, _ *model.EmptyRequest) ([]model.Venue, error) {
	return h.venues.List(c.Request().Context())
}

func (h *VenueHandler) CreateVenue(c echo.Context, req *model.CreateVenueRequest) (*model.Venue, error) {
	return h.venues.Create(c.Request().Context(), req.Params())
}

func (h *VenueHandler) UpdateVenue(c echo.Context, req *model.UpdateVenueRequest) (*model.Venue, error) {
	return h.venues.Update(c.Request().Context(), req.ID, req.Params())
}

func (h *VenueHandler) DeleteVenue(c echo.Context, req *model.DeleteVenueRequest) (*model.MessageResponse, error) {
	if err := h.venues.Delete(c.Request().Context(), req.ID); err != nil {
		return nil, err
	}
	return &model.MessageResponse{Message: "Venue deleted successfully"}, nil
}
