package model

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// MessageResponse is the body of acknowledgement-only responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateVenueRequest is the body of POST /api/venues. Field content is not
// validated beyond its type.
type CreateVenueRequest struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	District string `json:"district"`
}

func (r *CreateVenueRequest) Validate() error {
	return validate.Struct(r)
}

func (r *CreateVenueRequest) Params() VenueParams {
	return VenueParams{Name: r.Name, URL: r.URL, District: r.District}
}

// UpdateVenueRequest is PUT /api/venues/:id. ID is left raw; the venue
// service validates it against the active storage engine.
type UpdateVenueRequest struct {
	ID       string `param:"id" json:"-" validate:"required"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	District string `json:"district"`
}

func (r *UpdateVenueRequest) Validate() error {
	return validate.Struct(r)
}

func (r *UpdateVenueRequest) Params() VenueParams {
	return VenueParams{Name: r.Name, URL: r.URL, District: r.District}
}

// DeleteVenueRequest is DELETE /api/venues/:id.
type DeleteVenueRequest struct {
	ID string `param:"id" json:"-" validate:"required"`
}

func (r *DeleteVenueRequest) Validate() error {
	return validate.Struct(r)
}

// CredentialsRequest is the body of signup and login.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

func (r *CredentialsRequest) Validate() error {
	return validate.Struct(r)
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// IdentityResponse describes the caller of an authenticated request.
type IdentityResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// EmptyRequest is used by endpoints without input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}
