package model

// Venue is a named record with a URL and a district.
type Venue struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	District string `json:"district"`
}

// VenueParams are the mutable fields of a Venue.
type VenueParams struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	District string `json:"district"`
}
