package maps

import "context"

// Geocoder resolves coordinates to a postal address. Used only to enrich the
// stored request location for display; matching never depends on it.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (*GeocodeResult, error)
}

type GeocodeResult struct {
	Address    string `json:"formatted_address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}
