package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

type GoogleMapsGeocoder struct {
	client *maps.Client
}

func NewGoogleMapsGeocoder(apiKey string) (*GoogleMapsGeocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return &GoogleMapsGeocoder{client: client}, nil
}

func (g *GoogleMapsGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (*GeocodeResult, error) {
	req := &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: lat, Lng: lng},
	}

	resp, err := g.client.ReverseGeocode(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("reverse geocoding failed: %w", err)
	}

	if len(resp) == 0 {
		return nil, fmt.Errorf("no address found for %.6f,%.6f", lat, lng)
	}

	result := &GeocodeResult{
		Address: resp[0].FormattedAddress,
	}

	for _, component := range resp[0].AddressComponents {
		for _, t := range component.Types {
			switch t {
			case "locality":
				result.City = component.LongName
			case "administrative_area_level_1":
				result.State = component.LongName
			case "country":
				result.Country = component.LongName
			case "postal_code":
				result.PostalCode = component.LongName
			}
		}
	}

	return result, nil
}
