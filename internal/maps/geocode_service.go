// README: Google Maps geocoding for delivery addresses.
package maps

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"tiffin/internal/types"
)

var ErrNoResult = errors.New("address could not be geocoded")

// GeocodeService resolves free-form delivery addresses to coordinates so
// clients without device location can still search nearby hotels.
type GeocodeService struct {
	client *maps.Client
}

func NewGeocodeService(apiKey string) (*GeocodeService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return &GeocodeService{client: client}, nil
}

// Locate returns the first geocoding hit for the address.
func (s *GeocodeService) Locate(ctx context.Context, address string) (types.Point, error) {
	if address == "" {
		return types.Point{}, ErrNoResult
	}
	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return types.Point{}, fmt.Errorf("geocode api error: %w", err)
	}
	if len(results) == 0 {
		return types.Point{}, ErrNoResult
	}
	loc := results[0].Geometry.Location
	return types.Point{Lat: loc.Lat, Lng: loc.Lng}, nil
}
