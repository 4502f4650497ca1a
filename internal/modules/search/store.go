// README: Hot hotel location index backed by Redis GEO.
package search

import (
	"context"

	"github.com/redis/go-redis/v9"

	"tiffin/internal/types"
)

const hotelGeoKey = "search:hotels"

// Store keeps active hotel coordinates in a Redis GEO set. It is an
// accelerator in front of the SQL bounding-box query; search falls back to
// SQL whenever the index is empty or unavailable.
type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

func (s *Store) AddHotel(ctx context.Context, id types.ID, pos types.Point) error {
	return s.redis.GeoAdd(ctx, hotelGeoKey, &redis.GeoLocation{
		Name:      string(id),
		Longitude: pos.Lng,
		Latitude:  pos.Lat,
	}).Err()
}

func (s *Store) RemoveHotel(ctx context.Context, id types.ID) error {
	return s.redis.ZRem(ctx, hotelGeoKey, string(id)).Err()
}

// NearbyHotelIDs returns hotel ids within radiusM of p, closest first.
func (s *Store) NearbyHotelIDs(ctx context.Context, p types.Point, radiusM float64) ([]types.ID, error) {
	results, err := s.redis.GeoSearch(ctx, hotelGeoKey, &redis.GeoSearchQuery{
		Longitude:  p.Lng,
		Latitude:   p.Lat,
		Radius:     radiusM,
		RadiusUnit: "m",
		Sort:       "ASC",
	}).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]types.ID, len(results))
	for i, r := range results {
		ids[i] = types.ID(r)
	}
	return ids, nil
}
