// README: Proximity search: bounding-box prefilter, exact-distance refinement, ranking.
package search

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"tiffin/internal/config"
	"tiffin/internal/modules/catalog"
	"tiffin/internal/types"
)

var ErrBadRequest = errors.New("invalid search request")

// Catalog is the hotel read model consumed by search.
type Catalog interface {
	ListHotelsInBounds(ctx context.Context, b catalog.Bounds, cuisine string) ([]*catalog.Hotel, error)
	HotelsByIDs(ctx context.Context, ids []types.ID) ([]*catalog.Hotel, error)
}

// GeoIndex is the optional Redis-backed fast path for candidate discovery.
type GeoIndex interface {
	NearbyHotelIDs(ctx context.Context, p types.Point, radiusM float64) ([]types.ID, error)
}

type Service struct {
	catalog Catalog
	index   GeoIndex
	cfg     config.SearchConfig
	log     *slog.Logger
}

func NewService(cat Catalog, index GeoIndex, cfg config.SearchConfig, log *slog.Logger) *Service {
	return &Service{catalog: cat, index: index, cfg: cfg, log: log}
}

// Nearby finds hotels able to deliver to q.At, closest first. A hotel is
// included only when the exact distance is within the hotel's own advertised
// delivery radius; the query radius only bounds candidate discovery.
// No matches is a valid empty result, not an error.
func (s *Service) Nearby(ctx context.Context, q Query) ([]Match, error) {
	if !q.At.Valid() {
		return nil, ErrBadRequest
	}
	radius := s.clampRadius(q.RadiusM)

	candidates, err := s.candidates(ctx, q.At, radius, q.Cuisine)
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(candidates))
	for _, h := range candidates {
		if !h.IsActive || h.Location == nil {
			continue
		}
		if q.Cuisine != "" && h.Cuisine != q.Cuisine {
			continue
		}
		d := distanceMeters(q.At, *h.Location)
		if d > h.DeliveryRadiusM {
			continue
		}
		matches = append(matches, Match{
			Hotel:        h,
			DistanceM:    d,
			Deliverable:  true,
			EstimatedMin: estimateMinutes(d),
		})
	}

	sortByDistance(matches, func(m Match) float64 { return m.DistanceM })
	if len(matches) > s.cfg.MaxResults {
		matches = matches[:s.cfg.MaxResults]
	}
	return matches, nil
}

// candidates runs the coarse prefilter: Redis GEO when the index has
// members, SQL bounding box otherwise.
func (s *Service) candidates(ctx context.Context, at types.Point, radiusM float64, cuisine string) ([]*catalog.Hotel, error) {
	if s.index != nil {
		ids, err := s.index.NearbyHotelIDs(ctx, at, radiusM)
		if err != nil {
			if s.log != nil {
				s.log.Warn("geo index unavailable, falling back to sql prefilter", "err", err)
			}
		} else if len(ids) > 0 {
			return s.catalog.HotelsByIDs(ctx, ids)
		}
	}
	return s.catalog.ListHotelsInBounds(ctx, boundingBox(at, radiusM), cuisine)
}

func (s *Service) clampRadius(r float64) float64 {
	if r <= 0 {
		return s.cfg.DefaultRadiusM
	}
	if r < s.cfg.MinRadiusM {
		return s.cfg.MinRadiusM
	}
	if r > s.cfg.MaxRadiusM {
		return s.cfg.MaxRadiusM
	}
	return r
}

// estimateMinutes is a linear distance-to-time heuristic plus a fixed
// preparation buffer. It is not a routing-engine estimate.
func estimateMinutes(distanceM float64) int {
	return int(math.Ceil(distanceM/500*10 + 20))
}
