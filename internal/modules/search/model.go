// README: Proximity search query and result types.
package search

import (
	"tiffin/internal/modules/catalog"
	"tiffin/internal/types"
)

// Query is a caller's search request. RadiusM <= 0 selects the configured
// default; out-of-range values are clamped, not rejected.
type Query struct {
	At      types.Point
	RadiusM float64
	Cuisine string
}

// Match is one deliverable hotel, ranked by distance.
type Match struct {
	Hotel        *catalog.Hotel
	DistanceM    float64
	Deliverable  bool
	EstimatedMin int
}
