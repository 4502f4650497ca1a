// README: Pure geographic computation helpers for proximity search.
package search

import (
	"math"

	"tiffin/internal/modules/catalog"
	"tiffin/internal/types"
)

const earthRadiusM = 6371000.0

// distanceMeters returns the great-circle distance in meters between two
// points specified in decimal degrees, via the haversine formula.
func distanceMeters(a, b types.Point) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusM * c
}

// boundingBox returns the coordinate rectangle enclosing the circle of the
// given radius around center. The longitude delta is latitude-corrected via
// asin(sin(angular)/cos(lat)). Known limitation: near the poles cos(lat)
// approaches zero and the box degenerates; extreme latitudes are not a
// supported service area.
func boundingBox(center types.Point, radiusM float64) catalog.Bounds {
	angular := radiusM / earthRadiusM
	latRad := degreesToRadians(center.Lat)

	dLat := radiansToDegrees(angular)
	dLng := radiansToDegrees(math.Asin(math.Sin(angular) / math.Cos(latRad)))

	return catalog.Bounds{
		MinLat: center.Lat - dLat,
		MaxLat: center.Lat + dLat,
		MinLng: center.Lng - dLng,
		MaxLng: center.Lng + dLng,
	}
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func radiansToDegrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// sortByDistance performs an insertion sort (fine for small N) on any slice
// where each element exposes a distance via the accessor function.
func sortByDistance[T any](items []T, dist func(T) float64) {
	for i := 1; i < len(items); i++ {
		key := items[i]
		j := i - 1
		for j >= 0 && dist(items[j]) > dist(key) {
			items[j+1] = items[j]
			j--
		}
		items[j+1] = key
	}
}
