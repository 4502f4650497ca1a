// README: Hotel proximity search handler.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tiffin/internal/maps"
	"tiffin/internal/modules/search"
	"tiffin/internal/types"
)

// Geocoder resolves a free-form address to a coordinate. Nil when no maps
// API key is configured; the lat/lng form keeps working regardless.
type Geocoder interface {
	Locate(ctx context.Context, address string) (types.Point, error)
}

type SearchHandler struct {
	search   *search.Service
	geocoder Geocoder
}

func NewSearchHandler(svc *search.Service, geocoder Geocoder) *SearchHandler {
	return &SearchHandler{search: svc, geocoder: geocoder}
}

type matchResp struct {
	HotelID      string  `json:"hotel_id"`
	Name         string  `json:"name"`
	Cuisine      string  `json:"cuisine,omitempty"`
	DistanceM    float64 `json:"distance_m"`
	Deliverable  bool    `json:"deliverable"`
	EstimatedMin int     `json:"estimated_min"`
	DeliveryFee  int64   `json:"delivery_fee"`
	MinOrder     int64   `json:"min_order_amount"`
}

// Nearby handles GET /api/hotels/search. The caller supplies either
// lat+lng or a geocodable address.
func (h *SearchHandler) Nearby(c *gin.Context) {
	at, ok := h.resolveLocation(c)
	if !ok {
		return
	}

	radius, _ := strconv.ParseFloat(c.Query("radius_m"), 64)
	matches, err := h.search.Nearby(c.Request.Context(), search.Query{
		At:      at,
		RadiusM: radius,
		Cuisine: c.Query("cuisine"),
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	out := make([]matchResp, len(matches))
	for i, m := range matches {
		out[i] = matchResp{
			HotelID:      string(m.Hotel.ID),
			Name:         m.Hotel.Name,
			Cuisine:      m.Hotel.Cuisine,
			DistanceM:    m.DistanceM,
			Deliverable:  m.Deliverable,
			EstimatedMin: m.EstimatedMin,
			DeliveryFee:  m.Hotel.DeliveryFee.Amount,
			MinOrder:     m.Hotel.MinOrderAmount.Amount,
		}
	}
	writeJSON(c, http.StatusOK, gin.H{"results": out})
}

func (h *SearchHandler) resolveLocation(c *gin.Context) (types.Point, bool) {
	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr != "" || lngStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lng, errLng := strconv.ParseFloat(lngStr, 64)
		if errLat != nil || errLng != nil {
			writeError(c, http.StatusBadRequest, "invalid coordinates")
			return types.Point{}, false
		}
		return types.Point{Lat: lat, Lng: lng}, true
	}

	address := c.Query("address")
	if address == "" {
		writeError(c, http.StatusBadRequest, "lat/lng or address required")
		return types.Point{}, false
	}
	if h.geocoder == nil {
		writeError(c, http.StatusBadRequest, "address search not enabled")
		return types.Point{}, false
	}
	at, err := h.geocoder.Locate(c.Request.Context(), address)
	if err != nil {
		if errors.Is(err, maps.ErrNoResult) {
			writeError(c, http.StatusBadRequest, err.Error())
			return types.Point{}, false
		}
		writeError(c, http.StatusInternalServerError, "geocoding failed")
		return types.Point{}, false
	}
	return at, true
}
