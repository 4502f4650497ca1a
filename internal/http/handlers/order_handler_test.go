// README: Handler tests for payload validation and proximity search.
package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"tiffin/internal/config"
	"tiffin/internal/http/handlers"
	"tiffin/internal/maps"
	"tiffin/internal/modules/catalog"
	"tiffin/internal/modules/search"
	"tiffin/internal/types"
)

// Order payload validation never reaches the service, so a nil service is
// enough to exercise the 400 paths.
func newOrderRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.NewOrderHandler(nil)
	r.POST("/orders", h.Place)
	r.POST("/orders/:id/status", h.UpdateStatus)
	r.POST("/orders/:id/review", h.Review)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPlace_RejectsEmptyCart(t *testing.T) {
	r := newOrderRouter()
	w := postJSON(t, r, "/orders", `{"hotel_id":"h1","items":[],"delivery_address":"a","payment_method":"cash"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestPlace_RejectsUnknownPaymentMethod(t *testing.T) {
	r := newOrderRouter()
	w := postJSON(t, r, "/orders", `{"hotel_id":"h1","items":[{"menu_item_id":"m1","quantity":1}],"delivery_address":"a","payment_method":"cheque"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestPlace_RejectsZeroQuantity(t *testing.T) {
	r := newOrderRouter()
	w := postJSON(t, r, "/orders", `{"hotel_id":"h1","items":[{"menu_item_id":"m1","quantity":0}],"delivery_address":"a","payment_method":"cash"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestPlace_RejectsMalformedJSON(t *testing.T) {
	r := newOrderRouter()
	w := postJSON(t, r, "/orders", `{"hotel_id":`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	r := newOrderRouter()
	w := postJSON(t, r, "/orders/o1/status", `{"status":"teleported"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestReview_RejectsRatingOutOfRange(t *testing.T) {
	r := newOrderRouter()
	w := postJSON(t, r, "/orders/o1/review", `{"rating":6}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// fakeSearchCatalog serves one in-memory hotel set for search tests.
type fakeSearchCatalog struct {
	hotels []*catalog.Hotel
}

func (f *fakeSearchCatalog) ListHotelsInBounds(_ context.Context, _ catalog.Bounds, _ string) ([]*catalog.Hotel, error) {
	return f.hotels, nil
}

func (f *fakeSearchCatalog) HotelsByIDs(_ context.Context, _ []types.ID) ([]*catalog.Hotel, error) {
	return f.hotels, nil
}

type stubGeocoder struct {
	at  types.Point
	err error
}

func (s *stubGeocoder) Locate(_ context.Context, _ string) (types.Point, error) {
	return s.at, s.err
}

func newSearchRouter(geocoder handlers.Geocoder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cat := &fakeSearchCatalog{hotels: []*catalog.Hotel{{
		ID:              "h1",
		Name:            "Mama Oliech",
		Cuisine:         "kenyan",
		Location:        &types.Point{Lat: -1.2921, Lng: 36.8219},
		DeliveryRadiusM: 5000,
		IsActive:        true,
	}}}
	svc := search.NewService(cat, nil, config.SearchConfig{
		DefaultRadiusM: 3000,
		MinRadiusM:     500,
		MaxRadiusM:     10000,
		MaxResults:     20,
	}, nil)
	r := gin.New()
	r.GET("/api/hotels/search", handlers.NewSearchHandler(svc, geocoder).Nearby)
	return r
}

func TestSearch_ByCoordinates(t *testing.T) {
	r := newSearchRouter(nil)
	req := httptest.NewRequest(http.MethodGet, "/api/hotels/search?lat=-1.2921&lng=36.8219", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"hotel_id":"h1"`) {
		t.Errorf("expected h1 in results, got %s", w.Body.String())
	}
}

func TestSearch_InvalidCoordinates(t *testing.T) {
	r := newSearchRouter(nil)
	req := httptest.NewRequest(http.MethodGet, "/api/hotels/search?lat=abc&lng=36.8", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestSearch_MissingLocation(t *testing.T) {
	r := newSearchRouter(nil)
	req := httptest.NewRequest(http.MethodGet, "/api/hotels/search", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestSearch_ByAddress(t *testing.T) {
	r := newSearchRouter(&stubGeocoder{at: types.Point{Lat: -1.2921, Lng: 36.8219}})
	req := httptest.NewRequest(http.MethodGet, "/api/hotels/search?address=Marcus+Garvey+Rd", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"hotel_id":"h1"`) {
		t.Errorf("expected h1 in results, got %s", w.Body.String())
	}
}

func TestSearch_AddressWithoutGeocoder(t *testing.T) {
	r := newSearchRouter(nil)
	req := httptest.NewRequest(http.MethodGet, "/api/hotels/search?address=somewhere", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestSearch_AddressNotFound(t *testing.T) {
	r := newSearchRouter(&stubGeocoder{err: maps.ErrNoResult})
	req := httptest.NewRequest(http.MethodGet, "/api/hotels/search?address=nowhere", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
