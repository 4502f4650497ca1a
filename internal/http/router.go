// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tiffin/internal/http/handlers"
	"tiffin/internal/http/middleware"
	"tiffin/internal/infra"
	"tiffin/internal/modules/catalog"
	"tiffin/internal/modules/order"
	"tiffin/internal/modules/search"
	"tiffin/internal/types"
)

type RouterDeps struct {
	Order    *order.Service
	Search   *search.Service
	Catalog  *catalog.Service
	Geocoder handlers.Geocoder
	Verifier infra.TokenVerifier
}

func NewRouter(deps RouterDeps) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	searchHandler := handlers.NewSearchHandler(deps.Search, deps.Geocoder)
	r.GET("/api/hotels/search", searchHandler.Nearby)

	auth := r.Group("/api", middleware.Auth(deps.Verifier))

	orderHandler := handlers.NewOrderHandler(deps.Order)
	auth.POST("/orders", orderHandler.Place)
	auth.GET("/orders/:id", orderHandler.Get)
	auth.POST("/orders/:id/status", orderHandler.UpdateStatus)
	auth.POST("/orders/:id/cancel", orderHandler.Cancel)
	auth.POST("/orders/:id/review", orderHandler.Review)

	hotelHandler := handlers.NewHotelHandler(deps.Catalog)
	admin := auth.Group("", middleware.RequireRole(types.RoleHotelAdmin, types.RoleAdmin))
	admin.PUT("/admin/hotels/:id", hotelHandler.Save)
	admin.PUT("/admin/menu-items/:id", hotelHandler.SaveMenuItem)
	admin.PATCH("/admin/menu-items/:id/availability", hotelHandler.SetAvailability)

	return r
}
