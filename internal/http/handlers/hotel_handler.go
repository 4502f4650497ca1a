// README: Catalog management handlers for hotel admins.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tiffin/internal/modules/catalog"
	"tiffin/internal/types"
)

type HotelHandler struct {
	catalog *catalog.Service
}

func NewHotelHandler(svc *catalog.Service) *HotelHandler {
	return &HotelHandler{catalog: svc}
}

type saveHotelReq struct {
	Name            string   `json:"name" validate:"required"`
	Cuisine         string   `json:"cuisine"`
	Email           string   `json:"email" validate:"omitempty,email"`
	Address         string   `json:"address"`
	Lat             *float64 `json:"lat"`
	Lng             *float64 `json:"lng"`
	DeliveryRadiusM float64  `json:"delivery_radius_m" validate:"required,min=500,max=10000"`
	DeliveryFee     int64    `json:"delivery_fee" validate:"min=0"`
	MinOrderAmount  int64    `json:"min_order_amount" validate:"min=0"`
	Currency        string   `json:"currency" validate:"required,len=3"`
	IsActive        bool     `json:"is_active"`
}

func (h *HotelHandler) Save(c *gin.Context) {
	var req saveHotelReq
	if !bindAndValidate(c, &req) {
		return
	}

	hotel := &catalog.Hotel{
		ID:              types.ID(c.Param("id")),
		Name:            req.Name,
		Cuisine:         req.Cuisine,
		Email:           req.Email,
		Address:         req.Address,
		DeliveryRadiusM: req.DeliveryRadiusM,
		DeliveryFee:     types.Money{Amount: req.DeliveryFee, Currency: req.Currency},
		MinOrderAmount:  types.Money{Amount: req.MinOrderAmount, Currency: req.Currency},
		IsActive:        req.IsActive,
	}
	if req.Lat != nil && req.Lng != nil {
		hotel.Location = &types.Point{Lat: *req.Lat, Lng: *req.Lng}
	}

	if err := h.catalog.SaveHotel(c.Request.Context(), hotel); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"hotel_id": hotel.ID})
}

type menuItemReq struct {
	HotelID     string `json:"hotel_id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	Currency    string `json:"currency" validate:"required,len=3"`
	IsAvailable bool   `json:"is_available"`
}

func (h *HotelHandler) SaveMenuItem(c *gin.Context) {
	var req menuItemReq
	if !bindAndValidate(c, &req) {
		return
	}
	item := &catalog.MenuItem{
		ID:          types.ID(c.Param("id")),
		HotelID:     types.ID(req.HotelID),
		Name:        req.Name,
		Description: req.Description,
		Price:       types.Money{Amount: req.Price, Currency: req.Currency},
		IsAvailable: req.IsAvailable,
	}
	if err := h.catalog.UpsertMenuItem(c.Request.Context(), item); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"menu_item_id": item.ID})
}

type availabilityReq struct {
	Available *bool `json:"available" validate:"required"`
}

func (h *HotelHandler) SetAvailability(c *gin.Context) {
	var req availabilityReq
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.catalog.SetMenuItemAvailability(c.Request.Context(), types.ID(c.Param("id")), *req.Available); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"menu_item_id": c.Param("id"), "available": *req.Available})
}
