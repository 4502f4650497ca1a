// README: Order handlers for place/get/status/cancel/review.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tiffin/internal/http/middleware"
	"tiffin/internal/modules/order"
	"tiffin/internal/types"
)

type OrderHandler struct {
	order *order.Service
}

func NewOrderHandler(svc *order.Service) *OrderHandler {
	return &OrderHandler{order: svc}
}

type cartLineReq struct {
	MenuItemID string `json:"menu_item_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,min=1"`
}

type placeOrderReq struct {
	HotelID         string        `json:"hotel_id" validate:"required"`
	Items           []cartLineReq `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress string        `json:"delivery_address" validate:"required"`
	DeliveryNotes   *string       `json:"delivery_notes,omitempty"`
	DeliveryTime    *time.Time    `json:"delivery_time,omitempty"`
	PaymentMethod   string        `json:"payment_method" validate:"required,oneof=cash card mobile_money"`
}

type orderItemResp struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
	Subtotal   int64  `json:"subtotal"`
}

type orderResp struct {
	OrderID         string          `json:"order_id"`
	Number          string          `json:"number"`
	HotelID         string          `json:"hotel_id"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentStatus   string          `json:"payment_status"`
	DeliveryAddress string          `json:"delivery_address"`
	Subtotal        int64           `json:"subtotal"`
	DeliveryFee     int64           `json:"delivery_fee"`
	TotalAmount     int64           `json:"total_amount"`
	Currency        string          `json:"currency"`
	Items           []orderItemResp `json:"items,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

func toOrderResp(o *order.Order, items []order.OrderItem) orderResp {
	resp := orderResp{
		OrderID:         string(o.ID),
		Number:          o.Number,
		HotelID:         string(o.HotelID),
		Status:          string(o.Status),
		PaymentMethod:   string(o.PaymentMethod),
		PaymentStatus:   string(o.PaymentStatus),
		DeliveryAddress: o.DeliveryAddress,
		Subtotal:        o.Subtotal.Amount,
		DeliveryFee:     o.DeliveryFee.Amount,
		TotalAmount:     o.TotalAmount.Amount,
		Currency:        o.TotalAmount.Currency,
		CreatedAt:       o.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, orderItemResp{
			MenuItemID: string(it.MenuItemID),
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice.Amount,
			Subtotal:   it.Subtotal.Amount,
		})
	}
	return resp
}

func (h *OrderHandler) Place(c *gin.Context) {
	var req placeOrderReq
	if !bindAndValidate(c, &req) {
		return
	}

	lines := make([]order.CartLine, len(req.Items))
	for i, it := range req.Items {
		lines[i] = order.CartLine{MenuItemID: types.ID(it.MenuItemID), Quantity: it.Quantity}
	}

	o, err := h.order.Place(c.Request.Context(), order.PlaceCommand{
		UserID:          types.ID(middleware.CallerUID(c)),
		HotelID:         types.ID(req.HotelID),
		Lines:           lines,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryNotes:   req.DeliveryNotes,
		DeliveryTime:    req.DeliveryTime,
		PaymentMethod:   order.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, toOrderResp(o, nil))
}

func (h *OrderHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing order id")
		return
	}
	o, items, err := h.order.Get(c.Request.Context(), types.ID(id), middleware.Principal(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toOrderResp(o, items))
}

type transitionReq struct {
	Status string `json:"status" validate:"required,oneof=confirmed preparing out_for_delivery delivered cancelled"`
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req transitionReq
	if !bindAndValidate(c, &req) {
		return
	}
	o, err := h.order.Transition(c.Request.Context(), order.TransitionCommand{
		OrderID: types.ID(c.Param("id")),
		Caller:  middleware.Principal(c),
		To:      order.Status(req.Status),
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toOrderResp(o, nil))
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	o, err := h.order.Cancel(c.Request.Context(), types.ID(c.Param("id")), middleware.Principal(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toOrderResp(o, nil))
}

type reviewReq struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func (h *OrderHandler) Review(c *gin.Context) {
	var req reviewReq
	if !bindAndValidate(c, &req) {
		return
	}
	err := h.order.AttachReview(c.Request.Context(), order.ReviewCommand{
		OrderID: types.ID(c.Param("id")),
		Caller:  middleware.Principal(c),
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"status": "review recorded"})
}
