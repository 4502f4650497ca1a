// README: Wire payloads for the orders exchange.
package notify

import "time"

type orderLine struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
	Subtotal   int64  `json:"subtotal"`
}

type orderCreatedMessage struct {
	OrderNumber     string      `json:"order_number"`
	UserID          string      `json:"user_id"`
	HotelID         string      `json:"hotel_id"`
	HotelEmail      string      `json:"hotel_email"`
	DeliveryAddress string      `json:"delivery_address"`
	TotalAmount     int64       `json:"total_amount"`
	Currency        string      `json:"currency"`
	PaymentMethod   string      `json:"payment_method"`
	Items           []orderLine `json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
}

type statusChangedMessage struct {
	OrderNumber   string    `json:"order_number"`
	UserID        string    `json:"user_id"`
	HotelID       string    `json:"hotel_id"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	ChangedAt     time.Time `json:"changed_at"`
}
