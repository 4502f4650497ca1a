// README: Order aggregate, line items, and status definitions.
package order

import (
	"time"

	"tiffin/internal/types"
)

type Status string

const (
	StatusNone           Status = "none"
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

type PaymentMethod string

const (
	PayCash        PaymentMethod = "cash"
	PayCard        PaymentMethod = "card"
	PayMobileMoney PaymentMethod = "mobile_money"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PayCash, PayCard, PayMobileMoney:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// CartLine is caller-supplied, unvalidated input.
type CartLine struct {
	MenuItemID types.ID
	Quantity   int
}

type Order struct {
	ID              types.ID
	Number          string
	UserID          types.ID
	HotelID         types.ID
	Status          Status
	StatusVersion   int
	PaymentMethod   PaymentMethod
	PaymentStatus   PaymentStatus
	DeliveryAddress string
	DeliveryNotes   *string
	DeliveryTime    *time.Time
	Subtotal        types.Money
	DeliveryFee     types.Money
	TotalAmount     types.Money
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CancelledAt     *time.Time
}

// OrderItem captures the unit price at order time. Historical orders are
// immune to later catalog price changes.
type OrderItem struct {
	OrderID    types.ID
	MenuItemID types.ID
	Name       string
	Quantity   int
	UnitPrice  types.Money
	Subtotal   types.Money
}

type Review struct {
	OrderID   types.ID
	UserID    types.ID
	Rating    int
	Comment   string
	CreatedAt time.Time
}

type Event struct {
	ID         int64
	OrderID    types.ID
	FromStatus Status
	ToStatus   Status
	ActorRole  string
	ActorID    *types.ID
	CreatedAt  time.Time
}

// AllowedTransitions represents the order lifecycle as code. Delivered and
// cancelled are terminal; cancellation is only reachable before the kitchen
// starts preparing.
var AllowedTransitions = map[Status][]Status{
	StatusPending:        {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusPreparing, StatusCancelled},
	StatusPreparing:      {StatusOutForDelivery},
	StatusOutForDelivery: {StatusDelivered},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
