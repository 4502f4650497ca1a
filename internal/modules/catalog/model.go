// README: Hotel and menu item catalog entities.
package catalog

import (
	"time"

	"tiffin/internal/types"
)

// Delivery radius bounds enforced on hotel writes, in meters.
const (
	MinDeliveryRadiusM = 500
	MaxDeliveryRadiusM = 10000
)

// Hotel is a restaurant able to deliver to nearby offices. Location is
// optional: a hotel without coordinates never appears in proximity search.
type Hotel struct {
	ID              types.ID
	Name            string
	Cuisine         string
	Email           string
	Address         string
	Location        *types.Point
	DeliveryRadiusM float64
	DeliveryFee     types.Money
	MinOrderAmount  types.Money
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type MenuItem struct {
	ID          types.ID
	HotelID     types.ID
	Name        string
	Description string
	Price       types.Money
	IsAvailable bool
	UpdatedAt   time.Time
}
