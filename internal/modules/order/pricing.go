// README: Cart pricing against a catalog snapshot.
package order

import (
	"tiffin/internal/modules/catalog"
	"tiffin/internal/types"
)

// Quote is a fully-priced line-item set ready for the order transaction.
type Quote struct {
	Items       []OrderItem
	Subtotal    types.Money
	DeliveryFee types.Money
	Total       types.Money
}

// priceCart validates the cart against the available-item snapshot and
// computes all amounts. Totals hold exactly:
//
//	Total = sum(UnitPrice * Quantity) + DeliveryFee
//
// Lines referencing the same menu item are merged into one order item;
// order_items carries one row per (order, menu item).
// The snapshot is advisory; the order transaction re-checks every item
// inside its own transaction before committing.
func priceCart(h *catalog.Hotel, available map[types.ID]*catalog.MenuItem, lines []CartLine) (*Quote, error) {
	if len(lines) == 0 {
		return nil, ErrBadRequest
	}

	q := &Quote{
		Items:       make([]OrderItem, 0, len(lines)),
		Subtotal:    types.Money{Currency: h.DeliveryFee.Currency},
		DeliveryFee: h.DeliveryFee,
	}
	index := make(map[types.ID]int, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, ErrBadRequest
		}
		item, ok := available[line.MenuItemID]
		if !ok {
			return nil, ErrBadRequest
		}
		sub := item.Price.Mul(line.Quantity)
		if i, seen := index[line.MenuItemID]; seen {
			q.Items[i].Quantity += line.Quantity
			q.Items[i].Subtotal = q.Items[i].Subtotal.Add(sub)
		} else {
			index[line.MenuItemID] = len(q.Items)
			q.Items = append(q.Items, OrderItem{
				MenuItemID: item.ID,
				Name:       item.Name,
				Quantity:   line.Quantity,
				UnitPrice:  item.Price,
				Subtotal:   sub,
			})
		}
		q.Subtotal = q.Subtotal.Add(sub)
	}

	if q.Subtotal.LessThan(h.MinOrderAmount) {
		return nil, ErrBelowMinimum
	}
	q.Total = q.Subtotal.Add(q.DeliveryFee)
	return q, nil
}
