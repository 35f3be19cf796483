package domain

import "github.com/google/uuid"

// CartItem is one row of a user's cart. Product is populated on reads so the
// client can render price and stock without extra round trips.
type CartItem struct {
	ProductID uuid.UUID
	Quantity  int64
	Product   *Product
}
