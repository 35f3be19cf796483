package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

// Product is a catalog item. Stock is the only contended field and is mutated
// through the inventory ledger operations only.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	OfferPrice  decimal.NullDecimal
	Images      []string
	Brand       string
	Color       string
	Category    string
	Stock       int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EffectivePrice is the price a buyer is charged right now: the offer price
// when one is set, the regular price otherwise.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.OfferPrice.Valid {
		return p.OfferPrice.Decimal
	}
	return p.Price
}
