package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusPaid      OrderStatus = "Paid"
	OrderStatusDelivered OrderStatus = "Delivered"
)

// OrderItem is one line of an order. Quantity is snapshotted at checkout and
// never re-read later.
type OrderItem struct {
	ProductID uuid.UUID
	Quantity  int64
}

type ShippingAddress struct {
	Address    string
	City       string
	PostalCode string
	Country    string
}

// PaymentResult holds the gateway-reported outcome of the hosted checkout
// session that settled the order.
type PaymentResult struct {
	ID           string
	Status       string
	UpdateTime   string
	EmailAddress string
}

// Order is the aggregate for one checkout. TotalPrice is frozen at creation
// from the prices the client saw and is not recomputed from the live catalog.
type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Items           []OrderItem
	ShippingAddress ShippingAddress
	PaymentMethod   string
	PaymentResult   *PaymentResult
	TotalPrice      decimal.Decimal
	IsPaid          bool
	PaidAt          *time.Time
	IsDelivered     bool
	DeliveredAt     *time.Time
	Status          OrderStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
	User            *User
}
