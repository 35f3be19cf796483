package port

import (
	"context"

	"github.com/google/uuid"
)

// SessionLineItem is one priced line handed to the hosted-checkout gateway.
// UnitAmount is in the smallest currency unit (cents).
type SessionLineItem struct {
	Name        string
	Description string
	UnitAmount  int64
	Quantity    int64
}

// CheckoutSession is a freshly created hosted payment session.
type CheckoutSession struct {
	ID  string
	URL string
}

// SessionStatus is the idempotent read of a session outcome. OrderID is the
// correlation metadata the session was tagged with at creation.
type SessionStatus struct {
	PaymentStatus   string
	PaymentIntentID string
	PayerEmail      string
	OrderID         string
}

const PaymentStatusPaid = "paid"

//go:generate mockgen -source=payment.go -destination=mock/payment.go -package=mock
type PaymentGateway interface {
	CreateSession(ctx context.Context, orderID uuid.UUID, items []SessionLineItem) (*CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*SessionStatus, error)
}
