// Package order implements the checkout workflow: cart snapshot, totals,
// payment confirmation, atomic order persistence, and the order-summary
// notification. An Order is an immutable historical record embedded in its
// owning customer document; item snapshots are captured once at creation and
// never re-read from the live catalog.
package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/cart"
)

// Sentinel errors for order lookup and mutation.
var (
	// ErrNotFound is returned when a requested order does not exist.
	ErrNotFound = errors.New("order not found")
	// ErrStatusConflict is returned when a conditional status update loses a
	// race: the order exists but its status is no longer the expected one.
	ErrStatusConflict = errors.New("order status changed concurrently")
)

// Item is a denormalized snapshot of a cart line at order time. Name, price
// and image are copied from the product so later catalog edits or deletions
// do not alter historical orders.
type Item struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Image     string
}

// PaymentDetails records the provider-issued tokens and amounts that
// authenticate a single transaction.
type PaymentDetails struct {
	PaymentID       string
	ProviderOrderID string
	Signature       string
	Amount          decimal.Decimal
	Currency        string
	Status          string
	Method          string
	PaidAt          time.Time
}

// Address is the shipping destination captured with an order.
type Address struct {
	FirstName string
	LastName  string
	Address   string
	City      string
	State     string
	PinCode   string
	Country   string
}

// Order is one append-only entry in a customer's order history.
type Order struct {
	ID              string
	Items           []Item
	TotalPrice      decimal.Decimal
	ShippingCost    decimal.Decimal
	Country         string
	Status          Status
	CreatedAt       time.Time
	Payment         PaymentDetails
	ShippingAddress Address
}

// Contact is the slice of customer identity the checkout flow needs for
// notifications and responses.
type Contact struct {
	CustomerID string
	Email      string
	Name       string
}

// CustomerStore is the customer persistence surface the checkout flow
// consumes. Implementations must make PlaceOrder atomic: profile update,
// history push and cart clear happen in a single document write, guarded
// against duplicate submissions by the provider order ID. When the order was
// already recorded, PlaceOrder returns the stored order instead of appending
// a duplicate.
type CustomerStore interface {
	Contact(ctx context.Context, customerID string) (*Contact, error)
	Cart(ctx context.Context, customerID string) ([]cart.Entry, error)
	Order(ctx context.Context, customerID, orderID string) (*Order, error)
	PlaceOrder(ctx context.Context, customerID string, addr Address, o *Order) (*Order, error)
}

// Notifier delivers the order summary to the customer. Delivery is
// best-effort from the business standpoint: a failure never rolls back the
// persisted order.
type Notifier interface {
	SendOrderSummary(ctx context.Context, to, name string, o *Order) error
}

// Gateway is the payment-provider surface the checkout flow consumes.
type Gateway interface {
	// CreateOrder registers an intent with the provider and returns the
	// provider order ID. The amount is in the currency's minor unit (paise).
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (string, error)
	// VerifySignature checks the provider callback tokens server-side.
	VerifySignature(providerOrderID, paymentID, signature string) error
}
