package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/cart"
	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/product"
)

// Sentinel errors for the checkout workflow.
var (
	ErrEmptyCart                 = errors.New("cart is empty")
	ErrPaymentVerificationFailed = errors.New("payment verification failed")
)

// Service encapsulates the checkout workflow. All persistence happens
// through narrow interfaces so the flow is testable without a database.
type Service struct {
	customers CustomerStore
	products  product.Repository
	gateway   Gateway
	notifier  Notifier
	currency  string
}

// NewService creates a checkout Service with the required dependencies.
func NewService(
	customers CustomerStore,
	products product.Repository,
	gateway Gateway,
	notifier Notifier,
) *Service {
	return &Service{
		customers: customers,
		products:  products,
		gateway:   gateway,
		notifier:  notifier,
		currency:  "INR",
	}
}

// ProviderOrder is the provider-side registration of a payment intent,
// returned to the client for the payment widget.
type ProviderOrder struct {
	ProviderOrderID string
	AmountMinor     int64
	Currency        string
	Receipt         string
}

// snapshot builds order items from the customer's current cart, copying
// name, price and image from the live catalog exactly once. A product that
// disappeared from the catalog fails the snapshot with NotFound rather than
// pricing the line at zero.
func (s *Service) snapshot(ctx context.Context, customerID string) ([]Item, error) {
	entries, err := s.customers.Cart(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrEmptyCart
	}

	ids := make([]string, len(entries))
	for i, e := range entries {
		if e.Quantity < 1 {
			return nil, errors.Wrapf(cart.ErrInvalidQuantity, "product %s", e.ProductID)
		}
		ids[i] = e.ProductID
	}

	fetched, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "get products")
	}
	byID := make(map[string]product.Product, len(fetched))
	for _, p := range fetched {
		byID[p.ID] = p
	}

	items := make([]Item, len(entries))
	for i, e := range entries {
		p, ok := byID[e.ProductID]
		if !ok {
			return nil, errors.Wrapf(product.ErrNotFound, "product %s", e.ProductID)
		}
		items[i] = Item{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  e.Quantity,
			UnitPrice: p.Price,
			Image:     p.Image,
		}
	}
	return items, nil
}

// CreateProviderOrder prices the customer's cart for the destination country
// and registers the payment intent with the provider. The returned provider
// order ID feeds the client-side payment widget.
func (s *Service) CreateProviderOrder(ctx context.Context, customerID, country string) (*ProviderOrder, error) {
	items, err := s.snapshot(ctx, customerID)
	if err != nil {
		return nil, err
	}

	total := Total(items, country)
	amountMinor := total.Shift(2).IntPart()
	receipt := uuid.New().String()

	providerOrderID, err := s.gateway.CreateOrder(ctx, amountMinor, s.currency, receipt)
	if err != nil {
		return nil, errors.Wrap(err, "create provider order")
	}

	return &ProviderOrder{
		ProviderOrderID: providerOrderID,
		AmountMinor:     amountMinor,
		Currency:        s.currency,
		Receipt:         receipt,
	}, nil
}

// ConfirmRequest carries the provider callback tokens plus the shipping
// details collected during checkout.
type ConfirmRequest struct {
	CustomerID      string
	Address         Address
	PaymentID       string
	ProviderOrderID string
	Signature       string
	// AmountMinor is the amount the provider charged, in minor units.
	// It is recorded in the payment sub-record; the order total is always
	// computed from the item snapshot plus shipping.
	AmountMinor int64
	Method      string
}

// Placed is the outcome of a confirmed checkout.
type Placed struct {
	Order    *Order
	Customer *Contact
	// EmailSent reports whether the best-effort summary dispatch succeeded.
	EmailSent bool
}

// ConfirmAndPlace runs the checkout state transition: verify the payment
// signature, persist the order atomically (profile update + history push +
// cart clear in one document write), then dispatch the summary email.
//
// On verification failure no order is created and the cart is untouched.
// A duplicate submission for the same provider order resolves to the
// already-recorded order. A notification failure is logged and reported in
// the result but never undoes the persisted order.
func (s *Service) ConfirmAndPlace(ctx context.Context, req ConfirmRequest) (*Placed, error) {
	if err := s.gateway.VerifySignature(req.ProviderOrderID, req.PaymentID, req.Signature); err != nil {
		return nil, errors.Wrap(ErrPaymentVerificationFailed, err.Error())
	}

	items, err := s.snapshot(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	method := req.Method
	if method == "" {
		method = "razorpay"
	}
	o := &Order{
		ID:           uuid.New().String(),
		Items:        items,
		TotalPrice:   Total(items, req.Address.Country),
		ShippingCost: ShippingCost(req.Address.Country),
		Country:      req.Address.Country,
		Status:       StatusProcessing,
		CreatedAt:    now,
		Payment: PaymentDetails{
			PaymentID:       req.PaymentID,
			ProviderOrderID: req.ProviderOrderID,
			Signature:       req.Signature,
			Amount:          minorToDecimal(req.AmountMinor),
			Currency:        s.currency,
			Status:          "completed",
			Method:          method,
			PaidAt:          now,
		},
		ShippingAddress: req.Address,
	}

	stored, err := s.customers.PlaceOrder(ctx, req.CustomerID, req.Address, o)
	if err != nil {
		return nil, errors.Wrap(err, "place order")
	}

	contact, err := s.customers.Contact(ctx, req.CustomerID)
	if err != nil {
		return nil, errors.Wrap(err, "load customer contact")
	}

	placed := &Placed{Order: stored, Customer: contact}
	if s.notifier != nil {
		if err := s.notifier.SendOrderSummary(ctx, contact.Email, contact.Name, stored); err != nil {
			zctx.From(ctx).Warn("Order summary email failed",
				zap.String("order_id", stored.ID),
				zap.Error(err),
			)
		} else {
			placed.EmailSent = true
		}
	}
	return placed, nil
}

// SendSummary re-dispatches the order summary email for an existing order.
// Unlike the post-checkout send, a transport failure here is returned to the
// caller.
func (s *Service) SendSummary(ctx context.Context, customerID, orderID string) error {
	contact, err := s.customers.Contact(ctx, customerID)
	if err != nil {
		return err
	}
	o, err := s.customers.Order(ctx, customerID, orderID)
	if err != nil {
		return err
	}
	if err := s.notifier.SendOrderSummary(ctx, contact.Email, contact.Name, o); err != nil {
		return errors.Wrap(err, "send order summary")
	}
	return nil
}
