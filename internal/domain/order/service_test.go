package order_test

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/cart"
	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/customer"
	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/order"
	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/product"
)

// --- Mock implementations ---

type mockProductRepo struct {
	byID map[string]*product.Product
}

func (m *mockProductRepo) List(_ context.Context) ([]product.Product, error) { return nil, nil }

func (m *mockProductRepo) GetByID(_ context.Context, id string) (*product.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return p, nil
}

func (m *mockProductRepo) GetByIDs(_ context.Context, ids []string) ([]product.Product, error) {
	var out []product.Product
	for _, id := range ids {
		if p, ok := m.byID[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) Create(_ context.Context, _ *product.Product) error { return nil }
func (m *mockProductRepo) Update(_ context.Context, _ *product.Product) error { return nil }
func (m *mockProductRepo) Delete(_ context.Context, _ string) error           { return nil }

// mockCustomerStore mirrors the document-store behavior: PlaceOrder is
// atomic and deduplicates on the provider order ID.
type mockCustomerStore struct {
	customerID string
	email      string
	name       string
	cart       []cart.Entry
	history    []order.Order

	placeErr error
}

func (m *mockCustomerStore) Contact(_ context.Context, customerID string) (*order.Contact, error) {
	if customerID != m.customerID {
		return nil, customer.ErrNotFound
	}
	return &order.Contact{CustomerID: m.customerID, Email: m.email, Name: m.name}, nil
}

func (m *mockCustomerStore) Cart(_ context.Context, customerID string) ([]cart.Entry, error) {
	if customerID != m.customerID {
		return nil, customer.ErrNotFound
	}
	return m.cart, nil
}

func (m *mockCustomerStore) Order(_ context.Context, customerID, orderID string) (*order.Order, error) {
	if customerID != m.customerID {
		return nil, customer.ErrNotFound
	}
	for i := range m.history {
		if m.history[i].ID == orderID {
			return &m.history[i], nil
		}
	}
	return nil, order.ErrNotFound
}

func (m *mockCustomerStore) PlaceOrder(_ context.Context, customerID string, _ order.Address, o *order.Order) (*order.Order, error) {
	if m.placeErr != nil {
		return nil, m.placeErr
	}
	if customerID != m.customerID {
		return nil, customer.ErrNotFound
	}
	for i := range m.history {
		if m.history[i].Payment.ProviderOrderID == o.Payment.ProviderOrderID {
			return &m.history[i], nil
		}
	}
	m.history = append(m.history, *o)
	m.cart = nil
	return o, nil
}

type mockGateway struct {
	createdID string
	createErr error
	verifyErr error
}

func (m *mockGateway) CreateOrder(_ context.Context, _ int64, _, _ string) (string, error) {
	return m.createdID, m.createErr
}

func (m *mockGateway) VerifySignature(_, _, _ string) error {
	return m.verifyErr
}

type mockNotifier struct {
	sendErr error
	sent    int
	lastTo  string
}

func (m *mockNotifier) SendOrderSummary(_ context.Context, to, _ string, _ *order.Order) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent++
	m.lastTo = to
	return nil
}

// --- Helpers ---

const testCustomerID = "cust-1"

func newStore(entries ...cart.Entry) *mockCustomerStore {
	return &mockCustomerStore{
		customerID: testCustomerID,
		email:      "jane@example.com",
		name:       "Jane Doe",
		cart:       entries,
	}
}

func newCatalog() *mockProductRepo {
	return &mockProductRepo{byID: map[string]*product.Product{
		"p1": {
			ID:    "p1",
			Name:  "ThinkPad T14",
			Price: decimal.NewFromInt(500),
			Image: "t14.jpg",
		},
	}}
}

func confirmRequest() order.ConfirmRequest {
	return order.ConfirmRequest{
		CustomerID: testCustomerID,
		Address: order.Address{
			FirstName: "Jane",
			Address:   "1 Main St",
			City:      "Austin",
			State:     "TX",
			PinCode:   "73301",
			Country:   "USA",
		},
		PaymentID:       "pay_1",
		ProviderOrderID: "order_1",
		Signature:       "sig",
		AmountMinor:     101500,
	}
}

// --- Tests ---

func TestCreateProviderOrder(t *testing.T) {
	store := newStore(cart.Entry{ProductID: "p1", Quantity: 2})
	gw := &mockGateway{createdID: "order_1"}
	svc := order.NewService(store, newCatalog(), gw, &mockNotifier{})

	po, err := svc.CreateProviderOrder(context.Background(), testCustomerID, "USA")
	require.NoError(t, err)

	assert.Equal(t, "order_1", po.ProviderOrderID)
	assert.Equal(t, int64(101500), po.AmountMinor, "1015 in paise")
	assert.Equal(t, "INR", po.Currency)
	assert.NotEmpty(t, po.Receipt)
}

func TestCreateProviderOrder_EmptyCart(t *testing.T) {
	svc := order.NewService(newStore(), newCatalog(), &mockGateway{}, &mockNotifier{})

	_, err := svc.CreateProviderOrder(context.Background(), testCustomerID, "USA")
	require.ErrorIs(t, err, order.ErrEmptyCart)
}

func TestCreateProviderOrder_ProductGone(t *testing.T) {
	store := newStore(cart.Entry{ProductID: "missing", Quantity: 1})
	svc := order.NewService(store, newCatalog(), &mockGateway{}, &mockNotifier{})

	_, err := svc.CreateProviderOrder(context.Background(), testCustomerID, "USA")
	require.ErrorIs(t, err, product.ErrNotFound)
}

func TestConfirmAndPlace_Success(t *testing.T) {
	store := newStore(cart.Entry{ProductID: "p1", Quantity: 2})
	notifier := &mockNotifier{}
	svc := order.NewService(store, newCatalog(), &mockGateway{}, notifier)

	placed, err := svc.ConfirmAndPlace(context.Background(), confirmRequest())
	require.NoError(t, err)

	// History grew by exactly one and the cart is empty.
	require.Len(t, store.history, 1)
	assert.Empty(t, store.cart)

	o := placed.Order
	assert.True(t, o.TotalPrice.Equal(decimal.NewFromInt(1015)), "total = %s", o.TotalPrice)
	assert.True(t, o.ShippingCost.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, order.StatusProcessing, o.Status)
	assert.Equal(t, "USA", o.Country)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "ThinkPad T14", o.Items[0].Name)
	assert.Equal(t, 2, o.Items[0].Quantity)

	assert.Equal(t, "pay_1", o.Payment.PaymentID)
	assert.Equal(t, "order_1", o.Payment.ProviderOrderID)
	assert.Equal(t, "completed", o.Payment.Status)
	assert.Equal(t, "razorpay", o.Payment.Method)
	assert.Equal(t, "1015", o.Payment.Amount.String())

	assert.True(t, placed.EmailSent)
	assert.Equal(t, 1, notifier.sent)
	assert.Equal(t, "jane@example.com", notifier.lastTo)
}

func TestConfirmAndPlace_VerificationFailure(t *testing.T) {
	store := newStore(cart.Entry{ProductID: "p1", Quantity: 2})
	notifier := &mockNotifier{}
	gw := &mockGateway{verifyErr: errors.New("signature mismatch")}
	svc := order.NewService(store, newCatalog(), gw, notifier)

	_, err := svc.ConfirmAndPlace(context.Background(), confirmRequest())
	require.ErrorIs(t, err, order.ErrPaymentVerificationFailed)

	// No order was created and the cart is untouched.
	assert.Empty(t, store.history)
	assert.Len(t, store.cart, 1)
	assert.Zero(t, notifier.sent)
}

func TestConfirmAndPlace_EmptyCart(t *testing.T) {
	svc := order.NewService(newStore(), newCatalog(), &mockGateway{}, &mockNotifier{})

	_, err := svc.ConfirmAndPlace(context.Background(), confirmRequest())
	require.ErrorIs(t, err, order.ErrEmptyCart)
}

func TestConfirmAndPlace_DuplicateSubmit(t *testing.T) {
	store := newStore(cart.Entry{ProductID: "p1", Quantity: 2})
	svc := order.NewService(store, newCatalog(), &mockGateway{}, &mockNotifier{})

	first, err := svc.ConfirmAndPlace(context.Background(), confirmRequest())
	require.NoError(t, err)

	// The cart is already empty, but a double-submit replays the provider
	// tokens before the client learns the outcome. Refill the cart to prove
	// dedup comes from the provider order ID, not the empty cart.
	store.cart = []cart.Entry{{ProductID: "p1", Quantity: 2}}

	second, err := svc.ConfirmAndPlace(context.Background(), confirmRequest())
	require.NoError(t, err)

	assert.Equal(t, first.Order.ID, second.Order.ID)
	assert.Len(t, store.history, 1, "no duplicate order recorded")
}

func TestConfirmAndPlace_NotifierFailureKeepsOrder(t *testing.T) {
	store := newStore(cart.Entry{ProductID: "p1", Quantity: 2})
	notifier := &mockNotifier{sendErr: errors.New("smtp: connection refused")}
	svc := order.NewService(store, newCatalog(), &mockGateway{}, notifier)

	placed, err := svc.ConfirmAndPlace(context.Background(), confirmRequest())
	require.NoError(t, err, "mail failure must not fail checkout")

	assert.False(t, placed.EmailSent)
	assert.Len(t, store.history, 1)
	assert.Empty(t, store.cart)
}

func TestConfirmAndPlace_SnapshotImmuneToCatalogEdits(t *testing.T) {
	store := newStore(cart.Entry{ProductID: "p1", Quantity: 2})
	catalog := newCatalog()
	svc := order.NewService(store, catalog, &mockGateway{}, &mockNotifier{})

	placed, err := svc.ConfirmAndPlace(context.Background(), confirmRequest())
	require.NoError(t, err)

	// Repricing and renaming the live product must not reach into history.
	catalog.byID["p1"].Price = decimal.NewFromInt(999)
	catalog.byID["p1"].Name = "ThinkPad T14 Gen 2"

	stored, err := store.Order(context.Background(), testCustomerID, placed.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, "ThinkPad T14", stored.Items[0].Name)
	assert.True(t, stored.Items[0].UnitPrice.Equal(decimal.NewFromInt(500)))
	assert.True(t, stored.TotalPrice.Equal(decimal.NewFromInt(1015)))
}

func TestSendSummary(t *testing.T) {
	store := newStore(cart.Entry{ProductID: "p1", Quantity: 2})
	notifier := &mockNotifier{}
	svc := order.NewService(store, newCatalog(), &mockGateway{}, notifier)

	placed, err := svc.ConfirmAndPlace(context.Background(), confirmRequest())
	require.NoError(t, err)
	require.Equal(t, 1, notifier.sent)

	require.NoError(t, svc.SendSummary(context.Background(), testCustomerID, placed.Order.ID))
	assert.Equal(t, 2, notifier.sent)
}

func TestSendSummary_TransportFailureSurfaces(t *testing.T) {
	store := newStore(cart.Entry{ProductID: "p1", Quantity: 2})
	svc := order.NewService(store, newCatalog(), &mockGateway{}, &mockNotifier{})

	placed, err := svc.ConfirmAndPlace(context.Background(), confirmRequest())
	require.NoError(t, err)

	failing := order.NewService(store, newCatalog(), &mockGateway{}, &mockNotifier{sendErr: errors.New("smtp down")})
	err = failing.SendSummary(context.Background(), testCustomerID, placed.Order.ID)
	require.Error(t, err)
}

func TestSendSummary_UnknownOrder(t *testing.T) {
	store := newStore()
	svc := order.NewService(store, newCatalog(), &mockGateway{}, &mockNotifier{})

	err := svc.SendSummary(context.Background(), testCustomerID, "nope")
	require.ErrorIs(t, err, order.ErrNotFound)
}
