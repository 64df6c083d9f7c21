// Package customer defines the customer aggregate: profile, credentials,
// server-side cart, and the embedded order history the customer exclusively
// owns.
package customer

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/cart"
	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/order"
)

// Sentinel errors for customer persistence.
var (
	ErrNotFound   = errors.New("customer not found")
	ErrEmailTaken = errors.New("email already registered")
)

// Roles for access control. Admin accounts are ordinary customer documents
// with an elevated role.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Customer is the aggregate root owning the cart and the order history.
type Customer struct {
	ID            string
	Email         string
	PasswordHash  string
	Role          string
	EmailVerified bool

	FirstName string
	LastName  string
	Address   string
	City      string
	State     string
	PinCode   string
	Country   string

	Cart         []cart.Entry
	Wishlist     []string
	OrderHistory []order.Order

	CreatedAt time.Time
}

// Name returns the customer's display name.
func (c *Customer) Name() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// ProfileUpdate carries the mutable profile fields. Empty fields are left
// unchanged, matching the storefront's partial-update semantics.
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Address   string
	City      string
	State     string
	PinCode   string
	Country   string
}

// Repository defines persistence operations for customers and their
// embedded order history.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id string) (*Customer, error)
	GetByEmail(ctx context.Context, email string) (*Customer, error)
	UpdateProfile(ctx context.Context, id string, u ProfileUpdate) (*Customer, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
	SetEmailVerified(ctx context.Context, email string) error
	List(ctx context.Context) ([]Customer, error)

	// Wishlist returns the product IDs the customer saved for later.
	Wishlist(ctx context.Context, id string) ([]string, error)
	// WishlistAdd saves a product; adding one already present is a no-op.
	WishlistAdd(ctx context.Context, id, productID string) error
	WishlistRemove(ctx context.Context, id, productID string) error

	OrderHistory(ctx context.Context, id string) ([]order.Order, error)
	// FindOrder locates an order by its ID across all customers and returns
	// it with the owning customer's ID.
	FindOrder(ctx context.Context, orderID string) (*order.Order, string, error)
	// UpdateOrderStatus conditionally moves an order from one status to
	// another. It returns order.ErrNotFound for an unknown order and
	// order.ErrStatusConflict when the order exists but its status is no
	// longer from, which covers a concurrent status change.
	UpdateOrderStatus(ctx context.Context, orderID string, from, to order.Status) error
}
