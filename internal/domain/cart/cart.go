// Package cart defines the in-progress product selection for a shopper and
// the repository contract both cart backends implement. Authenticated
// customers get a server-persisted cart; guests get an ephemeral one. The
// backend is selected at the access layer so business logic never branches
// on authentication state.
package cart

import (
	"context"

	"github.com/go-faster/errors"
)

// Sentinel errors for cart operations.
var (
	ErrOwnerNotFound   = errors.New("cart owner not found")
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
)

// Entry is a single (product, quantity) pair in a cart.
type Entry struct {
	ProductID string
	Quantity  int
}

// Repository defines the operations shared by the server-backed and
// guest cart implementations. The ownerID is a customer ID for the
// server cart and an opaque guest token for the ephemeral cart.
type Repository interface {
	Get(ctx context.Context, ownerID string) ([]Entry, error)
	Add(ctx context.Context, ownerID string, e Entry) ([]Entry, error)
	SetQuantity(ctx context.Context, ownerID, productID string, quantity int) ([]Entry, error)
	Remove(ctx context.Context, ownerID, productID string) ([]Entry, error)
	Clear(ctx context.Context, ownerID string) error
}

// Merge folds e into entries: an existing line for the same product has its
// quantity increased, otherwise e is appended. Both implementations share it
// so add semantics cannot drift between backends.
func Merge(entries []Entry, e Entry) []Entry {
	for i := range entries {
		if entries[i].ProductID == e.ProductID {
			entries[i].Quantity += e.Quantity
			return entries
		}
	}
	return append(entries, e)
}
