// Package memory holds the ephemeral storage backends. Guest carts live
// here: they mirror the browser-local cart of unauthenticated visitors and
// are lost on restart, which matches their local-storage lifetime.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/cart"
)

// Compile-time check ensuring GuestCartRepository satisfies cart.Repository.
var _ cart.Repository = (*GuestCartRepository)(nil)

// guestCart tracks one guest's entries and its last touch time for eviction.
type guestCart struct {
	entries []cart.Entry
	touched time.Time
}

// GuestCartRepository is an in-memory cart.Repository keyed by an opaque
// guest token. Idle carts are evicted after the configured TTL.
type GuestCartRepository struct {
	ttl   time.Duration
	mu    sync.Mutex
	carts map[string]*guestCart
}

// NewGuestCartRepository creates a repository and starts a background
// goroutine that evicts idle carts. The goroutine stops when ctx is
// cancelled.
func NewGuestCartRepository(ctx context.Context, ttl time.Duration) *GuestCartRepository {
	r := &GuestCartRepository{
		ttl:   ttl,
		carts: make(map[string]*guestCart),
	}
	go r.evictLoop(ctx)
	return r
}

func (r *GuestCartRepository) evictLoop(ctx context.Context) {
	ticker := time.NewTicker(r.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.evict(now)
		}
	}
}

func (r *GuestCartRepository) evict(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, c := range r.carts {
		if now.Sub(c.touched) >= r.ttl {
			delete(r.carts, token)
		}
	}
}

// get returns the cart for token, creating it when create is set.
// Caller must hold r.mu.
func (r *GuestCartRepository) get(token string, create bool) *guestCart {
	c, ok := r.carts[token]
	if !ok {
		if !create {
			return nil
		}
		c = &guestCart{}
		r.carts[token] = c
	}
	c.touched = time.Now()
	return c
}

// Get returns the guest's entries. An unknown token is an empty cart, not an
// error: the token is minted client-side before the first add.
func (r *GuestCartRepository) Get(_ context.Context, ownerID string) ([]cart.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.get(ownerID, false)
	if c == nil {
		return nil, nil
	}
	return append([]cart.Entry(nil), c.entries...), nil
}

// Add merges e into the guest's cart.
func (r *GuestCartRepository) Add(_ context.Context, ownerID string, e cart.Entry) ([]cart.Entry, error) {
	if e.Quantity < 1 {
		return nil, cart.ErrInvalidQuantity
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.get(ownerID, true)
	c.entries = cart.Merge(c.entries, e)
	return append([]cart.Entry(nil), c.entries...), nil
}

// SetQuantity replaces the quantity of a line; a non-positive quantity
// removes it.
func (r *GuestCartRepository) SetQuantity(_ context.Context, ownerID, productID string, quantity int) ([]cart.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.get(ownerID, true)
	for i := range c.entries {
		if c.entries[i].ProductID != productID {
			continue
		}
		if quantity > 0 {
			c.entries[i].Quantity = quantity
		} else {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
		}
		break
	}
	return append([]cart.Entry(nil), c.entries...), nil
}

// Remove deletes a line from the guest's cart.
func (r *GuestCartRepository) Remove(_ context.Context, ownerID, productID string) ([]cart.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.get(ownerID, true)
	for i := range c.entries {
		if c.entries[i].ProductID == productID {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			break
		}
	}
	return append([]cart.Entry(nil), c.entries...), nil
}

// Clear drops the guest's cart entirely.
func (r *GuestCartRepository) Clear(_ context.Context, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, ownerID)
	return nil
}
