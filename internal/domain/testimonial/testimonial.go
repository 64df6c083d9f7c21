package testimonial

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a requested testimonial does not exist.
var ErrNotFound = errors.New("testimonial not found")

// Testimonial is a customer quote shown on the storefront.
type Testimonial struct {
	ID        string
	Stars     int
	Text      string
	Name      string
	Company   string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository defines persistence operations for testimonials.
type Repository interface {
	List(ctx context.Context) ([]Testimonial, error)
	Create(ctx context.Context, t *Testimonial) error
	Update(ctx context.Context, t *Testimonial) error
	Delete(ctx context.Context, id string) error
}
