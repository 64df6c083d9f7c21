package contact

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a requested message does not exist.
var ErrNotFound = errors.New("contact message not found")

// Message is a storefront contact-form submission, reviewed from the admin
// dashboard.
type Message struct {
	ID        string
	Name      string
	Email     string
	Subject   string
	Body      string
	CreatedAt time.Time
}

// Repository defines persistence operations for contact messages.
type Repository interface {
	Create(ctx context.Context, m *Message) error
	List(ctx context.Context) ([]Message, error)
	Delete(ctx context.Context, id string) error
}
