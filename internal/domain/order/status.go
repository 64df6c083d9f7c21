package order

import (
	"fmt"

	"github.com/go-faster/errors"
)

// Status is the lifecycle state of an order.
type Status string

// Order lifecycle states. Orders are created in StatusProcessing (payment is
// already confirmed by the time an order exists); StatusPending is kept for
// records imported from earlier systems that created orders before payment.
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// ErrUnknownStatus is returned when a status string is not part of the
// enumeration.
var ErrUnknownStatus = errors.New("unknown order status")

// transitions is the set of legal status changes. Delivered and cancelled
// are terminal.
var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// ParseStatus validates a status string against the enumeration.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := transitions[st]; !ok {
		return "", errors.Wrapf(ErrUnknownStatus, "%q", s)
	}
	return st, nil
}

// InvalidTransitionError indicates a status change that the lifecycle does
// not allow.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change order status from %s to %s", e.From, e.To)
}

// CanTransition reports whether the lifecycle allows moving from s to next.
// A no-op transition (same status) is allowed.
func (s Status) CanTransition(next Status) bool {
	if s == next {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition validates a status change and returns a typed error when the
// lifecycle forbids it.
func (s Status) Transition(next Status) error {
	if _, ok := transitions[next]; !ok {
		return errors.Wrapf(ErrUnknownStatus, "%q", next)
	}
	if !s.CanTransition(next) {
		return &InvalidTransitionError{From: s, To: next}
	}
	return nil
}
