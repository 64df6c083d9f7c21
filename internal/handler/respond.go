package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/cart"
	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/contact"
	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/customer"
	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/order"
	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/product"
	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/testimonial"
	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/otp"
	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/passreset"
)

// errorResponse is the error payload every route returns. The frontend
// surfaces the message field in toast notifications.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func respondError(c *gin.Context, status int, message string, err error) {
	detail := message
	if err != nil {
		detail = err.Error()
	}
	c.AbortWithStatusJSON(status, errorResponse{Message: message, Error: detail})
}

// respondDomainError maps a domain error onto the status code and message the
// frontend expects. Unrecognized errors become a 500.
func respondDomainError(c *gin.Context, err error) {
	var invalid *order.InvalidTransitionError

	switch {
	case errors.Is(err, customer.ErrNotFound):
		respondError(c, http.StatusNotFound, "Customer not found", err)
	case errors.Is(err, product.ErrNotFound):
		respondError(c, http.StatusNotFound, "Product not found", err)
	case errors.Is(err, order.ErrNotFound):
		respondError(c, http.StatusNotFound, "Order not found", err)
	case errors.Is(err, testimonial.ErrNotFound):
		respondError(c, http.StatusNotFound, "Testimonial not found", err)
	case errors.Is(err, contact.ErrNotFound):
		respondError(c, http.StatusNotFound, "Message not found", err)
	case errors.Is(err, cart.ErrOwnerNotFound):
		respondError(c, http.StatusNotFound, "Cart not found", err)
	case errors.Is(err, cart.ErrInvalidQuantity):
		respondError(c, http.StatusBadRequest, "Quantity must be at least 1", err)
	case errors.Is(err, customer.ErrEmailTaken):
		respondError(c, http.StatusConflict, "Email already registered", err)
	case errors.Is(err, order.ErrEmptyCart):
		respondError(c, http.StatusBadRequest, "Cart is empty", err)
	case errors.Is(err, order.ErrPaymentVerificationFailed):
		respondError(c, http.StatusBadRequest, "Payment verification failed", err)
	case errors.Is(err, order.ErrUnknownStatus):
		respondError(c, http.StatusBadRequest, "Unknown order status", err)
	case errors.Is(err, order.ErrStatusConflict):
		respondError(c, http.StatusConflict, "Order status changed, please retry", err)
	case errors.As(err, &invalid):
		respondError(c, http.StatusConflict, invalid.Error(), err)
	case errors.Is(err, otp.ErrCodeMismatch):
		respondError(c, http.StatusBadRequest, "Invalid verification code", err)
	case errors.Is(err, otp.ErrCodeExpired):
		respondError(c, http.StatusBadRequest, "Verification code expired", err)
	case errors.Is(err, passreset.ErrTokenInvalid):
		respondError(c, http.StatusBadRequest, "Invalid or expired token", err)
	default:
		respondError(c, http.StatusInternalServerError, "Something went wrong", err)
	}
}
