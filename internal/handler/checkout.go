package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/order"
)

type createOrderRequest struct {
	Country string `json:"country" binding:"required"`
}

// createProviderOrder prices the cart and registers a payment intent with the
// provider; the response feeds the client-side payment widget.
func (h *Handler) createProviderOrder(c *gin.Context) {
	claims := mustClaims(c)
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid order payload", err)
		return
	}

	po, err := h.checkout.CreateProviderOrder(c.Request.Context(), claims.CustomerID, req.Country)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"orderId":  po.ProviderOrderID,
		"amount":   po.AmountMinor,
		"currency": po.Currency,
		"receipt":  po.Receipt,
	})
}

type saveCustomerInfoRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Address   string `json:"address" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	PinCode   string `json:"pinCode" binding:"required"`
	Country   string `json:"country" binding:"required"`

	PaymentID       string `json:"razorpay_payment_id" binding:"required"`
	ProviderOrderID string `json:"razorpay_order_id" binding:"required"`
	Signature       string `json:"razorpay_signature" binding:"required"`
	Amount          int64  `json:"amount"`
	Method          string `json:"method"`
}

// saveCustomerInfo is the payment-widget callback: it verifies the provider
// signature and records the order. The name is historical; the frontend has
// called this route since the first release.
func (h *Handler) saveCustomerInfo(c *gin.Context) {
	claims := mustClaims(c)
	var req saveCustomerInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid checkout payload", err)
		return
	}
	ctx := c.Request.Context()

	cust, err := h.customers.GetByID(ctx, claims.CustomerID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if !cust.EmailVerified {
		respondError(c, http.StatusForbidden, "Verify your email before checkout", nil)
		return
	}

	placed, err := h.checkout.ConfirmAndPlace(ctx, order.ConfirmRequest{
		CustomerID: claims.CustomerID,
		Address: order.Address{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Address:   req.Address,
			City:      req.City,
			State:     req.State,
			PinCode:   req.PinCode,
			Country:   req.Country,
		},
		PaymentID:       req.PaymentID,
		ProviderOrderID: req.ProviderOrderID,
		Signature:       req.Signature,
		AmountMinor:     req.Amount,
		Method:          req.Method,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Order placed",
		"order":     orderResponseFrom(placed.Order),
		"emailSent": placed.EmailSent,
	})
}

type sendOrderSummaryRequest struct {
	OrderID string `json:"orderId" binding:"required"`
}

// sendOrderSummary re-sends the receipt email for an existing order. Unlike
// the automatic post-checkout send, a transport failure here surfaces to the
// caller.
func (h *Handler) sendOrderSummary(c *gin.Context) {
	claims := mustClaims(c)
	var req sendOrderSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}

	if err := h.checkout.SendSummary(c.Request.Context(), claims.CustomerID, req.OrderID); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order summary sent"})
}
