package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/customer"
	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/order"
)

type customerResponse struct {
	ID            string `json:"_id"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"emailVerified"`
	FirstName     string `json:"firstName,omitempty"`
	LastName      string `json:"lastName,omitempty"`
	Address       string `json:"address,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	PinCode       string `json:"pinCode,omitempty"`
	Country       string `json:"country,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
}

func customerResponseFrom(c *customer.Customer) customerResponse {
	resp := customerResponse{
		ID:            c.ID,
		Email:         c.Email,
		Role:          c.Role,
		EmailVerified: c.EmailVerified,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		Address:       c.Address,
		City:          c.City,
		State:         c.State,
		PinCode:       c.PinCode,
		Country:       c.Country,
	}
	if !c.CreatedAt.IsZero() {
		resp.CreatedAt = c.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

type orderItemResponse struct {
	ProductID string `json:"product"`
	Name      string `json:"productName"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	Image     string `json:"image,omitempty"`
}

type paymentResponse struct {
	PaymentID       string `json:"paymentId"`
	ProviderOrderID string `json:"orderId"`
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
	Status          string `json:"status"`
	Method          string `json:"method"`
	PaidAt          string `json:"paymentDate"`
}

type orderResponse struct {
	ID           string              `json:"_id"`
	Items        []orderItemResponse `json:"items"`
	TotalPrice   string              `json:"totalPrice"`
	ShippingCost string              `json:"shippingCost"`
	Country      string              `json:"country"`
	Status       string              `json:"status"`
	CreatedAt    string              `json:"orderDate"`
	Payment      paymentResponse     `json:"paymentDetails"`
}

func orderResponseFrom(o *order.Order) orderResponse {
	items := make([]orderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = orderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.UnitPrice.String(),
			Image:     it.Image,
		}
	}
	return orderResponse{
		ID:           o.ID,
		Items:        items,
		TotalPrice:   o.TotalPrice.String(),
		ShippingCost: o.ShippingCost.String(),
		Country:      o.Country,
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt.Format(time.RFC3339),
		Payment: paymentResponse{
			PaymentID:       o.Payment.PaymentID,
			ProviderOrderID: o.Payment.ProviderOrderID,
			Amount:          o.Payment.Amount.String(),
			Currency:        o.Payment.Currency,
			Status:          o.Payment.Status,
			Method:          o.Payment.Method,
			PaidAt:          o.Payment.PaidAt.Format(time.RFC3339),
		},
	}
}

func (h *Handler) getProfile(c *gin.Context) {
	claims := mustClaims(c)
	id := c.Param("id")
	if id != claims.CustomerID && claims.Role != customer.RoleAdmin {
		respondError(c, http.StatusForbidden, "Cannot read another customer's profile", nil)
		return
	}
	cust, err := h.customers.GetByID(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customerResponseFrom(cust)})
}

type profileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	PinCode   string `json:"pinCode"`
	Country   string `json:"country"`
}

func (h *Handler) updateProfile(c *gin.Context) {
	claims := mustClaims(c)
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid profile payload", err)
		return
	}

	cust, err := h.customers.UpdateProfile(c.Request.Context(), claims.CustomerID, customer.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		PinCode:   req.PinCode,
		Country:   req.Country,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Profile updated",
		"customer": customerResponseFrom(cust),
	})
}

// orderHistory returns the customer's own orders. The path carries the
// customer ID for compatibility with the deployed frontend, but the token
// decides whose history is visible: a customer can only read their own,
// admins can read anyone's.
func (h *Handler) orderHistory(c *gin.Context) {
	claims := mustClaims(c)
	id := c.Param("id")
	if id != claims.CustomerID && claims.Role != customer.RoleAdmin {
		respondError(c, http.StatusForbidden, "Cannot read another customer's orders", nil)
		return
	}

	history, err := h.customers.OrderHistory(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	out := make([]orderResponse, len(history))
	for i := range history {
		out[i] = orderResponseFrom(&history[i])
	}
	c.JSON(http.StatusOK, gin.H{"orderHistory": out})
}
