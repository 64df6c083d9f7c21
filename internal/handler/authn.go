package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/customer"
)

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid registration payload", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Something went wrong", err)
		return
	}

	cust := &customer.Customer{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         customer.RoleCustomer,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}
	if err := h.customers.Create(c.Request.Context(), cust); err != nil {
		respondDomainError(c, err)
		return
	}

	token, err := h.issueToken(cust)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Something went wrong", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Registration successful",
		"token":    token,
		"customer": customerResponseFrom(cust),
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	h.loginAs(c, "")
}

// adminLogin is the dashboard sign-in; it rejects non-admin accounts so a
// leaked customer credential cannot open the admin surface.
func (h *Handler) adminLogin(c *gin.Context) {
	h.loginAs(c, customer.RoleAdmin)
}

func (h *Handler) loginAs(c *gin.Context, requiredRole string) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid login payload", err)
		return
	}

	cust, err := h.customers.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			respondError(c, http.StatusUnauthorized, "Invalid email or password", nil)
			return
		}
		respondDomainError(c, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cust.PasswordHash), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}
	if requiredRole != "" && cust.Role != requiredRole {
		respondError(c, http.StatusForbidden, "Admin access required", nil)
		return
	}

	token, err := h.issueToken(cust)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Something went wrong", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful",
		"token":    token,
		"customer": customerResponseFrom(cust),
	})
}

type sendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *Handler) sendOTP(c *gin.Context) {
	var req sendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid email", err)
		return
	}
	if err := h.otp.Send(c.Request.Context(), req.Email); err != nil {
		respondError(c, http.StatusBadGateway, "Could not send verification code", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

func (h *Handler) verifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid verification payload", err)
		return
	}
	ctx := c.Request.Context()
	if err := h.otp.Verify(ctx, req.Email, req.Code); err != nil {
		respondDomainError(c, err)
		return
	}
	if err := h.customers.SetEmailVerified(ctx, req.Email); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email verified"})
}
