package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// forgotPassword mails a reset link. An unknown address is reported as such,
// matching the login error rather than hiding account existence.
func (h *Handler) forgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid email", err)
		return
	}
	ctx := c.Request.Context()

	if _, err := h.customers.GetByEmail(ctx, req.Email); err != nil {
		respondDomainError(c, err)
		return
	}
	if err := h.passwords.Request(ctx, req.Email); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset link sent"})
}

// verifyResetToken lets the reset page check the link before showing the
// form. The token is not consumed.
func (h *Handler) verifyResetToken(c *gin.Context) {
	if err := h.passwords.Verify(c.Request.Context(), c.Param("token")); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Token is valid"})
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

// resetPassword redeems the token and replaces the stored password hash.
func (h *Handler) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Password must be at least 6 characters", err)
		return
	}
	ctx := c.Request.Context()

	email, err := h.passwords.Redeem(ctx, c.Param("token"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if err := h.customers.UpdatePassword(ctx, email, string(hash)); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}
