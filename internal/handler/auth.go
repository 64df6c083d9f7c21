package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/golang-jwt/jwt/v5"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/customer"
)

const tokenTTL = 24 * time.Hour

// claimsKey is the gin context key the auth middleware stores claims under.
const claimsKey = "auth.claims"

type authClaims struct {
	CustomerID string `json:"customerId"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

func (h *Handler) issueToken(c *customer.Customer) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, authClaims{
		CustomerID: c.ID,
		Role:       c.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	})
	return token.SignedString(h.jwtSecret)
}

// parseToken validates a bearer token and returns its claims.
func (h *Handler) parseToken(raw string) (*authClaims, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return h.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// bearerClaims extracts and validates the Authorization header, if present.
func (h *Handler) bearerClaims(c *gin.Context) (*authClaims, error) {
	header := c.GetHeader("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return nil, errors.New("missing bearer token")
	}
	return h.parseToken(raw)
}

// customerAuth requires a valid bearer token and stores its claims on the
// request context.
func (h *Handler) customerAuth(c *gin.Context) {
	claims, err := h.bearerClaims(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Authentication required", err)
		return
	}
	c.Set(claimsKey, claims)
	c.Next()
}

// adminOnly requires the authenticated account to carry the admin role. It
// must run after customerAuth.
func (h *Handler) adminOnly(c *gin.Context) {
	claims := mustClaims(c)
	if claims.Role != customer.RoleAdmin {
		respondError(c, http.StatusForbidden, "Admin access required", nil)
		return
	}
	c.Next()
}

func mustClaims(c *gin.Context) *authClaims {
	return c.MustGet(claimsKey).(*authClaims)
}
