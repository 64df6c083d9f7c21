package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/customer"
)

// The wishlist API keeps the frontend's "whitelist" naming, both in the
// routes and in the response payload.

type wishlistRequest struct {
	CustomerID string `json:"customerId" binding:"required"`
	ProductID  string `json:"productId" binding:"required"`
}

type wishlistItem struct {
	Product productResponse `json:"product"`
}

// wishlistJSON responds with the customer's wishlist populated from the
// catalog. Products deleted since being saved are silently dropped.
func (h *Handler) wishlistJSON(c *gin.Context, customerID string) {
	ctx := c.Request.Context()
	ids, err := h.customers.Wishlist(ctx, customerID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	items := []wishlistItem{}
	if len(ids) > 0 {
		products, err := h.products.GetByIDs(ctx, ids)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		for i := range products {
			items = append(items, wishlistItem{Product: productResponseFrom(&products[i])})
		}
	}
	c.JSON(http.StatusOK, gin.H{"whitelist": items})
}

// wishlistOwner authorizes the request: customers touch only their own
// wishlist, admins any.
func (h *Handler) wishlistOwner(c *gin.Context, customerID string) bool {
	claims := mustClaims(c)
	if claims.CustomerID != customerID && claims.Role != customer.RoleAdmin {
		respondError(c, http.StatusForbidden, "Access denied", nil)
		return false
	}
	return true
}

func (h *Handler) addToWishlist(c *gin.Context) {
	var req wishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid wishlist payload", err)
		return
	}
	if !h.wishlistOwner(c, req.CustomerID) {
		return
	}
	ctx := c.Request.Context()

	if _, err := h.products.GetByID(ctx, req.ProductID); err != nil {
		respondDomainError(c, err)
		return
	}
	if err := h.customers.WishlistAdd(ctx, req.CustomerID, req.ProductID); err != nil {
		respondDomainError(c, err)
		return
	}
	h.wishlistJSON(c, req.CustomerID)
}

func (h *Handler) removeFromWishlist(c *gin.Context) {
	var req wishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid wishlist payload", err)
		return
	}
	if !h.wishlistOwner(c, req.CustomerID) {
		return
	}
	if err := h.customers.WishlistRemove(c.Request.Context(), req.CustomerID, req.ProductID); err != nil {
		respondDomainError(c, err)
		return
	}
	h.wishlistJSON(c, req.CustomerID)
}

func (h *Handler) getWishlist(c *gin.Context) {
	customerID := c.Param("customerId")
	if !h.wishlistOwner(c, customerID) {
		return
	}
	h.wishlistJSON(c, customerID)
}
