package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/cart"
	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/product"
)

// guestCartHeader carries the opaque guest cart token. The server issues one
// on the first cart operation without credentials; the client echoes it back
// on later requests.
const guestCartHeader = "X-Guest-Cart-Id"

// cartOwner pairs the resolved cart backend with the key it is addressed by.
type cartOwner struct {
	repo cart.Repository
	id   string
}

// resolveCartOwner picks the server-backed cart for authenticated customers
// and the ephemeral guest cart otherwise. Business logic never branches on
// authentication state past this point.
func (h *Handler) resolveCartOwner(c *gin.Context) cartOwner {
	if claims, err := h.bearerClaims(c); err == nil {
		return cartOwner{repo: h.serverCarts, id: claims.CustomerID}
	}

	token := c.GetHeader(guestCartHeader)
	if token == "" {
		token = uuid.New().String()
	}
	c.Header(guestCartHeader, token)
	return cartOwner{repo: h.guestCarts, id: token}
}

type cartLineResponse struct {
	ProductID string           `json:"product"`
	Quantity  int              `json:"quantity"`
	Details   *productResponse `json:"details,omitempty"`
}

// cartJSON renders cart entries with the matching catalog details populated.
// Lines whose product has been removed from the catalog are rendered without
// details rather than dropped.
func (h *Handler) cartJSON(c *gin.Context, entries []cart.Entry) {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ProductID
	}

	byID := map[string]product.Product{}
	if len(ids) > 0 {
		products, err := h.products.GetByIDs(c.Request.Context(), ids)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		for _, p := range products {
			byID[p.ID] = p
		}
	}

	out := make([]cartLineResponse, len(entries))
	for i, e := range entries {
		out[i] = cartLineResponse{ProductID: e.ProductID, Quantity: e.Quantity}
		if p, ok := byID[e.ProductID]; ok {
			resp := productResponseFrom(&p)
			out[i].Details = &resp
		}
	}
	c.JSON(http.StatusOK, gin.H{"cart": out})
}

func (h *Handler) getCart(c *gin.Context) {
	owner := h.resolveCartOwner(c)
	entries, err := owner.repo.Get(c.Request.Context(), owner.id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	h.cartJSON(c, entries)
}

type cartLineRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

func (h *Handler) addToCart(c *gin.Context) {
	var req cartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid cart payload", err)
		return
	}
	ctx := c.Request.Context()

	// Reject references to products that do not exist so a stale client
	// cannot grow a cart that will fail at checkout.
	if _, err := h.products.GetByID(ctx, req.ProductID); err != nil {
		respondDomainError(c, err)
		return
	}

	owner := h.resolveCartOwner(c)
	entries, err := owner.repo.Add(ctx, owner.id, cart.Entry{ProductID: req.ProductID, Quantity: req.Quantity})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	h.cartJSON(c, entries)
}

type updateCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) updateCart(c *gin.Context) {
	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid cart payload", err)
		return
	}

	owner := h.resolveCartOwner(c)
	entries, err := owner.repo.SetQuantity(c.Request.Context(), owner.id, req.ProductID, req.Quantity)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	h.cartJSON(c, entries)
}

type removeFromCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

func (h *Handler) removeFromCart(c *gin.Context) {
	var req removeFromCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid cart payload", err)
		return
	}

	owner := h.resolveCartOwner(c)
	entries, err := owner.repo.Remove(c.Request.Context(), owner.id, req.ProductID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	h.cartJSON(c, entries)
}

// clearCart empties the cart and nothing else. Checkout clears the cart as
// part of its own atomic write and does not go through this route.
func (h *Handler) clearCart(c *gin.Context) {
	owner := h.resolveCartOwner(c)
	if err := owner.repo.Clear(c.Request.Context(), owner.id); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
