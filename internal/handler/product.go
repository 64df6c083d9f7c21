package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/product"
)

type productResponse struct {
	ID               string   `json:"_id"`
	Name             string   `json:"productName"`
	Brand            string   `json:"brandName"`
	Category         string   `json:"category"`
	Subcategory      string   `json:"subcategory"`
	Price            string   `json:"price"`
	ShortDescription []string `json:"shortDescription"`
	LongDescription  string   `json:"longDescription"`
	Image            string   `json:"image"`
}

func productResponseFrom(p *product.Product) productResponse {
	return productResponse{
		ID:               p.ID,
		Name:             p.Name,
		Brand:            p.Brand,
		Category:         p.Category,
		Subcategory:      p.Subcategory,
		Price:            p.Price.String(),
		ShortDescription: p.ShortDescription,
		LongDescription:  p.LongDescription,
		Image:            p.Image,
	}
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	out := make([]productResponse, len(products))
	for i := range products {
		out[i] = productResponseFrom(&products[i])
	}
	c.JSON(http.StatusOK, gin.H{"products": out})
}

func (h *Handler) getProduct(c *gin.Context) {
	p, err := h.products.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": productResponseFrom(p)})
}
