package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/testimonial"
)

type testimonialResponse struct {
	ID        string `json:"_id"`
	Stars     int    `json:"stars"`
	Text      string `json:"text"`
	Name      string `json:"name"`
	Company   string `json:"company,omitempty"`
	Image     string `json:"image,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func testimonialResponseFrom(t *testimonial.Testimonial) testimonialResponse {
	return testimonialResponse{
		ID:        t.ID,
		Stars:     t.Stars,
		Text:      t.Text,
		Name:      t.Name,
		Company:   t.Company,
		Image:     t.Image,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
		UpdatedAt: t.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) listTestimonials(c *gin.Context) {
	testimonials, err := h.testimonials.List(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	out := make([]testimonialResponse, len(testimonials))
	for i := range testimonials {
		out[i] = testimonialResponseFrom(&testimonials[i])
	}
	c.JSON(http.StatusOK, gin.H{"testimonials": out})
}
