package handler

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/order"
	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/product"
	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/testimonial"
)

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// updateOrderStatus moves an order through its lifecycle. Illegal transitions
// are rejected with a typed error instead of silently overwriting the field.
func (h *Handler) updateOrderStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid status payload", err)
		return
	}
	ctx := c.Request.Context()
	orderID := c.Param("id")

	next, err := order.ParseStatus(req.Status)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	o, _, err := h.customers.FindOrder(ctx, orderID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if err := o.Status.Transition(next); err != nil {
		respondDomainError(c, err)
		return
	}
	if err := h.customers.UpdateOrderStatus(ctx, orderID, o.Status, next); err != nil {
		respondDomainError(c, err)
		return
	}

	o.Status = next
	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated",
		"order":   orderResponseFrom(o),
	})
}

// listOrders flattens every customer's history for the dashboard.
func (h *Handler) listOrders(c *gin.Context) {
	customers, err := h.customers.List(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	type adminOrder struct {
		orderResponse
		CustomerID    string `json:"customerId"`
		CustomerEmail string `json:"customerEmail"`
	}
	out := []adminOrder{}
	for i := range customers {
		cust := &customers[i]
		for j := range cust.OrderHistory {
			out = append(out, adminOrder{
				orderResponse: orderResponseFrom(&cust.OrderHistory[j]),
				CustomerID:    cust.ID,
				CustomerEmail: cust.Email,
			})
		}
	}
	c.JSON(http.StatusOK, gin.H{"orders": out})
}

func (h *Handler) listCustomers(c *gin.Context) {
	customers, err := h.customers.List(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	out := make([]customerResponse, len(customers))
	for i := range customers {
		out[i] = customerResponseFrom(&customers[i])
	}
	c.JSON(http.StatusOK, gin.H{"customers": out})
}

// saveImage stores an optional multipart image under a fresh name and
// returns its public URL. A request without a file returns "".
func (h *Handler) saveImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", err
	}

	name := uuid.New().String() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, name)); err != nil {
		return "", err
	}
	return h.imageBaseURL + "/images/" + name, nil
}

type productForm struct {
	Name             string   `validate:"required"`
	Brand            string   `validate:"required"`
	Category         string   `validate:"required"`
	Subcategory      string   `validate:"required"`
	Price            string   `validate:"required"`
	ShortDescription []string `validate:"omitempty,dive,required"`
	LongDescription  string
}

func productFormFrom(c *gin.Context) productForm {
	return productForm{
		Name:             c.PostForm("productName"),
		Brand:            c.PostForm("brandName"),
		Category:         c.PostForm("category"),
		Subcategory:      c.PostForm("subcategory"),
		Price:            c.PostForm("price"),
		ShortDescription: dropBlank(c.PostFormArray("shortDescription")),
		LongDescription:  c.PostForm("longDescription"),
	}
}

// dropBlank removes empty entries. The dashboard form submits one field per
// bullet row, including rows left blank.
func dropBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func (h *Handler) createProduct(c *gin.Context) {
	form := productFormFrom(c)
	if err := h.validate.Struct(form); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product payload", err)
		return
	}
	price, err := decimal.NewFromString(form.Price)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid price", err)
		return
	}
	image, err := h.saveImage(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Could not store image", err)
		return
	}

	p := &product.Product{
		Name:             form.Name,
		Brand:            form.Brand,
		Category:         form.Category,
		Subcategory:      form.Subcategory,
		Price:            price,
		ShortDescription: form.ShortDescription,
		LongDescription:  form.LongDescription,
		Image:            image,
	}
	if err := h.products.Create(c.Request.Context(), p); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": productResponseFrom(p)})
}

func (h *Handler) updateProduct(c *gin.Context) {
	form := productFormFrom(c)
	if err := h.validate.Struct(form); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product payload", err)
		return
	}
	price, err := decimal.NewFromString(form.Price)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid price", err)
		return
	}
	image, err := h.saveImage(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Could not store image", err)
		return
	}

	p := &product.Product{
		ID:               c.Param("id"),
		Name:             form.Name,
		Brand:            form.Brand,
		Category:         form.Category,
		Subcategory:      form.Subcategory,
		Price:            price,
		ShortDescription: form.ShortDescription,
		LongDescription:  form.LongDescription,
		Image:            image,
	}
	if err := h.products.Update(c.Request.Context(), p); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

func (h *Handler) deleteProduct(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

type testimonialForm struct {
	Stars   string `validate:"required"`
	Text    string `validate:"required"`
	Name    string `validate:"required"`
	Company string
}

func testimonialFormFrom(c *gin.Context) testimonialForm {
	return testimonialForm{
		Stars:   c.PostForm("stars"),
		Text:    c.PostForm("text"),
		Name:    c.PostForm("name"),
		Company: c.PostForm("company"),
	}
}

func parseStars(s string) (int, error) {
	stars, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if stars < 1 || stars > 5 {
		return 0, strconv.ErrRange
	}
	return stars, nil
}

func (h *Handler) createTestimonial(c *gin.Context) {
	form := testimonialFormFrom(c)
	if err := h.validate.Struct(form); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid testimonial payload", err)
		return
	}
	stars, err := parseStars(form.Stars)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Stars must be between 1 and 5", err)
		return
	}
	image, err := h.saveImage(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Could not store image", err)
		return
	}

	t := &testimonial.Testimonial{
		Stars:   stars,
		Text:    form.Text,
		Name:    form.Name,
		Company: form.Company,
		Image:   image,
	}
	if err := h.testimonials.Create(c.Request.Context(), t); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"testimonial": testimonialResponseFrom(t)})
}

func (h *Handler) updateTestimonial(c *gin.Context) {
	form := testimonialFormFrom(c)
	if err := h.validate.Struct(form); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid testimonial payload", err)
		return
	}
	stars, err := parseStars(form.Stars)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Stars must be between 1 and 5", err)
		return
	}
	image, err := h.saveImage(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Could not store image", err)
		return
	}

	t := &testimonial.Testimonial{
		ID:      c.Param("id"),
		Stars:   stars,
		Text:    form.Text,
		Name:    form.Name,
		Company: form.Company,
		Image:   image,
	}
	if err := h.testimonials.Update(c.Request.Context(), t); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Testimonial updated"})
}

func (h *Handler) deleteTestimonial(c *gin.Context) {
	if err := h.testimonials.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Testimonial deleted"})
}
