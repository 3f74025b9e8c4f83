package handler

import (
	"net/http"

	"chatbot/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductHandler handles product listing HTTP requests
type ProductHandler struct {
	catalog *service.CatalogClient
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalog *service.CatalogClient) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
	}
}

// List handles GET /api/products/
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.catalog.ListAll(c.Request.Context(), 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, products)
}
