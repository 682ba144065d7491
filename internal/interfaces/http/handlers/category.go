// internal/interfaces/http/handlers/category.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/domain/session"
)

// CatalogHandler handles the sales screen and catalog endpoints
type CatalogHandler struct {
	session *session.Session
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(sess *session.Session) *CatalogHandler {
	return &CatalogHandler{session: sess}
}

// GetView handles GET /view
func (h *CatalogHandler) GetView(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "View retrieved successfully",
		"data":    h.session.View(),
	})
}

// GetCatalog handles GET /catalog
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Catalog retrieved successfully",
		"data":    h.session.Catalog(),
	})
}

// SelectCategory handles PUT /catalog/category/:id
func (h *CatalogHandler) SelectCategory(c *gin.Context) {
	if err := h.session.SelectCategory(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category selected successfully",
		"data":    h.session.View(),
	})
}
