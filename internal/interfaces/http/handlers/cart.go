// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/domain/session"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	session *session.Session
}

// NewCartHandler creates a new cart handler
func NewCartHandler(sess *session.Session) *CartHandler {
	return &CartHandler{session: sess}
}

// AdjustLineRequest changes a line quantity by Delta. Zero is accepted and
// leaves the line as is.
type AdjustLineRequest struct {
	Delta *int `json:"delta" binding:"required"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    h.session.View().Cart,
	})
}

// AddProduct handles POST /cart/products/:id
func (h *CartHandler) AddProduct(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	result, err := h.session.SelectProduct(productID)
	if err != nil {
		respondError(c, err)
		return
	}

	if result.Pending {
		c.JSON(http.StatusAccepted, gin.H{
			"message": "Choose a side for this product",
			"data":    h.session.View(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product added to cart successfully",
		"data":    h.session.View(),
	})
}

// ChooseSide handles POST /cart/side/:id
func (h *CartHandler) ChooseSide(c *gin.Context) {
	sideID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid side ID",
		})
		return
	}

	if _, err := h.session.SelectSide(sideID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product added to cart successfully",
		"data":    h.session.View(),
	})
}

// CancelSide handles DELETE /cart/side
func (h *CartHandler) CancelSide(c *gin.Context) {
	h.session.CancelSide()

	c.JSON(http.StatusOK, gin.H{
		"message": "Side selection cancelled",
		"data":    h.session.View(),
	})
}

// AdjustLine handles PATCH /cart/lines/:key
func (h *CartHandler) AdjustLine(c *gin.Context) {
	var req AdjustLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.session.AdjustLine(c.Param("key"), *req.Delta); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated successfully",
		"data":    h.session.View().Cart,
	})
}

// RemoveLine handles DELETE /cart/lines/:key
func (h *CartHandler) RemoveLine(c *gin.Context) {
	if err := h.session.RemoveLine(c.Param("key")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    h.session.View().Cart,
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.session.ClearCart(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    h.session.View().Cart,
	})
}
