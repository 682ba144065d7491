// internal/interfaces/http/handlers/payment.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/domain/session"
)

// PaymentHandler handles the cash payment flow
type PaymentHandler struct {
	session *session.Session
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(sess *session.Session) *PaymentHandler {
	return &PaymentHandler{session: sess}
}

// QuoteRequest carries the cash handed over. Exact uses the cart total.
type QuoteRequest struct {
	Received decimal.Decimal `json:"received"`
	Exact    bool            `json:"exact"`
}

// Quote handles POST /payment/quote
func (h *PaymentHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	quote, err := h.session.QuotePayment(req.Received, req.Exact)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment quoted successfully",
		"data":    quote,
	})
}

// Cancel handles DELETE /payment
func (h *PaymentHandler) Cancel(c *gin.Context) {
	h.session.CancelPayment()

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment cancelled",
	})
}

// Confirm handles POST /payment/confirm
func (h *PaymentHandler) Confirm(c *gin.Context) {
	confirmation, err := h.session.Confirm(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Sale recorded successfully",
		"data":    confirmation,
	})
}

// Acknowledge handles POST /payment/acknowledge
func (h *PaymentHandler) Acknowledge(c *gin.Context) {
	if err := h.session.Acknowledge(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ready for the next order",
		"data":    h.session.View(),
	})
}
