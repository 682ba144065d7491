// internal/interfaces/http/handlers/invoice.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-backend/internal/domain/session"
	"github.com/your-org/pos-backend/internal/pkg/pdf"
)

// TicketHandler serves sale receipts
type TicketHandler struct {
	session    *session.Session
	pdfService *pdf.Service
	logger     *logrus.Logger
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(sess *session.Session, pdfService *pdf.Service, logger *logrus.Logger) *TicketHandler {
	return &TicketHandler{
		session:    sess,
		pdfService: pdfService,
		logger:     logger,
	}
}

// GetTicket handles GET /tickets/:order. With ?format=pdf the receipt is
// rendered as a PDF download.
func (h *TicketHandler) GetTicket(c *gin.Context) {
	orderNumber, err := strconv.Atoi(strings.TrimPrefix(c.Param("order"), "#"))
	if err != nil || orderNumber <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order number",
		})
		return
	}

	ticket, err := h.session.Ticket(orderNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	if c.Query("format") != "pdf" {
		c.JSON(http.StatusOK, gin.H{
			"message": "Ticket retrieved successfully",
			"data":    ticket,
		})
		return
	}

	buf, err := h.pdfService.GenerateTicket(ticket)
	if err != nil {
		h.logger.WithError(err).WithField("order_number", orderNumber).Error("Failed to generate ticket PDF")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate ticket PDF",
		})
		return
	}

	filename := fmt.Sprintf("ticket_%04d.pdf", orderNumber)
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", strconv.Itoa(buf.Len()))

	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
