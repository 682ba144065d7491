// internal/interfaces/http/handlers/errors.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/domain/cart"
	"github.com/your-org/pos-backend/internal/domain/sale"
	"github.com/your-org/pos-backend/internal/domain/session"
	"github.com/your-org/pos-backend/internal/infrastructure/datastore"
	"github.com/your-org/pos-backend/internal/pkg/auth"
)

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrMissingCredential):
		return http.StatusBadRequest
	case errors.Is(err, datastore.ErrUnauthorized), errors.Is(err, auth.ErrInvalidPIN):
		return http.StatusUnauthorized
	case errors.Is(err, session.ErrUnknownProduct),
		errors.Is(err, session.ErrUnknownCategory),
		errors.Is(err, session.ErrUnknownSide),
		errors.Is(err, session.ErrSaleNotFound),
		errors.Is(err, cart.ErrLineNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrAwaitingAck),
		errors.Is(err, session.ErrNothingToAck),
		errors.Is(err, session.ErrNoPendingProduct),
		errors.Is(err, session.ErrPaymentNotOpen),
		errors.Is(err, session.ErrNotConnected):
		return http.StatusConflict
	case errors.Is(err, sale.ErrEmptyCart), errors.Is(err, sale.ErrInsufficientPayment):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// respondError writes the error body for err
func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{
		"error": err.Error(),
	})
}
