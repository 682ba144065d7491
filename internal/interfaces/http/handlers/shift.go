// internal/interfaces/http/handlers/shift.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/domain/session"
)

// ShiftHandler handles shift close
type ShiftHandler struct {
	session *session.Session
}

// NewShiftHandler creates a new shift handler
func NewShiftHandler(sess *session.Session) *ShiftHandler {
	return &ShiftHandler{session: sess}
}

// CloseShiftRequest carries the supervisor PIN
type CloseShiftRequest struct {
	PIN string `json:"pin"`
}

// CloseShift handles POST /shift/close
func (h *ShiftHandler) CloseShift(c *gin.Context) {
	var req CloseShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	closure, err := h.session.CloseShift(c.Request.Context(), req.PIN)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shift closed successfully",
		"data":    closure,
	})
}
