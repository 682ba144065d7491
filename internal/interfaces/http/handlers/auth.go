// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/domain/session"
	"github.com/your-org/pos-backend/internal/interfaces/http/middleware"
	"github.com/your-org/pos-backend/internal/pkg/auth"
)

// AuthHandler handles datastore connection endpoints
type AuthHandler struct {
	session    *session.Session
	jwtManager *auth.JWTManager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sess *session.Session, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		session:    sess,
		jwtManager: jwtManager,
	}
}

// ConnectRequest carries the datastore credential
type ConnectRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
}

// ConnectResponse is returned after a successful connect
type ConnectResponse struct {
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expires_at"`
	Email      string    `json:"email"`
	Categories int       `json:"categories"`
	Sales      int       `json:"sales"`
}

// Connect handles POST /auth/connect
func (h *AuthHandler) Connect(c *gin.Context) {
	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	result, err := h.session.Connect(c.Request.Context(), req.AccessToken)
	if err != nil {
		respondError(c, err)
		return
	}

	token, expiresAt, err := h.jwtManager.GenerateSessionToken(result.SessionID, result.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to issue session token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Connected successfully",
		"data": ConnectResponse{
			Token:      token,
			ExpiresAt:  expiresAt,
			Email:      result.Email,
			Categories: result.Categories,
			Sales:      result.Sales,
		},
	})
}

// Disconnect handles POST /auth/disconnect
func (h *AuthHandler) Disconnect(c *gin.Context) {
	email, _ := middleware.GetCashierEmailFromContext(c)

	if err := h.session.Disconnect(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Disconnected successfully",
		"data":    gin.H{"email": email},
	})
}

// Sync handles POST /sync
func (h *AuthHandler) Sync(c *gin.Context) {
	result, err := h.session.Sync(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Data synchronized successfully",
		"data":    result,
	})
}

// Setup handles POST /setup
func (h *AuthHandler) Setup(c *gin.Context) {
	if err := h.session.SetupSchema(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Datastore configured successfully",
	})
}
