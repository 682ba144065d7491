// internal/interfaces/http/handlers/analytics.go
package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/domain/session"
)

// AnalyticsHandler handles statistics and report endpoints
type AnalyticsHandler struct {
	session *session.Session
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(sess *session.Session) *AnalyticsHandler {
	return &AnalyticsHandler{session: sess}
}

// GetDashboard handles GET /stats
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Statistics retrieved successfully",
		"data":    h.session.Dashboard(),
	})
}

// GetDailyReport handles GET /reports/daily
func (h *AnalyticsHandler) GetDailyReport(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Daily report retrieved successfully",
		"data":    h.session.DailyReport(),
	})
}

// GetTopProducts handles GET /reports/top
func (h *AnalyticsHandler) GetTopProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Top products retrieved successfully",
		"data":    h.session.TopSelling(),
	})
}

// ExportCSV handles GET /export.csv
func (h *AnalyticsHandler) ExportCSV(c *gin.Context) {
	var buf bytes.Buffer
	filename, err := h.session.ExportCSV(&buf)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to export sales",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
