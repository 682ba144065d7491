// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-backend/internal/domain/session"
	"github.com/your-org/pos-backend/internal/interfaces/http/handlers"
	"github.com/your-org/pos-backend/internal/interfaces/http/middleware"
	"github.com/your-org/pos-backend/internal/pkg/auth"
	"github.com/your-org/pos-backend/internal/pkg/pdf"
)

// Deps are the services shared by all route groups
type Deps struct {
	Session    *session.Session
	JWTManager *auth.JWTManager
	PDF        *pdf.Service
	Logger     *logrus.Logger
}

// SetupConnectionRoutes sets up datastore connection routes. Everything
// except connect requires the token of the live session.
func SetupConnectionRoutes(rg *gin.RouterGroup, d Deps) {
	authHandler := handlers.NewAuthHandler(d.Session, d.JWTManager)

	rg.POST("/auth/connect", authHandler.Connect)

	protected := rg.Group("")
	protected.Use(middleware.SessionAuth(d.JWTManager, d.Session))
	{
		protected.POST("/auth/disconnect", authHandler.Disconnect)
		protected.POST("/sync", authHandler.Sync)
		protected.POST("/setup", authHandler.Setup)
	}
}

// SetupSalesRoutes sets up catalog, cart and payment routes. They work
// offline so no token is required.
func SetupSalesRoutes(rg *gin.RouterGroup, d Deps) {
	catalogHandler := handlers.NewCatalogHandler(d.Session)
	cartHandler := handlers.NewCartHandler(d.Session)
	paymentHandler := handlers.NewPaymentHandler(d.Session)
	ticketHandler := handlers.NewTicketHandler(d.Session, d.PDF, d.Logger)

	rg.GET("/view", catalogHandler.GetView)
	rg.GET("/catalog", catalogHandler.GetCatalog)
	rg.PUT("/catalog/category/:id", catalogHandler.SelectCategory)

	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.POST("/products/:id", cartHandler.AddProduct)
		cart.POST("/side/:id", cartHandler.ChooseSide)
		cart.DELETE("/side", cartHandler.CancelSide)
		cart.PATCH("/lines/:key", cartHandler.AdjustLine)
		cart.DELETE("/lines/:key", cartHandler.RemoveLine)
	}

	payment := rg.Group("/payment")
	{
		payment.POST("/quote", paymentHandler.Quote)
		payment.DELETE("", paymentHandler.Cancel)
		payment.POST("/confirm", paymentHandler.Confirm)
		payment.POST("/acknowledge", paymentHandler.Acknowledge)
	}

	rg.GET("/tickets/:order", ticketHandler.GetTicket)
}

// SetupReportRoutes sets up statistics, export and shift routes
func SetupReportRoutes(rg *gin.RouterGroup, d Deps) {
	analyticsHandler := handlers.NewAnalyticsHandler(d.Session)
	shiftHandler := handlers.NewShiftHandler(d.Session)

	rg.GET("/stats", analyticsHandler.GetDashboard)
	rg.GET("/export.csv", analyticsHandler.ExportCSV)

	reports := rg.Group("/reports")
	{
		reports.GET("/daily", analyticsHandler.GetDailyReport)
		reports.GET("/top", analyticsHandler.GetTopProducts)
	}

	rg.POST("/shift/close", shiftHandler.CloseShift)
}

// SetupRoutes registers every API route
func SetupRoutes(rg *gin.RouterGroup, d Deps) {
	SetupConnectionRoutes(rg, d)
	SetupSalesRoutes(rg, d)
	SetupReportRoutes(rg, d)
}
