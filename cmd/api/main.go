// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/session"
	"github.com/your-org/pos-backend/internal/infrastructure/database/postgres"
	"github.com/your-org/pos-backend/internal/infrastructure/database/redis"
	"github.com/your-org/pos-backend/internal/infrastructure/datastore"
	"github.com/your-org/pos-backend/internal/infrastructure/datastore/pgstore"
	"github.com/your-org/pos-backend/internal/infrastructure/datastore/sheets"
	"github.com/your-org/pos-backend/internal/interfaces/http"
	"github.com/your-org/pos-backend/internal/pkg/auth"
	"github.com/your-org/pos-backend/internal/pkg/email"
	"github.com/your-org/pos-backend/internal/pkg/logger"
	"github.com/your-org/pos-backend/internal/pkg/pdf"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	appLogger := logger.New(cfg)

	// Connect to Redis, the local durable store
	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	healthCtx, cancelHealth := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Health(healthCtx); err != nil {
		log.Fatalf("Redis health check failed: %v", err)
	}
	cancelHealth()

	// Select the datastore backend
	var backend datastore.Backend
	switch cfg.Datastore.Driver {
	case config.DriverPostgres:
		db, err := postgres.NewConnection(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		names := datastore.Names(cfg.Datastore.Sheets)
		migration := postgres.NewMigration(db.GetDB(), names)
		if err := migration.RunAutoMigrations(); err != nil {
			log.Fatalf("Database migration failed: %v", err)
		}
		if err := migration.CreateIndexes(); err != nil {
			log.Printf("Warning: Index creation failed: %v", err)
		}

		// Seed default categories and sides in development
		if cfg.IsDevelopment() {
			if err := migration.SeedInitialData(); err != nil {
				log.Printf("Warning: Data seeding failed: %v", err)
			}
			if err := migration.GetTableInfo(); err != nil {
				log.Printf("Warning: Table info failed: %v", err)
			}
		}

		backend = pgstore.NewBackend(db.GetDB(), names, appLogger)
		log.Println("🗄️  Datastore: PostgreSQL")
	default:
		backend = sheets.NewBackend(cfg.Datastore, appLogger)
		log.Printf("📄 Datastore: Google Sheets (%s)", cfg.Datastore.SpreadsheetID)
	}

	// Restore the terminal session
	mailer := email.NewEmailService(cfg)
	sess := session.NewSession(cfg, redisClient, backend, appLogger).WithShiftReporter(mailer)

	restoreCtx, cancelRestore := context.WithTimeout(context.Background(), 30*time.Second)
	if err := sess.Restore(restoreCtx); err != nil {
		log.Printf("Warning: Session restore interrupted: %v", err)
	}
	cancelRestore()

	if sess.Connected() {
		log.Println("🔗 Datastore session restored")
	} else {
		log.Println("📴 Running offline until a cashier connects")
	}
	if !mailer.Enabled() {
		log.Println("✉️  Shift report e-mail disabled")
	}

	log.Println("✅ All systems operational!")

	// Create and start HTTP server
	server := http.NewServer(cfg, sess, redisClient, auth.NewJWTManager(cfg), pdf.NewService(), appLogger)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("👋 Shutting down gracefully...")

	// Give server 30 seconds to shutdown gracefully
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.Printf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	log.Println("✅ Server shutdown completed")
}
