package main

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/analytics"
	"github.com/your-org/pos-backend/internal/pkg/email"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	emailService := email.NewEmailService(cfg)

	// Test connection
	if err := emailService.TestSMTPConnection(); err != nil {
		log.Fatal("SMTP failed:", err)
	}
	log.Println("✅ SMTP connection OK")

	if !emailService.Enabled() {
		log.Println("EMAIL_SHIFT_REPORT_TO is empty, skipping sample report")
		return
	}

	// Send a sample shift report
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	sample := analytics.ShiftSummary{Start: now.Add(-time.Hour), End: now, Total: decimal.Zero}
	if err := emailService.SendShiftReport(ctx, sample, analytics.DailyReport{}, nil, "smtpcheck"); err != nil {
		log.Fatal("Send failed:", err)
	}

	log.Println("✅ Email sent successfully!")
}
