// internal/pkg/email/smtp.go
package email

import (
	"crypto/tls"
	"fmt"

	"gopkg.in/gomail.v2"
)

// sendSMTPEmail sends email using SMTP (Gmail, Outlook, or self-hosted)
func (s *EmailService) sendSMTPEmail(email *Email) error {
	// Validate SMTP configuration
	if s.config.External.Email.SMTPHost == "" {
		return fmt.Errorf("SMTP configuration incomplete: missing host")
	}

	if err := s.dialer().DialAndSend(s.newMessage(email)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// newMessage builds the MIME message for an email
func (s *EmailService) newMessage(email *Email) *gomail.Message {
	msg := gomail.NewMessage(gomail.SetCharset("UTF-8"))

	fromEmail := s.config.External.Email.FromEmail
	if fromName := s.config.External.Email.FromName; fromName != "" {
		msg.SetAddressHeader("From", fromEmail, fromName)
	} else {
		msg.SetHeader("From", fromEmail)
	}
	msg.SetHeader("To", email.To...)
	msg.SetHeader("Subject", email.Subject)
	msg.SetBody("text/html", email.HTMLContent)
	return msg
}

// dialer returns an SMTP dialer. SMTPUseTLS selects implicit TLS (port 465);
// otherwise STARTTLS is used when the server offers it. An empty username
// skips authentication for relays that accept mail from the LAN.
func (s *EmailService) dialer() *gomail.Dialer {
	cfg := s.config.External.Email

	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	d.SSL = cfg.SMTPUseTLS
	d.TLSConfig = &tls.Config{ServerName: cfg.SMTPHost}
	return d
}

// TestSMTPConnection dials the SMTP server and authenticates without sending
func (s *EmailService) TestSMTPConnection() error {
	if s.config.External.Email.SMTPHost == "" {
		return fmt.Errorf("SMTP configuration incomplete: missing host")
	}

	closer, err := s.dialer().Dial()
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	return closer.Close()
}
