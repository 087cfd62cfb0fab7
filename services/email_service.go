package services

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// EmailService handles sending emails via SMTP. When SMTP is not
// configured, sends are logged instead so development setups still
// surface the credentials flow.
type EmailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewEmailService creates a new email service instance
func NewEmailService() *EmailService {
	port := 587
	if p := os.Getenv("SMTP_PORT"); p != "" {
		fmt.Sscanf(p, "%d", &port)
	}

	return &EmailService{
		host:     getEnvOrDefault("SMTP_HOST", "smtp.gmail.com"),
		port:     port,
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     getEnvOrDefault("SMTP_FROM", "noreply@university.edu"),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// IsConfigured checks if SMTP is properly configured
func (e *EmailService) IsConfigured() bool {
	return e.username != "" && e.password != ""
}

// SendCredentials delivers the generated portal credentials to a newly
// registered student's personal email
func (e *EmailService) SendCredentials(toEmail, name, portalEmail, tempPassword string) error {
	subject := "Your University Portal Account"
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\n"+
			"Your portal account has been created.\r\n\r\n"+
			"Login email: %s\r\n"+
			"Temporary password: %s\r\n\r\n"+
			"Please sign in and change your password.\r\n",
		name, portalEmail, tempPassword)

	if !e.IsConfigured() {
		log.Printf("SMTP not configured. Credentials for %s: login=%s password=%s", toEmail, portalEmail, tempPassword)
		return nil
	}

	return e.sendEmail(toEmail, subject, body)
}

// SendAnnouncement pushes a notification to a list of recipients
func (e *EmailService) SendAnnouncement(recipients []string, title, message string) error {
	if !e.IsConfigured() {
		log.Printf("SMTP not configured. Announcement %q for %d recipients dropped to log: %s", title, len(recipients), message)
		return nil
	}

	var lastErr error
	for _, to := range recipients {
		if err := e.sendEmail(to, title, message); err != nil {
			log.Printf("Email: failed to send to %s: %v", to, err)
			lastErr = err
		}
	}
	return lastErr
}

func (e *EmailService) sendEmail(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + e.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", e.host, e.port)
	auth := smtp.PlainAuth("", e.username, e.password, e.host)

	if err := smtp.SendMail(addr, auth, e.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
