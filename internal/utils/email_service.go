package utils

import (
	"fmt"
	"net/smtp"

	"GROUPGO_BACK-END/internal/config"
)

// EmailService handles email sending operations
type EmailService struct {
	config *config.EmailConfig
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{
		config: cfg,
	}
}

// SendInvitation notifies an invited address about a pending trip
// invitation. Delivery is best effort; the invitation document is the
// source of truth either way.
func (e *EmailService) SendInvitation(to, tripName, inviterEmail string) error {
	subject := fmt.Sprintf("You're invited to join %s on GroupGo", tripName)
	body := fmt.Sprintf(`Hello,

%s invited you to join the trip "%s" on GroupGo.

Open the app and sign in with this email address to accept or decline.

Best regards,
GroupGo Team
`, inviterEmail, tripName)

	return e.sendEmail(to, subject, body)
}

// SendPasswordReset mails a password reset link issued by the identity
// provider.
func (e *EmailService) SendPasswordReset(to, link string) error {
	subject := "Reset your GroupGo password"
	body := fmt.Sprintf(`Hello,

You requested to reset your GroupGo password.

Use this link to choose a new one: %s

If you didn't request this, please ignore this email.

Best regards,
GroupGo Team
`, link)

	return e.sendEmail(to, subject, body)
}

// sendEmail sends an email using SMTP
func (e *EmailService) sendEmail(to, subject, body string) error {
	// Check if credentials are set
	if e.config.SMTPUsername == "" || e.config.SMTPPassword == "" {
		return fmt.Errorf("email credentials not configured")
	}

	// Setup authentication
	auth := smtp.PlainAuth("", e.config.SMTPUsername, e.config.SMTPPassword, e.config.SMTPHost)

	// Compose message
	fromEmail := e.config.FromEmail
	if fromEmail == "" {
		fromEmail = e.config.SMTPUsername
	}

	message := []byte(fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"\r\n"+
			"%s\r\n",
		e.config.FromName, fromEmail, to, subject, body))

	// Send email
	addr := e.config.SMTPHost + ":" + e.config.SMTPPort
	err := smtp.SendMail(addr, auth, fromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}
