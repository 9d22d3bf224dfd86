package utils

import (
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends transactional mail through SendGrid. When no API key is
// configured it logs the message instead of sending, so local development
// works without credentials.
type Mailer struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
	logger    *slog.Logger
}

// NewMailer creates a Mailer. apiKey may be empty.
func NewMailer(apiKey, fromName, fromEmail string, logger *slog.Logger) *Mailer {
	m := &Mailer{
		fromName:  fromName,
		fromEmail: fromEmail,
		logger:    logger,
	}
	if apiKey != "" {
		m.client = sendgrid.NewSendClient(apiKey)
	} else {
		logger.Warn("SendGrid API key is empty, mail will be logged instead of sent")
	}
	return m
}

// Send delivers a single plain-text email.
func (m *Mailer) Send(toName, toEmail, subject, textContent string) error {
	if m.client == nil {
		m.logger.Info("Mail delivery skipped (no SendGrid key)",
			slog.String("to", toEmail),
			slog.String("subject", subject),
			slog.String("body", textContent),
		)
		return nil
	}

	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, textContent, "")

	response, err := m.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}
	return nil
}

// SendOneTimePassword mails the verification code issued for a new account.
func (m *Mailer) SendOneTimePassword(toName, toEmail, otp string) error {
	body := fmt.Sprintf("Your verification code is %s. It expires in 15 minutes.", otp)
	return m.Send(toName, toEmail, "Verify your email", body)
}

// SendPasswordReset mails the password reset link built from the plaintext
// reset token.
func (m *Mailer) SendPasswordReset(toName, toEmail, resetURL string) error {
	body := fmt.Sprintf("Reset your password using the link below. It expires in 15 minutes.\n\n%s", resetURL)
	return m.Send(toName, toEmail, "Password reset request", body)
}
