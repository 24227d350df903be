package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/aleenavigoda/yardso-sub000/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService defines the interface for sending emails
type EmailService interface {
	SendInvitation(to string, inviteeName *string, inviterName string, hours float64, description, invitationLink, expiresAt string) error
	SendVerification(to, name, verificationLink string) error
	SendConfirmationRequest(to, recipientName, loggerName string, hours float64, description string) error
	SendNudge(to, recipientName, loggerName string, hours float64, description string) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

type invitationEmailData struct {
	InviteeName    string
	InviterName    string
	Hours          float64
	Description    string
	InvitationLink string
	ExpiresAt      string
}

// SendInvitation sends an invitation email to a non-member the inviter
// logged time with
func (s *emailServiceImpl) SendInvitation(to string, inviteeName *string, inviterName string, hours float64, description, invitationLink, expiresAt string) error {
	data := invitationEmailData{
		InviteeName:    "there",
		InviterName:    inviterName,
		Hours:          hours,
		Description:    description,
		InvitationLink: invitationLink,
		ExpiresAt:      expiresAt,
	}
	if inviteeName != nil && *inviteeName != "" {
		data.InviteeName = *inviteeName
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "invitation.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("%s logged time with you on Yardso", inviterName), body.String())
}

type verificationEmailData struct {
	Name             string
	VerificationLink string
}

// SendVerification sends the email address verification link
func (s *emailServiceImpl) SendVerification(to, name, verificationLink string) error {
	data := verificationEmailData{
		Name:             name,
		VerificationLink: verificationLink,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "verify_email.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, "Verify your Yardso email", body.String())
}

type confirmationEmailData struct {
	RecipientName string
	LoggerName    string
	Hours         float64
	Description   string
}

// SendConfirmationRequest tells the counterpart a pending transaction awaits
// their confirmation
func (s *emailServiceImpl) SendConfirmationRequest(to, recipientName, loggerName string, hours float64, description string) error {
	data := confirmationEmailData{
		RecipientName: recipientName,
		LoggerName:    loggerName,
		Hours:         hours,
		Description:   description,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "confirmation_request.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("%s logged a time exchange with you", loggerName), body.String())
}

// SendNudge re-sends the confirmation reminder
func (s *emailServiceImpl) SendNudge(to, recipientName, loggerName string, hours float64, description string) error {
	data := confirmationEmailData{
		RecipientName: recipientName,
		LoggerName:    loggerName,
		Hours:         hours,
		Description:   description,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "nudge.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Reminder: %s is waiting on your confirmation", loggerName), body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (1s, 2s, 4s)
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
