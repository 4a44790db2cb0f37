package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"mime"
	"net/smtp"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/config"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/inquiry"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService sends staff notifications.
type EmailService interface {
	SendInquiryNotification(ctx context.Context, in inquiry.Inquiry) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
	send      sendFunc
	backoff   time.Duration
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
		send:      smtp.SendMail,
		backoff:   time.Second,
	}, nil
}

type inquiryEmailData struct {
	TransactionNo string
	FullName      string
	EmailAddress  string
	ContactNo     string
	Subject       string
	Message       string
	Status        string
	ReceivedAt    string
}

// SendInquiryNotification mails a new inquiry to every configured staff address.
func (s *emailServiceImpl) SendInquiryNotification(ctx context.Context, in inquiry.Inquiry) error {
	if len(s.cfg.StaffEmails) == 0 {
		slog.Warn("no staff emails configured, skipping inquiry notification", "transaction_no", in.TransactionNo)
		return nil
	}

	data := inquiryEmailData{
		TransactionNo: in.TransactionNo,
		FullName:      in.FullName(),
		EmailAddress:  in.EmailAddress,
		ContactNo:     in.ContactNo,
		Subject:       in.Subject,
		Message:       in.Message,
		Status:        string(in.Status),
		ReceivedAt:    in.CreatedAt.UTC().Format("Mon, Jan 2, 2006 03:04 PM MST"),
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "inquiry_notification.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(ctx, s.cfg.StaffEmails, "New inquiry: "+in.Subject, body.String())
}

func (s *emailServiceImpl) buildMessage(to []string, subject, htmlBody string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", mime.QEncoding.Encode("utf-8", s.cfg.FromName), s.cfg.FromAddress)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}

func (s *emailServiceImpl) sendHTML(ctx context.Context, to []string, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	message := s.buildMessage(to, subject, htmlBody)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := s.send(addr, auth, s.cfg.FromAddress, to, message)
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

		// Exponential backoff: 1s, 2s
		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.backoff << (attempt - 1)):
			}
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
