package email

import (
	"context"
	"errors"
	"net/smtp"
	"testing"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/config"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/inquiry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func newTestService(t *testing.T, cfg config.SMTPConfig, send sendFunc) *emailServiceImpl {
	t.Helper()
	svc, err := NewEmailService(cfg)
	require.NoError(t, err)
	impl := svc.(*emailServiceImpl)
	impl.send = send
	impl.backoff = time.Millisecond
	return impl
}

func testInquiry() inquiry.Inquiry {
	return inquiry.Inquiry{
		TransactionNo: "6f1c2a8e-0000-4000-8000-000000000001",
		FirstName:     "Ana",
		LastName:      "Cruz",
		ContactNo:     "09171234567",
		EmailAddress:  "ana@example.com",
		Subject:       "Payroll question",
		Message:       "When is payday? <script>",
		Status:        inquiry.StatusPending,
		CreatedAt:     time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
	}
}

func TestSendInquiryNotification(t *testing.T) {
	var got capturedMail
	svc := newTestService(t, config.SMTPConfig{
		Host:        "smtp.example.com",
		Port:        587,
		FromAddress: "noreply@example.com",
		FromName:    "Timesheet",
		StaffEmails: []string{"hr@example.com", "ops@example.com"},
	}, func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		got = capturedMail{addr: addr, from: from, to: to, msg: string(msg)}
		return nil
	})

	require.NoError(t, svc.SendInquiryNotification(context.Background(), testInquiry()))

	assert.Equal(t, "smtp.example.com:587", got.addr)
	assert.Equal(t, "noreply@example.com", got.from)
	assert.Equal(t, []string{"hr@example.com", "ops@example.com"}, got.to)
	assert.Contains(t, got.msg, "Subject: New inquiry: Payroll question")
	assert.Contains(t, got.msg, "Ana Cruz")
	assert.Contains(t, got.msg, "&lt;script&gt;")
}

func TestSendInquiryNotification_Retries(t *testing.T) {
	calls := 0
	svc := newTestService(t, config.SMTPConfig{
		Host:        "smtp.example.com",
		Port:        25,
		StaffEmails: []string{"hr@example.com"},
	}, func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		calls++
		return errors.New("connection refused")
	})

	err := svc.SendInquiryNotification(context.Background(), testInquiry())
	assert.Error(t, err)
	assert.Equal(t, maxRetries, calls)
}

func TestSendInquiryNotification_NotConfigured(t *testing.T) {
	called := false
	send := func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		called = true
		return nil
	}

	noStaff := newTestService(t, config.SMTPConfig{Host: "smtp.example.com"}, send)
	assert.NoError(t, noStaff.SendInquiryNotification(context.Background(), testInquiry()))

	noHost := newTestService(t, config.SMTPConfig{StaffEmails: []string{"hr@example.com"}}, send)
	assert.NoError(t, noHost.SendInquiryNotification(context.Background(), testInquiry()))

	assert.False(t, called)
}
