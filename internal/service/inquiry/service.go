package inquiry

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/inquiry"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/jwt"
	"github.com/google/uuid"
)

const notifyTimeout = 30 * time.Second

var _ inquiry.InquiryService = (*InquiryServiceImpl)(nil)

type InquiryServiceImpl struct {
	inquiryRepo inquiry.InquiryRepository
	notifier    inquiry.Notifier

	// notifications tracks in-flight staff e-mails.
	notifications sync.WaitGroup
}

func NewInquiryService(inquiryRepo inquiry.InquiryRepository, notifier inquiry.Notifier) *InquiryServiceImpl {
	return &InquiryServiceImpl{
		inquiryRepo: inquiryRepo,
		notifier:    notifier,
	}
}

func requireAdmin(ctx context.Context) error {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}
	if !claims.IsAdmin() {
		return user.ErrAdminPrivilegeRequired
	}
	return nil
}

// Create implements inquiry.InquiryService. Staff are notified in the
// background; a failed e-mail never fails the submission.
func (s *InquiryServiceImpl) Create(ctx context.Context, req inquiry.CreateInquiryRequest) (inquiry.InquiryResponse, error) {
	if err := req.Validate(); err != nil {
		return inquiry.InquiryResponse{}, err
	}

	created, err := s.inquiryRepo.Create(ctx, inquiry.Inquiry{
		TransactionNo: uuid.NewString(),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		ContactNo:     req.ContactNo,
		EmailAddress:  req.EmailAddress,
		Subject:       req.Subject,
		Message:       req.Message,
		Status:        inquiry.StatusPending,
	})
	if err != nil {
		return inquiry.InquiryResponse{}, err
	}

	slog.Info("inquiry received", "transaction_no", created.TransactionNo, "subject", created.Subject)

	if s.notifier != nil {
		s.notifications.Add(1)
		go func() {
			defer s.notifications.Done()
			notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
			defer cancel()
			if err := s.notifier.SendInquiryNotification(notifyCtx, created); err != nil {
				slog.Error("failed to notify staff of inquiry", "transaction_no", created.TransactionNo, "error", err)
			}
		}()
	}

	return inquiry.NewInquiryResponse(created), nil
}

// Wait blocks until pending notifications finish.
func (s *InquiryServiceImpl) Wait() {
	s.notifications.Wait()
}

// List implements inquiry.InquiryService.
func (s *InquiryServiceImpl) List(ctx context.Context, filter inquiry.InquiryFilter) (inquiry.ListInquiryResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return inquiry.ListInquiryResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return inquiry.ListInquiryResponse{}, err
	}

	inquiries, total, err := s.inquiryRepo.List(ctx, filter)
	if err != nil {
		return inquiry.ListInquiryResponse{}, err
	}

	responses := make([]inquiry.InquiryResponse, 0, len(inquiries))
	for _, in := range inquiries {
		responses = append(responses, inquiry.NewInquiryResponse(in))
	}

	return inquiry.ListInquiryResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Inquiries:  responses,
	}, nil
}

// Get implements inquiry.InquiryService.
func (s *InquiryServiceImpl) Get(ctx context.Context, transactionNo string) (inquiry.InquiryResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return inquiry.InquiryResponse{}, err
	}

	in, err := s.inquiryRepo.GetByTransactionNo(ctx, transactionNo)
	if err != nil {
		return inquiry.InquiryResponse{}, err
	}
	return inquiry.NewInquiryResponse(in), nil
}

// Update implements inquiry.InquiryService.
func (s *InquiryServiceImpl) Update(ctx context.Context, req inquiry.UpdateInquiryRequest) (inquiry.InquiryResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return inquiry.InquiryResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return inquiry.InquiryResponse{}, err
	}

	updated, err := s.inquiryRepo.Update(ctx, inquiry.Inquiry{
		TransactionNo: req.TransactionNo,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		ContactNo:     req.ContactNo,
		EmailAddress:  req.EmailAddress,
		Subject:       req.Subject,
		Message:       req.Message,
		Status:        req.Status,
	})
	if err != nil {
		return inquiry.InquiryResponse{}, err
	}

	slog.Info("inquiry updated", "transaction_no", updated.TransactionNo, "status", updated.Status)
	return inquiry.NewInquiryResponse(updated), nil
}

// Delete implements inquiry.InquiryService.
func (s *InquiryServiceImpl) Delete(ctx context.Context, transactionNo string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	if err := s.inquiryRepo.Delete(ctx, transactionNo); err != nil {
		return err
	}

	slog.Info("inquiry deleted", "transaction_no", transactionNo)
	return nil
}
