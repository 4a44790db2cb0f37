package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/jwt"
)

type PayrollServiceImpl struct {
	tx                database.Transactor
	employeeRepo      employee.EmployeeRepository
	dailySummaryRepo  timesheet.DailySummaryRepository
	payRateRepo       payroll.PayRateRepository
	paymentRecordRepo payroll.PaymentRecordRepository
}

func NewPayrollService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	dailySummaryRepo timesheet.DailySummaryRepository,
	payRateRepo payroll.PayRateRepository,
	paymentRecordRepo payroll.PaymentRecordRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		tx:                tx,
		employeeRepo:      employeeRepo,
		dailySummaryRepo:  dailySummaryRepo,
		payRateRepo:       payRateRepo,
		paymentRecordRepo: paymentRecordRepo,
	}
}

// currentEmployee returns the session claims and the employee they name.
func (s *PayrollServiceImpl) currentEmployee(ctx context.Context) (jwt.AccessClaims, employee.Employee, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return jwt.AccessClaims{}, employee.Employee{}, err
	}

	emp, err := s.employeeRepo.GetByEmployeeNo(ctx, claims.EmployeeNo)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return jwt.AccessClaims{}, employee.Employee{}, jwt.ErrNoSession
		}
		return jwt.AccessClaims{}, employee.Employee{}, fmt.Errorf("failed to resolve employee: %w", err)
	}
	return claims, emp, nil
}

// ========== PAY RATE ==========

// SetPayRate implements payroll.PayrollService.
func (s *PayrollServiceImpl) SetPayRate(ctx context.Context, req payroll.SetPayRateRequest) (payroll.GeneratePaymentsResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.GeneratePaymentsResponse{}, err
	}

	_, emp, err := s.currentEmployee(ctx)
	if err != nil {
		return payroll.GeneratePaymentsResponse{}, err
	}

	var (
		rate    payroll.PayRate
		records []payroll.PaymentRecord
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		rate, err = s.payRateRepo.Upsert(ctx, payroll.PayRate{
			EmployeeID:    emp.ID,
			Rate:          req.PayRate,
			Schedule:      req.PayRateSchedule,
			EffectiveDate: req.Effective,
		})
		if err != nil {
			return err
		}

		records, err = s.generate(ctx, rate)
		return err
	})
	if err != nil {
		return payroll.GeneratePaymentsResponse{}, err
	}

	slog.Info("pay rate set",
		"employee_no", emp.EmployeeNo,
		"rate", rate.Rate.String(),
		"schedule", rate.Schedule,
		"records", len(records),
	)

	resp := payroll.GeneratePaymentsResponse{
		PayRate:        payroll.NewPayRateResponse(rate),
		PaymentRecords: make([]payroll.PaymentRecordResponse, 0, len(records)),
	}
	for _, r := range records {
		resp.PaymentRecords = append(resp.PaymentRecords, payroll.NewPaymentRecordResponse(r))
	}
	return resp, nil
}

// generate prices every summary on or after the rate's effective date and
// upserts one payment record per day.
func (s *PayrollServiceImpl) generate(ctx context.Context, rate payroll.PayRate) ([]payroll.PaymentRecord, error) {
	summaries, err := s.dailySummaryRepo.ListSince(ctx, rate.EmployeeID, rate.EffectiveDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily summaries: %w", err)
	}

	records := make([]payroll.PaymentRecord, 0, len(summaries))
	for _, summary := range summaries {
		record, err := s.paymentRecordRepo.Upsert(ctx, payroll.PaymentRecord{
			EmployeeID:     rate.EmployeeID,
			DailySummaryID: summary.ID,
			Date:           summary.Date,
			PayAmount:      payroll.ComputePayAmount(rate.Rate, rate.Schedule, summary.TotalSeconds),
			Status:         payroll.PaymentStatusUnpaid,
			TotalSeconds:   summary.TotalSeconds,
		})
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// GetPayRate implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayRate(ctx context.Context) (payroll.PayRateResponse, error) {
	_, emp, err := s.currentEmployee(ctx)
	if err != nil {
		return payroll.PayRateResponse{}, err
	}

	rate, err := s.payRateRepo.GetByEmployeeID(ctx, emp.ID)
	if err != nil {
		return payroll.PayRateResponse{}, err
	}
	return payroll.NewPayRateResponse(rate), nil
}

// ========== PAYMENTS ==========

// ListPayments implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayments(ctx context.Context, req payroll.ListPaymentsRequest) ([]payroll.PaymentGroupResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	_, emp, err := s.currentEmployee(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.paymentRecordRepo.List(ctx, payroll.PaymentRecordFilter{EmployeeID: emp.ID})
	if err != nil {
		return nil, err
	}

	buckets := payroll.GroupPayments(records, req.Filter)
	resp := make([]payroll.PaymentGroupResponse, 0, len(buckets))
	for _, b := range buckets {
		resp = append(resp, payroll.PaymentGroupResponse{
			Date:      b.Label,
			PayAmount: b.PayAmount,
			Duration:  b.Hours(),
		})
	}
	return resp, nil
}

// ========== PAYOUTS ==========

// GetPayouts implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayouts(ctx context.Context, req payroll.PayoutRequest) (payroll.PayoutResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayoutResponse{}, err
	}

	_, emp, err := s.currentEmployee(ctx)
	if err != nil {
		return payroll.PayoutResponse{}, err
	}

	unpaid := payroll.PaymentStatusUnpaid
	filter := payroll.PaymentRecordFilter{EmployeeID: emp.ID, Status: &unpaid}

	var buckets []payroll.Bucket
	switch req.PayoutMethod {
	case payroll.PayoutMethodAutomatic:
		records, err := s.paymentRecordRepo.List(ctx, filter)
		if err != nil {
			return payroll.PayoutResponse{}, err
		}
		buckets, err = payroll.GroupPayouts(records, req.PayoutFrequency)
		if err != nil {
			return payroll.PayoutResponse{}, err
		}
	case payroll.PayoutMethodManual:
		filter.From, filter.To = &req.Start, &req.End
		records, err := s.paymentRecordRepo.List(ctx, filter)
		if err != nil {
			return payroll.PayoutResponse{}, err
		}
		buckets = []payroll.Bucket{payroll.GroupManual(records, req.Start, req.End)}
	default:
		return payroll.PayoutResponse{}, payroll.ErrInvalidPayoutMethod
	}

	resp := payroll.PayoutResponse{GroupedRecords: make([]payroll.PayoutBucketResponse, 0, len(buckets))}
	for _, b := range buckets {
		resp.GroupedRecords = append(resp.GroupedRecords, payroll.NewPayoutBucketResponse(b))
	}
	return resp, nil
}

// ConfirmPayout implements payroll.PayrollService.
func (s *PayrollServiceImpl) ConfirmPayout(ctx context.Context, req payroll.ConfirmPayoutRequest) (payroll.ConfirmPayoutResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.ConfirmPayoutResponse{}, err
	}
	if !claims.IsAdmin() {
		return payroll.ConfirmPayoutResponse{}, user.ErrAdminPrivilegeRequired
	}

	if err := req.Validate(); err != nil {
		return payroll.ConfirmPayoutResponse{}, err
	}

	emp, err := s.employeeRepo.GetByEmployeeNo(ctx, req.EmployeeNo)
	if err != nil {
		return payroll.ConfirmPayoutResponse{}, err
	}

	paid, err := s.paymentRecordRepo.MarkPaid(ctx, emp.ID, req.Start, req.End)
	if err != nil {
		return payroll.ConfirmPayoutResponse{}, err
	}

	slog.Info("payout confirmed",
		"employee_no", emp.EmployeeNo,
		"confirmed_by", claims.Username,
		"from", req.Start.Format(time.DateOnly),
		"to", req.End.Format(time.DateOnly),
		"records", paid,
	)

	return payroll.ConfirmPayoutResponse{EmployeeNo: emp.EmployeeNo, Paid: paid}, nil
}

// ========== JOBS ==========

// RefreshPayments implements payroll.PayrollService.
// One employee failing does not stop the others. Paid records keep their amounts.
func (s *PayrollServiceImpl) RefreshPayments(ctx context.Context) error {
	rates, err := s.payRateRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pay rates: %w", err)
	}

	var (
		errs    []error
		records int
	)
	for _, rate := range rates {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
			generated, err := s.generate(ctx, rate)
			records += len(generated)
			return err
		})
		if err != nil {
			slog.Error("failed to refresh payments", "employee_id", rate.EmployeeID, "error", err)
			errs = append(errs, fmt.Errorf("employee %s: %w", rate.EmployeeID, err))
		}
	}

	slog.Info("payments refreshed", "employees", len(rates), "records", records, "failures", len(errs))
	return errors.Join(errs...)
}
