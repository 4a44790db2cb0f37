package payroll

import "context"

type PayrollService interface {
	// SetPayRate upserts the acting employee's rate and regenerates payments
	// for every summary on or after the effective date.
	SetPayRate(ctx context.Context, req SetPayRateRequest) (GeneratePaymentsResponse, error)
	GetPayRate(ctx context.Context) (PayRateResponse, error)

	ListPayments(ctx context.Context, req ListPaymentsRequest) ([]PaymentGroupResponse, error)
	GetPayouts(ctx context.Context, req PayoutRequest) (PayoutResponse, error)

	// ConfirmPayout marks an employee's unpaid records in range as paid.
	ConfirmPayout(ctx context.Context, req ConfirmPayoutRequest) (ConfirmPayoutResponse, error)

	// RefreshPayments regenerates payments for every registered rate.
	RefreshPayments(ctx context.Context) error
}
