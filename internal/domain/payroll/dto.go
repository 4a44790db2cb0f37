package payroll

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== PAY RATE ==========

type SetPayRateRequest struct {
	PayRate         decimal.Decimal `json:"payRate"`
	PayRateSchedule Schedule        `json:"payRateSchedule"`
	EffectiveDate   string          `json:"effectiveDate"`

	// Parsed by Validate
	Effective time.Time `json:"-"`
}

func (r *SetPayRateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.PayRate.IsPositive() {
		errs.Add("payRate", "payRate must be greater than 0")
	} else if r.PayRate.Exponent() < -2 {
		errs.Add("payRate", "payRate must have at most 2 decimal places")
	}

	if !r.PayRateSchedule.IsValid() {
		errs.Add("payRateSchedule", "payRateSchedule must be Hourly or Daily")
	}

	if validator.IsEmpty(r.EffectiveDate) {
		errs.Add("effectiveDate", "effectiveDate is required")
	} else if d, ok := validator.IsValidDate(strings.TrimSpace(r.EffectiveDate)); !ok {
		errs.Add("effectiveDate", "effectiveDate must be in YYYY-MM-DD format")
	} else {
		r.Effective = d
	}

	return errs.Err()
}

type PayRateResponse struct {
	Rate          decimal.Decimal `json:"payRate"`
	Schedule      Schedule        `json:"payRateSchedule"`
	EffectiveDate string          `json:"effectiveDate"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func NewPayRateResponse(r PayRate) PayRateResponse {
	return PayRateResponse{
		Rate:          r.Rate,
		Schedule:      r.Schedule,
		EffectiveDate: r.EffectiveDate.Format(time.DateOnly),
		UpdatedAt:     r.UpdatedAt,
	}
}

type PaymentRecordResponse struct {
	ID             string          `json:"id"`
	DailySummaryID string          `json:"dailySummaryId"`
	Date           string          `json:"date"`
	PayAmount      decimal.Decimal `json:"payAmount"`
	Duration       float64         `json:"duration"`
	Status         PaymentStatus   `json:"status"`
}

func NewPaymentRecordResponse(r PaymentRecord) PaymentRecordResponse {
	return PaymentRecordResponse{
		ID:             r.ID,
		DailySummaryID: r.DailySummaryID,
		Date:           r.Date.Format(time.DateOnly),
		PayAmount:      r.PayAmount,
		Duration:       r.Hours(),
		Status:         r.Status,
	}
}

type GeneratePaymentsResponse struct {
	PayRate        PayRateResponse         `json:"payRate"`
	PaymentRecords []PaymentRecordResponse `json:"paymentRecords"`
}

// ========== PAYMENTS LISTING ==========

type ListPaymentsRequest struct {
	Filter PaymentFilter
}

func (r *ListPaymentsRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Filter = PaymentFilter(strings.ToLower(strings.TrimSpace(string(r.Filter))))
	if r.Filter == "" {
		r.Filter = FilterDaily
	}
	if !r.Filter.IsValid() {
		errs.Add("filter", "filter must be one of daily, weekly, monthly")
	}

	return errs.Err()
}

type PaymentGroupResponse struct {
	Date      string          `json:"date"`
	PayAmount decimal.Decimal `json:"payAmount"`
	Duration  float64         `json:"duration"`
}

// ========== PAYOUTS ==========

type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// parse validates both bounds and their order under the given field prefix.
func (d *DateRange) parse(prefix string, errs *validator.ValidationErrors) (time.Time, time.Time) {
	start, okStart := validator.IsValidDate(strings.TrimSpace(d.StartDate))
	if !okStart {
		errs.Add(prefix+"startDate", "startDate must be in YYYY-MM-DD format")
	}
	end, okEnd := validator.IsValidDate(strings.TrimSpace(d.EndDate))
	if !okEnd {
		errs.Add(prefix+"endDate", "endDate must be in YYYY-MM-DD format")
	}
	if okStart && okEnd && end.Before(start) {
		errs.Add(prefix+"endDate", "endDate must not be before startDate")
	}
	return start, end
}

type PayoutRequest struct {
	PayoutMethod    PayoutMethod    `json:"payoutMethod"`
	PayoutFrequency PayoutFrequency `json:"payoutFrequency,omitempty"`
	DateRange       *DateRange      `json:"dateRange,omitempty"`

	// Parsed by Validate
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

func (r *PayoutRequest) Validate() error {
	var errs validator.ValidationErrors

	switch r.PayoutMethod {
	case PayoutMethodAutomatic:
		if !r.PayoutFrequency.IsValid() {
			errs.Add("payoutFrequency", "payoutFrequency must be one of Daily, Weekly, Bi-Monthly, Monthly")
		}
	case PayoutMethodManual:
		if r.DateRange == nil {
			errs.Add("dateRange", "dateRange is required for Manual payouts")
			break
		}
		r.Start, r.End = r.DateRange.parse("dateRange.", &errs)
	default:
		errs.Add("payoutMethod", "payoutMethod must be Automatic or Manual")
	}

	return errs.Err()
}

type PayoutBucketResponse struct {
	Date      string          `json:"date"`
	PayAmount decimal.Decimal `json:"payAmount"`
	Duration  float64         `json:"duration"`
	Status    PaymentStatus   `json:"status"`
}

func NewPayoutBucketResponse(b Bucket) PayoutBucketResponse {
	return PayoutBucketResponse{
		Date:      b.Label,
		PayAmount: b.PayAmount,
		Duration:  b.Hours(),
		Status:    PaymentStatusUnpaid,
	}
}

type PayoutResponse struct {
	GroupedRecords []PayoutBucketResponse `json:"groupedRecords"`
}

type ConfirmPayoutRequest struct {
	EmployeeNo string `json:"employeeNo"`
	DateRange

	// Parsed by Validate
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

func (r *ConfirmPayoutRequest) Validate() error {
	var errs validator.ValidationErrors

	r.EmployeeNo = strings.ToUpper(strings.TrimSpace(r.EmployeeNo))
	if validator.IsEmpty(r.EmployeeNo) {
		errs.Add("employeeNo", "employeeNo is required")
	}
	r.Start, r.End = r.DateRange.parse("", &errs)

	return errs.Err()
}

type ConfirmPayoutResponse struct {
	EmployeeNo string `json:"employeeNo"`
	Paid       int64  `json:"paid"`
}
