package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Schedule decides how a day's work is priced.
type Schedule string

const (
	ScheduleHourly Schedule = "Hourly"
	ScheduleDaily  Schedule = "Daily"
)

func (s Schedule) IsValid() bool {
	return s == ScheduleHourly || s == ScheduleDaily
}

// PaymentStatus enum
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "Unpaid"
	PaymentStatusPaid   PaymentStatus = "Paid"
)

// PayRate - the single active rate of an employee
type PayRate struct {
	ID            string
	EmployeeID    string
	Rate          decimal.Decimal
	Schedule      Schedule
	EffectiveDate time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PaymentRecord - the computed pay for one employee-day
type PaymentRecord struct {
	ID             string
	EmployeeID     string
	DailySummaryID string
	Date           time.Time
	PayAmount      decimal.Decimal
	Status         PaymentStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined fields
	TotalSeconds int64
}

// Hours converts the joined worked seconds to hours.
func (r PaymentRecord) Hours() float64 {
	return float64(r.TotalSeconds) / 3600
}

var secondsPerHour = decimal.NewFromInt(3600)

// ComputePayAmount prices one day. Hourly pays worked hours times rate;
// Daily pays the flat rate whatever was worked.
func ComputePayAmount(rate decimal.Decimal, schedule Schedule, totalSeconds int64) decimal.Decimal {
	if schedule == ScheduleDaily {
		return rate.Round(2)
	}
	if totalSeconds <= 0 {
		return decimal.Zero
	}
	return rate.Mul(decimal.NewFromInt(totalSeconds)).Div(secondsPerHour).Round(2)
}
