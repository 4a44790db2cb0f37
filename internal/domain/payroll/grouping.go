package payroll

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// PayoutMethod selects automatic period grouping or a manual date range.
type PayoutMethod string

const (
	PayoutMethodAutomatic PayoutMethod = "Automatic"
	PayoutMethodManual    PayoutMethod = "Manual"
)

// PayoutFrequency is the period used by automatic payouts.
type PayoutFrequency string

const (
	FrequencyDaily     PayoutFrequency = "Daily"
	FrequencyWeekly    PayoutFrequency = "Weekly"
	FrequencyBiMonthly PayoutFrequency = "Bi-Monthly"
	FrequencyMonthly   PayoutFrequency = "Monthly"
)

func (f PayoutFrequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyBiMonthly, FrequencyMonthly:
		return true
	}
	return false
}

// PaymentFilter is the granularity of the payments listing.
type PaymentFilter string

const (
	FilterDaily   PaymentFilter = "daily"
	FilterWeekly  PaymentFilter = "weekly"
	FilterMonthly PaymentFilter = "monthly"
)

func (f PaymentFilter) IsValid() bool {
	return f == FilterDaily || f == FilterWeekly || f == FilterMonthly
}

const (
	dayLabelLayout   = "Mon, Jan 2, 2006"
	weekLabelLayout  = "Jan 2"
	rangeLabelLayout = "Jan 2, 2006"
	monthLabelLayout = "January 2006"
)

// Bucket is an aggregate of payment records over one period.
type Bucket struct {
	Label     string
	Start     time.Time
	PayAmount decimal.Decimal
	Seconds   int64
	Records   int
}

// Hours converts the summed worked seconds to hours.
func (b Bucket) Hours() float64 {
	return float64(b.Seconds) / 3600
}

// periodFunc maps a record date to the start of its period and a display label.
type periodFunc func(date time.Time) (time.Time, string)

func dailyPeriod(date time.Time) (time.Time, string) {
	return date, date.Format(dayLabelLayout)
}

func weeklyPeriod(date time.Time) (time.Time, string) {
	monday := WeekStart(date)
	sunday := monday.AddDate(0, 0, 6)
	return monday, monday.Format(weekLabelLayout) + " to " + sunday.Format(weekLabelLayout)
}

func biMonthlyPeriod(date time.Time) (time.Time, string) {
	if date.Day() <= 15 {
		return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC),
			fmt.Sprintf("%s 15th Pay", date.Month())
	}
	return time.Date(date.Year(), date.Month(), 16, 0, 0, 0, 0, time.UTC),
		fmt.Sprintf("%s 30th Pay", date.Month())
}

func monthlyPayoutPeriod(date time.Time) (time.Time, string) {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC),
		fmt.Sprintf("%s 30th Pay", date.Month())
}

func monthlyPaymentPeriod(date time.Time) (time.Time, string) {
	start := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.Format(monthLabelLayout)
}

// WeekStart returns the Monday on or before date, at UTC midnight.
func WeekStart(date time.Time) time.Time {
	date = date.UTC()
	offset := (int(date.Weekday()) + 6) % 7
	return time.Date(date.Year(), date.Month(), date.Day()-offset, 0, 0, 0, 0, time.UTC)
}

// group buckets records by period, oldest period first.
func group(records []PaymentRecord, period periodFunc) []Bucket {
	index := make(map[time.Time]int)
	var buckets []Bucket

	for _, r := range records {
		start, label := period(r.Date.UTC())
		i, ok := index[start]
		if !ok {
			i = len(buckets)
			index[start] = i
			buckets = append(buckets, Bucket{Label: label, Start: start, PayAmount: decimal.Zero})
		}
		buckets[i].PayAmount = buckets[i].PayAmount.Add(r.PayAmount)
		buckets[i].Seconds += r.TotalSeconds
		buckets[i].Records++
	}

	slices.SortFunc(buckets, func(a, b Bucket) int { return a.Start.Compare(b.Start) })
	return buckets
}

// GroupPayouts buckets unpaid records by an automatic payout frequency.
func GroupPayouts(records []PaymentRecord, frequency PayoutFrequency) ([]Bucket, error) {
	switch frequency {
	case FrequencyDaily:
		return group(records, dailyPeriod), nil
	case FrequencyWeekly:
		return group(records, weeklyPeriod), nil
	case FrequencyBiMonthly:
		return group(records, biMonthlyPeriod), nil
	case FrequencyMonthly:
		return group(records, monthlyPayoutPeriod), nil
	}
	return nil, ErrInvalidFrequency
}

// GroupManual sums the records dated within [start, end] into one bucket.
// The bucket is returned even when nothing falls in range.
func GroupManual(records []PaymentRecord, start, end time.Time) Bucket {
	from := dayStart(start)
	to := dayStart(end)

	bucket := Bucket{
		Label:     from.Format(rangeLabelLayout) + " - " + to.Format(rangeLabelLayout),
		Start:     from,
		PayAmount: decimal.Zero,
	}
	for _, r := range records {
		d := dayStart(r.Date)
		if d.Before(from) || d.After(to) {
			continue
		}
		bucket.PayAmount = bucket.PayAmount.Add(r.PayAmount)
		bucket.Seconds += r.TotalSeconds
		bucket.Records++
	}
	return bucket
}

// GroupPayments buckets records for the payments listing, newest period first.
func GroupPayments(records []PaymentRecord, filter PaymentFilter) []Bucket {
	var buckets []Bucket
	switch filter {
	case FilterWeekly:
		buckets = group(records, weeklyPeriod)
	case FilterMonthly:
		buckets = group(records, monthlyPaymentPeriod)
	default:
		buckets = group(records, dailyPeriod)
	}
	slices.Reverse(buckets)
	return buckets
}

func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
