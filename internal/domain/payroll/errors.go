package payroll

import "errors"

var (
	ErrPayRateNotFound     = errors.New("pay rate not found")
	ErrInvalidPayoutMethod = errors.New("invalid payout method")
	ErrInvalidFrequency    = errors.New("invalid payout frequency")
)
