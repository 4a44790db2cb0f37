package timesheet

import (
	"errors"
	"fmt"
	"time"
)

var (
	// Ledger transitions
	ErrTimeInAfterTimeOut   = errors.New("you cannot Time In after Time Out for today")
	ErrBreakWithoutTimeIn   = errors.New("you must Time In before taking a Break")
	ErrTimeOutWithoutTimeIn = errors.New("you must Time In before Time Out")
	ErrInvalidAction        = errors.New("invalid action")

	// Import
	ErrLogsAlreadyExist  = errors.New("logs already exist")
	ErrIncorrectOrdering = errors.New("incorrect ordering")
)

// IsInvalidTransition reports whether err is a rejected ledger action.
func IsInvalidTransition(err error) bool {
	return errors.Is(err, ErrTimeInAfterTimeOut) ||
		errors.Is(err, ErrBreakWithoutTimeIn) ||
		errors.Is(err, ErrTimeOutWithoutTimeIn)
}

// OrderingError names the import day whose event sequence breaks the ledger rules.
type OrderingError struct {
	Date  time.Time
	Cause error
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("incorrect ordering on %s: %v", e.Date.Format(DateLayout), e.Cause)
}

func (e *OrderingError) Unwrap() error {
	return ErrIncorrectOrdering
}

// ConflictError names the import day that already has a summary.
type ConflictError struct {
	Date time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("logs already exist for %s", e.Date.Format(DateLayout))
}

func (e *ConflictError) Unwrap() error {
	return ErrLogsAlreadyExist
}
