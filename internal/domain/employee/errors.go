package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEmployeeNoExhausted = errors.New("could not allocate a unique employee number")
)
