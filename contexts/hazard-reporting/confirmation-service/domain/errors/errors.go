package errors

import "errors"

var (
	ErrInvalidConfirmationInput = errors.New("invalid confirmation input")
	ErrUserNotFound             = errors.New("user not found")
)
