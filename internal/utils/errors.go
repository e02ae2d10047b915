package utils

import "errors"

// Common application errors used across services.
var (
	ErrInvalidToken       = errors.New("INVALID_TOKEN")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrEmailTaken         = errors.New("EMAIL_TAKEN")
	ErrAuthRequired       = errors.New("AUTH_REQUIRED")
	ErrEmptyCart          = errors.New("EMPTY_CART")
	ErrUnknownProduct     = errors.New("UNKNOWN_PRODUCT")
	ErrAddressNotFound    = errors.New("ADDRESS_NOT_FOUND")
)
