package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrTenantNotFound    = errors.New("tenant not found")
	ErrRiskNotFound      = errors.New("risk not found")
	ErrFrameworkNotFound = errors.New("framework not found")

	// Auth errors
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrInvalidToken           = errors.New("invalid or expired token")

	// Input errors
	ErrInvalidInput = errors.New("invalid input")
)
