package service

import (
	"errors"
	"fmt"
	"time"
)

// Auth and input errors
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
)

// Order and balance errors
var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderAlreadyReturned = errors.New("order already returned")
	ErrNoPendingBalance     = errors.New("no pending balance")
)

// RateLimitError signals the agency asked us to back off
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %s", e.RetryAfter)
}

// NewRateLimitError creates a new rate limit error
func NewRateLimitError(retryAfter time.Duration) *RateLimitError {
	return &RateLimitError{RetryAfter: retryAfter}
}
