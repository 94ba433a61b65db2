package postgres

import "errors"

// User errors
var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
)

// Order errors
var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderAlreadyReturned = errors.New("order already returned")
)

// Balance errors
var (
	ErrNoPendingBalance = errors.New("no pending balance")
)
