package domain

import "errors"

// User errors
var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Order errors
var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderAlreadyReturned = errors.New("order already returned")
	ErrInvalidOrder         = errors.New("invalid order")
	ErrInvalidScope         = errors.New("reconcile scope must name a customer or all orders")
)

// Balance and agency errors
var (
	ErrNoPendingBalance = errors.New("no pending balance")
	ErrShipmentNotFound = errors.New("shipment not registered with agency")
)
