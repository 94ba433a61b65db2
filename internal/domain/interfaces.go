package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// UserRepository defines persistence for back-office users
type UserRepository interface {
	CreateUser(ctx context.Context, login, passwordHash string, role UserRole) (*User, error)
	GetUserByLogin(ctx context.Context, login string) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
}

// OrderRepository defines persistence for orders, including the atomic
// multi-record writes behind reconciliation and the manual flows.
type OrderRepository interface {
	CreateOrder(ctx context.Context, cmd CreateOrderCommand) (*Order, error)
	GetOrderByID(ctx context.Context, id int64) (*Order, error)
	GetOrdersByCustomerID(ctx context.Context, customerID int64) ([]*Order, error)
	// GetOpenShipments selects orders with a tracking ID that have not
	// reached a terminal status, optionally bounded to one customer.
	GetOpenShipments(ctx context.Context, scope ReconcileScope) ([]*Order, error)
	// ApplyStatus moves an order to a new canonical status and resolves
	// any pending invoice, all in one transaction. It re-checks the
	// monotonicity guard against the committed row and returns false,
	// without error, when the transition is stale or backward.
	ApplyStatus(ctx context.Context, orderID int64, status OrderStatus) (bool, error)
	// ConfirmDelivery credits the courier's pending balance with the
	// shipping fee, appends a SALE entry for the order total and marks
	// the order delivered, atomically.
	ConfirmDelivery(ctx context.Context, orderID, deliveryPersonID int64) error
	// ReturnDelivery restores item stock, marks the order returned and
	// books the sunk shipping cost as a RETURN expense, atomically.
	ReturnDelivery(ctx context.Context, orderID int64) error
}

// TransactionRepository defines persistence for the cashbox ledger
type TransactionRepository interface {
	CreateTransaction(ctx context.Context, amount decimal.Decimal, direction TransactionDirection, txType TransactionType, description string) error
	// WithdrawBalance settles a delivery person's pending balance: one
	// DELIVERY_PAYMENT entry for the full amount, balance reset to zero.
	// Returns the amount settled.
	WithdrawBalance(ctx context.Context, deliveryPersonID int64) (decimal.Decimal, error)
}

// FinanceRepository reads the reporting aggregates in one consistent snapshot
type FinanceRepository interface {
	Snapshot(ctx context.Context) (*FinanceSnapshot, error)
}

// AgencyClient is the port to the delivery agency's tracking API
type AgencyClient interface {
	FetchStatus(ctx context.Context, trackingID string) (string, error)
}

// AuthService defines staff authentication
type AuthService interface {
	Register(ctx context.Context, login, password string) (string, error)
	Login(ctx context.Context, login, password string) (string, error)
}

// OrderService defines order intake and listing
type OrderService interface {
	CreateOrder(ctx context.Context, cmd CreateOrderCommand) (*Order, error)
	GetOrders(ctx context.Context, customerID int64) ([]*Order, error)
}

// ReconcileService drives status reconciliation against the agency
type ReconcileService interface {
	Reconcile(ctx context.Context, scope ReconcileScope) (int, error)
	// SyncOrder reconciles a single order; returns whether it was mutated
	SyncOrder(ctx context.Context, order *Order) (bool, error)
}

// DeliveryService defines the manual courier flows
type DeliveryService interface {
	ConfirmDelivery(ctx context.Context, cmd ConfirmDeliveryCommand) error
	ReturnDelivery(ctx context.Context, cmd ReturnDeliveryCommand) error
	WithdrawBalance(ctx context.Context, cmd WithdrawBalanceCommand) (decimal.Decimal, error)
}

// FinanceService derives the reporting figures
type FinanceService interface {
	Report(ctx context.Context) (*FinanceReport, error)
}
