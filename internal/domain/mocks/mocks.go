// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/velodz/backoffice/internal/domain"
)

// OrderRepositoryMock mocks domain.OrderRepository
type OrderRepositoryMock struct {
	mock.Mock
}

func NewOrderRepositoryMock(t mock.TestingT) *OrderRepositoryMock {
	m := &OrderRepositoryMock{}
	m.Mock.Test(t)
	return m
}

func (m *OrderRepositoryMock) CreateOrder(ctx context.Context, cmd domain.CreateOrderCommand) (*domain.Order, error) {
	args := m.Called(ctx, cmd)
	if order, ok := args.Get(0).(*domain.Order); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OrderRepositoryMock) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if order, ok := args.Get(0).(*domain.Order); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OrderRepositoryMock) GetOrdersByCustomerID(ctx context.Context, customerID int64) ([]*domain.Order, error) {
	args := m.Called(ctx, customerID)
	if orders, ok := args.Get(0).([]*domain.Order); ok {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OrderRepositoryMock) GetOpenShipments(ctx context.Context, scope domain.ReconcileScope) ([]*domain.Order, error) {
	args := m.Called(ctx, scope)
	if orders, ok := args.Get(0).([]*domain.Order); ok {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OrderRepositoryMock) ApplyStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (bool, error) {
	args := m.Called(ctx, orderID, status)
	return args.Bool(0), args.Error(1)
}

func (m *OrderRepositoryMock) ConfirmDelivery(ctx context.Context, orderID, deliveryPersonID int64) error {
	args := m.Called(ctx, orderID, deliveryPersonID)
	return args.Error(0)
}

func (m *OrderRepositoryMock) ReturnDelivery(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

// TransactionRepositoryMock mocks domain.TransactionRepository
type TransactionRepositoryMock struct {
	mock.Mock
}

func NewTransactionRepositoryMock(t mock.TestingT) *TransactionRepositoryMock {
	m := &TransactionRepositoryMock{}
	m.Mock.Test(t)
	return m
}

func (m *TransactionRepositoryMock) CreateTransaction(ctx context.Context, amount decimal.Decimal, direction domain.TransactionDirection, txType domain.TransactionType, description string) error {
	args := m.Called(ctx, amount, direction, txType, description)
	return args.Error(0)
}

func (m *TransactionRepositoryMock) WithdrawBalance(ctx context.Context, deliveryPersonID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, deliveryPersonID)
	if amount, ok := args.Get(0).(decimal.Decimal); ok {
		return amount, args.Error(1)
	}
	return decimal.Zero, args.Error(1)
}

// FinanceRepositoryMock mocks domain.FinanceRepository
type FinanceRepositoryMock struct {
	mock.Mock
}

func NewFinanceRepositoryMock(t mock.TestingT) *FinanceRepositoryMock {
	m := &FinanceRepositoryMock{}
	m.Mock.Test(t)
	return m
}

func (m *FinanceRepositoryMock) Snapshot(ctx context.Context) (*domain.FinanceSnapshot, error) {
	args := m.Called(ctx)
	if snap, ok := args.Get(0).(*domain.FinanceSnapshot); ok {
		return snap, args.Error(1)
	}
	return nil, args.Error(1)
}

// UserRepositoryMock mocks domain.UserRepository
type UserRepositoryMock struct {
	mock.Mock
}

func NewUserRepositoryMock(t mock.TestingT) *UserRepositoryMock {
	m := &UserRepositoryMock{}
	m.Mock.Test(t)
	return m
}

func (m *UserRepositoryMock) CreateUser(ctx context.Context, login, passwordHash string, role domain.UserRole) (*domain.User, error) {
	args := m.Called(ctx, login, passwordHash, role)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepositoryMock) GetUserByLogin(ctx context.Context, login string) (*domain.User, error) {
	args := m.Called(ctx, login)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepositoryMock) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// AgencyClientMock mocks domain.AgencyClient
type AgencyClientMock struct {
	mock.Mock
}

func NewAgencyClientMock(t mock.TestingT) *AgencyClientMock {
	m := &AgencyClientMock{}
	m.Mock.Test(t)
	return m
}

func (m *AgencyClientMock) FetchStatus(ctx context.Context, trackingID string) (string, error) {
	args := m.Called(ctx, trackingID)
	return args.String(0), args.Error(1)
}

// AuthServiceMock mocks domain.AuthService
type AuthServiceMock struct {
	mock.Mock
}

func NewAuthServiceMock(t mock.TestingT) *AuthServiceMock {
	m := &AuthServiceMock{}
	m.Mock.Test(t)
	return m
}

func (m *AuthServiceMock) Register(ctx context.Context, login, password string) (string, error) {
	args := m.Called(ctx, login, password)
	return args.String(0), args.Error(1)
}

func (m *AuthServiceMock) Login(ctx context.Context, login, password string) (string, error) {
	args := m.Called(ctx, login, password)
	return args.String(0), args.Error(1)
}

// OrderServiceMock mocks domain.OrderService
type OrderServiceMock struct {
	mock.Mock
}

func NewOrderServiceMock(t mock.TestingT) *OrderServiceMock {
	m := &OrderServiceMock{}
	m.Mock.Test(t)
	return m
}

func (m *OrderServiceMock) CreateOrder(ctx context.Context, cmd domain.CreateOrderCommand) (*domain.Order, error) {
	args := m.Called(ctx, cmd)
	if order, ok := args.Get(0).(*domain.Order); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OrderServiceMock) GetOrders(ctx context.Context, customerID int64) ([]*domain.Order, error) {
	args := m.Called(ctx, customerID)
	if orders, ok := args.Get(0).([]*domain.Order); ok {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}

// ReconcileServiceMock mocks domain.ReconcileService
type ReconcileServiceMock struct {
	mock.Mock
}

func NewReconcileServiceMock(t mock.TestingT) *ReconcileServiceMock {
	m := &ReconcileServiceMock{}
	m.Mock.Test(t)
	return m
}

func (m *ReconcileServiceMock) Reconcile(ctx context.Context, scope domain.ReconcileScope) (int, error) {
	args := m.Called(ctx, scope)
	return args.Int(0), args.Error(1)
}

func (m *ReconcileServiceMock) SyncOrder(ctx context.Context, order *domain.Order) (bool, error) {
	args := m.Called(ctx, order)
	return args.Bool(0), args.Error(1)
}

// DeliveryServiceMock mocks domain.DeliveryService
type DeliveryServiceMock struct {
	mock.Mock
}

func NewDeliveryServiceMock(t mock.TestingT) *DeliveryServiceMock {
	m := &DeliveryServiceMock{}
	m.Mock.Test(t)
	return m
}

func (m *DeliveryServiceMock) ConfirmDelivery(ctx context.Context, cmd domain.ConfirmDeliveryCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func (m *DeliveryServiceMock) ReturnDelivery(ctx context.Context, cmd domain.ReturnDeliveryCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func (m *DeliveryServiceMock) WithdrawBalance(ctx context.Context, cmd domain.WithdrawBalanceCommand) (decimal.Decimal, error) {
	args := m.Called(ctx, cmd)
	if amount, ok := args.Get(0).(decimal.Decimal); ok {
		return amount, args.Error(1)
	}
	return decimal.Zero, args.Error(1)
}

// FinanceServiceMock mocks domain.FinanceService
type FinanceServiceMock struct {
	mock.Mock
}

func NewFinanceServiceMock(t mock.TestingT) *FinanceServiceMock {
	m := &FinanceServiceMock{}
	m.Mock.Test(t)
	return m
}

func (m *FinanceServiceMock) Report(ctx context.Context) (*domain.FinanceReport, error) {
	args := m.Called(ctx)
	if report, ok := args.Get(0).(*domain.FinanceReport); ok {
		return report, args.Error(1)
	}
	return nil, args.Error(1)
}
