package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/velodz/backoffice/internal/domain"
	"github.com/velodz/backoffice/internal/domain/mocks"
	"github.com/velodz/backoffice/internal/repository/postgres"
)

func TestDeliveryService_ConfirmDelivery(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		orderRepo := mocks.NewOrderRepositoryMock(t)
		txRepo := mocks.NewTransactionRepositoryMock(t)
		svc := NewDeliveryService(orderRepo, txRepo)

		orderRepo.On("ConfirmDelivery", mock.Anything, int64(10), int64(3)).Return(nil).Once()

		err := svc.ConfirmDelivery(ctx, domain.ConfirmDeliveryCommand{OrderID: 10, DeliveryPersonID: 3})
		require.NoError(t, err)
		orderRepo.AssertExpectations(t)
	})

	t.Run("Order not found", func(t *testing.T) {
		orderRepo := mocks.NewOrderRepositoryMock(t)
		txRepo := mocks.NewTransactionRepositoryMock(t)
		svc := NewDeliveryService(orderRepo, txRepo)

		orderRepo.On("ConfirmDelivery", mock.Anything, int64(99), int64(3)).Return(postgres.ErrOrderNotFound).Once()

		err := svc.ConfirmDelivery(ctx, domain.ConfirmDeliveryCommand{OrderID: 99, DeliveryPersonID: 3})
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("Invalid command", func(t *testing.T) {
		orderRepo := mocks.NewOrderRepositoryMock(t)
		txRepo := mocks.NewTransactionRepositoryMock(t)
		svc := NewDeliveryService(orderRepo, txRepo)

		err := svc.ConfirmDelivery(ctx, domain.ConfirmDeliveryCommand{OrderID: 0, DeliveryPersonID: 3})
		assert.ErrorIs(t, err, ErrInvalidInput)
		orderRepo.AssertNotCalled(t, "ConfirmDelivery", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeliveryService_ReturnDelivery(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		orderRepo := mocks.NewOrderRepositoryMock(t)
		txRepo := mocks.NewTransactionRepositoryMock(t)
		svc := NewDeliveryService(orderRepo, txRepo)

		orderRepo.On("ReturnDelivery", mock.Anything, int64(10)).Return(nil).Once()

		err := svc.ReturnDelivery(ctx, domain.ReturnDeliveryCommand{OrderID: 10})
		require.NoError(t, err)
	})

	t.Run("Already returned", func(t *testing.T) {
		orderRepo := mocks.NewOrderRepositoryMock(t)
		txRepo := mocks.NewTransactionRepositoryMock(t)
		svc := NewDeliveryService(orderRepo, txRepo)

		orderRepo.On("ReturnDelivery", mock.Anything, int64(10)).Return(postgres.ErrOrderAlreadyReturned).Once()

		err := svc.ReturnDelivery(ctx, domain.ReturnDeliveryCommand{OrderID: 10})
		assert.ErrorIs(t, err, ErrOrderAlreadyReturned)
	})

	t.Run("Order not found", func(t *testing.T) {
		orderRepo := mocks.NewOrderRepositoryMock(t)
		txRepo := mocks.NewTransactionRepositoryMock(t)
		svc := NewDeliveryService(orderRepo, txRepo)

		orderRepo.On("ReturnDelivery", mock.Anything, int64(77)).Return(postgres.ErrOrderNotFound).Once()

		err := svc.ReturnDelivery(ctx, domain.ReturnDeliveryCommand{OrderID: 77})
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestDeliveryService_WithdrawBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("Success returns settled amount", func(t *testing.T) {
		orderRepo := mocks.NewOrderRepositoryMock(t)
		txRepo := mocks.NewTransactionRepositoryMock(t)
		svc := NewDeliveryService(orderRepo, txRepo)

		txRepo.On("WithdrawBalance", mock.Anything, int64(3)).Return(decimal.NewFromInt(300), nil).Once()

		amount, err := svc.WithdrawBalance(ctx, domain.WithdrawBalanceCommand{DeliveryPersonID: 3})
		require.NoError(t, err)
		assert.True(t, amount.Equal(decimal.NewFromInt(300)))
	})

	t.Run("No pending balance", func(t *testing.T) {
		orderRepo := mocks.NewOrderRepositoryMock(t)
		txRepo := mocks.NewTransactionRepositoryMock(t)
		svc := NewDeliveryService(orderRepo, txRepo)

		txRepo.On("WithdrawBalance", mock.Anything, int64(3)).Return(decimal.Zero, postgres.ErrNoPendingBalance).Once()

		_, err := svc.WithdrawBalance(ctx, domain.WithdrawBalanceCommand{DeliveryPersonID: 3})
		assert.ErrorIs(t, err, ErrNoPendingBalance)
	})
}
