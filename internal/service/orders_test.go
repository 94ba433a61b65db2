package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/velodz/backoffice/internal/domain"
	"github.com/velodz/backoffice/internal/domain/mocks"
)

func validOrderCommand() domain.CreateOrderCommand {
	return domain.CreateOrderCommand{
		CustomerID:    1,
		ShippingPrice: decimal.NewFromInt(500),
		Items: []domain.CreateOrderItem{
			{ProductID: 10, Quantity: 1, UnitPrice: decimal.NewFromInt(25000)},
		},
	}
}

func TestOrderService_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		orderRepo := mocks.NewOrderRepositoryMock(t)
		svc := NewOrderService(orderRepo)

		cmd := validOrderCommand()
		created := &domain.Order{ID: 1, CustomerID: 1, Status: domain.OrderStatusPending}
		orderRepo.On("CreateOrder", mock.Anything, cmd).Return(created, nil).Once()

		order, err := svc.CreateOrder(ctx, cmd)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatusPending, order.Status)
		orderRepo.AssertExpectations(t)
	})

	t.Run("No items", func(t *testing.T) {
		orderRepo := mocks.NewOrderRepositoryMock(t)
		svc := NewOrderService(orderRepo)

		cmd := validOrderCommand()
		cmd.Items = nil

		_, err := svc.CreateOrder(ctx, cmd)
		assert.ErrorIs(t, err, domain.ErrInvalidOrder)
		orderRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("Negative shipping price", func(t *testing.T) {
		orderRepo := mocks.NewOrderRepositoryMock(t)
		svc := NewOrderService(orderRepo)

		cmd := validOrderCommand()
		cmd.ShippingPrice = decimal.NewFromInt(-1)

		_, err := svc.CreateOrder(ctx, cmd)
		assert.ErrorIs(t, err, domain.ErrInvalidOrder)
	})

	t.Run("Zero quantity line", func(t *testing.T) {
		orderRepo := mocks.NewOrderRepositoryMock(t)
		svc := NewOrderService(orderRepo)

		cmd := validOrderCommand()
		cmd.Items[0].Quantity = 0

		_, err := svc.CreateOrder(ctx, cmd)
		assert.ErrorIs(t, err, domain.ErrInvalidOrder)
	})

	t.Run("Repository failure propagates", func(t *testing.T) {
		orderRepo := mocks.NewOrderRepositoryMock(t)
		svc := NewOrderService(orderRepo)

		cmd := validOrderCommand()
		orderRepo.On("CreateOrder", mock.Anything, cmd).Return(nil, errors.New("database error")).Once()

		_, err := svc.CreateOrder(ctx, cmd)
		assert.Error(t, err)
	})
}

func TestOrderService_GetOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		orderRepo := mocks.NewOrderRepositoryMock(t)
		svc := NewOrderService(orderRepo)

		orders := []*domain.Order{
			{ID: 1, CustomerID: 7, Status: domain.OrderStatusShipped},
			{ID: 2, CustomerID: 7, Status: domain.OrderStatusDelivered},
		}
		orderRepo.On("GetOrdersByCustomerID", mock.Anything, int64(7)).Return(orders, nil).Once()

		got, err := svc.GetOrders(ctx, 7)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("Invalid customer ID", func(t *testing.T) {
		orderRepo := mocks.NewOrderRepositoryMock(t)
		svc := NewOrderService(orderRepo)

		_, err := svc.GetOrders(ctx, 0)
		assert.ErrorIs(t, err, ErrInvalidInput)
		orderRepo.AssertNotCalled(t, "GetOrdersByCustomerID", mock.Anything, mock.Anything)
	})
}
