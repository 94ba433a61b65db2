package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/velodz/backoffice/internal/domain"
)

// OrderService implements order intake and listing
type OrderService struct {
	orderRepo domain.OrderRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo domain.OrderRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
	}
}

// CreateOrder validates and persists a new PENDING order
func (s *OrderService) CreateOrder(ctx context.Context, cmd domain.CreateOrderCommand) (*domain.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.CreateOrder(ctx, cmd)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidOrder) {
			return nil, err
		}
		return nil, fmt.Errorf("order service: failed to create order: %w", err)
	}

	return order, nil
}

// GetOrders lists one customer's orders
func (s *OrderService) GetOrders(ctx context.Context, customerID int64) ([]*domain.Order, error) {
	if customerID <= 0 {
		return nil, ErrInvalidInput
	}

	orders, err := s.orderRepo.GetOrdersByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("order service: failed to get orders for customer %d: %w", customerID, err)
	}

	return orders, nil
}
