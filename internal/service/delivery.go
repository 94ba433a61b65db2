package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/velodz/backoffice/internal/domain"
	"github.com/velodz/backoffice/internal/repository/postgres"
)

// DeliveryService implements the manual courier flows: confirming a
// hand-off, taking back a failed delivery, settling a courier's balance.
type DeliveryService struct {
	orderRepo       domain.OrderRepository
	transactionRepo domain.TransactionRepository
}

// NewDeliveryService creates a new DeliveryService
func NewDeliveryService(orderRepo domain.OrderRepository, transactionRepo domain.TransactionRepository) *DeliveryService {
	return &DeliveryService{
		orderRepo:       orderRepo,
		transactionRepo: transactionRepo,
	}
}

// ConfirmDelivery records an explicit courier hand-off
func (s *DeliveryService) ConfirmDelivery(ctx context.Context, cmd domain.ConfirmDeliveryCommand) error {
	if cmd.OrderID <= 0 || cmd.DeliveryPersonID <= 0 {
		return ErrInvalidInput
	}

	err := s.orderRepo.ConfirmDelivery(ctx, cmd.OrderID, cmd.DeliveryPersonID)
	if err != nil {
		// keep sentinel errors unwrapped for the handler layer
		if errors.Is(err, postgres.ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		if errors.Is(err, postgres.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("delivery service: failed to confirm order %d: %w", cmd.OrderID, err)
	}

	return nil
}

// ReturnDelivery records a failed delivery coming back to the shop
func (s *DeliveryService) ReturnDelivery(ctx context.Context, cmd domain.ReturnDeliveryCommand) error {
	if cmd.OrderID <= 0 {
		return ErrInvalidInput
	}

	err := s.orderRepo.ReturnDelivery(ctx, cmd.OrderID)
	if err != nil {
		if errors.Is(err, postgres.ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		if errors.Is(err, postgres.ErrOrderAlreadyReturned) {
			return ErrOrderAlreadyReturned
		}
		return fmt.Errorf("delivery service: failed to return order %d: %w", cmd.OrderID, err)
	}

	return nil
}

// WithdrawBalance settles a delivery person's pending balance and
// returns the settled amount
func (s *DeliveryService) WithdrawBalance(ctx context.Context, cmd domain.WithdrawBalanceCommand) (decimal.Decimal, error) {
	if cmd.DeliveryPersonID <= 0 {
		return decimal.Zero, ErrInvalidInput
	}

	amount, err := s.transactionRepo.WithdrawBalance(ctx, cmd.DeliveryPersonID)
	if err != nil {
		if errors.Is(err, postgres.ErrNoPendingBalance) {
			return decimal.Zero, ErrNoPendingBalance
		}
		if errors.Is(err, postgres.ErrUserNotFound) {
			return decimal.Zero, domain.ErrUserNotFound
		}
		return decimal.Zero, fmt.Errorf("delivery service: failed to withdraw for user %d: %w", cmd.DeliveryPersonID, err)
	}

	return amount, nil
}
