package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/velodz/backoffice/internal/domain"
	"go.uber.org/zap"
)

// ReconcileService pulls carrier statuses for open shipments and folds
// them into the canonical order lifecycle.
type ReconcileService struct {
	orderRepo domain.OrderRepository
	agency    domain.AgencyClient
	logger    *zap.Logger
}

// NewReconcileService creates a new ReconcileService
func NewReconcileService(orderRepo domain.OrderRepository, agency domain.AgencyClient, logger *zap.Logger) *ReconcileService {
	return &ReconcileService{
		orderRepo: orderRepo,
		agency:    agency,
		logger:    logger,
	}
}

// Reconcile synchronizes every open shipment in scope and returns how
// many orders were actually mutated. Per-order failures (agency timeout,
// lost race on the row lock) skip that order and never abort the batch;
// only a failure to read the candidate set is a hard error.
func (s *ReconcileService) Reconcile(ctx context.Context, scope domain.ReconcileScope) (int, error) {
	if err := scope.Validate(); err != nil {
		return 0, err
	}

	orders, err := s.orderRepo.GetOpenShipments(ctx, scope)
	if err != nil {
		return 0, fmt.Errorf("reconcile service: failed to get open shipments: %w", err)
	}

	updated := 0
	for _, order := range orders {
		changed, err := s.SyncOrder(ctx, order)
		if err != nil {
			s.logger.Warn("skipping order after sync failure",
				zap.Int64("order_id", order.ID),
				zap.Error(err),
			)
			continue
		}
		if changed {
			updated++
		}
	}

	return updated, nil
}

// SyncOrder reconciles a single order against the agency. Unknown raw
// statuses, unchanged statuses and backward transitions are quiet no-ops;
// the monotonicity guard is re-checked inside the store's transaction, so
// the pre-check here is only a cheap shortcut.
func (s *ReconcileService) SyncOrder(ctx context.Context, order *domain.Order) (bool, error) {
	if order.TrackingID == nil {
		return false, nil
	}

	raw, err := s.agency.FetchStatus(ctx, *order.TrackingID)
	if err != nil {
		if errors.Is(err, domain.ErrShipmentNotFound) {
			// not registered with the carrier yet, nothing to fold in
			return false, nil
		}
		return false, fmt.Errorf("reconcile service: failed to fetch status for order %d: %w", order.ID, err)
	}

	mapped, ok := domain.MapAgencyStatus(raw)
	if !ok {
		s.logger.Debug("unknown agency status",
			zap.Int64("order_id", order.ID),
			zap.String("raw_status", raw),
		)
		return false, nil
	}

	if mapped == order.Status || !order.Status.CanTransitionTo(mapped) {
		return false, nil
	}

	changed, err := s.orderRepo.ApplyStatus(ctx, order.ID, mapped)
	if err != nil {
		return false, fmt.Errorf("reconcile service: failed to apply status %s to order %d: %w", mapped, order.ID, err)
	}

	if changed {
		s.logger.Info("order status reconciled",
			zap.Int64("order_id", order.ID),
			zap.String("from", string(order.Status)),
			zap.String("to", string(mapped)),
		)
	}

	return changed, nil
}
