package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/velodz/backoffice/internal/domain"
	domainmocks "github.com/velodz/backoffice/internal/domain/mocks"
	"github.com/velodz/backoffice/internal/service"
	"go.uber.org/zap"
)

func newTestPool(orderRepo domain.OrderRepository, reconciler domain.ReconcileService) *Pool {
	cfg := PoolConfig{
		Workers:      1,
		QueueSize:    10,
		ScanInterval: time.Second,
	}
	return NewPool(cfg, orderRepo, reconciler, zap.NewNop())
}

func TestPool_ProcessOrder(t *testing.T) {
	mockOrderRepo := domainmocks.NewOrderRepositoryMock(t)
	mockReconciler := domainmocks.NewReconcileServiceMock(t)

	pool := newTestPool(mockOrderRepo, mockReconciler)

	ctx := context.Background()
	tracking := "trk-1"
	order := &domain.Order{ID: 1, Status: domain.OrderStatusShipped, TrackingID: &tracking}

	mockReconciler.On("SyncOrder", mock.Anything, order).Return(true, nil).Once()

	pool.processOrder(ctx, order)

	mockReconciler.AssertExpectations(t)
}

func TestPool_ProcessOrder_SyncError(t *testing.T) {
	mockOrderRepo := domainmocks.NewOrderRepositoryMock(t)
	mockReconciler := domainmocks.NewReconcileServiceMock(t)

	pool := newTestPool(mockOrderRepo, mockReconciler)

	ctx := context.Background()
	tracking := "trk-1"
	order := &domain.Order{ID: 1, Status: domain.OrderStatusShipped, TrackingID: &tracking}

	mockReconciler.On("SyncOrder", mock.Anything, order).Return(false, errors.New("agency down")).Once()

	pool.processOrder(ctx, order)

	mockReconciler.AssertExpectations(t)
}

func TestPool_ProcessOrder_RateLimitBackoff(t *testing.T) {
	mockOrderRepo := domainmocks.NewOrderRepositoryMock(t)
	mockReconciler := domainmocks.NewReconcileServiceMock(t)

	pool := newTestPool(mockOrderRepo, mockReconciler)

	ctx := context.Background()
	tracking := "trk-1"
	order := &domain.Order{ID: 1, Status: domain.OrderStatusShipped, TrackingID: &tracking}

	mockReconciler.On("SyncOrder", mock.Anything, order).
		Return(false, service.NewRateLimitError(50*time.Millisecond)).Once()

	start := time.Now()
	pool.processOrder(ctx, order)

	if time.Since(start) < 50*time.Millisecond {
		t.Error("expected processOrder to back off for the Retry-After duration")
	}
	mockReconciler.AssertExpectations(t)
}

func TestPool_ProcessOrder_RateLimitCanceledContext(t *testing.T) {
	mockOrderRepo := domainmocks.NewOrderRepositoryMock(t)
	mockReconciler := domainmocks.NewReconcileServiceMock(t)

	pool := newTestPool(mockOrderRepo, mockReconciler)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tracking := "trk-1"
	order := &domain.Order{ID: 1, Status: domain.OrderStatusShipped, TrackingID: &tracking}

	mockReconciler.On("SyncOrder", mock.Anything, order).
		Return(false, service.NewRateLimitError(time.Hour)).Once()

	done := make(chan struct{})
	go func() {
		pool.processOrder(ctx, order)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("expected canceled context to cut the backoff short")
	}
}

func TestPool_ScanOpenShipments(t *testing.T) {
	mockOrderRepo := domainmocks.NewOrderRepositoryMock(t)
	mockReconciler := domainmocks.NewReconcileServiceMock(t)

	pool := newTestPool(mockOrderRepo, mockReconciler)

	ctx := context.Background()
	tracking := "trk-1"

	openOrders := []*domain.Order{
		{ID: 1, Status: domain.OrderStatusShipped, TrackingID: &tracking},
		{ID: 2, Status: domain.OrderStatusOutForDelivery, TrackingID: &tracking},
	}

	mockOrderRepo.On("GetOpenShipments", mock.Anything, domain.ReconcileScope{All: true}).
		Return(openOrders, nil).Once()

	pool.scanOpenShipments(ctx)

	select {
	case order := <-pool.queue:
		if order.ID != 1 && order.ID != 2 {
			t.Errorf("unexpected order in queue: %d", order.ID)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("expected order in queue, got timeout")
	}
}

func TestPool_ScanOpenShipments_FullQueueSkips(t *testing.T) {
	mockOrderRepo := domainmocks.NewOrderRepositoryMock(t)
	mockReconciler := domainmocks.NewReconcileServiceMock(t)

	cfg := PoolConfig{Workers: 1, QueueSize: 1, ScanInterval: time.Second}
	pool := NewPool(cfg, mockOrderRepo, mockReconciler, zap.NewNop())

	ctx := context.Background()
	tracking := "trk-1"

	openOrders := []*domain.Order{
		{ID: 1, Status: domain.OrderStatusShipped, TrackingID: &tracking},
		{ID: 2, Status: domain.OrderStatusShipped, TrackingID: &tracking},
	}

	mockOrderRepo.On("GetOpenShipments", mock.Anything, domain.ReconcileScope{All: true}).
		Return(openOrders, nil).Once()

	// second order does not fit and waits for the next sweep
	pool.scanOpenShipments(ctx)

	if len(pool.queue) != 1 {
		t.Errorf("expected exactly one queued order, got %d", len(pool.queue))
	}
}

func TestPool_StartStop(t *testing.T) {
	mockOrderRepo := domainmocks.NewOrderRepositoryMock(t)
	mockReconciler := domainmocks.NewReconcileServiceMock(t)

	cfg := PoolConfig{Workers: 2, QueueSize: 10, ScanInterval: time.Hour}
	pool := NewPool(cfg, mockOrderRepo, mockReconciler, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)

	cancel()

	done := make(chan struct{})
	go func() {
		pool.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("expected pool to stop after context cancellation")
	}
}

func TestPool_StopDuringScan(t *testing.T) {
	mockOrderRepo := domainmocks.NewOrderRepositoryMock(t)
	mockReconciler := domainmocks.NewReconcileServiceMock(t)

	tracking := "trk-1"
	openOrders := make([]*domain.Order, 100)
	for i := range openOrders {
		openOrders[i] = &domain.Order{ID: int64(i + 1), Status: domain.OrderStatusShipped, TrackingID: &tracking}
	}

	mockOrderRepo.On("GetOpenShipments", mock.Anything, domain.ReconcileScope{All: true}).
		Return(openOrders, nil)
	mockReconciler.On("SyncOrder", mock.Anything, mock.Anything).Return(false, nil)

	// tiny queue and interval keep the scanner enqueuing while Stop runs
	cfg := PoolConfig{Workers: 1, QueueSize: 1, ScanInterval: time.Millisecond}
	pool := NewPool(cfg, mockOrderRepo, mockReconciler, zap.NewNop())

	pool.Start(context.Background())
	time.Sleep(10 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		pool.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("expected pool to stop while a scan is in flight")
	}
}
