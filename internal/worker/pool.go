package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/velodz/backoffice/internal/domain"
	"github.com/velodz/backoffice/internal/service"
	"go.uber.org/zap"
)

// PoolConfig holds the worker pool settings
type PoolConfig struct {
	Workers      int
	QueueSize    int
	ScanInterval time.Duration
}

// Pool periodically sweeps all open shipments and reconciles each one
// against the delivery agency. It is the automated counterpart of the
// manual reconciliation trigger and shares its per-order path.
type Pool struct {
	workers      int
	queue        chan *domain.Order
	stop         chan struct{}
	orderRepo    domain.OrderRepository
	reconciler   domain.ReconcileService
	logger       *zap.Logger
	workerWG     sync.WaitGroup
	scannerWG    sync.WaitGroup
	scanInterval time.Duration
}

// NewPool creates a new worker pool
func NewPool(cfg PoolConfig, orderRepo domain.OrderRepository, reconciler domain.ReconcileService, logger *zap.Logger) *Pool {
	return &Pool{
		workers:      cfg.Workers,
		queue:        make(chan *domain.Order, cfg.QueueSize),
		stop:         make(chan struct{}),
		orderRepo:    orderRepo,
		reconciler:   reconciler,
		logger:       logger,
		scanInterval: cfg.ScanInterval,
	}
}

// Start launches the workers and the shipment scanner
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.workerWG.Add(1)
		go p.worker(ctx, i)
	}

	p.scannerWG.Add(1)
	go p.scanner(ctx)
}

// Stop drains the pool and waits for workers to finish. The scanner is
// stopped before the queue is closed, so a scan in flight can never send
// on a closed channel.
func (p *Pool) Stop() {
	close(p.stop)
	p.scannerWG.Wait()
	close(p.queue)
	p.workerWG.Wait()
}

// worker reconciles orders from the queue
func (p *Pool) worker(ctx context.Context, id int) {
	defer p.workerWG.Done()

	p.logger.Info("worker started", zap.Int("worker_id", id))

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("worker stopping", zap.Int("worker_id", id))
			return
		case order, ok := <-p.queue:
			if !ok {
				return
			}
			p.processOrder(ctx, order)
		}
	}
}

// scanner periodically enqueues all open shipments
func (p *Pool) scanner(ctx context.Context) {
	defer p.scannerWG.Done()

	ticker := time.NewTicker(p.scanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("scanner stopping")
			return
		case <-p.stop:
			p.logger.Info("scanner stopping")
			return
		case <-ticker.C:
			p.scanOpenShipments(ctx)
		}
	}
}

// scanOpenShipments loads the current reconciliation candidates and
// feeds them to the workers. A full queue means the order waits for the
// next scan.
func (p *Pool) scanOpenShipments(ctx context.Context) {
	orders, err := p.orderRepo.GetOpenShipments(ctx, domain.ReconcileScope{All: true})
	if err != nil {
		p.logger.Error("failed to get open shipments", zap.Error(err))
		return
	}

	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case <-p.stop:
			return
		case p.queue <- order:
		default:
			p.logger.Warn("queue is full, skipping order", zap.Int64("order_id", order.ID))
		}
	}
}

// processOrder reconciles one order
func (p *Pool) processOrder(ctx context.Context, order *domain.Order) {
	p.logger.Debug("reconciling order", zap.Int64("order_id", order.ID))

	changed, err := p.reconciler.SyncOrder(ctx, order)
	if err != nil {
		var rateLimitErr *service.RateLimitError
		if errors.As(err, &rateLimitErr) {
			p.logger.Warn("agency rate limit exceeded",
				zap.Int64("order_id", order.ID),
				zap.Duration("retry_after", rateLimitErr.RetryAfter),
			)
			select {
			case <-time.After(rateLimitErr.RetryAfter):
			case <-ctx.Done():
			}
			return
		}

		p.logger.Error("failed to reconcile order",
			zap.Int64("order_id", order.ID),
			zap.Error(err),
		)
		return
	}

	if changed {
		p.logger.Info("order reconciled", zap.Int64("order_id", order.ID))
	}
}
