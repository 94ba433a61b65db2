package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/velodz/backoffice/internal/domain"
)

// FinanceRepository implements domain.FinanceRepository
type FinanceRepository struct {
	db DBTX
}

// NewFinanceRepository creates a new FinanceRepository
func NewFinanceRepository(db DBTX) *FinanceRepository {
	return &FinanceRepository{db: db}
}

// Snapshot reads all reporting aggregates inside one read-only
// transaction so the figures come from a single consistent view.
func (r *FinanceRepository) Snapshot(ctx context.Context) (*domain.FinanceSnapshot, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("repository: failed to begin finance snapshot: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	snap := &domain.FinanceSnapshot{}

	err = tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(total), 0), COUNT(*) FROM orders WHERE status = $1`,
		domain.OrderStatusDelivered,
	).Scan(&snap.Revenue, &snap.DeliveredOrders)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to aggregate revenue: %w", err)
	}

	err = tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM transactions
		 WHERE direction = $1 AND type IN ($2, $3, $4)`,
		domain.TransactionOut,
		domain.TransactionTypeExpense, domain.TransactionTypeDeliveryPayment, domain.TransactionTypeReturn,
	).Scan(&snap.Expenses)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to aggregate expenses: %w", err)
	}

	err = tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(CASE WHEN direction = $1 THEN amount ELSE -amount END), 0)
		 FROM transactions`,
		domain.TransactionIn,
	).Scan(&snap.Cashbox)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to aggregate cashbox: %w", err)
	}

	// A product with variants is valued through its variants only; its
	// own stock and buying price are ignored in that case.
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(
			CASE WHEN EXISTS (SELECT 1 FROM product_variants pv WHERE pv.product_id = p.id)
				THEN (SELECT COALESCE(SUM(pv.buying_price * pv.stock), 0)
					  FROM product_variants pv WHERE pv.product_id = p.id)
				ELSE p.buying_price * p.stock
			END), 0)
		 FROM products p`,
	).Scan(&snap.InventoryValue)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to aggregate inventory value: %w", err)
	}

	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM invoices WHERE status = $1`,
		domain.InvoiceStatusPending,
	).Scan(&snap.PendingInvoices)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to count pending invoices: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository: failed to commit finance snapshot: %w", err)
	}

	return snap, nil
}
