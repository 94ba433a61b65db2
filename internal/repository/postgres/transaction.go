package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/velodz/backoffice/internal/domain"
)

// TransactionRepository implements domain.TransactionRepository
type TransactionRepository struct {
	db DBTX
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db DBTX) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// CreateTransaction appends one ledger entry. Entries are never updated
// or deleted afterwards.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, amount decimal.Decimal, direction domain.TransactionDirection, txType domain.TransactionType, description string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO transactions (amount, direction, type, description)
		 VALUES ($1, $2, $3, $4)`,
		amount, direction, txType, description,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to create %s transaction: %w", txType, err)
	}
	return nil
}

// WithdrawBalance settles a delivery person's full pending balance under
// a per-user advisory lock, so concurrent settlements cannot both read
// the same balance. The second caller finds zero and fails.
func (r *TransactionRepository) WithdrawBalance(ctx context.Context, deliveryPersonID int64) (decimal.Decimal, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("repository: failed to begin withdrawal for user %d: %w", deliveryPersonID, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	_, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, deliveryPersonID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("repository: failed to acquire lock for user %d: %w", deliveryPersonID, err)
	}

	var balance decimal.Decimal
	err = tx.QueryRow(ctx,
		`SELECT pending_balance FROM users WHERE id = $1`,
		deliveryPersonID,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, ErrUserNotFound
		}
		return decimal.Zero, fmt.Errorf("repository: failed to get balance for user %d: %w", deliveryPersonID, err)
	}

	if !balance.IsPositive() {
		return decimal.Zero, ErrNoPendingBalance
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO transactions (amount, direction, type, description)
		 VALUES ($1, $2, $3, $4)`,
		balance, domain.TransactionIn, domain.TransactionTypeDeliveryPayment,
		fmt.Sprintf("delivery person %d settled", deliveryPersonID),
	)
	if err != nil {
		return decimal.Zero, fmt.Errorf("repository: failed to record settlement for user %d: %w", deliveryPersonID, err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE users SET pending_balance = 0 WHERE id = $1`,
		deliveryPersonID,
	)
	if err != nil {
		return decimal.Zero, fmt.Errorf("repository: failed to reset balance for user %d: %w", deliveryPersonID, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("repository: failed to commit withdrawal for user %d: %w", deliveryPersonID, err)
	}

	return balance, nil
}
