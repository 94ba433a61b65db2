package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/velodz/backoffice/internal/domain"
)

const orderColumns = `id, customer_id, delivery_person_id, status, tracking_id, total, shipping_price, delivered_at, created_at`

// OrderRepository implements domain.OrderRepository
type OrderRepository struct {
	db DBTX
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	order := &domain.Order{}
	err := row.Scan(
		&order.ID, &order.CustomerID, &order.DeliveryPersonID, &order.Status,
		&order.TrackingID, &order.Total, &order.ShippingPrice, &order.DeliveredAt,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// CreateOrder inserts a PENDING order with its items and an open invoice
// in one transaction. The total is the item sum plus shipping.
func (r *OrderRepository) CreateOrder(ctx context.Context, cmd domain.CreateOrderCommand) (*domain.Order, error) {
	total := cmd.ShippingPrice
	for _, item := range cmd.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to begin create order: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	order := &domain.Order{
		CustomerID:    cmd.CustomerID,
		Status:        domain.OrderStatusPending,
		Total:         total,
		ShippingPrice: cmd.ShippingPrice,
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO orders (customer_id, status, total, shipping_price)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		cmd.CustomerID, order.Status, total, cmd.ShippingPrice,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to create order: %w", err)
	}

	for _, item := range cmd.Items {
		var itemID int64
		err = tx.QueryRow(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, unit_price)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			order.ID, item.ProductID, item.Quantity, item.UnitPrice,
		).Scan(&itemID)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to create order item: %w", err)
		}
		order.Items = append(order.Items, domain.OrderItem{
			ID:        itemID,
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO invoices (order_id, status) VALUES ($1, $2)`,
		order.ID, domain.InvoiceStatusPending,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to create invoice for order %d: %w", order.ID, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository: failed to commit create order: %w", err)
	}

	return order, nil
}

// GetOrderByID gets an order by its ID
func (r *OrderRepository) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("repository: failed to get order %d: %w", id, err)
	}
	return order, nil
}

// GetOrdersByCustomerID gets all orders of one customer
func (r *OrderRepository) GetOrdersByCustomerID(ctx context.Context, customerID int64) ([]*domain.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC`,
		customerID,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to get orders for customer %d: %w", customerID, err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

// GetOpenShipments selects the reconciliation candidates: orders handed
// to an agency that have not reached a terminal status.
func (r *OrderRepository) GetOpenShipments(ctx context.Context, scope domain.ReconcileScope) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + `
		 FROM orders
		 WHERE tracking_id IS NOT NULL AND status NOT IN ($1, $2, $3)`
	args := []any{domain.OrderStatusDelivered, domain.OrderStatusReturned, domain.OrderStatusCanceled}

	if scope.CustomerID != nil {
		query += ` AND customer_id = $4`
		args = append(args, *scope.CustomerID)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to get open shipments: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func collectOrders(rows pgx.Rows) ([]*domain.Order, error) {
	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating orders: %w", err)
	}
	return orders, nil
}

// ApplyStatus moves an order forward and keeps its invoice consistent,
// all in one transaction. The current status is re-read under a row lock
// so the monotonicity guard holds against concurrent reconcilers: the
// loser of a race simply finds the guard false and no-ops.
func (r *OrderRepository) ApplyStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("repository: failed to begin status update for order %d: %w", orderID, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	var current domain.OrderStatus
	var deliveredAt *time.Time
	err = tx.QueryRow(ctx,
		`SELECT status, delivered_at FROM orders WHERE id = $1 FOR UPDATE`,
		orderID,
	).Scan(&current, &deliveredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrOrderNotFound
		}
		return false, fmt.Errorf("repository: failed to lock order %d: %w", orderID, err)
	}

	if !current.CanTransitionTo(status) {
		return false, nil
	}

	if status == domain.OrderStatusDelivered && deliveredAt == nil {
		_, err = tx.Exec(ctx,
			`UPDATE orders SET status = $1, delivered_at = now() WHERE id = $2`,
			status, orderID,
		)
	} else {
		_, err = tx.Exec(ctx,
			`UPDATE orders SET status = $1 WHERE id = $2`,
			status, orderID,
		)
	}
	if err != nil {
		return false, fmt.Errorf("repository: failed to update order %d status: %w", orderID, err)
	}

	switch status {
	case domain.OrderStatusDelivered:
		_, err = tx.Exec(ctx,
			`UPDATE invoices SET status = $1 WHERE order_id = $2 AND status = $3`,
			domain.InvoiceStatusReceived, orderID, domain.InvoiceStatusPending,
		)
	case domain.OrderStatusCanceled, domain.OrderStatusReturned:
		_, err = tx.Exec(ctx,
			`UPDATE invoices SET status = $1 WHERE order_id = $2 AND status = $3`,
			domain.InvoiceStatusCancelled, orderID, domain.InvoiceStatusPending,
		)
	}
	if err != nil {
		return false, fmt.Errorf("repository: failed to resolve invoice for order %d: %w", orderID, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("repository: failed to commit status update for order %d: %w", orderID, err)
	}

	return true, nil
}

// ConfirmDelivery records a courier hand-off: shipping fee onto the
// courier's pending balance, SALE entry for the order total, order marked
// delivered and its open invoice received. All-or-nothing. Delivery is
// terminal, so reconciliation would never revisit the invoice; it has to
// be resolved here.
func (r *OrderRepository) ConfirmDelivery(ctx context.Context, orderID, deliveryPersonID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository: failed to begin delivery confirmation for order %d: %w", orderID, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	order := &domain.Order{}
	err = tx.QueryRow(ctx,
		`SELECT id, total, shipping_price FROM orders WHERE id = $1 FOR UPDATE`,
		orderID,
	).Scan(&order.ID, &order.Total, &order.ShippingPrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("repository: failed to lock order %d: %w", orderID, err)
	}

	result, err := tx.Exec(ctx,
		`UPDATE users SET pending_balance = pending_balance + $1 WHERE id = $2`,
		order.ShippingPrice, deliveryPersonID,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to credit delivery person %d: %w", deliveryPersonID, err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO transactions (amount, direction, type, description)
		 VALUES ($1, $2, $3, $4)`,
		order.Total, domain.TransactionIn, domain.TransactionTypeSale,
		fmt.Sprintf("order %d delivered", orderID),
	)
	if err != nil {
		return fmt.Errorf("repository: failed to record sale for order %d: %w", orderID, err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE orders SET status = $1, delivery_person_id = $2, delivered_at = now() WHERE id = $3`,
		domain.OrderStatusDelivered, deliveryPersonID, orderID,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to mark order %d delivered: %w", orderID, err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE invoices SET status = $1 WHERE order_id = $2 AND status = $3`,
		domain.InvoiceStatusReceived, orderID, domain.InvoiceStatusPending,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to resolve invoice for order %d: %w", orderID, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("repository: failed to commit delivery confirmation for order %d: %w", orderID, err)
	}

	return nil
}

// ReturnDelivery records a failed delivery: every item's stock goes back
// to its product, the order is marked returned with its open invoice
// cancelled, and a nonzero shipping fee is booked as a RETURN expense.
// All-or-nothing.
func (r *OrderRepository) ReturnDelivery(ctx context.Context, orderID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository: failed to begin return for order %d: %w", orderID, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	order := &domain.Order{}
	err = tx.QueryRow(ctx,
		`SELECT id, status, shipping_price FROM orders WHERE id = $1 FOR UPDATE`,
		orderID,
	).Scan(&order.ID, &order.Status, &order.ShippingPrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("repository: failed to lock order %d: %w", orderID, err)
	}

	if order.Status == domain.OrderStatusReturned {
		return ErrOrderAlreadyReturned
	}

	rows, err := tx.Query(ctx,
		`SELECT product_id, quantity FROM order_items WHERE order_id = $1`,
		orderID,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to get items for order %d: %w", orderID, err)
	}

	type restock struct {
		productID int64
		quantity  int
	}
	var restocks []restock
	for rows.Next() {
		var rs restock
		if err := rows.Scan(&rs.productID, &rs.quantity); err != nil {
			rows.Close()
			return fmt.Errorf("repository: failed to scan order item: %w", err)
		}
		restocks = append(restocks, rs)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("repository: error iterating order items: %w", err)
	}

	for _, rs := range restocks {
		_, err = tx.Exec(ctx,
			`UPDATE products SET stock = stock + $1 WHERE id = $2`,
			rs.quantity, rs.productID,
		)
		if err != nil {
			return fmt.Errorf("repository: failed to restore stock for product %d: %w", rs.productID, err)
		}
	}

	_, err = tx.Exec(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`,
		domain.OrderStatusReturned, orderID,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to mark order %d returned: %w", orderID, err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE invoices SET status = $1 WHERE order_id = $2 AND status = $3`,
		domain.InvoiceStatusCancelled, orderID, domain.InvoiceStatusPending,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to resolve invoice for order %d: %w", orderID, err)
	}

	if order.ShippingPrice.IsPositive() {
		_, err = tx.Exec(ctx,
			`INSERT INTO transactions (amount, direction, type, description)
			 VALUES ($1, $2, $3, $4)`,
			order.ShippingPrice, domain.TransactionOut, domain.TransactionTypeReturn,
			fmt.Sprintf("order %d returned, shipping lost", orderID),
		)
		if err != nil {
			return fmt.Errorf("repository: failed to record return cost for order %d: %w", orderID, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("repository: failed to commit return for order %d: %w", orderID, err)
	}

	return nil
}
