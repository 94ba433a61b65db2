package domain

import "github.com/shopspring/decimal"

// ReconcileScope bounds which orders a reconciliation pass touches:
// either every open shipment, or a single customer's.
type ReconcileScope struct {
	CustomerID *int64
	All        bool
}

// Validate checks that exactly one scope dimension is set
func (s ReconcileScope) Validate() error {
	if s.All == (s.CustomerID != nil) {
		return ErrInvalidScope
	}
	return nil
}

// ConfirmDeliveryCommand records a courier's explicit delivery hand-off
type ConfirmDeliveryCommand struct {
	OrderID          int64
	DeliveryPersonID int64
}

// ReturnDeliveryCommand records a failed delivery coming back to the shop
type ReturnDeliveryCommand struct {
	OrderID int64
}

// WithdrawBalanceCommand settles a delivery person's pending balance
type WithdrawBalanceCommand struct {
	DeliveryPersonID int64
}

// CreateOrderItem is one requested line of a new order
type CreateOrderItem struct {
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
}

// CreateOrderCommand creates a new PENDING order at checkout
type CreateOrderCommand struct {
	CustomerID    int64
	ShippingPrice decimal.Decimal
	Items         []CreateOrderItem
}

// Validate checks the command's structural preconditions
func (c CreateOrderCommand) Validate() error {
	if c.CustomerID <= 0 || len(c.Items) == 0 {
		return ErrInvalidOrder
	}
	for _, item := range c.Items {
		if item.ProductID <= 0 || item.Quantity <= 0 || item.UnitPrice.IsNegative() {
			return ErrInvalidOrder
		}
	}
	if c.ShippingPrice.IsNegative() {
		return ErrInvalidOrder
	}
	return nil
}
