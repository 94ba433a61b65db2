package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the settlement state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "PENDING"
	InvoiceStatusReceived  InvoiceStatus = "RECEIVED"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// TransactionDirection represents the sign of a ledger entry
type TransactionDirection string

const (
	TransactionIn  TransactionDirection = "IN"
	TransactionOut TransactionDirection = "OUT"
)

// TransactionType represents the business event behind a ledger entry
type TransactionType string

const (
	TransactionTypeSale            TransactionType = "SALE"
	TransactionTypeExpense         TransactionType = "EXPENSE"
	TransactionTypeDeliveryPayment TransactionType = "DELIVERY_PAYMENT"
	TransactionTypeReturn          TransactionType = "RETURN"
)

// UserRole represents the staff role of a back-office user
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleStaff    UserRole = "STAFF"
	RoleDelivery UserRole = "DELIVERY"
)

// User represents a back-office user. Delivery personnel carry a pending
// balance of shipping fees owed to them, settled via WithdrawBalance.
type User struct {
	ID             int64           `json:"id"`
	Login          string          `json:"login"`
	PasswordHash   string          `json:"-"` // never serialized
	Role           UserRole        `json:"role"`
	PendingBalance decimal.Decimal `json:"pending_balance"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Customer represents a shop customer
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Wilaya    string    `json:"wilaya"`
	CreatedAt time.Time `json:"created_at"`
}

// Product represents a catalog item. Stock and buying price feed the
// inventory valuation; both may instead be tracked per variant.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	BuyingPrice decimal.Decimal `json:"buying_price"`
	Stock       int             `json:"stock"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ProductVariant represents one sellable variation of a product
type ProductVariant struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	Name        string          `json:"name"`
	BuyingPrice decimal.Decimal `json:"buying_price"`
	Stock       int             `json:"stock"`
}

// Order represents one purchase transaction. TrackingID is set once the
// order is handed to a delivery agency and is the precondition for
// reconciliation; DeliveredAt is set exactly once.
type Order struct {
	ID               int64           `json:"id"`
	CustomerID       int64           `json:"customer_id"`
	DeliveryPersonID *int64          `json:"delivery_person_id,omitempty"`
	Status           OrderStatus     `json:"status"`
	TrackingID       *string         `json:"tracking_id,omitempty"`
	Total            decimal.Decimal `json:"total"`
	ShippingPrice    decimal.Decimal `json:"shipping_price"`
	DeliveredAt      *time.Time      `json:"delivered_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	Items            []OrderItem     `json:"items,omitempty"`
}

// OrderItem represents one line of an order
type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"-"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Invoice tracks the settlement state derived from its order's delivery
// outcome: RECEIVED once delivered, CANCELLED once canceled or returned.
type Invoice struct {
	ID        int64         `json:"id"`
	OrderID   int64         `json:"order_id"`
	Status    InvoiceStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// Transaction is one append-only ledger entry. Amount is always positive;
// the direction carries the sign. The cashbox balance is the signed sum
// over all entries.
type Transaction struct {
	ID          int64                `json:"id"`
	Amount      decimal.Decimal      `json:"amount"`
	Direction   TransactionDirection `json:"direction"`
	Type        TransactionType      `json:"type"`
	Description string               `json:"description"`
	CreatedAt   time.Time            `json:"created_at"`
}

// FinanceReport is the reporting tuple derived from the current
// order/ledger/catalog snapshot. Pure read, no side effects.
type FinanceReport struct {
	Revenue         decimal.Decimal `json:"revenue"`
	Expenses        decimal.Decimal `json:"expenses"`
	Profit          decimal.Decimal `json:"profit"`
	Cashbox         decimal.Decimal `json:"cashbox"`
	InventoryValue  decimal.Decimal `json:"inventory_value"`
	ZakatableAssets decimal.Decimal `json:"zakatable_assets"`
	Zakat           decimal.Decimal `json:"zakat"`
	DeliveredOrders int64           `json:"delivered_orders"`
	PendingInvoices int64           `json:"pending_invoices"`
}

// FinanceSnapshot holds the raw aggregates read from the store in one
// consistent read transaction. Derived figures live in FinanceReport.
type FinanceSnapshot struct {
	Revenue         decimal.Decimal
	Expenses        decimal.Decimal
	Cashbox         decimal.Decimal
	InventoryValue  decimal.Decimal
	DeliveredOrders int64
	PendingInvoices int64
}
