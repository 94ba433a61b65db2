package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/velodz/backoffice/internal/domain"
)

// zakatRate is the shop's fixed 2.5% levy on cash-plus-inventory assets
var zakatRate = decimal.RequireFromString("0.025")

// FinanceService derives the reporting figures from a store snapshot.
// Pure read; repeated calls are safe and side-effect free.
type FinanceService struct {
	financeRepo domain.FinanceRepository
}

// NewFinanceService creates a new FinanceService
func NewFinanceService(financeRepo domain.FinanceRepository) *FinanceService {
	return &FinanceService{
		financeRepo: financeRepo,
	}
}

// Report computes revenue, expenses, profit, cashbox, inventory value
// and the zakat due from the current snapshot
func (s *FinanceService) Report(ctx context.Context) (*domain.FinanceReport, error) {
	snap, err := s.financeRepo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("finance service: failed to read snapshot: %w", err)
	}

	zakatable := snap.Cashbox.Add(snap.InventoryValue)

	return &domain.FinanceReport{
		Revenue:         snap.Revenue,
		Expenses:        snap.Expenses,
		Profit:          snap.Revenue.Sub(snap.Expenses),
		Cashbox:         snap.Cashbox,
		InventoryValue:  snap.InventoryValue,
		ZakatableAssets: zakatable,
		Zakat:           zakatable.Mul(zakatRate),
		DeliveredOrders: snap.DeliveredOrders,
		PendingInvoices: snap.PendingInvoices,
	}, nil
}
