package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/velodz/backoffice/internal/domain"
	"go.uber.org/zap"
)

// FinanceHandler serves the financial report
type FinanceHandler struct {
	financeService domain.FinanceService
	logger         *zap.Logger
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(financeService domain.FinanceService, logger *zap.Logger) *FinanceHandler {
	return &FinanceHandler{
		financeService: financeService,
		logger:         logger,
	}
}

// Report returns the derived financial figures. Read-only and safe to
// call repeatedly.
func (h *FinanceHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.financeService.Report(r.Context())
	if err != nil {
		h.logger.Error("failed to build finance report", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		h.logger.Error("failed to encode finance report", zap.Error(err))
	}
}
