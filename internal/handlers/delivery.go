package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/velodz/backoffice/internal/domain"
	"github.com/velodz/backoffice/internal/service"
	"go.uber.org/zap"
)

// DeliveryHandler serves the manual courier flows
type DeliveryHandler struct {
	deliveryService domain.DeliveryService
	logger          *zap.Logger
}

// NewDeliveryHandler creates a new DeliveryHandler
func NewDeliveryHandler(deliveryService domain.DeliveryService, logger *zap.Logger) *DeliveryHandler {
	return &DeliveryHandler{
		deliveryService: deliveryService,
		logger:          logger,
	}
}

type confirmDeliveryRequest struct {
	DeliveryPersonID int64 `json:"delivery_person_id"`
}

// ConfirmDelivery records a courier hand-off for an order
func (h *DeliveryHandler) ConfirmDelivery(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	var req confirmDeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	cmd := domain.ConfirmDeliveryCommand{OrderID: orderID, DeliveryPersonID: req.DeliveryPersonID}
	if err := h.deliveryService.ConfirmDelivery(r.Context(), cmd); err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound), errors.Is(err, domain.ErrUserNotFound):
			http.Error(w, "Not Found", http.StatusNotFound)
		case errors.Is(err, service.ErrInvalidInput):
			http.Error(w, "Bad Request", http.StatusBadRequest)
		default:
			h.logger.Error("failed to confirm delivery", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

// ReturnDelivery records a failed delivery for an order
func (h *DeliveryHandler) ReturnDelivery(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	cmd := domain.ReturnDeliveryCommand{OrderID: orderID}
	if err := h.deliveryService.ReturnDelivery(r.Context(), cmd); err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			http.Error(w, "Not Found", http.StatusNotFound)
		case errors.Is(err, service.ErrOrderAlreadyReturned):
			http.Error(w, "Conflict", http.StatusConflict)
		case errors.Is(err, service.ErrInvalidInput):
			http.Error(w, "Bad Request", http.StatusBadRequest)
		default:
			h.logger.Error("failed to return delivery", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

type withdrawResponse struct {
	Amount decimal.Decimal `json:"amount"`
}

// WithdrawBalance settles a delivery person's pending balance
func (h *DeliveryHandler) WithdrawBalance(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	cmd := domain.WithdrawBalanceCommand{DeliveryPersonID: userID}
	amount, err := h.deliveryService.WithdrawBalance(r.Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoPendingBalance):
			http.Error(w, "Unprocessable Entity", http.StatusUnprocessableEntity)
		case errors.Is(err, domain.ErrUserNotFound):
			http.Error(w, "Not Found", http.StatusNotFound)
		case errors.Is(err, service.ErrInvalidInput):
			http.Error(w, "Bad Request", http.StatusBadRequest)
		default:
			h.logger.Error("failed to withdraw balance", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(withdrawResponse{Amount: amount}); err != nil {
		h.logger.Error("failed to encode withdraw response", zap.Error(err))
	}
}
