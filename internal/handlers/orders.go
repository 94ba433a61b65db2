package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/velodz/backoffice/internal/domain"
	"github.com/velodz/backoffice/internal/service"
	"go.uber.org/zap"
)

// OrdersHandler serves order intake, listing and the reconciliation trigger
type OrdersHandler struct {
	orderService     domain.OrderService
	reconcileService domain.ReconcileService
	logger           *zap.Logger
}

// NewOrdersHandler creates a new OrdersHandler
func NewOrdersHandler(orderService domain.OrderService, reconcileService domain.ReconcileService, logger *zap.Logger) *OrdersHandler {
	return &OrdersHandler{
		orderService:     orderService,
		reconcileService: reconcileService,
		logger:           logger,
	}
}

type createOrderItemRequest struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type createOrderRequest struct {
	CustomerID    int64                    `json:"customer_id"`
	ShippingPrice decimal.Decimal          `json:"shipping_price"`
	Items         []createOrderItemRequest `json:"items"`
}

// CreateOrder creates a new PENDING order
func (h *OrdersHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	cmd := domain.CreateOrderCommand{
		CustomerID:    req.CustomerID,
		ShippingPrice: req.ShippingPrice,
	}
	for _, item := range req.Items {
		cmd.Items = append(cmd.Items, domain.CreateOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	order, err := h.orderService.CreateOrder(r.Context(), cmd)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidOrder) {
			http.Error(w, "Unprocessable Entity", http.StatusUnprocessableEntity)
			return
		}
		h.logger.Error("failed to create order", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(order); err != nil {
		h.logger.Error("failed to encode order response", zap.Error(err))
	}
}

// GetOrders lists one customer's orders
func (h *OrdersHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.ParseInt(r.URL.Query().Get("customer_id"), 10, 64)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	orders, err := h.orderService.GetOrders(r.Context(), customerID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to get orders", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(orders); err != nil {
		h.logger.Error("failed to encode orders response", zap.Error(err))
	}
}

type reconcileRequest struct {
	CustomerID *int64 `json:"customer_id,omitempty"`
	All        bool   `json:"all,omitempty"`
}

type reconcileResponse struct {
	UpdatedOrders int `json:"updated_orders"`
}

// Reconcile synchronizes open shipments with the delivery agency and
// reports how many orders changed
func (h *OrdersHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var req reconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	scope := domain.ReconcileScope{CustomerID: req.CustomerID, All: req.All}
	updated, err := h.reconcileService.Reconcile(r.Context(), scope)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidScope) {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to reconcile orders", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(reconcileResponse{UpdatedOrders: updated}); err != nil {
		h.logger.Error("failed to encode reconcile response", zap.Error(err))
	}
}
