package app

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/velodz/backoffice/internal/handlers"
	"github.com/velodz/backoffice/internal/utils/jwt"
	"go.uber.org/zap"
)

// setupRouter creates and configures the router
func setupRouter(deps *dependencies, jwtManager *jwt.Manager, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	setupMiddleware(r, logger)
	setupRoutes(r, deps, jwtManager)

	return r
}

// setupMiddleware wires the global middleware
func setupMiddleware(r *chi.Mux, logger *zap.Logger) {
	r.Use(handlers.RequestIDMiddleware())
	r.Use(handlers.LoggingMiddleware(logger))
	r.Use(handlers.RecoveryMiddleware(logger))
	r.Use(middleware.Compress(5))
}

// setupRoutes wires the application routes
func setupRoutes(r *chi.Mux, deps *dependencies, jwtManager *jwt.Manager) {
	// health checks
	r.Get("/health", deps.handlers.health.Health)
	r.Get("/ready", deps.handlers.health.Ready)

	// public endpoints
	r.Post("/api/staff/register", deps.handlers.auth.Register)
	r.Post("/api/staff/login", deps.handlers.auth.Login)

	// protected endpoints
	r.Group(func(r chi.Router) {
		r.Use(handlers.AuthMiddleware(jwtManager))
		r.Post("/api/orders", deps.handlers.orders.CreateOrder)
		r.Get("/api/orders", deps.handlers.orders.GetOrders)
		r.Post("/api/orders/reconcile", deps.handlers.orders.Reconcile)
		r.Post("/api/orders/{orderID}/confirm", deps.handlers.delivery.ConfirmDelivery)
		r.Post("/api/orders/{orderID}/return", deps.handlers.delivery.ReturnDelivery)
		r.Post("/api/delivery-persons/{userID}/withdraw", deps.handlers.delivery.WithdrawBalance)
		r.Get("/api/reports/finance", deps.handlers.finance.Report)
	})
}
