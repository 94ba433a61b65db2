package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/velodz/backoffice/internal/config"
	"github.com/velodz/backoffice/internal/domain"
	"github.com/velodz/backoffice/internal/handlers"
	"github.com/velodz/backoffice/internal/repository/postgres"
	"github.com/velodz/backoffice/internal/service"
	"github.com/velodz/backoffice/internal/utils/jwt"
	"github.com/velodz/backoffice/internal/utils/password"
	"github.com/velodz/backoffice/internal/worker"
	"go.uber.org/zap"
)

// repositories holds all application repositories
type repositories struct {
	user        domain.UserRepository
	order       domain.OrderRepository
	transaction domain.TransactionRepository
	finance     domain.FinanceRepository
}

// services holds all application services
type services struct {
	auth      domain.AuthService
	order     domain.OrderService
	reconcile domain.ReconcileService
	delivery  domain.DeliveryService
	finance   domain.FinanceService
	agency    domain.AgencyClient
}

// handlerSet holds all HTTP handlers
type handlerSet struct {
	auth     *handlers.AuthHandler
	orders   *handlers.OrdersHandler
	delivery *handlers.DeliveryHandler
	finance  *handlers.FinanceHandler
	health   *handlers.HealthHandler
}

// dependencies holds the full dependency graph
type dependencies struct {
	repos      *repositories
	services   *services
	handlers   *handlerSet
	jwtManager *jwt.Manager
	workerPool *worker.Pool
}

// initDependencies builds the dependency graph
func initDependencies(cfg *config.Config, dbPool *pgxpool.Pool, logger *zap.Logger) *dependencies {
	repos := &repositories{
		user:        postgres.NewUserRepository(dbPool),
		order:       postgres.NewOrderRepository(dbPool),
		transaction: postgres.NewTransactionRepository(dbPool),
		finance:     postgres.NewFinanceRepository(dbPool),
	}

	passwordHasher := password.NewBCryptHasher(password.DefaultCost)
	jwtManager := jwt.NewManager(cfg.JWTSecret, cfg.JWTTokenTTL)

	agencyClient := service.NewAgencyClient(cfg.AgencyAddress, cfg.AgencyAPIToken)
	reconcileService := service.NewReconcileService(repos.order, agencyClient, logger)

	authServiceConfig := service.AuthServiceConfig{
		MinPasswordLength: cfg.MinPasswordLength,
	}
	svcs := &services{
		auth:      service.NewAuthService(repos.user, passwordHasher, jwtManager, authServiceConfig),
		order:     service.NewOrderService(repos.order),
		reconcile: reconcileService,
		delivery:  service.NewDeliveryService(repos.order, repos.transaction),
		finance:   service.NewFinanceService(repos.finance),
		agency:    agencyClient,
	}

	hdlrs := &handlerSet{
		auth:     handlers.NewAuthHandler(svcs.auth, logger),
		orders:   handlers.NewOrdersHandler(svcs.order, svcs.reconcile, logger),
		delivery: handlers.NewDeliveryHandler(svcs.delivery, logger),
		finance:  handlers.NewFinanceHandler(svcs.finance, logger),
		health:   handlers.NewHealthHandler(dbPool, logger),
	}

	workerPoolConfig := worker.PoolConfig{
		Workers:      cfg.WorkerPoolSize,
		QueueSize:    cfg.WorkerQueueSize,
		ScanInterval: cfg.WorkerScanInterval,
	}
	workerPool := worker.NewPool(workerPoolConfig, repos.order, svcs.reconcile, logger)

	return &dependencies{
		repos:      repos,
		services:   svcs,
		handlers:   hdlrs,
		jwtManager: jwtManager,
		workerPool: workerPool,
	}
}
