package app

import (
	"go-settlement/internal/config"
	"go-settlement/internal/employee"
	"go-settlement/internal/employeesalary"
	"go-settlement/internal/messaging/kafka"
	"go-settlement/internal/middleware"
	"go-settlement/internal/rbac"
	"go-settlement/internal/rbac/infra"
	"go-settlement/internal/settlement"
	"go-settlement/internal/settlement/store"
	"go-settlement/internal/shared/counter"
	"go-settlement/internal/subcontract"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// newSettlementService wires the generation engine. The API and the
// consumer share it so both paths run the same idempotent generation.
func newSettlementService(cfg config.Config, db *gorm.DB, logger *zap.Logger) settlement.Service {
	var settlementStore settlement.Store
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		logger.Warn("settlement store is in-memory, records are lost on restart")
		settlementStore = store.NewMemory()
	default:
		settlementStore = settlement.NewRepository(db)
	}

	clock := settlement.SystemClock{}
	generator := settlement.NewGenerator(
		settlementStore,
		settlement.NewDefaultResolverSet(employee.NewRepository(db), subcontract.NewRepository(db)),
		settlement.GeneratorConfig{Concurrency: cfg.GenerationConcurrency, Clock: clock},
		logger,
	)
	lifecycle := settlement.NewLifecycle(settlementStore, clock, logger)
	publisher := settlement.NewOutboxEventPublisher(kafka.NewOutboxRepository(db))

	return settlement.NewServiceWithEvents(settlementStore, generator, lifecycle, publisher, logger)
}

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	counterRepo := counter.NewRepository(db)
	employeeRepo := employee.NewRepository(db)
	employeeSalaryRepo := employeesalary.NewRepository(db)
	subcontractRepo := subcontract.NewRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(cfg.RBACModelPath, cfg.RBACPolicyPath)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)
	authenticator := middleware.NewJWTAuthenticator(cfg.JWTSecret)

	// --- Services ---
	employeeService := employee.NewService(employeeRepo, counterRepo, rdb, logger)
	employeeSalaryService := employeesalary.NewService(employeeSalaryRepo, logger)
	subcontractService := subcontract.NewService(subcontractRepo, counterRepo, logger)
	settlementService := newSettlementService(cfg, db, logger)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, logger)
	employeeSalaryHandler := employeesalary.NewHandler(employeeSalaryService, logger)
	subcontractHandler := subcontract.NewHandler(subcontractService, logger)
	settlementHandler := settlement.NewHandlerWithRedis(settlementService, rdb, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, authenticator, rbacService, logger)
		employeesalary.RegisterRoutes(api, employeeSalaryHandler, authenticator, rbacService)
		subcontract.RegisterRoutes(api, subcontractHandler, authenticator, rbacService, logger)
		settlement.RegisterRoutes(api, settlementHandler, authenticator, rbacService, logger, rdb)
	}

	return nil
}
