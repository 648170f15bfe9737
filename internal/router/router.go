package router

import (
	"time"

	"github.com/manpreet243/nishat-main/internal/config"
	"github.com/manpreet243/nishat-main/internal/handler"
	"github.com/manpreet243/nishat-main/internal/middleware"
	"github.com/manpreet243/nishat-main/internal/repository"
	"github.com/manpreet243/nishat-main/internal/service"
	"github.com/manpreet243/nishat-main/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	adjustmentRepo := repository.NewStockAdjustmentRepository(db)
	bottleLogRepo := repository.NewBottleLogRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	salesmanRepo := repository.NewSalesmanRepository(db)
	closingRepo := repository.NewClosingRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, salesmanRepo, cfg)
	saleSvc := service.NewSaleService(saleRepo, customerRepo, inventoryRepo, adjustmentRepo, bottleLogRepo)
	inventorySvc := service.NewInventoryService(inventoryRepo, adjustmentRepo)
	customerSvc := service.NewCustomerService(customerRepo, saleRepo, bottleLogRepo,
		log.With().Str("component", "customers").Logger())
	closingSvc := service.NewClosingService(closingRepo, saleRepo, expenseRepo, customerRepo,
		bottleLogRepo, adjustmentRepo, dispatcher,
		log.With().Str("component", "closings").Logger())
	expenseSvc := service.NewExpenseService(expenseRepo)
	salesmanSvc := service.NewSalesmanService(salesmanRepo, saleRepo)
	reminderSvc := service.NewReminderService(customerRepo)
	dashboardSvc := service.NewDashboardService(customerRepo, saleRepo, expenseRepo, inventoryRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	customersH := handler.NewCustomersHandler(customerSvc, saleSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	expensesH := handler.NewExpensesHandler(expenseSvc)
	salesmenH := handler.NewSalesmenHandler(salesmanSvc)
	closingsH := handler.NewClosingsHandler(closingSvc)
	remindersH := handler.NewRemindersHandler(reminderSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/salesman-login", middleware.LoginRateLimiter(), authH.SalesmanLogin)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	admin := middleware.RequireRole("admin")
	anyRole := middleware.RequireRole("admin", "salesman")
	v1 := r.Group("/v1", jwtMW)
	{
		// Customers — salesmen see the book, only admin changes it
		v1.GET("/customers", anyRole, customersH.List)
		v1.GET("/customers/:id", anyRole, customersH.Get)
		v1.GET("/customers/:id/reminder", anyRole, remindersH.ForCustomer)
		customers := v1.Group("/customers", admin)
		{
			customers.POST("", customersH.Create)
			customers.PUT("/:id", customersH.Update)
			customers.DELETE("/:id", customersH.Delete)
			customers.PUT("/:id/schedule", customersH.UpdateSchedule)
			customers.PATCH("/:id/bottles", customersH.AdjustBottles)
			customers.POST("/:id/payments", customersH.RecordPayment)
		}

		// Sales
		v1.GET("/sales", anyRole, salesH.List)
		sales := v1.Group("/sales", admin)
		{
			sales.POST("", salesH.Add)
			sales.POST("/counter", salesH.AddCounter)
			sales.PUT("/:id", salesH.Update)
			sales.DELETE("/:id", salesH.Delete)
		}

		// Inventory
		v1.GET("/inventory", anyRole, inventoryH.List)
		v1.GET("/inventory/warehouse", anyRole, inventoryH.Warehouse)
		v1.GET("/inventory/:id", anyRole, inventoryH.Get)
		inventory := v1.Group("/inventory", admin)
		{
			inventory.POST("", inventoryH.Create)
			inventory.PUT("/:id", inventoryH.Update)
			inventory.PATCH("/:id/stock", inventoryH.AdjustStock)
			inventory.DELETE("/:id", inventoryH.Delete)
		}

		// Expenses — admin only
		expenses := v1.Group("/expenses", admin)
		{
			expenses.POST("", expensesH.Create)
			expenses.GET("", expensesH.List)
			expenses.PUT("/:id", expensesH.Update)
			expenses.DELETE("/:id", expensesH.Delete)
		}

		// Salesmen
		v1.GET("/salesmen", anyRole, salesmenH.List)
		salesmen := v1.Group("/salesmen", admin)
		{
			salesmen.POST("", salesmenH.Create)
			salesmen.PUT("/:id", salesmenH.Update)
			salesmen.DELETE("/:id", salesmenH.Delete)
			salesmen.POST("/:id/payments", salesmenH.RecordPayment)
			salesmen.GET("/:id/report", salesmenH.Report)
		}

		// Monthly closings — irreversible, admin only
		closings := v1.Group("/closings", admin)
		{
			closings.POST("", closingsH.Close)
			closings.GET("", closingsH.List)
			closings.GET("/:id", closingsH.Get)
		}

		// Reminders + dashboard
		v1.GET("/reminders/due", anyRole, remindersH.Due)
		v1.GET("/dashboard/summary", anyRole, dashboardH.Summary)
	}

	return r
}
