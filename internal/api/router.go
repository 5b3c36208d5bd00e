package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gestioplus/gestio-api/internal/api/handler"
	"github.com/gestioplus/gestio-api/internal/api/middleware"
	"github.com/gestioplus/gestio-api/internal/core/domain"
	"github.com/gestioplus/gestio-api/internal/core/service"
	mongodb "github.com/gestioplus/gestio-api/internal/infrastructure/db/mongo"
	redisdb "github.com/gestioplus/gestio-api/internal/infrastructure/db/redis"
)

// Deps carries everything the router needs to assemble the application.
type Deps struct {
	Mongo     *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("gestio"))

	// --- Repositories ---
	accountRepo := mongodb.NewAccountRepository(deps.Mongo)
	employeeRepo := mongodb.NewEmployeeRepository(deps.Mongo)
	productRepo := mongodb.NewProductRepository(deps.Mongo)
	transactionRepo := mongodb.NewTransactionRepository(deps.Mongo)
	absenceRepo := mongodb.NewAbsenceRepository(deps.Mongo)

	// --- Services ---
	limiter := redisdb.NewLoginLimiter(deps.Redis, 0, 0)
	authService := service.NewAuthService(accountRepo, limiter, deps.JWTSecret, deps.Logger)
	accountService := service.NewAccountService(accountRepo, deps.Logger)
	employeeService := service.NewEmployeeService(employeeRepo, deps.Logger)
	productService := service.NewProductService(productRepo, deps.Logger)
	transactionService := service.NewTransactionService(transactionRepo, deps.Logger)
	absenceService := service.NewAbsenceService(absenceRepo, employeeRepo, deps.Logger)
	dashboardService := service.NewDashboardService(transactionRepo, employeeRepo, absenceRepo, productRepo, deps.Logger)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	accountHandler := handler.NewAccountHandler(accountService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	productHandler := handler.NewProductHandler(productService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	absenceHandler := handler.NewAbsenceHandler(absenceService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	auth := middleware.Auth(deps.JWTSecret)
	session := middleware.SessionGuard()
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	authGroup := e.Group("/api/auth")
	authGroup.POST("/login", authHandler.Login)
	authGroup.PUT("/change-password", authHandler.ChangePassword, auth, session)
	authGroup.POST("/logout", authHandler.Logout, auth, session)

	// --- Tenant-scoped resources: token check and session guard on every route ---
	employees := e.Group("/api/employees", auth, session)
	employees.GET("", employeeHandler.List)
	employees.POST("", employeeHandler.Create)
	employees.PUT("/:id", employeeHandler.Update)
	employees.DELETE("/:id", employeeHandler.Delete)

	products := e.Group("/api/products", auth, session)
	products.GET("", productHandler.List)
	products.GET("/low-stock", productHandler.ListLowStock)
	products.POST("", productHandler.Create)
	products.PUT("/:id", productHandler.Update)
	products.DELETE("/:id", productHandler.Delete)

	transactions := e.Group("/api/transactions", auth, session)
	transactions.GET("", transactionHandler.List)
	transactions.GET("/recent", transactionHandler.Recent)
	transactions.POST("", transactionHandler.Create)
	transactions.PUT("/:id", transactionHandler.Update)
	transactions.DELETE("/:id", transactionHandler.Delete)

	absences := e.Group("/api/absences", auth, session)
	absences.GET("", absenceHandler.List)
	absences.POST("", absenceHandler.Create)
	absences.PUT("/:id", absenceHandler.Update)
	absences.DELETE("/:id", absenceHandler.Delete)

	// --- Member management: admin role on top of token + session checks ---
	users := e.Group("/api/users", auth, session)
	users.GET("/me/profile", accountHandler.Profile)
	users.PATCH("/me/profile", accountHandler.UpdateProfile)
	users.GET("", accountHandler.List, adminOnly)
	users.POST("", accountHandler.Create, adminOnly)
	users.GET("/:id", accountHandler.Get, adminOnly)
	users.PATCH("/:id", accountHandler.Update, adminOnly)
	users.DELETE("/:id", accountHandler.Delete, adminOnly)

	// --- Dashboard ---
	dashboard := e.Group("/api/dashboard", auth, session)
	dashboard.GET("/stats", dashboardHandler.Stats)

	// --- Probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

// EnsureIndexes prepares the indexes of every collection. Called once at startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexers := []interface {
		EnsureIndexes(ctx context.Context) error
	}{
		mongodb.NewAccountRepository(db),
		mongodb.NewEmployeeRepository(db),
		mongodb.NewProductRepository(db),
		mongodb.NewTransactionRepository(db),
		mongodb.NewAbsenceRepository(db),
	}

	for _, idx := range indexers {
		if err := idx.EnsureIndexes(ctx); err != nil {
			return err
		}
	}

	return nil
}
