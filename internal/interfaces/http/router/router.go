package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tajer/backend/internal/infrastructure/auth"
	"github.com/tajer/backend/internal/infrastructure/config"
	"github.com/tajer/backend/internal/infrastructure/logger"
	"github.com/tajer/backend/internal/interfaces/http/handler"
	"github.com/tajer/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	System     *handler.SystemHandler
	Auth       *handler.AuthHandler
	Platform   *handler.PlatformHandler
	User       *handler.UserHandler
	Category   *handler.CategoryHandler
	Product    *handler.ProductHandler
	Order      *handler.OrderHandler
	Inventory  *handler.InventoryHandler
	Accounting *handler.AccountingHandler
	Delivery   *handler.DeliveryHandler
	Report     *handler.ReportHandler
}

// Setup builds the gin engine with middleware and all routes mounted.
// Public storefront routes live under /api/v1/public and need no token;
// everything else under /api/v1 requires a valid access token.
func Setup(cfg *config.Config, jwtService *auth.JWTService, log *zap.Logger, h Handlers) *gin.Engine {
	engine := gin.New()
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Secure())

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))

	if cfg.HTTP.RateLimitEnabled {
		window := cfg.HTTP.RateLimitWindow
		if window <= 0 {
			window = time.Minute
		}
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, window)
		engine.Use(middleware.RateLimit(limiter))
	}

	engine.GET("/health", h.System.Health)

	api := engine.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
	}

	// Operator routes, mounted only when an admin token is configured
	if cfg.App.AdminToken != "" {
		admin := api.Group("/admin", middleware.AdminAuth(cfg.App.AdminToken))
		{
			admin.GET("/platforms", h.Platform.List)
			admin.POST("/platforms/:id/suspend", h.Platform.Suspend)
			admin.POST("/platforms/:id/reactivate", h.Platform.Reactivate)
			admin.POST("/platforms/:id/extend-subscription", h.Platform.ExtendSubscription)
		}
	}

	// Storefront routes, resolved by subdomain
	public := api.Group("/public/:subdomain")
	{
		public.GET("/platform", h.Platform.GetBySubdomain)
		public.GET("/products", h.Product.ListPublic)
		public.GET("/delivery-quote", h.Delivery.Quote)
		public.POST("/orders", h.Order.CreatePublic)
	}

	protected := api.Group("")
	protected.Use(middleware.JWTAuth(jwtService, log))
	{
		protected.GET("/platform", h.Platform.Get)
		protected.PUT("/platform", middleware.RequireRole("owner"), h.Platform.Update)

		users := protected.Group("/users")
		{
			users.POST("/me/password", h.User.ChangePassword)
			users.Use(middleware.RequireRole("owner"))
			users.POST("", h.User.Create)
			users.GET("", h.User.List)
			users.GET("/:id", h.User.Get)
			users.PUT("/:id", h.User.Update)
			users.POST("/:id/deactivate", h.User.Deactivate)
			users.POST("/:id/activate", h.User.Activate)
		}

		categories := protected.Group("/categories")
		{
			categories.POST("", h.Category.Create)
			categories.GET("", h.Category.List)
			categories.PUT("/:id", h.Category.Update)
			categories.DELETE("/:id", h.Category.Delete)
		}

		products := protected.Group("/products")
		{
			products.POST("", h.Product.Create)
			products.GET("", h.Product.List)
			products.GET("/low-stock", h.Product.LowStock)
			products.GET("/:id", h.Product.Get)
			products.PUT("/:id", h.Product.Update)
			products.PUT("/:id/offers", h.Product.SetOffers)
			products.PUT("/:id/stock", h.Product.SetStock)
			products.PUT("/:id/variants", h.Product.ReplaceVariants)
			products.POST("/:id/activate", h.Product.Activate)
			products.POST("/:id/deactivate", h.Product.Deactivate)
			products.DELETE("/:id", h.Product.Delete)
		}

		orders := protected.Group("/orders")
		{
			orders.POST("", h.Order.Create)
			orders.GET("", h.Order.List)
			orders.GET("/status-counts", h.Order.StatusCounts)
			orders.GET("/by-number/:number", h.Order.GetByNumber)
			orders.POST("/bulk-transition", h.Order.BulkTransition)
			orders.GET("/:id", h.Order.Get)
			orders.PUT("/:id", h.Order.Update)
			orders.DELETE("/:id", h.Order.Delete)
			orders.POST("/:id/transition", h.Order.Transition)
			orders.POST("/:id/items", h.Order.AddItem)
			orders.DELETE("/:id/items/:itemId", h.Order.RemoveItem)
			orders.PUT("/:id/items/:itemId/quantity", h.Order.UpdateItemQuantity)
			orders.PUT("/:id/items/:itemId/product", h.Order.ChangeItemProduct)
		}

		inventory := protected.Group("/inventory")
		{
			inventory.GET("", h.Inventory.List)
			inventory.GET("/overview", h.Inventory.Overview)
			inventory.GET("/:id", h.Inventory.Get)
		}

		accounting := protected.Group("/accounting")
		{
			accounting.GET("/account", h.Accounting.Account)
			accounting.POST("/deposits", h.Accounting.Deposit)
			accounting.POST("/withdrawals", h.Accounting.Withdraw)
			accounting.GET("/transactions", h.Accounting.Transactions)
			accounting.POST("/expenses", h.Accounting.RecordExpense)
			accounting.GET("/expenses", h.Accounting.ListExpenses)
			accounting.PUT("/expenses/:id", h.Accounting.UpdateExpense)
			accounting.DELETE("/expenses/:id", h.Accounting.DeleteExpense)
			accounting.POST("/expense-categories", h.Accounting.CreateExpenseCategory)
			accounting.GET("/expense-categories", h.Accounting.ListExpenseCategories)
			accounting.DELETE("/expense-categories/:id", h.Accounting.DeleteExpenseCategory)
		}

		delivery := protected.Group("/delivery")
		{
			delivery.GET("", h.Delivery.Get)
			delivery.PUT("", h.Delivery.Update)
			delivery.PUT("/fees", h.Delivery.SetGovernorateFee)
			delivery.DELETE("/fees/:governorate", h.Delivery.RemoveGovernorateFee)
		}

		reports := protected.Group("/reports")
		{
			reports.GET("/dashboard", h.Report.Dashboard)
			reports.GET("/comprehensive", h.Report.Comprehensive)
		}
	}

	return engine
}
