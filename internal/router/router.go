// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/marketplace/internal/config"
	"github.com/javajoker/marketplace/internal/handlers"
	"github.com/javajoker/marketplace/internal/i18n"
	"github.com/javajoker/marketplace/internal/middleware"
	"github.com/javajoker/marketplace/internal/models"
	"github.com/javajoker/marketplace/internal/services"
	"github.com/javajoker/marketplace/internal/store"
	"github.com/javajoker/marketplace/internal/utils"
)

func Initialize(sess *store.Session, cfg *config.Config, events services.EventPublisher) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(cfg.I18n.DefaultLocale, 0)

	authService := services.NewAuthService(sess, cfg, notificationService)
	accountService := services.NewAccountService(sess, notificationService, events, cfg.Session.DeletePolicy)
	productService := services.NewProductService(sess, notificationService, events)
	checkoutService := services.NewCheckoutService(sess, notificationService, events, cfg.Session.AdjustInventory)
	dashboardService := services.NewDashboardService(sess)
	adminService := services.NewAdminService(sess, notificationService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(accountService)
	productHandler := handlers.NewProductHandler(sess.Catalog, productService, notificationService, cfg.Frontend.BaseURL)
	cartHandler := handlers.NewCartHandler(sess.Cart, productService, checkoutService, notificationService)
	orderHandler := handlers.NewOrderHandler(sess.Catalog)
	traderHandler := handlers.NewTraderHandler(sess.Catalog, productService, dashboardService)
	adminHandler := handlers.NewAdminHandler(adminService, dashboardService, sess.Catalog)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":        "healthy",
			"version":       "1.0.0",
			"authenticated": sess.Identity.IsAuthenticated(),
			"languages":     i18n.GetSupportedLanguages(),
		})
	})

	sessionRequired := middleware.SessionRequired(authService)

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/demo", authHandler.DemoLogin)
			auth.POST("/admin/login", authHandler.AdminLogin)
			auth.POST("/logout", sessionRequired, authHandler.Logout)
			auth.GET("/me", sessionRequired, userHandler.GetProfile)
		}

		// User routes
		users := v1.Group("/users")
		users.Use(sessionRequired)
		{
			users.PUT("/profile", userHandler.UpdateProfile)
			users.DELETE("/account", userHandler.DeleteAccount)
		}

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/featured", productHandler.GetFeaturedProducts)
			products.GET("/categories", productHandler.GetCategories)
			products.GET("/:id", middleware.SessionOptional(authService), productHandler.GetProduct)
			products.GET("/:id/comments", productHandler.GetComments)
			products.POST("/:id/referral", productHandler.ShareReferralLink)

			// Authenticated routes
			protected := products.Group("")
			protected.Use(sessionRequired)
			{
				protected.POST("/:id/comments", productHandler.AddComment)
				protected.POST("/:id/rating", productHandler.RateProduct)
				protected.GET("/:id/rating", productHandler.GetMyRating)
			}
		}

		// Cart routes
		cart := v1.Group("/cart")
		cart.Use(sessionRequired, middleware.RoleRequired(models.RoleShopper))
		{
			cart.GET("", cartHandler.GetCart)
			cart.DELETE("", cartHandler.ClearCart)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items/:product_id", cartHandler.UpdateItem)
			cart.DELETE("/items/:product_id", cartHandler.RemoveItem)
			cart.POST("/checkout", cartHandler.Checkout)
		}

		// Order routes
		orders := v1.Group("/orders")
		orders.Use(sessionRequired)
		{
			orders.GET("", orderHandler.GetMyOrders)
			orders.GET("/:id", orderHandler.GetOrder)
		}

		// Trader routes
		trader := v1.Group("/trader")
		trader.Use(sessionRequired, middleware.RoleRequired(models.RoleTrader))
		{
			trader.GET("/stats", traderHandler.GetStats)
			trader.GET("/products", traderHandler.GetMyProducts)
			trader.POST("/products", traderHandler.CreateProduct)
			trader.PUT("/products/:id", traderHandler.UpdateProduct)
			trader.DELETE("/products/:id", traderHandler.DeleteProduct)
		}

		// Notification routes
		notifications := v1.Group("/notifications")
		{
			notifications.GET("", notificationHandler.GetNotifications)
			notifications.DELETE("", notificationHandler.ClearNotifications)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(sessionRequired, middleware.AdminRequired())
		{
			admin.GET("/dashboard/stats", adminHandler.GetDashboardStats)

			admin.GET("/shoppers", adminHandler.GetShoppers)
			admin.GET("/traders", adminHandler.GetTraders)
			admin.PUT("/traders/:id/verification", adminHandler.VerifyTrader)

			admin.GET("/products", adminHandler.GetProducts)
			admin.DELETE("/products/:id", adminHandler.RemoveProduct)

			admin.GET("/orders", adminHandler.GetOrders)
			admin.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)
		}
	}

	return r
}
