// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/letmemugyou/backend/internal/config"
	"github.com/letmemugyou/backend/internal/handlers"
	"github.com/letmemugyou/backend/internal/middleware"
	"github.com/letmemugyou/backend/internal/services"
	"github.com/letmemugyou/backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Services
	settingsService := services.NewSettingsService(db, cfg)
	productService := services.NewProductService(db)
	orderService := services.NewOrderService(db)
	cartStore := services.NewGormCartStore(db)
	cartService := services.NewCartService(cartStore, productService, settingsService)
	paypalClient := services.NewPayPalClient(cfg.PayPal, settingsService)
	notificationService := services.NewNotificationService(cfg, settingsService)
	checkoutService := services.NewCheckoutService(cartService, settingsService, paypalClient, orderService, notificationService)
	logoService := services.NewLogoService()

	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize storage")
	}

	// Handlers
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, orderService)
	uploadHandler := handlers.NewUploadHandler(storageService, logoService)
	authHandler := handlers.NewAuthHandler(cfg)
	adminHandler := handlers.NewAdminHandler(orderService, productService, settingsService)

	utils.SetJWTSecret(cfg.Admin.JWTSecret)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Storefront routes; every visitor carries a cart session here.
	api := r.Group("/api")
	api.Use(middleware.CartSession(cfg.Environment == "production"))
	{
		api.GET("/products", productHandler.GetProducts)
		api.GET("/products/:id", productHandler.GetProduct)

		api.POST("/upload-logo", middleware.UploadRateLimit(), uploadHandler.UploadLogo)

		cart := api.Group("/cart")
		{
			cart.GET("", cartHandler.GetCart)
			cart.DELETE("", cartHandler.ClearCart)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items/:id", cartHandler.UpdateItem)
			cart.DELETE("/items/:id", cartHandler.RemoveItem)
		}

		paypal := api.Group("/paypal")
		paypal.Use(middleware.CheckoutRateLimit())
		{
			paypal.POST("/create-order", checkoutHandler.CreatePayPalOrder)
			paypal.POST("/capture-order", checkoutHandler.CapturePayPalOrder)
		}

		api.GET("/orders/:number", checkoutHandler.GetOrderConfirmation)
	}

	// Back office
	admin := r.Group("/admin")
	{
		admin.POST("/login", middleware.LoginRateLimit(), authHandler.Login)

		protected := admin.Group("")
		protected.Use(middleware.AdminRequired())
		protected.Use(middleware.AuditLogMiddleware(db))
		{
			protected.GET("/dashboard", adminHandler.GetDashboard)

			protected.GET("/orders", adminHandler.GetOrders)
			protected.GET("/orders/:id", adminHandler.GetOrder)
			protected.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)

			protected.GET("/products", adminHandler.GetProducts)
			protected.POST("/products", adminHandler.CreateProduct)
			protected.PUT("/products/:id", adminHandler.UpdateProduct)
			protected.DELETE("/products/:id", adminHandler.DeleteProduct)
			protected.POST("/products/:id/toggle", adminHandler.ToggleProduct)

			protected.GET("/settings", adminHandler.GetSettings)
			protected.PUT("/settings", adminHandler.UpdateSettings)
		}
	}

	// Processed logos are served straight from the upload dir.
	r.Static("/uploads", cfg.Upload.Dir)

	return r
}
