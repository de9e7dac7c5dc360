package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/arjan001/sonya-stores-sub001/internal/api"
	"github.com/arjan001/sonya-stores-sub001/internal/config"
	"github.com/arjan001/sonya-stores-sub001/internal/repository"
	"github.com/arjan001/sonya-stores-sub001/internal/service"
	"github.com/arjan001/sonya-stores-sub001/migrations"
)

func connectDB(cfg *config.Config) (*sql.DB, error) {
	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("mysql", cfg.DSN())
		if err == nil {
			err = db.Ping()
			if err == nil {
				db.SetMaxOpenConns(cfg.DBMaxOpenConns)
				db.SetMaxIdleConns(cfg.DBMaxIdleConns)
				log.Printf("connected to DB %s", cfg.DBName)
				return db, nil
			}
		}
		log.Printf("retry %d: failed to connect to DB %s: %v", i+1, cfg.DBName, err)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to DB %s after retries: %v", cfg.DBName, err)
}

func main() {
	cfg := config.Load()

	db, err := connectDB(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := migrations.AutoMigrate(db); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	kafkaWriter := config.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
	mailer := service.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)

	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	orderService := service.NewOrderService(orderRepo, catalogRepo, rdb, kafkaWriter, mailer)
	productService := service.NewProductService(productRepo, rdb)
	catalogService := service.NewCatalogService(categoryRepo, catalogRepo)
	adminService := service.NewAdminService(adminRepo, cfg.SessionSecret, cfg.SessionTTL)
	analyticsService := service.NewAnalyticsService(analyticsRepo)

	orderHandler := api.NewOrderHandler(orderService)
	storefrontHandler := api.NewStorefrontHandler(productService, catalogService, analyticsService)
	authHandler := api.NewAuthHandler(adminService, cfg.Production)
	adminHandler := api.NewAdminHandler(productService, catalogService, adminService, analyticsService)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Public storefront
	e.POST("/orders", orderHandler.CreateOrder, api.RateLimiter(cfg.OrderRateLimit))
	e.GET("/track-order", orderHandler.TrackOrders)
	e.GET("/search", storefrontHandler.Search)
	e.GET("/products", storefrontHandler.ListProducts)
	e.GET("/products/:slug", storefrontHandler.GetProduct)
	e.GET("/categories", storefrontHandler.ListCategories)
	e.GET("/delivery-locations", storefrontHandler.ListDeliveryLocations)
	e.GET("/offers", storefrontHandler.ListOffers)
	e.GET("/banners", storefrontHandler.ListBanners)
	e.GET("/policies/:slug", storefrontHandler.GetPolicy)
	e.POST("/newsletter", storefrontHandler.Subscribe)
	e.POST("/track-view", storefrontHandler.TrackView, api.RateLimiter(cfg.ViewRateLimit))

	e.POST("/admin/login", authHandler.Login)
	e.POST("/admin/logout", authHandler.Logout)

	// Admin back-office, session required
	admin := e.Group("/admin", api.AdminGuard(cfg.SessionSecret))

	admin.GET("/orders", orderHandler.ListOrders)
	admin.PUT("/orders/:id/status", orderHandler.UpdateOrderStatus)
	admin.DELETE("/orders", orderHandler.DeleteOrder)

	admin.GET("/products", adminHandler.ListProducts)
	admin.POST("/products", adminHandler.CreateProduct)
	admin.PUT("/products/:id", adminHandler.UpdateProduct)
	admin.DELETE("/products", adminHandler.DeleteProduct)

	admin.GET("/categories", adminHandler.ListCategories)
	admin.POST("/categories", adminHandler.CreateCategory)
	admin.PUT("/categories/:id", adminHandler.UpdateCategory)
	admin.DELETE("/categories", adminHandler.DeleteCategory)

	admin.GET("/delivery-locations", adminHandler.ListDeliveryLocations)
	admin.POST("/delivery-locations", adminHandler.CreateDeliveryLocation)
	admin.PUT("/delivery-locations/:id", adminHandler.UpdateDeliveryLocation)
	admin.DELETE("/delivery-locations", adminHandler.DeleteDeliveryLocation)

	admin.GET("/offers", adminHandler.ListOffers)
	admin.POST("/offers", adminHandler.CreateOffer)
	admin.PUT("/offers/:id", adminHandler.UpdateOffer)
	admin.DELETE("/offers", adminHandler.DeleteOffer)

	admin.GET("/banners", adminHandler.ListBanners)
	admin.POST("/banners", adminHandler.CreateBanner)
	admin.PUT("/banners/:id", adminHandler.UpdateBanner)
	admin.DELETE("/banners", adminHandler.DeleteBanner)

	admin.GET("/policies", adminHandler.ListPolicies)
	admin.POST("/policies", adminHandler.CreatePolicy)
	admin.PUT("/policies/:id", adminHandler.UpdatePolicy)
	admin.DELETE("/policies", adminHandler.DeletePolicy)

	admin.GET("/newsletter", adminHandler.ListSubscribers)
	admin.DELETE("/newsletter", adminHandler.DeleteSubscriber)

	admin.GET("/users", adminHandler.ListAdmins)
	admin.POST("/users", adminHandler.CreateAdmin)
	admin.PUT("/users/:id", adminHandler.UpdateAdmin)
	admin.DELETE("/users", adminHandler.DeleteAdmin)

	admin.GET("/analytics", adminHandler.AnalyticsSummary)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "sonya-stores",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
