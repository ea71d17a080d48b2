package main

import (
	"os"
	"os/signal"
	"syscall"

	"jaggery_shop/config"
	"jaggery_shop/internal/cache"
	"jaggery_shop/internal/delivery"
	"jaggery_shop/internal/middleware"
	"jaggery_shop/internal/repository"
	"jaggery_shop/internal/usecase"
	"jaggery_shop/pkg/db"
	"jaggery_shop/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := setupLogger("info")

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s' in config, using default 'info'. Error: %v", cfg.LogLevel, err)
	} else {
		logger.SetLevel(logLevel)
	}
	logger.Info("Starting Jaggery Shop server...")

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Errorf("Error closing database connection: %v", err)
		} else {
			logger.Info("Database connection closed.")
		}
	}()
	logger.Info("Database connection established.")

	if err := db.RunMigrations(database, cfg.MigrationsDir); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Database migrations applied.")

	rdb, err := cache.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatalf("Failed to connect to redis: %v", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			logger.Errorf("Error closing redis connection: %v", err)
		}
	}()
	logger.Infof("Redis connection established at %s.", cfg.RedisAddr)

	tokens, err := token.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		logger.Fatalf("Failed to initialize token manager: %v", err)
	}

	userRepo := repository.NewPostgresUserRepository(database, logger)
	productRepo := cache.NewCachedProductRepository(
		repository.NewPostgresProductRepository(database, logger), rdb, logger)
	cartRepo := repository.NewPostgresCartRepository(database, logger)
	wishlistRepo := repository.NewPostgresWishlistRepository(database, logger)
	orderRepo := repository.NewPostgresOrderRepository(database, logger)
	bookingRepo := repository.NewPostgresBookingRepository(database, logger)

	authUseCase := usecase.NewAuthUseCase(userRepo, tokens, logger)
	catalogUseCase := usecase.NewCatalogUseCase(productRepo, logger)
	cartUseCase := usecase.NewCartUseCase(cartRepo, logger)
	wishlistUseCase := usecase.NewWishlistUseCase(wishlistRepo, logger)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, logger)
	bookingUseCase := usecase.NewBookingUseCase(bookingRepo, userRepo, logger)
	adminUseCase := usecase.NewAdminUseCase(productRepo, orderRepo, bookingRepo, userRepo, logger)

	authHandler := delivery.NewAuthHandler(authUseCase, logger)
	productHandler := delivery.NewProductHandler(catalogUseCase, logger)
	cartHandler := delivery.NewCartHandler(cartUseCase, logger)
	wishlistHandler := delivery.NewWishlistHandler(wishlistUseCase, logger)
	orderHandler := delivery.NewOrderHandler(orderUseCase, logger)
	bookingHandler := delivery.NewBookingHandler(bookingUseCase, logger)
	adminHandler := delivery.NewAdminHandler(adminUseCase, logger)

	router := gin.New()
	router.RedirectTrailingSlash = false
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	authed := router.Group("/api")
	authed.Use(middleware.Authenticate(tokens, logger))

	admin := router.Group("/api/admin")
	admin.Use(middleware.Authenticate(tokens, logger), middleware.RequireAdmin(userRepo, logger))

	authHandler.RegisterRoutes(api, authed)
	productHandler.RegisterRoutes(api)
	cartHandler.RegisterRoutes(authed)
	wishlistHandler.RegisterRoutes(authed)
	orderHandler.RegisterRoutes(authed)
	bookingHandler.RegisterRoutes(authed)
	adminHandler.RegisterRoutes(admin)

	go func() {
		logger.Infof("HTTP server listening on %s", cfg.HTTPPort)
		if err := router.Run(cfg.HTTPPort); err != nil {
			logger.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Warn("Shutdown signal received, stopping server...")
}

func setupLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	return logger
}
