package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/kept7/payment-service/internal/config"
	"github.com/kept7/payment-service/internal/handlers"
	"github.com/kept7/payment-service/internal/middleware"
	"github.com/kept7/payment-service/internal/repositories"
	"github.com/kept7/payment-service/internal/services"
	"github.com/kept7/payment-service/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx := context.Background()

	if err := database.Migrate(ctx, cfg.DSN()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	pool, err := database.NewPool(ctx, cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)
	paymentUserRepo := repositories.NewPaymentUserRepository(pool)

	// Services
	hasher := services.NewPasswordHasher()
	tokens, err := services.NewTokenService(cfg.JWTSecret, cfg.JWTAlgorithm)
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}

	tokenTTLSeconds := int(cfg.AccessTokenTTL.Seconds())

	// Handlers
	authHandlers := handlers.NewAuthHandlers(userRepo, hasher, tokens, tokenTTLSeconds, logger)
	paymentHandlers := handlers.NewPaymentHandlers(paymentRepo, paymentUserRepo, cfg.SuperuserEmail, logger)
	adminHandlers := handlers.NewAdminHandlers(paymentUserRepo, logger)

	// Middleware
	authenticate := middleware.Authenticate(tokens, userRepo)
	superuser := middleware.RequireSuperuser(cfg.SuperuserEmail)

	e := echo.New()
	e.HideBanner = true

	// Must run before routing so /payment/ resolves to /payment.
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(middleware.RequestAudit(logger))
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.BaseURL1, cfg.BaseURL2},
		AllowCredentials: true,
	}))

	e.GET("/health", func(c echo.Context) error {
		return handlers.HealthCheck(c, pool)
	})

	auth := e.Group("/auth")
	auth.POST("/registration", authHandlers.Register)
	auth.POST("/authentication", authHandlers.Authenticate)
	auth.GET("/all", authHandlers.GetAll, authenticate, superuser)
	auth.PUT("/:user_email", authHandlers.ChangePassword, authenticate)

	payment := e.Group("/payment", authenticate)
	payment.POST("", paymentHandlers.Create)
	payment.GET("/all", paymentHandlers.GetAll, superuser)
	payment.GET("/id/:payment_id", paymentHandlers.Get)
	payment.GET("/email/:user_email/all", paymentHandlers.GetUserPayments)
	payment.GET("/email/:user_email/amount/:amount", paymentHandlers.GetUserPaymentsByAmount)
	payment.GET("/email/:user_email/:status", paymentHandlers.GetUserPaymentsByStatus)
	payment.PUT("/:payment_id", paymentHandlers.UpdateStatus)

	admin := e.Group("/admin", authenticate, superuser)
	admin.GET("/user_payment/all", adminHandlers.GetAllPaymentUsers)

	logger.Info("server starting", "addr", cfg.Addr())
	e.Logger.Fatal(e.Start(cfg.Addr()))
}
