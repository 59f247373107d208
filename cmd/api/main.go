package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/budgetbook/budgetbook-backend/docs"
	"github.com/budgetbook/budgetbook-backend/internal/config"
	"github.com/budgetbook/budgetbook-backend/internal/handler"
	"github.com/budgetbook/budgetbook-backend/internal/middleware"
	"github.com/budgetbook/budgetbook-backend/internal/recurrence"
	"github.com/budgetbook/budgetbook-backend/internal/repository/postgres"
	"github.com/budgetbook/budgetbook-backend/internal/repository/storage"
	"github.com/budgetbook/budgetbook-backend/internal/service"
	"github.com/budgetbook/budgetbook-backend/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title budgetbook API
// @version 1.0
// @description Shared household budgets with recurring transactions and month views.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Auth0 access token as "Bearer <token>"
func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)

	// Statement uploads are optional
	var objectStore storage.ObjectStore
	if cfg.S3.Enabled() {
		s3Store, err := storage.NewS3ObjectStore(context.Background(), cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize object storage")
		}
		objectStore = s3Store
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Object storage enabled")
	} else {
		log.Warn().Msg("S3_BUCKET not set, statement uploads disabled")
	}

	engine := recurrence.NewEngine(cfg.RecurrenceWindow)
	log.Info().Str("window", engine.Window().String()).Msg("Recurrence window selected")

	// WebSocket hub fans ledger events out to connected members
	hub := websocket.NewHub()

	// Initialize services
	authService := service.NewAuthService(userRepo, ledgerRepo)
	ledgerService := service.NewLedgerService(userRepo, ledgerRepo)
	ledgerService.SetEventPublisher(hub)
	transactionService := service.NewTransactionService(transactionRepo)
	transactionService.SetEventPublisher(hub)
	balanceService := service.NewBalanceService(transactionRepo, ledgerRepo, engine)
	calendarService := service.NewCalendarService(transactionRepo, engine)
	exportService := service.NewExportService(calendarService, objectStore, cfg.S3.URLExpiry)

	// Initialize auth middleware
	authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience, authService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth middleware")
	}

	joinLimiter := middleware.NewRateLimiter(cfg.JoinRateLimit, cfg.JoinBurst)
	defer joinLimiter.Stop()

	wsValidator, err := websocket.NewAuth0JWTValidator(cfg.Auth0Domain, cfg.Auth0Audience, authService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create websocket token validator")
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	groupHandler := handler.NewGroupHandler(ledgerService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	balanceHandler := handler.NewBalanceHandler(balanceService, time.Now)
	calendarHandler := handler.NewCalendarHandler(calendarService, time.Now)
	exportHandler := handler.NewExportHandler(exportService)
	wsHandler := handler.NewWebSocketHandler(hub, wsValidator, cfg.CORSOrigins)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders:    []string{echo.HeaderContentDisposition, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
		// swagger UI needs inline scripts and styles
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":            "ok",
			"websocket_clients": hub.TotalClientCount(),
		})
	})

	// WebSocket endpoint sits outside /api/v1; browsers pass the token as ?token=
	e.GET("/ws", wsHandler.HandleWS)

	// Register API routes
	handler.RegisterRoutes(e, authMiddleware, joinLimiter, authHandler, groupHandler, transactionHandler, balanceHandler, calendarHandler, exportHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			event := log.Info()
			if res.Status >= http.StatusInternalServerError {
				event = log.Error()
			}
			event.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
