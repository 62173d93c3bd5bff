package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/nramli/gadai/gadai-backend/docs"
	"github.com/nramli/gadai/gadai-backend/internal/config"
	"github.com/nramli/gadai/gadai-backend/internal/handler"
	"github.com/nramli/gadai/gadai-backend/internal/middleware"
	"github.com/nramli/gadai/gadai-backend/internal/repository/postgres"
	"github.com/nramli/gadai/gadai-backend/internal/repository/storage"
	"github.com/nramli/gadai/gadai-backend/internal/service"
	"github.com/nramli/gadai/gadai-backend/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

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

	// Photo storage
	photoStorage, err := storage.NewS3PhotoRepository(context.Background(), storage.S3Options{
		Endpoint:  cfg.S3.Endpoint,
		Region:    cfg.S3.Region,
		AccessKey: cfg.S3.AccessKeyID,
		SecretKey: cfg.S3.SecretAccessKey,
		Bucket:    cfg.S3.Bucket,
		UseSSL:    cfg.S3.UseSSL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize photo storage")
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	loanRepo := postgres.NewLoanRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	apiTokenRepo := postgres.NewAPITokenRepository(pool)
	photoRepo := postgres.NewCollateralPhotoRepository(pool)

	// Initialize services
	authService := service.NewAuthService(userRepo, branchRepo)
	customerService := service.NewCustomerService(customerRepo)
	loanService := service.NewLoanService(loanRepo, customerRepo)
	paymentService := service.NewPaymentService(pool, loanRepo, paymentRepo)
	apiTokenService := service.NewAPITokenService(apiTokenRepo)
	photoService := service.NewPhotoService(photoStorage, photoRepo, loanRepo)

	// WebSocket hub and event publishing
	hub := websocket.NewHub()
	loanService.SetEventPublisher(hub)
	paymentService.SetEventPublisher(hub)
	customerService.SetEventPublisher(hub)

	// Forfeiture: a nil threshold turns the policy off entirely — the
	// service no-ops its scans, so the manual scan endpoint is inert too.
	forfeitureService := service.NewForfeitureService(loanRepo, cfg.ForfeitureThresholdDays)
	forfeitureService.SetEventPublisher(hub)
	var forfeitureWorker *service.ForfeitureWorker
	if cfg.ForfeitureThresholdDays != nil {
		forfeitureWorker = service.NewForfeitureWorker(forfeitureService, log.Logger, service.ForfeitureWorkerConfig{
			Interval: cfg.ForfeitureScanInterval,
		})
		forfeitureWorker.Start(context.Background())
		log.Info().
			Int("threshold_days", *cfg.ForfeitureThresholdDays).
			Dur("interval", cfg.ForfeitureScanInterval).
			Msg("Forfeiture worker started")
	} else {
		log.Info().Msg("Forfeiture disabled (FORFEITURE_THRESHOLD_DAYS not set)")
	}

	// Create branch provider adapter for auth middleware
	branchProvider := &branchProviderAdapter{authService: authService}

	// Initialize middleware
	authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience, branchProvider)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth middleware")
	}
	apiTokenAuth := middleware.NewAPITokenAuthMiddleware(apiTokenService)
	dualAuth := middleware.NewDualAuthMiddleware(authMiddleware, apiTokenAuth)
	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()

	// WebSocket token validation
	wsValidator, err := websocket.NewAuth0JWTValidator(cfg.Auth0Domain, cfg.Auth0Audience, branchProvider)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create websocket validator")
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	customerHandler := handler.NewCustomerHandler(customerService)
	loanHandler := handler.NewLoanHandler(loanService, cfg.ForfeitureThresholdDays)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	photoHandler := handler.NewPhotoHandler(photoService)
	forfeitureHandler := handler.NewForfeitureHandler(forfeitureService)
	apiTokenHandler := handler.NewAPITokenHandler(apiTokenService, authService)
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
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Register API routes
	handler.RegisterRoutes(e, dualAuth, rateLimiter, authHandler, customerHandler, loanHandler, paymentHandler, photoHandler, forfeitureHandler, apiTokenHandler, wsHandler)

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

	if forfeitureWorker != nil {
		forfeitureWorker.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// branchProviderAdapter adapts AuthService to middleware.BranchProvider and
// websocket.BranchLookup.
type branchProviderAdapter struct {
	authService *service.AuthService
}

// GetBranchByAuth0ID implements middleware.BranchProvider
func (a *branchProviderAdapter) GetBranchByAuth0ID(auth0ID string) (int32, error) {
	branch, err := a.authService.GetBranchByAuth0ID(auth0ID)
	if err != nil {
		return 0, err
	}
	return branch.ID, nil
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

			log.Info().
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
