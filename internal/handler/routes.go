package handler

import (
	"github.com/nramli/gadai/gadai-backend/internal/middleware"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes sets up all API routes. Most routes accept either a JWT or
// an API token; token management and auth endpoints are JWT-only.
func RegisterRoutes(
	e *echo.Echo,
	dualAuth *middleware.DualAuthMiddleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *AuthHandler,
	customerHandler *CustomerHandler,
	loanHandler *LoanHandler,
	paymentHandler *PaymentHandler,
	photoHandler *PhotoHandler,
	forfeitureHandler *ForfeitureHandler,
	apiTokenHandler *APITokenHandler,
	wsHandler *WebSocketHandler,
) {
	// API version 1
	api := e.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Auth routes (JWT only)
	auth := api.Group("/auth")
	auth.Use(dualAuth.JWTOnly())
	auth.POST("/callback", authHandler.Callback)
	auth.GET("/me", authHandler.Me)
	auth.POST("/logout", authHandler.Logout)

	// Customer routes (protected)
	customers := api.Group("/customers")
	customers.Use(dualAuth.Authenticate())
	customers.POST("", customerHandler.CreateCustomer)
	customers.GET("", customerHandler.GetCustomers)
	customers.GET("/:id", customerHandler.GetCustomer)
	customers.PUT("/:id", customerHandler.UpdateCustomer)

	// Loan routes (protected)
	loans := api.Group("/loans")
	loans.Use(dualAuth.Authenticate())
	loans.POST("", loanHandler.CreateLoan)
	loans.GET("", loanHandler.GetLoans)
	loans.GET("/at-risk", forfeitureHandler.GetAtRiskLoans)
	loans.GET("/ticket/:ticketNo", loanHandler.GetLoanByTicketNo)
	loans.GET("/:id", loanHandler.GetLoan)
	loans.GET("/:id/payoff", loanHandler.GetPayoffQuote)

	// Payment routes (protected)
	loans.POST("/:id/payments", paymentHandler.ApplyPayment)
	loans.GET("/:id/payments", paymentHandler.GetPayments)
	loans.POST("/:id/payments/preview", paymentHandler.PreviewPayment)
	loans.POST("/:id/redeem", paymentHandler.Redeem)

	// Collateral photo routes (protected)
	loans.POST("/:id/photos", photoHandler.UploadPhoto)
	loans.GET("/:id/photos", photoHandler.GetPhotos)
	loans.DELETE("/:id/photos/:photoId", photoHandler.DeletePhoto)

	// Forfeiture sweep (protected)
	forfeiture := api.Group("/forfeiture")
	forfeiture.Use(dualAuth.Authenticate())
	forfeiture.POST("/scan", forfeitureHandler.TriggerScan)

	// API token management (JWT only; a token cannot mint tokens)
	apiTokens := api.Group("/api-tokens")
	apiTokens.Use(dualAuth.JWTOnly())
	apiTokens.POST("", apiTokenHandler.CreateAPIToken)
	apiTokens.GET("", apiTokenHandler.GetAPITokens)
	apiTokens.DELETE("/:id", apiTokenHandler.RevokeAPIToken)

	// WebSocket endpoint (token validated in-handler)
	e.GET("/ws", wsHandler.HandleWS)

	// API documentation
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/openapi.json", ServeOpenAPI3Spec)
}
