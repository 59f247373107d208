package handler

import (
	"github.com/budgetbook/budgetbook-backend/internal/middleware"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, joinLimiter *middleware.RateLimiter, authHandler *AuthHandler, groupHandler *GroupHandler, transactionHandler *TransactionHandler, balanceHandler *BalanceHandler, calendarHandler *CalendarHandler, exportHandler *ExportHandler) {
	// API documentation
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/openapi.json", ServeOpenAPI3Spec)

	// API version 1
	api := e.Group("/api/v1")

	// Auth routes; the callback runs before the user has a ledger
	auth := api.Group("/auth")
	auth.POST("/callback", authHandler.Callback, authMiddleware.AuthenticateIdentity())
	auth.GET("/me", authHandler.Me, authMiddleware.Authenticate())

	// Group routes (protected)
	groups := api.Group("/groups")
	groups.Use(authMiddleware.Authenticate())
	groups.GET("", groupHandler.ListGroups)
	groups.POST("", groupHandler.RegisterGroup)
	groups.POST("/join", groupHandler.JoinGroup, middleware.RateLimitMiddleware(joinLimiter))
	groups.POST("/select", groupHandler.SelectGroup)
	groups.POST("/personal", groupHandler.SwitchToPersonal)

	// Transaction routes (protected)
	transactions := api.Group("/transactions")
	transactions.Use(authMiddleware.Authenticate())
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Balance routes (protected)
	balance := api.Group("/balance")
	balance.Use(authMiddleware.Authenticate())
	balance.GET("", balanceHandler.GetBalance)
	balance.GET("/:year/:month", balanceHandler.GetBalance)

	// Calendar routes (protected)
	cal := api.Group("/calendar")
	cal.Use(authMiddleware.Authenticate())
	cal.GET("", calendarHandler.GetCalendar)
	cal.GET("/:year/:month", calendarHandler.GetCalendar)

	// Statement export routes (protected)
	exports := api.Group("/exports")
	exports.Use(authMiddleware.Authenticate())
	exports.GET("/:year/:month", exportHandler.DownloadStatement)
	exports.POST("/:year/:month", exportHandler.PublishStatement)
}
