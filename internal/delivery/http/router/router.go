// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/ahmedhalac/brainstack-backend/internal/delivery/http/middleware"
	"github.com/ahmedhalac/brainstack-backend/internal/delivery/http/router/handler"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Credential lifecycle routes, all anonymous
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.accountHandler.Register)
		authGroup.POST("/verify-email", r.accountHandler.VerifyEmail)
		authGroup.POST("/resend-code", r.accountHandler.ResendCode)
		authGroup.POST("/login", r.accountHandler.Login)
	}

	// Account routes that require a valid access token
	accountGroup := api.Group("/account")
	accountGroup.Use(r.authMiddleware.Authenticate)
	{
		accountGroup.GET("/me", r.accountHandler.Me)
	}
}
