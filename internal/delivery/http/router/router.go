// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"notekeeper/internal/delivery/http/middleware"
	"notekeeper/internal/delivery/http/router/handler"
	"notekeeper/internal/delivery/http/view"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	NoteHandler    *handler.NoteHandler
	AuthMiddleware *middleware.AuthMiddleware
	Metrics        *middleware.Metrics
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	noteHandler    *handler.NoteHandler
	authMiddleware *middleware.AuthMiddleware
	metrics        *middleware.Metrics
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		noteHandler:    params.NoteHandler,
		authMiddleware: params.AuthMiddleware,
		metrics:        params.Metrics,
	}
}

// RegisterRoutes sets up all the routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Operational endpoints
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", r.metrics.Handler())
	e.StaticFS("/static", view.StaticFS())

	// Public auth pages
	e.GET("/login", r.userHandler.LoginPage)
	e.POST("/login", r.userHandler.Login)
	e.GET("/register", r.userHandler.RegisterPage)
	e.POST("/register", r.userHandler.Register)
	e.GET("/logout", r.userHandler.Logout)

	authGroup := e.Group("/auth")
	{
		authGroup.GET("/google", r.userHandler.GoogleLogin)
		authGroup.GET("/google/callback", r.userHandler.GoogleCallback)
	}

	// Pages that require a session. The gate is attached per route so
	// unknown paths still 404 instead of bouncing to the login page.
	requireSession := r.authMiddleware.Authenticate
	e.GET("/", r.noteHandler.Index, requireSession)
	e.POST("/create", r.noteHandler.Create, requireSession)
	e.POST("/delete/:noteId", r.noteHandler.Delete, requireSession)
	e.GET("/about", r.noteHandler.About, requireSession)
}
