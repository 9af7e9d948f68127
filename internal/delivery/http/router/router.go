// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"clipstream/internal/delivery/http/middleware"
	"clipstream/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler           *handler.AuthHandler
	VideoHandler          *handler.VideoHandler
	ChannelHandler        *handler.ChannelHandler
	RecommendationHandler *handler.RecommendationHandler
	AuthMiddleware        *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler           *handler.AuthHandler
	videoHandler          *handler.VideoHandler
	channelHandler        *handler.ChannelHandler
	recommendationHandler *handler.RecommendationHandler
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:           params.AuthHandler,
		videoHandler:          params.VideoHandler,
		channelHandler:        params.ChannelHandler,
		recommendationHandler: params.RecommendationHandler,
		authMiddleware:        params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/google", r.authHandler.GoogleLogin)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/logout", r.authHandler.Logout, r.authMiddleware.Authenticate)
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
	}

	// Video routes. Reads and view counting are public; mutation requires
	// an authenticated uploader.
	videoGroup := e.Group("/videos")
	{
		videoGroup.GET("", r.videoHandler.List)
		videoGroup.GET("/:id", r.videoHandler.Get)
		videoGroup.POST("/:id/view", r.videoHandler.AddView)

		videoGroup.POST("", r.videoHandler.Create, r.authMiddleware.Authenticate)
		videoGroup.PATCH("/:id", r.videoHandler.Update, r.authMiddleware.Authenticate)
		videoGroup.DELETE("/:id", r.videoHandler.Delete, r.authMiddleware.Authenticate)
		videoGroup.POST("/:id/like", r.videoHandler.Like, r.authMiddleware.Authenticate)
		videoGroup.DELETE("/:id/like", r.videoHandler.Unlike, r.authMiddleware.Authenticate)
	}

	// Channel routes
	channelGroup := e.Group("/channels")
	{
		channelGroup.GET("", r.channelHandler.List)
		channelGroup.GET("/:id", r.channelHandler.Get)

		channelGroup.POST("", r.channelHandler.Create, r.authMiddleware.Authenticate)
		channelGroup.PATCH("/:id", r.channelHandler.Update, r.authMiddleware.Authenticate)
		channelGroup.DELETE("/:id", r.channelHandler.Delete, r.authMiddleware.Authenticate)
	}

	// Recommendation routes are always scoped to the authenticated user.
	recommendationGroup := e.Group("/recommendations")
	recommendationGroup.Use(r.authMiddleware.Authenticate)
	{
		recommendationGroup.GET("", r.recommendationHandler.List)
		recommendationGroup.POST("", r.recommendationHandler.Record)
	}
}
