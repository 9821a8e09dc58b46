package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/handlers"
	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/security"
)

func SetupRoutes(e *echo.Echo, sec *security.Security, triggers *handlers.TriggerHandler, notifications *handlers.NotificationHandler) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	api.GET("/health", handlers.HealthCheck)

	// Called by the message store's change-notification infrastructure.
	triggerGroup := api.Group("/triggers")
	triggerGroup.Use(sec.RateLimitMiddleware, sec.TriggerAuthMiddleware)
	triggerGroup.POST("/message", triggers.MessageCreated)

	// In-app feed, read by the mobile client.
	feed := api.Group("/notifications")
	feed.Use(sec.JWTMiddleware)
	feed.GET("", notifications.List)
	feed.GET("/stats", notifications.Stats)
	feed.POST("/read-all", notifications.MarkAllRead)
	feed.POST("/:id/read", notifications.MarkRead)
}
