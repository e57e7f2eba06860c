package http

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	middleware "task-marketplace.com/task-marketplace/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.Use(echomw.RequestID())
	e.Use(echomw.Recover())
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.GET("/health", h.Health)

	api := e.Group("/api/v1", middleware.Identity())

	api.GET("/package-categories", h.PackageCategories)
	api.GET("/categories", h.ListCategories)
	api.GET("/relay-points", h.ListRelayPoints)
	api.GET("/shipping/estimate", h.EstimateShipping)

	api.POST("/tasks", h.CreateTask)
	api.GET("/tasks", h.ListTasks)
	api.GET("/tasks/mine", h.GetMyTasks)
	api.GET("/tasks/:id", h.GetTask)
	api.PATCH("/tasks/:id", h.UpdateTask)
	api.DELETE("/tasks/:id", h.DeleteTask)
	api.GET("/tasks/:id/shippings", h.GetShippingLegs)
	api.POST("/tasks/:id/intermediary-steps", h.MarkIntermediaryStep)
	api.POST("/tasks/:id/start", h.StartTask)
	api.POST("/tasks/:id/complete", h.CompleteTask)
	api.POST("/tasks/:id/validate", h.ValidateTaskCompletion)
	api.GET("/tasks/:id/applications", h.GetTaskApplications)
	api.GET("/tasks/:id/messages", h.GetTaskMessages)
	api.POST("/tasks/:id/messages", h.SendMessage)
	api.POST("/tasks/:id/messages/read", h.MarkMessagesAsRead)

	api.POST("/applications", h.ApplyToTask)
	api.GET("/applications/mine", h.GetMyApplications)
	api.POST("/applications/:id/accept", h.AcceptApplication)
	api.POST("/applications/:id/reject", h.RejectApplication)

	api.GET("/messages/unread-count", h.UnreadMessagesCount)
	api.GET("/notifications", h.Notifications)

	admin := api.Group("/admin", middleware.AdminOnly())

	admin.GET("/tasks", h.ListTasksByStatus)
	admin.GET("/tasks/pending", h.ListPendingTasks)
	admin.POST("/tasks/:id/approve", h.ApproveTask)
	admin.POST("/tasks/:id/reject", h.RejectTask)

	admin.POST("/categories", h.CreateCategory)
	admin.POST("/relay-points", h.CreateRelayPoint)

	admin.GET("/pricing-configs", h.ListPricingConfigs)
	admin.POST("/pricing-configs", h.CreatePricingConfig)
	admin.GET("/pricing-configs/active", h.ActivePricingConfig)
	admin.POST("/pricing-configs/:id/activate", h.ActivatePricingConfig)
	admin.POST("/pricing-configs/:id/deactivate", h.DeactivatePricingConfig)
}
