package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	middleware "task-marketplace.com/task-marketplace/internal/http/middlewares"
	"task-marketplace.com/task-marketplace/internal/queue"
	"task-marketplace.com/task-marketplace/internal/services"
)

// NotificationInbox exposes queued notifications. It is nil when no broker
// is configured.
type NotificationInbox interface {
	Pending(ctx context.Context, userID string) ([]queue.Notification, error)
}

type Handler struct {
	tasks          *services.TaskService
	applications   *services.ApplicationService
	messages       *services.MessageService
	pricingConfigs *services.PricingConfigService
	references     *services.ReferenceService
	inbox          NotificationInbox
}

func NewHandler(
	tasks *services.TaskService,
	applications *services.ApplicationService,
	messages *services.MessageService,
	pricingConfigs *services.PricingConfigService,
	references *services.ReferenceService,
	inbox NotificationInbox,
) *Handler {
	return &Handler{
		tasks:          tasks,
		applications:   applications,
		messages:       messages,
		pricingConfigs: pricingConfigs,
		references:     references,
		inbox:          inbox,
	}
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (h *Handler) Notifications(c echo.Context) error {
	if h.inbox == nil {
		return echo.NewHTTPError(http.StatusNotImplemented, "notification inbox is not configured")
	}

	items, err := h.inbox.Pending(c.Request().Context(), middleware.CallerID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":         len(items),
		"notifications": items,
	})
}

func bind(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return apperrors.Validation("invalid JSON payload")
	}
	return nil
}

func list[T any](c echo.Context, key string, items []T) error {
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(items),
		key:     items,
	})
}
