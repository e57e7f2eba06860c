package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"task-marketplace.com/task-marketplace/internal/constants"
	dto "task-marketplace.com/task-marketplace/internal/data_models"
	"task-marketplace.com/task-marketplace/internal/geo"
	middleware "task-marketplace.com/task-marketplace/internal/http/middlewares"
	"task-marketplace.com/task-marketplace/internal/http/validators"
)

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := validators.ValidateCreateTaskRequest(&req)
	if err != nil {
		return err
	}

	task, err := h.tasks.CreateTask(c.Request().Context(), in, middleware.CallerID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) GetTask(c echo.Context) error {
	task, err := h.tasks.GetTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	filters, err := validators.ParseTaskFilters(c)
	if err != nil {
		return err
	}

	tasks, err := h.tasks.ListTasks(c.Request().Context(), filters)
	if err != nil {
		return err
	}

	return list(c, "tasks", tasks)
}

func (h *Handler) GetMyTasks(c echo.Context) error {
	tasks, err := h.tasks.GetMyTasks(c.Request().Context(), middleware.CallerID(c))
	if err != nil {
		return err
	}

	return list(c, "tasks", tasks)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	var in dto.UpdateTaskInput
	if err := bind(c, &in); err != nil {
		return err
	}

	task, err := h.tasks.UpdateTask(c.Request().Context(), c.Param("id"), in, middleware.CallerID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	deleted, err := h.tasks.DeleteTask(c.Request().Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"deleted": deleted})
}

func (h *Handler) GetShippingLegs(c echo.Context) error {
	legs, err := h.tasks.GetShippingLegs(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return list(c, "shippings", legs)
}

func (h *Handler) MarkIntermediaryStep(c echo.Context) error {
	var stop dto.AddressInput
	if err := bind(c, &stop); err != nil {
		return err
	}

	task, err := h.tasks.MarkIntermediaryStep(c.Request().Context(), c.Param("id"), stop, middleware.CallerID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) EstimateShipping(c echo.Context) error {
	var req dto.ShippingEstimateRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	quote, err := h.tasks.EstimateShipping(
		c.Request().Context(),
		geo.Point{Lat: req.Lat, Lon: req.Lng},
		req.RelayPointID,
		req.PackageCategory,
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, quote)
}

func (h *Handler) ListPendingTasks(c echo.Context) error {
	tasks, err := h.tasks.ListPendingTasks(c.Request().Context())
	if err != nil {
		return err
	}

	return list(c, "tasks", tasks)
}

func (h *Handler) ApproveTask(c echo.Context) error {
	task, err := h.tasks.ApproveTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) RejectTask(c echo.Context) error {
	var req dto.ReasonRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	task, err := h.tasks.RejectTask(c.Request().Context(), c.Param("id"), req.Reason)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListTasksByStatus(c echo.Context) error {
	status := constants.TaskStatus(c.QueryParam("status"))
	if status == "" {
		status = constants.StatusPublished
	}

	tasks, err := h.tasks.ListTasksByStatus(c.Request().Context(), status)
	if err != nil {
		return err
	}

	return list(c, "tasks", tasks)
}
