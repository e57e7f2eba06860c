package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-marketplace.com/task-marketplace/internal/data_models"
	middleware "task-marketplace.com/task-marketplace/internal/http/middlewares"
)

func (h *Handler) ApplyToTask(c echo.Context) error {
	var req dto.ApplyToTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	app, err := h.applications.ApplyToTask(c.Request().Context(), req, middleware.CallerID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, app)
}

func (h *Handler) AcceptApplication(c echo.Context) error {
	app, err := h.applications.AcceptApplication(c.Request().Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, app)
}

func (h *Handler) RejectApplication(c echo.Context) error {
	var req dto.ReasonRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	app, err := h.applications.RejectApplication(c.Request().Context(), c.Param("id"), req.Reason, middleware.CallerID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, app)
}

func (h *Handler) StartTask(c echo.Context) error {
	task, err := h.applications.StartTask(c.Request().Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) CompleteTask(c echo.Context) error {
	task, err := h.applications.CompleteTask(c.Request().Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ValidateTaskCompletion(c echo.Context) error {
	var req dto.ValidateCompletionRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	task, err := h.applications.ValidateTaskCompletion(c.Request().Context(), c.Param("id"), req.Code, middleware.CallerID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) GetMyApplications(c echo.Context) error {
	apps, err := h.applications.GetMyApplications(c.Request().Context(), middleware.CallerID(c))
	if err != nil {
		return err
	}

	return list(c, "applications", apps)
}

func (h *Handler) GetTaskApplications(c echo.Context) error {
	apps, err := h.applications.GetTaskApplications(c.Request().Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		return err
	}

	return list(c, "applications", apps)
}
