package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-marketplace.com/task-marketplace/internal/data_models"
	middleware "task-marketplace.com/task-marketplace/internal/http/middlewares"
)

func (h *Handler) SendMessage(c echo.Context) error {
	var req dto.SendMessageRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	msg, err := h.messages.SendMessage(
		c.Request().Context(),
		c.Param("id"),
		middleware.CallerID(c),
		req.ReceiverID,
		req.Content,
		req.MessageType,
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, msg)
}

func (h *Handler) GetTaskMessages(c echo.Context) error {
	msgs, err := h.messages.GetTaskMessages(c.Request().Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		return err
	}

	return list(c, "messages", msgs)
}

func (h *Handler) MarkMessagesAsRead(c echo.Context) error {
	marked, err := h.messages.MarkMessagesAsRead(c.Request().Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"marked": marked})
}

func (h *Handler) UnreadMessagesCount(c echo.Context) error {
	count, err := h.messages.GetUnreadMessagesCount(c.Request().Context(), middleware.CallerID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"unread": count})
}
