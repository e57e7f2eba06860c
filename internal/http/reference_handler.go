package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-marketplace.com/task-marketplace/internal/data_models"
	middleware "task-marketplace.com/task-marketplace/internal/http/middlewares"
	"task-marketplace.com/task-marketplace/internal/services"
)

func (h *Handler) ListCategories(c echo.Context) error {
	categories, err := h.references.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}

	return list(c, "categories", categories)
}

func (h *Handler) CreateCategory(c echo.Context) error {
	var req dto.CreateCategoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	category, err := h.references.CreateCategory(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, category)
}

func (h *Handler) ListRelayPoints(c echo.Context) error {
	relays, err := h.references.ListRelayPoints(c.Request().Context())
	if err != nil {
		return err
	}

	return list(c, "relay_points", relays)
}

func (h *Handler) CreateRelayPoint(c echo.Context) error {
	var req dto.CreateRelayPointRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	relay, err := h.references.CreateRelayPoint(c.Request().Context(), req, middleware.CallerID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, relay)
}

func (h *Handler) PackageCategories(c echo.Context) error {
	return list(c, "package_categories", h.references.PackageCategories())
}

func (h *Handler) ListPricingConfigs(c echo.Context) error {
	cfgs, err := h.pricingConfigs.List(c.Request().Context())
	if err != nil {
		return err
	}

	return list(c, "pricing_configs", cfgs)
}

func (h *Handler) ActivePricingConfig(c echo.Context) error {
	cfg, err := h.pricingConfigs.GetActive(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, cfg)
}

func (h *Handler) CreatePricingConfig(c echo.Context) error {
	var req struct {
		services.PricingConfigInput
		Activate bool `json:"activate"`
	}
	if err := bind(c, &req); err != nil {
		return err
	}

	cfg, err := h.pricingConfigs.Create(c.Request().Context(), req.PricingConfigInput, req.Activate)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, cfg)
}

func (h *Handler) ActivatePricingConfig(c echo.Context) error {
	cfg, err := h.pricingConfigs.Activate(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, cfg)
}

func (h *Handler) DeactivatePricingConfig(c echo.Context) error {
	cfg, err := h.pricingConfigs.Deactivate(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, cfg)
}
