package services

import (
	"context"

	"gorm.io/datatypes"

	"task-marketplace.com/task-marketplace/internal/constants"
	dto "task-marketplace.com/task-marketplace/internal/data_models"
	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	model "task-marketplace.com/task-marketplace/internal/models"
)

// preparedTask carries everything a variant handler resolved before the
// creation transaction opens: price inputs, the price, and the first
// shipping leg when there is one.
type preparedTask struct {
	categoryID        *string
	estimatedDuration *int
	priceInCents      int64

	pickup   *dto.AddressInput
	shipping *model.Shipping
}

// taskTypeHandler owns the type-specific part of task creation.
type taskTypeHandler interface {
	prepare(ctx context.Context, details dto.TaskDetails) (*preparedTask, error)
}

type serviceTaskHandler struct {
	pricing *PricingService
}

func (h serviceTaskHandler) prepare(ctx context.Context, details dto.TaskDetails) (*preparedTask, error) {
	d, ok := details.(dto.ServiceDetails)
	if !ok {
		return nil, apperrors.Validation("service task requires service details")
	}

	price, err := h.pricing.ServicePrice(ctx, d.CategoryID, d.EstimatedDuration)
	if err != nil {
		return nil, err
	}

	categoryID := d.CategoryID
	duration := d.EstimatedDuration
	return &preparedTask{
		categoryID:        &categoryID,
		estimatedDuration: &duration,
		priceInCents:      price,
	}, nil
}

type shippingTaskHandler struct {
	pricing *PricingService
}

func (h shippingTaskHandler) prepare(ctx context.Context, details dto.TaskDetails) (*preparedTask, error) {
	d, ok := details.(dto.ShippingDetails)
	if !ok {
		return nil, apperrors.Validation("shipping task requires shipping details")
	}

	quote, err := h.pricing.QuoteShipping(ctx, d.PickupAddress.Point(), d.RelayPointID, d.PackageCategory)
	if err != nil {
		return nil, err
	}

	return &preparedTask{
		priceInCents: quote.PriceInCents(),
		pickup:       d.PickupAddress,
		shipping: &model.Shipping{
			PackageCategory:            d.PackageCategory,
			DeliveryAddressID:          quote.DeliveryAddress,
			RelayPointID:               d.RelayPointID,
			PackageDetails:             datatypes.JSON(d.PackageDetails),
			EstimatedDistanceInMeters:  quote.DistanceMeters,
			EstimatedDurationInMinutes: quote.DurationMinutes,
			CalculatedPriceInCents:     quote.PriceInCents(),
		},
	}, nil
}

func newTaskTypeHandlers(pricing *PricingService) map[constants.TaskType]taskTypeHandler {
	return map[constants.TaskType]taskTypeHandler{
		constants.TaskTypeService:  serviceTaskHandler{pricing: pricing},
		constants.TaskTypeShipping: shippingTaskHandler{pricing: pricing},
	}
}
