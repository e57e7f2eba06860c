package services

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/shopspring/decimal"

	"task-marketplace.com/task-marketplace/internal/constants"
	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	"task-marketplace.com/task-marketplace/internal/geo"
	model "task-marketplace.com/task-marketplace/internal/models"
)

const (
	MinBillableDistanceMeters  = 1000.0
	MinBillableDurationMinutes = 10.0
)

var (
	sixty = decimal.NewFromInt(60)
	ten   = decimal.NewFromInt(10)
	kilo  = decimal.NewFromInt(1000)
)

type ShippingQuote struct {
	DistanceMeters  float64 `json:"estimated_distance_in_meters"`
	DurationMinutes float64 `json:"estimated_duration_in_minutes"`
	DeliveryAddress string  `json:"delivery_address_id"`
	MinPriceInCents int64   `json:"min_price_in_cents"`
	MaxPriceInCents int64   `json:"max_price_in_cents"`
}

// PriceInCents is the single price of a quote; min and max only diverge
// for range-priced tariffs.
func (q ShippingQuote) PriceInCents() int64 {
	return q.MinPriceInCents
}

type PricingService struct {
	configs    ActivePricingConfigSource
	categories CategoryStore
	relays     RelayPointStore
	addresses  AddressStore
	log        *slog.Logger
}

func NewPricingService(
	configs ActivePricingConfigSource,
	categories CategoryStore,
	relays RelayPointStore,
	addresses AddressStore,
	log *slog.Logger,
) *PricingService {
	return &PricingService{
		configs:    configs,
		categories: categories,
		relays:     relays,
		addresses:  addresses,
		log:        log,
	}
}

// CalculateServicePrice is hourlyRate × minutes / 60 rounded to the cent.
func CalculateServicePrice(hourlyRateCents int64, durationMinutes int) int64 {
	return decimal.NewFromInt(hourlyRateCents).
		Mul(decimal.NewFromInt(int64(durationMinutes))).
		Div(sixty).
		Round(0).
		IntPart()
}

// CalculateShippingPrice applies the distance and duration floors and rounds
// the total to the nearest 10 cents.
func CalculateShippingPrice(
	cfg *model.PricingConfig,
	category constants.PackageCategory,
	distanceMeters float64,
	durationMinutes float64,
) (int64, error) {
	base, err := BasePriceFor(cfg, category)
	if err != nil {
		return 0, err
	}

	km := decimal.NewFromFloat(math.Max(distanceMeters, MinBillableDistanceMeters)).Div(kilo)
	minutes := decimal.NewFromFloat(math.Max(durationMinutes, MinBillableDurationMinutes))

	total := decimal.NewFromInt(base).
		Add(km.Mul(decimal.NewFromInt(cfg.PricePerKm))).
		Add(minutes.Mul(decimal.NewFromInt(cfg.PricePerMinute)))

	return total.Div(ten).Round(0).Mul(ten).IntPart(), nil
}

func BasePriceFor(cfg *model.PricingConfig, category constants.PackageCategory) (int64, error) {
	switch category {
	case constants.PackageSmall:
		return cfg.BasePriceSmall, nil
	case constants.PackageMedium:
		return cfg.BasePriceMedium, nil
	case constants.PackageLarge:
		return cfg.BasePriceLarge, nil
	}
	return 0, apperrors.Validation("invalid package category: " + string(category))
}

func (s *PricingService) ServicePrice(ctx context.Context, categoryID string, durationMinutes int) (int64, error) {
	if durationMinutes <= 0 {
		return 0, apperrors.Validation("estimated duration must be positive")
	}

	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		return 0, err
	}
	if category.AmountInCents == nil || *category.AmountInCents <= 0 {
		return 0, apperrors.ErrPricingConfigMissing
	}

	return CalculateServicePrice(*category.AmountInCents, durationMinutes), nil
}

// ResolveRelayPoint returns the relay point and its geocoded address.
func (s *PricingService) ResolveRelayPoint(ctx context.Context, relayPointID string) (*model.RelayPoint, geo.Point, error) {
	relay, err := s.relays.FindByID(ctx, relayPointID)
	if err != nil {
		return nil, geo.Point{}, err
	}

	address := relay.Address
	if address == nil {
		address, err = s.addresses.FindByID(ctx, relay.AddressID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, geo.Point{}, apperrors.ErrDestinationMustBeRelayPoint
			}
			return nil, geo.Point{}, err
		}
	}

	return relay, geo.Point{Lat: address.Lat, Lon: address.Lng}, nil
}

// QuoteShipping prices a trip from pickup to the address of a relay point.
func (s *PricingService) QuoteShipping(
	ctx context.Context,
	pickup geo.Point,
	relayPointID string,
	category constants.PackageCategory,
) (*ShippingQuote, error) {
	relay, delivery, err := s.ResolveRelayPoint(ctx, relayPointID)
	if err != nil {
		return nil, err
	}

	quote, err := s.QuoteTrip(ctx, pickup, delivery, category)
	if err != nil {
		return nil, err
	}
	quote.DeliveryAddress = relay.AddressID
	return quote, nil
}

func (s *PricingService) QuoteTrip(
	ctx context.Context,
	pickup geo.Point,
	delivery geo.Point,
	category constants.PackageCategory,
) (*ShippingQuote, error) {
	if !category.Valid() {
		return nil, apperrors.Validation("invalid package category: " + string(category))
	}

	cfg, err := s.configs.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	estimate, err := geo.EstimateTrip(pickup, delivery)
	if err != nil {
		s.log.Warn("geo estimate failed", "pickup", pickup, "delivery", delivery, "error", err)
		return nil, apperrors.ErrGeoCalculationFailure.WithMessage(err.Error())
	}

	price, err := CalculateShippingPrice(cfg, category, estimate.DistanceMeters, estimate.DurationMinutes)
	if err != nil {
		return nil, err
	}

	return &ShippingQuote{
		DistanceMeters:  estimate.DistanceMeters,
		DurationMinutes: estimate.DurationMinutes,
		MinPriceInCents: price,
		MaxPriceInCents: price,
	}, nil
}
