package errors

import "net/http"

var ErrDestinationMustBeRelayPoint = &Exception{
	Code:       "DESTINATION_MUST_BE_RELAY_POINT",
	Message:    "delivery destination must be an existing relay point",
	StatusCode: http.StatusUnprocessableEntity,
}

var ErrNoActivePricingConfig = &Exception{
	Code:       "NO_ACTIVE_PRICING_CONFIG",
	Message:    "no active pricing config",
	StatusCode: http.StatusServiceUnavailable,
}

var ErrPricingConfigMissing = &Exception{
	Code:       "PRICING_CONFIG_MISSING",
	Message:    "category has no hourly rate",
	StatusCode: http.StatusUnprocessableEntity,
}

var ErrGeoCalculationFailure = &Exception{
	Code:       "GEO_CALCULATION_FAILURE",
	Message:    "unable to compute distance and duration",
	StatusCode: http.StatusUnprocessableEntity,
}
