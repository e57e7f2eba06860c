package validators

import (
	"github.com/labstack/echo/v4"

	"task-marketplace.com/task-marketplace/internal/constants"
	dto "task-marketplace.com/task-marketplace/internal/data_models"
	apperrors "task-marketplace.com/task-marketplace/internal/errors"
)

// ParseTaskFilters reads the optional listing filters. Absent parameters stay
// nil so the service can tell "not given" from a zero value.
func ParseTaskFilters(c echo.Context) (dto.TaskFilters, error) {
	var (
		f                        dto.TaskFilters
		taskType, status, catID  string
		durationMin, durationMax int
		lat, lng, radius         float64
	)

	err := echo.QueryParamsBinder(c).
		String("type", &taskType).
		String("status", &status).
		String("category_id", &catID).
		Int("duration_min", &durationMin).
		Int("duration_max", &durationMax).
		Float64("lat", &lat).
		Float64("lng", &lng).
		Float64("radius_km", &radius).
		BindError()
	if err != nil {
		return f, apperrors.Validation("invalid query parameters: " + err.Error())
	}

	present := func(name string) bool { return c.QueryParam(name) != "" }

	if present("type") {
		t := constants.TaskType(taskType)
		f.Type = &t
	}
	if present("status") {
		s := constants.TaskStatus(status)
		f.Status = &s
	}
	if present("category_id") {
		f.CategoryID = &catID
	}
	if present("duration_min") {
		f.DurationMin = &durationMin
	}
	if present("duration_max") {
		f.DurationMax = &durationMax
	}
	if present("lat") {
		f.Lat = &lat
	}
	if present("lng") {
		f.Lng = &lng
	}
	if present("radius_km") {
		f.RadiusKm = &radius
	}

	return f, nil
}
