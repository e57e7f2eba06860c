// Package geo estimates great-circle distances and travel durations on a
// spherical earth.
package geo

import (
	"fmt"
	"math"
)

const (
	EarthRadiusMeters   = 6371000.0
	UrbanDistanceMeters = 5000.0

	urbanSpeed   = 30 * 1000.0 / 3600 // m/s
	highwaySpeed = 80 * 1000.0 / 3600 // m/s
)

type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lon, 0) {
		return fmt.Errorf("coordinates must be finite: (%v, %v)", p.Lat, p.Lon)
	}
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("latitude out of range: %v", p.Lat)
	}
	if p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("longitude out of range: %v", p.Lon)
	}
	return nil
}

// Distance returns the haversine distance in meters.
func Distance(start, end Point) (float64, error) {
	if err := start.Validate(); err != nil {
		return 0, err
	}
	if err := end.Validate(); err != nil {
		return 0, err
	}

	lat1 := radians(start.Lat)
	lat2 := radians(end.Lat)
	dlat := lat2 - lat1
	dlon := radians(end.Lon) - radians(start.Lon)

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c, nil
}

// Duration estimates travel time in minutes. The first 2×UrbanDistanceMeters
// are driven at urban speed, the remainder at highway speed.
func Duration(distanceMeters float64) float64 {
	if distanceMeters <= 0 {
		return 0
	}

	urbanLimit := 2 * UrbanDistanceMeters
	if distanceMeters <= urbanLimit {
		return distanceMeters / urbanSpeed / 60
	}

	seconds := urbanLimit/urbanSpeed + (distanceMeters-urbanLimit)/highwaySpeed
	return seconds / 60
}

// Estimate is a rounded distance (meters) and duration (minutes).
type Estimate struct {
	DistanceMeters  float64 `json:"distance_meters"`
	DurationMinutes float64 `json:"duration_minutes"`
}

func EstimateTrip(start, end Point) (Estimate, error) {
	distance, err := Distance(start, end)
	if err != nil {
		return Estimate{}, err
	}

	return Estimate{
		DistanceMeters:  math.Round(distance),
		DurationMinutes: math.Round(Duration(distance)),
	}, nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
