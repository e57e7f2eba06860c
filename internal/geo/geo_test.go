package geo

import (
	"math"
	"testing"
)

func TestDistance_SamePointIsZero(t *testing.T) {
	p := Point{Lat: 48.8566, Lon: 2.3522}

	d, err := Distance(p, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != 0 {
		t.Errorf("expected 0, got %f", d)
	}
}

func TestDistance_OneDegreeOfLatitude(t *testing.T) {
	d, err := Distance(Point{Lat: 0, Lon: 0}, Point{Lat: 1, Lon: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := EarthRadiusMeters * math.Pi / 180
	if math.Abs(d-want) > 0.5 {
		t.Errorf("expected %f, got %f", want, d)
	}
}

func TestDistance_ParisToLyon(t *testing.T) {
	paris := Point{Lat: 48.8566, Lon: 2.3522}
	lyon := Point{Lat: 45.7640, Lon: 4.8357}

	d, err := Distance(paris, lyon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d < 390000 || d > 395000 {
		t.Errorf("expected roughly 392 km, got %f m", d)
	}
}

func TestDistance_RejectsMalformedCoordinates(t *testing.T) {
	cases := []Point{
		{Lat: 91, Lon: 0},
		{Lat: 0, Lon: -181},
		{Lat: math.NaN(), Lon: 0},
		{Lat: 0, Lon: math.Inf(1)},
	}

	for _, p := range cases {
		if _, err := Distance(Point{}, p); err == nil {
			t.Errorf("expected error for %+v", p)
		}
	}
}

func TestDuration_UrbanOnly(t *testing.T) {
	// 5 km at 30 km/h = 10 minutes
	got := Duration(5000)
	if math.Abs(got-10) > 1e-9 {
		t.Errorf("expected 10 minutes, got %f", got)
	}
}

func TestDuration_AtUrbanLimit(t *testing.T) {
	// 10 km at 30 km/h = 20 minutes
	got := Duration(10000)
	if math.Abs(got-20) > 1e-9 {
		t.Errorf("expected 20 minutes, got %f", got)
	}
}

func TestDuration_HighwayBeyondUrbanLimit(t *testing.T) {
	// 10 km urban (20 min) + 40 km at 80 km/h (30 min)
	got := Duration(50000)
	if math.Abs(got-50) > 1e-9 {
		t.Errorf("expected 50 minutes, got %f", got)
	}
}

func TestDuration_NonPositive(t *testing.T) {
	if got := Duration(0); got != 0 {
		t.Errorf("expected 0, got %f", got)
	}
	if got := Duration(-10); got != 0 {
		t.Errorf("expected 0, got %f", got)
	}
}

func TestEstimateTrip_Rounds(t *testing.T) {
	est, err := EstimateTrip(Point{Lat: 0, Lon: 0}, Point{Lat: 0.02, Lon: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est.DistanceMeters != math.Round(est.DistanceMeters) {
		t.Errorf("distance not rounded: %f", est.DistanceMeters)
	}
	if est.DurationMinutes != math.Round(est.DurationMinutes) {
		t.Errorf("duration not rounded: %f", est.DurationMinutes)
	}
	// ~2224 m at urban speed ~ 4.4 min
	if est.DurationMinutes != 4 {
		t.Errorf("expected 4 minutes, got %f", est.DurationMinutes)
	}
}
