package utils

import (
	"math"
	"testing"
)

// Monas, Jakarta and a point roughly 500m north of it.
const (
	officeLat = -6.175392
	officeLon = 106.827153
)

func TestCalculateHaversineDistance_Identity(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{officeLat, officeLon},
		{90, 0},
		{-45.5, 170.2},
	}
	for _, p := range points {
		if d := CalculateHaversineDistance(p[0], p[1], p[0], p[1]); d != 0 {
			t.Errorf("distance(%v, %v) to itself = %f, want 0", p[0], p[1], d)
		}
	}
}

func TestCalculateHaversineDistance_Symmetric(t *testing.T) {
	d1 := CalculateHaversineDistance(officeLat, officeLon, -6.2, 106.81)
	d2 := CalculateHaversineDistance(-6.2, 106.81, officeLat, officeLon)
	if math.Abs(d1-d2) > 1e-6 {
		t.Errorf("distance not symmetric: %f vs %f", d1, d2)
	}
}

func TestCalculateHaversineDistance_KnownDistance(t *testing.T) {
	// 0.0045 degrees of latitude is very close to 500m on the WGS84 sphere.
	d := CalculateHaversineDistance(officeLat, officeLon, officeLat+0.0045, officeLon)
	if d < 490 || d > 510 {
		t.Errorf("distance = %f, want ~500m", d)
	}
}

func TestWithinRadius(t *testing.T) {
	lat := officeLat + 0.0045 // ~500m away
	ok, distance := WithinRadius(lat, officeLon, officeLat, officeLon, 200)
	if ok {
		t.Errorf("point ~%.0fm away reported within 200m radius", distance)
	}
	if distance < 490 || distance > 510 {
		t.Errorf("reported distance = %f, want ~500m", distance)
	}

	// Monotonic in radius: if within R it is within any larger radius.
	for _, radius := range []float64{510, 600, 1000, 100000} {
		if ok, _ := WithinRadius(lat, officeLon, officeLat, officeLon, radius); !ok {
			t.Errorf("point within 510m not within %fm", radius)
		}
	}

	if ok, d := WithinRadius(officeLat, officeLon, officeLat, officeLon, 0); !ok || d != 0 {
		t.Errorf("coincident point: ok=%v distance=%f, want true, 0", ok, d)
	}
}
