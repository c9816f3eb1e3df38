package utils

import (
	"math"
	"testing"
)

func TestCalculateDistanceKnownPairs(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantKM                 float64
		tolerance              float64
	}{
		{"same point", 22.5726, 88.3639, 22.5726, 88.3639, 0, 0.001},
		{"kolkata to howrah", 22.5726, 88.3639, 22.5958, 88.2636, 10.6, 0.5},
		{"kolkata to delhi", 22.5726, 88.3639, 28.7041, 77.1025, 1317, 25},
		{"across the equator", 1.0, 0.0, -1.0, 0.0, 222.4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.wantKM) > tt.tolerance {
				t.Errorf("distance = %.2fkm, want %.2f±%.2f", got, tt.wantKM, tt.tolerance)
			}
		})
	}
}

func TestCalculateDistanceIsSymmetric(t *testing.T) {
	a := CalculateDistance(22.5726, 88.3639, 28.7041, 77.1025)
	b := CalculateDistance(28.7041, 77.1025, 22.5726, 88.3639)
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("distance not symmetric: %v vs %v", a, b)
	}
}

func TestIsWithinRadiusBoundary(t *testing.T) {
	// Points ~4.6km apart.
	lat1, lon1 := 22.5726, 88.3639
	lat2, lon2 := 22.6000, 88.4000

	if !IsWithinRadius(lat1, lon1, lat2, lon2, 10) {
		t.Error("points under 10km apart should be within radius")
	}
	if IsWithinRadius(lat1, lon1, lat2, lon2, 2) {
		t.Error("points over 2km apart should be outside radius")
	}
}

func TestIsValidCoordinates(t *testing.T) {
	valid := [][2]float64{{0, 0}, {-90, -180}, {90, 180}, {22.57, 88.36}}
	for _, c := range valid {
		if !IsValidCoordinates(c[0], c[1]) {
			t.Errorf("(%v, %v) should be valid", c[0], c[1])
		}
	}

	invalid := [][2]float64{{91, 0}, {-91, 0}, {0, 181}, {0, -181}}
	for _, c := range invalid {
		if IsValidCoordinates(c[0], c[1]) {
			t.Errorf("(%v, %v) should be invalid", c[0], c[1])
		}
	}
}
