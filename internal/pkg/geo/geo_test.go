package geo

import (
	"math"
	"testing"
)

func TestHaversineDistance(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		tolerance              float64
	}{
		{"same point", 28.6139, 77.2090, 28.6139, 77.2090, 0, 0.001},
		{"short hop", 28.6139, 77.2090, 28.6140, 77.2091, 14.9, 1.0},
		{"one degree of latitude", 0, 0, 1, 0, 111195, 100},
		{"delhi to mumbai", 28.6139, 77.2090, 19.0760, 72.8777, 1150000, 15000},
		{"across the equator", -1, 30, 1, 30, 222390, 200},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := HaversineDistance(c.lat1, c.lon1, c.lat2, c.lon2)
			if math.Abs(got-c.want) > c.tolerance {
				t.Errorf("HaversineDistance() = %.2f, want %.2f (±%.2f)", got, c.want, c.tolerance)
			}
		})
	}
}

func TestHaversineDistance_Symmetric(t *testing.T) {
	ab := HaversineDistance(28.6139, 77.2090, 19.0760, 72.8777)
	ba := HaversineDistance(19.0760, 72.8777, 28.6139, 77.2090)
	if math.Abs(ab-ba) > 1e-6 {
		t.Errorf("distance not symmetric: %.6f vs %.6f", ab, ba)
	}
}
