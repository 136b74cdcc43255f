package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineMiles(t *testing.T) {
	testCases := []struct {
		name string
		p1   Coordinate
		p2   Coordinate
		want float64
	}{
		{
			name: "one degree of latitude",
			p1:   NewCoordinate(0, 0),
			p2:   NewCoordinate(0, 1),
			want: 69.0933,
		},
		{
			name: "one degree of longitude on the equator",
			p1:   NewCoordinate(0, 0),
			p2:   NewCoordinate(1, 0),
			want: 69.0933,
		},
		{
			name: "two campus nodes",
			p1:   NewCoordinate(-93.2359, 44.9745),
			p2:   NewCoordinate(-93.2344, 44.9740),
			want: 0.0810,
		},
		{
			name: "same point",
			p1:   NewCoordinate(-93.238386, 44.973305),
			p2:   NewCoordinate(-93.238386, 44.973305),
			want: 0,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineMiles(tt.p1, tt.p2)
			assert.InDelta(t, tt.want, got, 1e-4)
		})
	}
}

func TestHaversineMilesSymmetric(t *testing.T) {
	a := NewCoordinate(-93.2359, 44.9745)
	b := NewCoordinate(-93.2281, 44.9712)
	assert.Equal(t, HaversineMiles(a, b), HaversineMiles(b, a))
}

func TestHaversineMilesMatchesKmFormula(t *testing.T) {
	a := NewCoordinate(-93.2359, 44.9745)
	b := NewCoordinate(-93.2281, 44.9712)

	km := CalculateHaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon)
	assert.InDelta(t, km*1000*MetersToMiles, HaversineMiles(a, b), 1e-9)
}

func TestGetDestinationPoint(t *testing.T) {
	lat, lon := GetDestinationPoint(44.973305, -93.238386, 45, 0.05)
	assert.Greater(t, lat, 44.973305)
	assert.Greater(t, lon, -93.238386)

	back := CalculateHaversineDistance(44.973305, -93.238386, lat, lon)
	assert.InDelta(t, 0.05, back, 1e-6)
}

func TestAngularDistanceMeters(t *testing.T) {
	a := NewCoordinate(0, 0)
	b := NewCoordinate(0, 1)
	got := AngularDistanceMeters(a, b)
	assert.InDelta(t, 6371e3*math.Pi/180, got, 1e-3)
}
