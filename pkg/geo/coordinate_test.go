package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	testCases := []struct {
		name string
		c    Coordinate
		want string
	}{
		{name: "integers", c: NewCoordinate(0, 1), want: "0,1"},
		{name: "campus node", c: NewCoordinate(-93.238386, 44.973305), want: "-93.238386,44.973305"},
		{name: "longitude first", c: NewCoordinate(44.973305, -93.238386), want: "44.973305,-93.238386"},
		{name: "no trailing zeros", c: NewCoordinate(-93.2, 44.50), want: "-93.2,44.5"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.c))
		})
	}
}

func TestKeyExactMatch(t *testing.T) {
	a := NewCoordinate(-93.238386, 44.973305)
	b := NewCoordinate(math.Nextafter(-93.238386, 0), 44.973305)

	assert.NotEqual(t, Key(a), Key(b), "coordinates one ulp apart must be different nodes")
	assert.Equal(t, Key(a), Key(NewCoordinate(-93.238386, 44.973305)))
}

func TestParseKeyRoundTrip(t *testing.T) {
	coords := []Coordinate{
		NewCoordinate(0, 0),
		NewCoordinate(-93.238386, 44.973305),
		NewCoordinate(math.Nextafter(-93.238386, 0), 44.973305),
		NewCoordinate(-93.23595712341234, 44.97451234567891),
	}

	for _, c := range coords {
		got, err := ParseKey(Key(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

func TestParseKeyInvalid(t *testing.T) {
	for _, key := range []string{"", "abc", "1;2", "x,1", "1,y"} {
		_, err := ParseKey(key)
		assert.Error(t, err, key)
	}
}

func TestPolylineRoundTrip(t *testing.T) {
	path := []Coordinate{
		NewCoordinate(-93.23595, 44.97451),
		NewCoordinate(-93.23441, 44.97402),
		NewCoordinate(-93.23312, 44.97388),
	}

	encoded := PolylineFromCoords(path)
	require.NotEmpty(t, encoded)

	decoded, err := CoordsFromPolyline(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, len(path))
	for i := range path {
		assert.InDelta(t, path[i].Lat, decoded[i].Lat, 1e-5)
		assert.InDelta(t, path[i].Lon, decoded[i].Lon, 1e-5)
	}
}
