package geo

import (
	"fmt"
	"strconv"
	"strings"
)

// Coordinate is a (longitude, latitude) pair in degrees. longitude comes first, the same order the dataset stores.
type Coordinate struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

func NewCoordinate(lon, lat float64) Coordinate {
	return Coordinate{
		Lon: lon,
		Lat: lat,
	}
}

// Key. canonical node identity of c: "lon,lat" with every float in its shortest exact form.
// two coordinates get the same key only if both components are bit-for-bit equal floats.
func Key(c Coordinate) string {
	return strconv.FormatFloat(c.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lat, 'f', -1, 64)
}

// ParseKey is the inverse of Key.
func ParseKey(key string) (Coordinate, error) {
	lonStr, latStr, ok := strings.Cut(key, ",")
	if !ok {
		return Coordinate{}, fmt.Errorf("invalid node key %q: expected \"lon,lat\"", key)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid longitude in node key %q: %w", key, err)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid latitude in node key %q: %w", key, err)
	}
	return NewCoordinate(lon, lat), nil
}
