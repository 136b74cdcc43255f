package geo

import (
	"github.com/golang/geo/s2"
)

// AngularDistanceMeters. spherical distance between a and b in meters, computed on the s2 sphere.
func AngularDistanceMeters(a, b Coordinate) float64 {
	aLL := s2.LatLngFromDegrees(a.Lat, a.Lon)
	bLL := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return aLL.Distance(bLL).Radians() * earthRadiusM
}
