package datastructure

import "github.com/lintang-b-s/gopherway/pkg/geo"

// Route is a shortest walking path: the ordered coordinates from start to destination (both inclusive)
// and the total great-circle distance in miles.
type Route struct {
	Path     []geo.Coordinate
	Distance float64
}

func NewRoute(path []geo.Coordinate, distance float64) Route {
	return Route{Path: path, Distance: distance}
}

// ETAMinutes. walking time in minutes at speedMph.
func (r Route) ETAMinutes(speedMph float64) float64 {
	return (r.Distance / speedMph) * 60
}

func (r Route) IsEmpty() bool {
	return len(r.Path) == 0
}

// Keys returns the node key of every route point.
func (r Route) Keys() []string {
	keys := make([]string, len(r.Path))
	for i, c := range r.Path {
		keys[i] = geo.Key(c)
	}
	return keys
}
