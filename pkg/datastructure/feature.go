package datastructure

import "github.com/lintang-b-s/gopherway/pkg/geo"

// FeatureType tags a line feature for display only. it never affects routing.
type FeatureType string

const (
	TUNNEL  FeatureType = "u" // under-building tunnel
	SKYWAY  FeatureType = "s" // above-ground skyway
	UNKNOWN FeatureType = ""
)

func ParseFeatureType(tag string) FeatureType {
	switch tag {
	case "u", "tunnel":
		return TUNNEL
	case "s", "skyway":
		return SKYWAY
	default:
		return UNKNOWN
	}
}

// LineFeature is one mapped tunnel or skyway segment: an ordered chain of coordinates.
type LineFeature struct {
	ID          int
	Type        FeatureType
	Coordinates []geo.Coordinate
}

func NewLineFeature(id int, tipe FeatureType, coords []geo.Coordinate) LineFeature {
	return LineFeature{
		ID:          id,
		Type:        tipe,
		Coordinates: coords,
	}
}

// ForEachSegment calls fn for every consecutive coordinate pair of the feature.
func (f LineFeature) ForEachSegment(fn func(from, to geo.Coordinate)) {
	for i := 0; i+1 < len(f.Coordinates); i++ {
		fn(f.Coordinates[i], f.Coordinates[i+1])
	}
}
