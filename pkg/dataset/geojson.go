package dataset

import (
	"io"

	"github.com/lintang-b-s/gopherway/pkg/datastructure"
	"github.com/lintang-b-s/gopherway/pkg/geo"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

const typeProperty = "type"

// ParseGeoJSON reads a FeatureCollection of LineString / MultiLineString features. every part of a MultiLineString
// becomes its own line feature. properties.type tags the feature ("u" tunnel, "s" skyway).
// features with any other geometry are skipped.
func ParseGeoJSON(r io.Reader, log *zap.Logger) ([]datastructure.LineFeature, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	features := make([]datastructure.LineFeature, 0, len(fc.Features))
	skipped := 0
	for _, f := range fc.Features {
		tipe := featureType(f.Properties)

		switch g := f.Geometry.(type) {
		case orb.LineString:
			features = append(features, datastructure.NewLineFeature(len(features), tipe, lineCoordinates(g)))
		case orb.MultiLineString:
			for _, ls := range g {
				features = append(features, datastructure.NewLineFeature(len(features), tipe, lineCoordinates(ls)))
			}
		default:
			skipped++
		}
	}

	if skipped > 0 {
		log.Warn("skipped geojson features without line geometry", zap.Int("skipped", skipped))
	}
	log.Info("geojson dataset parsed", zap.Int("lineFeatures", len(features)))
	return features, nil
}

func featureType(props geojson.Properties) datastructure.FeatureType {
	if props == nil {
		return datastructure.UNKNOWN
	}
	tag, ok := props[typeProperty].(string)
	if !ok {
		return datastructure.UNKNOWN
	}
	return datastructure.ParseFeatureType(tag)
}

func lineCoordinates(ls orb.LineString) []geo.Coordinate {
	coords := make([]geo.Coordinate, 0, len(ls))
	for _, p := range ls {
		coords = append(coords, geo.NewCoordinate(p.Lon(), p.Lat()))
	}
	return coords
}
