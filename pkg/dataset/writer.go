package dataset

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/gopherway/pkg/datastructure"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ToFeatureCollection converts line features to a GeoJSON FeatureCollection of LineStrings tagged with
// properties.type.
func ToFeatureCollection(features []datastructure.LineFeature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range features {
		ls := make(orb.LineString, 0, len(f.Coordinates))
		for _, c := range f.Coordinates {
			ls = append(ls, orb.Point{c.Lon, c.Lat})
		}
		feat := geojson.NewFeature(ls)
		feat.Properties[typeProperty] = string(f.Type)
		fc.Append(feat)
	}
	return fc
}

func WriteGeoJSON(w io.Writer, features []datastructure.LineFeature) error {
	data, err := ToFeatureCollection(features).MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Save writes features as a GeoJSON dataset file, bzip2 compressed when path ends with .bz2.
func Save(path string, features []datastructure.LineFeature) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if !strings.HasSuffix(strings.ToLower(path), ".bz2") {
		return WriteGeoJSON(f, features)
	}

	bw, err := bzip2.NewWriter(f, &bzip2.WriterConfig{Level: bzip2.BestCompression})
	if err != nil {
		return err
	}
	if err := WriteGeoJSON(bw, features); err != nil {
		bw.Close()
		return err
	}
	return bw.Close()
}
