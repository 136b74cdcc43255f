package dataset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/gopherway/pkg/datastructure"
	"github.com/lintang-b-s/gopherway/pkg/util"
	"go.uber.org/zap"
)

type Format uint8

const (
	GEOJSON Format = iota
	OSM_XML
	OSM_PBF
)

// DetectFormat picks the dataset format from the file name. a trailing .bz2 is ignored.
func DetectFormat(path string) (Format, error) {
	name := strings.ToLower(strings.TrimSuffix(path, ".bz2"))
	switch {
	case strings.HasSuffix(name, ".geojson"), strings.HasSuffix(name, ".json"):
		return GEOJSON, nil
	case strings.HasSuffix(name, ".osm.pbf"), strings.HasSuffix(name, ".pbf"):
		return OSM_PBF, nil
	case strings.HasSuffix(name, ".osm"), strings.HasSuffix(name, ".xml"):
		return OSM_XML, nil
	default:
		return 0, util.WrapErrorf(nil, util.ErrBadParamInput, "unsupported dataset file %q", filepath.Base(path))
	}
}

// Load reads the line features of a walkway dataset file. .geojson/.json, .osm and .osm.pbf are supported, each
// optionally bzip2 compressed (.bz2).
func Load(path string, log *zap.Logger) ([]datastructure.LineFeature, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".bz2") {
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			return nil, fmt.Errorf("open bzip2 dataset %s: %w", path, err)
		}
		defer bz.Close()
		r = bz
	}

	features, err := LoadReader(r, format, log)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return features, nil
}

func LoadReader(r io.Reader, format Format, log *zap.Logger) ([]datastructure.LineFeature, error) {
	switch format {
	case GEOJSON:
		return ParseGeoJSON(r, log)
	case OSM_XML:
		return NewOSMParser().ParseXML(r, log)
	case OSM_PBF:
		return NewOSMParser().ParsePBF(r, log)
	default:
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "unknown dataset format %d", format)
	}
}
