package dataset

import (
	"context"
	"io"
	"strconv"

	"github.com/lintang-b-s/gopherway/pkg/datastructure"
	"github.com/lintang-b-s/gopherway/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"go.uber.org/zap"
)

type osmScanner interface {
	Scan() bool
	Object() osm.Object
	Err() error
	Close() error
}

type osmWay struct {
	id    osm.WayID
	tipe  datastructure.FeatureType
	nodes []osm.NodeID
}

// OsmParser extracts tunnel and skyway ways from an openstreetmap extract.
type OsmParser struct {
	nodeCoords map[osm.NodeID]geo.Coordinate
	ways       []osmWay
}

func NewOSMParser() *OsmParser {
	return &OsmParser{
		nodeCoords: make(map[osm.NodeID]geo.Coordinate),
		ways:       make([]osmWay, 0),
	}
}

func (p *OsmParser) ParseXML(r io.Reader, log *zap.Logger) ([]datastructure.LineFeature, error) {
	scanner := osmxml.New(context.Background(), r)
	return p.parse(scanner, log)
}

func (p *OsmParser) ParsePBF(r io.Reader, log *zap.Logger) ([]datastructure.LineFeature, error) {
	// must not be parallel, ways reference nodes by scan order
	scanner := osmpbf.New(context.Background(), r, 1)
	return p.parse(scanner, log)
}

func (p *OsmParser) parse(scanner osmScanner, log *zap.Logger) ([]datastructure.LineFeature, error) {
	defer scanner.Close()

	countWays := 0
	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			p.nodeCoords[o.ID] = geo.NewCoordinate(o.Lon, o.Lat)
		case *osm.Way:
			countWays++
			tipe, ok := classifyWay(o.Tags)
			if !ok {
				continue
			}
			nodes := make([]osm.NodeID, 0, len(o.Nodes))
			for _, wn := range o.Nodes {
				nodes = append(nodes, wn.ID)
			}
			p.ways = append(p.ways, osmWay{id: o.ID, tipe: tipe, nodes: nodes})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	features := make([]datastructure.LineFeature, 0, len(p.ways))
	missing := 0
	for _, w := range p.ways {
		coords := make([]geo.Coordinate, 0, len(w.nodes))
		complete := true
		for _, id := range w.nodes {
			c, ok := p.nodeCoords[id]
			if !ok {
				complete = false
				break
			}
			coords = append(coords, c)
		}
		if !complete {
			missing++
			continue
		}
		features = append(features, datastructure.NewLineFeature(len(features), w.tipe, coords))
	}

	if missing > 0 {
		log.Warn("skipped openstreetmap ways referencing nodes outside the extract", zap.Int("skipped", missing))
	}
	log.Info("openstreetmap dataset parsed", zap.Int("ways", countWays),
		zap.Int("lineFeatures", len(features)))
	return features, nil
}

// classifyWay accepts pedestrian ways that run through a tunnel (or below ground) or over a bridge.
func classifyWay(tags osm.Tags) (datastructure.FeatureType, bool) {
	if !isPedestrianWay(tags) {
		return datastructure.UNKNOWN, false
	}

	tunnel := tags.Find("tunnel")
	if (tunnel != "" && tunnel != "no") || belowGround(tags.Find("layer")) {
		return datastructure.TUNNEL, true
	}
	bridge := tags.Find("bridge")
	if (bridge != "" && bridge != "no") || tags.Find("covered") == "yes" {
		return datastructure.SKYWAY, true
	}
	return datastructure.UNKNOWN, false
}

func isPedestrianWay(tags osm.Tags) bool {
	switch tags.Find("highway") {
	case "footway", "corridor", "steps", "path", "pedestrian":
		return true
	}
	return tags.Find("indoor") == "corridor"
}

func belowGround(layer string) bool {
	l, err := strconv.Atoi(layer)
	return err == nil && l < 0
}
