package usecases

import (
	"github.com/lintang-b-s/gopherway/pkg/datastructure"
	"github.com/lintang-b-s/gopherway/pkg/geo"
	"github.com/lintang-b-s/gopherway/pkg/mapview"
	"github.com/lintang-b-s/gopherway/pkg/render"
	"github.com/lintang-b-s/gopherway/pkg/spatialindex"
	"github.com/lintang-b-s/gopherway/pkg/util"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

type NavigatorService struct {
	log             *zap.Logger
	engine          RoutingEngine
	spatialIndex    SpatialIndex
	renderConfig    render.Config
	walkingSpeedMph float64
	searchRadius    float64
	maxSearchRadius float64

	network *geojson.FeatureCollection
}

func NewNavigatorService(log *zap.Logger, engine RoutingEngine, spatialIndex SpatialIndex,
	renderConfig render.Config, walkingSpeedMph, searchRadius, maxSearchRadius float64) *NavigatorService {
	ns := &NavigatorService{
		log:             log,
		engine:          engine,
		spatialIndex:    spatialIndex,
		renderConfig:    renderConfig,
		walkingSpeedMph: walkingSpeedMph,
		searchRadius:    searchRadius,
		maxSearchRadius: maxSearchRadius,
	}
	ns.network = ns.buildNetwork()
	return ns
}

// ShortestPath returns the shortest route and its ETA in minutes. with snap the endpoints are first moved to
// their nearest graph node, otherwise they have to be graph nodes already.
func (ns *NavigatorService) ShortestPath(start, destination geo.Coordinate, snap bool) (datastructure.Route,
	float64, error) {
	if snap {
		var err error
		start, destination, err = ns.snapOrigDestToNearbyNodes(start, destination)
		if err != nil {
			return datastructure.Route{}, 0, err
		}
	}

	route, err := ns.engine.Route(start, destination)
	if err != nil {
		return datastructure.Route{}, 0, err
	}
	return route, route.ETAMinutes(ns.walkingSpeedMph), nil
}

func (ns *NavigatorService) NearestNode(query geo.Coordinate) (spatialindex.NodeCandidate, error) {
	cand, ok := ns.spatialIndex.NearestNode(query, ns.searchRadius, ns.maxSearchRadius)
	if !ok {
		return spatialindex.NodeCandidate{}, util.WrapErrorf(nil, util.ErrNotFound,
			"no walkway node within %.2f km of %s", ns.maxSearchRadius, geo.Key(query))
	}
	return cand, nil
}

// Network returns the dataset line features as GeoJSON, each with its type tag and display colour.
func (ns *NavigatorService) Network() *geojson.FeatureCollection {
	return ns.network
}

func (ns *NavigatorService) Nodes() []geo.Coordinate {
	graph := ns.engine.GetGraph()
	nodes := make([]geo.Coordinate, 0, graph.NumberOfVertices())
	graph.ForNodes(func(_ string, c geo.Coordinate) {
		nodes = append(nodes, c)
	})
	return nodes
}

// NewSession creates the map session of one websocket connection.
func (ns *NavigatorService) NewSession(log *zap.Logger) *mapview.Session {
	return mapview.NewSession(ns.engine.GetFeatures(), ns.engine.GetGraph(), ns.engine, ns.renderConfig,
		ns.walkingSpeedMph, log)
}

func (ns *NavigatorService) buildNetwork() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range ns.engine.GetFeatures() {
		ls := make(orb.LineString, 0, len(f.Coordinates))
		for _, c := range f.Coordinates {
			ls = append(ls, orb.Point{c.Lon, c.Lat})
		}
		feat := geojson.NewFeature(ls)
		feat.ID = f.ID
		feat.Properties["type"] = string(f.Type)
		feat.Properties["color"] = ns.renderConfig.ColorFor(f.Type)
		fc.Append(feat)
	}
	return fc
}
