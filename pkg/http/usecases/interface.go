package usecases

import (
	"github.com/lintang-b-s/gopherway/pkg/datastructure"
	"github.com/lintang-b-s/gopherway/pkg/geo"
	"github.com/lintang-b-s/gopherway/pkg/spatialindex"
)

type RoutingEngine interface {
	GetGraph() *datastructure.Graph
	GetFeatures() []datastructure.LineFeature
	Route(start, destination geo.Coordinate) (datastructure.Route, error)
}

type SpatialIndex interface {
	NearestNode(query geo.Coordinate, radius, maxRadius float64) (spatialindex.NodeCandidate, bool)
}
