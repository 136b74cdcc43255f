package engine

import (
	"github.com/lintang-b-s/gopherway/pkg/dataset"
	"github.com/lintang-b-s/gopherway/pkg/datastructure"
	"github.com/lintang-b-s/gopherway/pkg/engine/routing"
	"github.com/lintang-b-s/gopherway/pkg/geo"
	"github.com/lintang-b-s/gopherway/pkg/util"
	"go.uber.org/zap"
)

// Engine owns the walkway network for one dataset load: the line features, the graph built from them and the
// shortest path search over it. everything it holds is read-only after construction.
type Engine struct {
	features      []datastructure.LineFeature
	graph         *datastructure.Graph
	dijkstra      *routing.Dijkstra
	numComponents int
	log           *zap.Logger
}

// NewEngine loads the dataset at datasetPath and builds the graph once.
func NewEngine(datasetPath string, log *zap.Logger) (*Engine, error) {
	log.Info("Reading walkway dataset", zap.String("datasetPath", datasetPath))
	features, err := dataset.Load(datasetPath, log)
	if err != nil {
		return nil, err
	}
	return NewEngineDirect(features, log), nil
}

// NewEngineDirect builds the engine from already parsed features.
func NewEngineDirect(features []datastructure.LineFeature, log *zap.Logger) *Engine {
	graph, stats := datastructure.BuildGraph(features)
	_, numComponents := graph.ConnectedComponents()

	if stats.SkippedFeatures > 0 {
		log.Warn("skipped line features with fewer than 2 coordinates",
			zap.Int("skipped", stats.SkippedFeatures), zap.Int("features", stats.Features))
	}
	log.Info("Walkway graph built",
		zap.Int("features", stats.Features),
		zap.Int("segments", stats.Segments),
		zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("edges", graph.NumberOfEdges()),
		zap.Int("components", numComponents))

	return &Engine{
		features:      features,
		graph:         graph,
		dijkstra:      routing.NewDijkstra(graph),
		numComponents: numComponents,
		log:           log,
	}
}

func (e *Engine) GetGraph() *datastructure.Graph {
	return e.graph
}

func (e *Engine) GetFeatures() []datastructure.LineFeature {
	return e.features
}

func (e *Engine) NumberOfComponents() int {
	return e.numComponents
}

// Route computes the shortest route between two graph nodes. it returns a *util.Error coded util.ErrNotFound that
// wraps routing.ErrNodeNotInGraph when a coordinate is not a node, and routing.ErrPathNotFound when the nodes are
// not connected.
func (e *Engine) Route(start, destination geo.Coordinate) (datastructure.Route, error) {
	for _, c := range []geo.Coordinate{start, destination} {
		if !e.graph.HasNode(c) {
			e.log.Debug("route endpoint is not a graph node", zap.String("node", geo.Key(c)))
			return datastructure.Route{}, util.WrapErrorf(routing.ErrNodeNotInGraph, util.ErrNotFound,
				"%s is not a node of the walkway network", geo.Key(c))
		}
	}

	route, found := e.dijkstra.ShortestPath(start, destination)
	if !found {
		e.log.Debug("no route between graph nodes",
			zap.String("start", geo.Key(start)), zap.String("destination", geo.Key(destination)))
		return datastructure.Route{}, util.WrapErrorf(routing.ErrPathNotFound, util.ErrNotFound,
			"no route found from %s to %s", geo.Key(start), geo.Key(destination))
	}
	return route, nil
}
