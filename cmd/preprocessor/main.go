package main

import (
	"flag"

	"github.com/lintang-b-s/gopherway/pkg/dataset"
	"github.com/lintang-b-s/gopherway/pkg/datastructure"
	"github.com/lintang-b-s/gopherway/pkg/logger"
	"github.com/lintang-b-s/gopherway/pkg/util"
	"go.uber.org/zap"
)

var (
	input  = flag.String("input", "./data/campus.osm.pbf", "openstreetmap extract (.osm, .osm.pbf, optionally .bz2)")
	output = flag.String("output", "./data/gopherway_routes.geojson", "geojson dataset to write, .bz2 compresses it")
)

// extracts the tunnel and skyway ways of an openstreetmap extract into a geojson walkway dataset.
func main() {
	flag.Parse()
	util.SetConfigDefaults()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}

	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	features, err := dataset.Load(*input, logger)
	if err != nil {
		logger.Fatal("failed to read openstreetmap extract", zap.Error(err))
	}

	graph, stats := datastructure.BuildGraph(features)
	_, components := graph.ConnectedComponents()
	logger.Info("walkway network extracted",
		zap.Int("features", stats.Features),
		zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("edges", graph.NumberOfEdges()),
		zap.Int("components", components))

	if err := dataset.Save(*output, features); err != nil {
		logger.Fatal("failed to write walkway dataset", zap.Error(err))
	}

	logger.Info("Preprocessing completed successfully.", zap.String("output", *output))
}
