package controllers

import (
	"github.com/lintang-b-s/gopherway/pkg/datastructure"
	"github.com/lintang-b-s/gopherway/pkg/geo"
	"github.com/lintang-b-s/gopherway/pkg/mapview"
	"github.com/lintang-b-s/gopherway/pkg/spatialindex"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

type NavigatorService interface {
	ShortestPath(start, destination geo.Coordinate, snap bool) (datastructure.Route, float64, error)
	NearestNode(query geo.Coordinate) (spatialindex.NodeCandidate, error)
	Network() *geojson.FeatureCollection
	Nodes() []geo.Coordinate
}

type SessionService interface {
	NewSession(log *zap.Logger) *mapview.Session
}
