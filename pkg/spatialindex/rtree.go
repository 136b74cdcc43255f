package spatialindex

import (
	"math"
	"sort"

	"github.com/lintang-b-s/gopherway/pkg/datastructure"
	"github.com/lintang-b-s/gopherway/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// Rtree indexes the walkway graph nodes so a free coordinate (a map click, an address lookup) can be snapped to
// the closest node.
type Rtree struct {
	tr     *rtree.RTreeG[string]
	coords map[string]geo.Coordinate
}

// NodeCandidate is a graph node found near a query point. Distance is in meters.
type NodeCandidate struct {
	Key        string
	Coordinate geo.Coordinate
	Distance   float64
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[string]
	return &Rtree{
		tr:     &tr,
		coords: make(map[string]geo.Coordinate),
	}
}

// Build. build r-tree, with each leaf having bounding box with radius boundingBoxRadius (in km) around a node
func (rt *Rtree) Build(graph *datastructure.Graph, boundingBoxRadius float64, log *zap.Logger) {
	log.Info("Building R-tree spatial index...")
	graph.ForNodes(func(key string, c geo.Coordinate) {
		lowerLat, lowerLon := geo.GetDestinationPoint(c.Lat, c.Lon, 225, boundingBoxRadius)
		upperLat, upperLon := geo.GetDestinationPoint(c.Lat, c.Lon, 45, boundingBoxRadius)

		rt.tr.Insert([2]float64{math.Min(lowerLon, upperLon), math.Min(lowerLat, upperLat)},
			[2]float64{math.Max(lowerLon, upperLon), math.Max(lowerLat, upperLat)}, key)
		rt.coords[key] = c
	})

	log.Info("R-tree spatial index built.", zap.Int("nodes", rt.tr.Len()))
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// SearchWithinRadius returns the nodes within radius (in km) of the query point, closest first.
func (rt *Rtree) SearchWithinRadius(query geo.Coordinate, radius float64) []NodeCandidate {
	lowerLat, lowerLon := geo.GetDestinationPoint(query.Lat, query.Lon, 225, radius)
	upperLat, upperLon := geo.GetDestinationPoint(query.Lat, query.Lon, 45, radius)

	results := make([]NodeCandidate, 0, 10)
	rt.tr.Search([2]float64{math.Min(lowerLon, upperLon), math.Min(lowerLat, upperLat)},
		[2]float64{math.Max(lowerLon, upperLon), math.Max(lowerLat, upperLat)},
		func(min, max [2]float64, key string) bool {
			c := rt.coords[key]
			dist := geo.AngularDistanceMeters(query, c)
			if dist <= radius*1000 {
				results = append(results, NodeCandidate{Key: key, Coordinate: c, Distance: dist})
			}
			return true
		})

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Distance == results[j].Distance {
			return results[i].Key < results[j].Key
		}
		return results[i].Distance < results[j].Distance
	})
	return results
}

// NearestNode snaps query to the closest node. the search radius starts at radius and doubles up to maxRadius
// (both in km).
func (rt *Rtree) NearestNode(query geo.Coordinate, radius, maxRadius float64) (NodeCandidate, bool) {
	if radius <= 0 {
		return NodeCandidate{}, false
	}
	for r := radius; ; r *= 2 {
		if r > maxRadius {
			r = maxRadius
		}
		cands := rt.SearchWithinRadius(query, r)
		if len(cands) > 0 {
			return cands[0], true
		}
		if r >= maxRadius {
			return NodeCandidate{}, false
		}
	}
}
