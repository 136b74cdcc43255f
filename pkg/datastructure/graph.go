package datastructure

import (
	"slices"

	"github.com/lintang-b-s/gopherway/pkg/geo"
)

// Graph is the undirected walkway network. nodes are identified by geo.Key of their coordinate, an edge exists only
// between two consecutive points of the same line feature. the adjacency relation is symmetric.
// a built Graph is never mutated, so concurrent searches may share it.
type Graph struct {
	adj      map[string][]string
	coords   map[string]geo.Coordinate
	nodes    []string // insertion order
	numEdges int
}

func NewGraph() *Graph {
	return &Graph{
		adj:    make(map[string][]string),
		coords: make(map[string]geo.Coordinate),
		nodes:  make([]string, 0),
	}
}

// BuildStats summarizes a BuildGraph run.
type BuildStats struct {
	Features        int
	SkippedFeatures int // features with fewer than 2 coordinates
	Segments        int // consecutive coordinate pairs visited
}

// BuildGraph builds the walkway graph from line features in a single pass over their coordinates.
// a feature with fewer than 2 coordinates adds nothing and is counted in BuildStats.SkippedFeatures.
func BuildGraph(features []LineFeature) (*Graph, BuildStats) {
	g := NewGraph()
	stats := BuildStats{Features: len(features)}

	for _, f := range features {
		if len(f.Coordinates) < 2 {
			stats.SkippedFeatures++
			continue
		}
		f.ForEachSegment(func(from, to geo.Coordinate) {
			stats.Segments++
			g.AddEdge(from, to)
		})
	}
	return g, stats
}

// AddEdge adds the undirected edge (a, b). adding an existing edge is a no-op, and so is a zero-length segment.
func (g *Graph) AddEdge(a, b geo.Coordinate) {
	aKey := geo.Key(a)
	bKey := geo.Key(b)
	if aKey == bKey {
		return
	}

	g.addNode(aKey, a)
	g.addNode(bKey, b)

	added := false
	if !slices.Contains(g.adj[aKey], bKey) {
		g.adj[aKey] = append(g.adj[aKey], bKey)
		added = true
	}
	if !slices.Contains(g.adj[bKey], aKey) {
		g.adj[bKey] = append(g.adj[bKey], aKey)
		added = true
	}
	if added {
		g.numEdges++
	}
}

func (g *Graph) addNode(key string, c geo.Coordinate) {
	if _, ok := g.coords[key]; ok {
		return
	}
	g.coords[key] = c
	g.adj[key] = make([]string, 0, 2)
	g.nodes = append(g.nodes, key)
}

func (g *Graph) HasNode(c geo.Coordinate) bool {
	return g.HasNodeKey(geo.Key(c))
}

func (g *Graph) HasNodeKey(key string) bool {
	_, ok := g.coords[key]
	return ok
}

func (g *Graph) HasEdge(aKey, bKey string) bool {
	return slices.Contains(g.adj[aKey], bKey)
}

// Neighbors returns the neighbor keys of key in insertion order. the slice must not be modified.
func (g *Graph) Neighbors(key string) []string {
	return g.adj[key]
}

func (g *Graph) GetCoordinate(key string) (geo.Coordinate, bool) {
	c, ok := g.coords[key]
	return c, ok
}

func (g *Graph) NumberOfVertices() int {
	return len(g.nodes)
}

// NumberOfEdges counts undirected edges.
func (g *Graph) NumberOfEdges() int {
	return g.numEdges
}

// ForNodes iterates nodes in the order they were first added.
func (g *Graph) ForNodes(handle func(key string, c geo.Coordinate)) {
	for _, key := range g.nodes {
		handle(key, g.coords[key])
	}
}
