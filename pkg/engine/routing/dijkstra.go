package routing

import (
	"math"

	da "github.com/lintang-b-s/gopherway/pkg/datastructure"
	"github.com/lintang-b-s/gopherway/pkg/geo"
	"github.com/lintang-b-s/gopherway/pkg/util"
)

// Dijkstra. single-pair shortest path over the walkway graph, edge weight = haversine distance in miles.
// it holds no per-query state, so one Dijkstra can serve concurrent queries.
type Dijkstra struct {
	graph *da.Graph
}

func NewDijkstra(graph *da.Graph) *Dijkstra {
	return &Dijkstra{graph: graph}
}

// searchState is the per-query label set. a missing dist entry means +inf, a missing prev entry means no predecessor.
type searchState struct {
	dist    map[string]float64
	prev    map[string]string
	visited map[string]struct{}
	pq      *da.MinHeap[string]

	numSettledNodes int
}

func newSearchState(n int) *searchState {
	pq := da.NewBinaryHeap[string]()
	pq.Preallocate(n)
	return &searchState{
		dist:    make(map[string]float64, n),
		prev:    make(map[string]string, n),
		visited: make(map[string]struct{}, n),
		pq:      pq,
	}
}

func (s *searchState) getDist(key string) float64 {
	if d, ok := s.dist[key]; ok {
		return d
	}
	return math.Inf(1)
}

func (s *searchState) isVisited(key string) bool {
	_, ok := s.visited[key]
	return ok
}

// ShortestPath returns the shortest route from start to destination and true, or an empty route and false if
// destination is unreachable from start (including when either coordinate is not a graph node).
// the search stops as soon as destination is settled.
func (d *Dijkstra) ShortestPath(start, destination geo.Coordinate) (da.Route, bool) {
	s := geo.Key(start)
	t := geo.Key(destination)
	if !d.graph.HasNodeKey(s) || !d.graph.HasNodeKey(t) {
		return da.Route{}, false
	}

	state := newSearchState(d.graph.NumberOfVertices())
	state.dist[s] = 0
	state.pq.Insert(da.NewPriorityQueueNode(0, s))

	found := false
	for !state.pq.IsEmpty() {
		node, _ := state.pq.ExtractMin()
		u := node.GetItem()

		// lazy deletion: a node may sit in the queue several times, only its first extraction counts.
		if state.isVisited(u) {
			continue
		}
		state.visited[u] = struct{}{}
		state.numSettledNodes++

		if u == t {
			found = true
			break
		}

		d.relax(u, state)
	}

	if !found {
		return da.Route{}, false
	}

	return da.NewRoute(d.unpackPath(s, t, state), state.dist[t]), true
}

func (d *Dijkstra) relax(u string, state *searchState) {
	uCoord, _ := d.graph.GetCoordinate(u)
	uDist := state.dist[u]

	for _, v := range d.graph.Neighbors(u) {
		if state.isVisited(v) {
			continue
		}
		vCoord, _ := d.graph.GetCoordinate(v)

		newDist := uDist + geo.HaversineMiles(uCoord, vCoord)
		if newDist < state.getDist(v) {
			state.dist[v] = newDist
			state.prev[v] = u
			state.pq.Insert(da.NewPriorityQueueNode(newDist, v))
		}
	}
}

// unpackPath walks predecessors back from t to s and returns the path in s -> t order.
func (d *Dijkstra) unpackPath(s, t string, state *searchState) []geo.Coordinate {
	path := make([]geo.Coordinate, 0, 16)
	for cur := t; ; {
		c, _ := d.graph.GetCoordinate(cur)
		path = append(path, c)
		if cur == s {
			break
		}
		cur = state.prev[cur]
	}
	return util.ReverseG(path)
}
