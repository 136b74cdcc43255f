package render

import (
	"errors"

	"github.com/lintang-b-s/gopherway/pkg"
	"github.com/lintang-b-s/gopherway/pkg/datastructure"
	"github.com/lintang-b-s/gopherway/pkg/geo"
)

var (
	ErrAlreadyMounted = errors.New("renderer is already mounted")
)

type Config struct {
	Center       geo.Coordinate
	Zoom         int
	TunnelColor  string
	SkywayColor  string
	UnknownColor string
	RouteColor   string
	LineWeight   float64
	DimOpacity   float64
	NodeIcon     Icon
}

func DefaultConfig() Config {
	return Config{
		Center:       geo.NewCoordinate(pkg.MAP_CENTER_LON, pkg.MAP_CENTER_LAT),
		Zoom:         pkg.MAP_ZOOM,
		TunnelColor:  pkg.TUNNEL_COLOR,
		SkywayColor:  pkg.SKYWAY_COLOR,
		UnknownColor: pkg.UNKNOWN_COLOR,
		RouteColor:   pkg.ROUTE_COLOR,
		LineWeight:   3,
		DimOpacity:   pkg.DIM_OPACITY,
		NodeIcon:     Icon{URL: pkg.NODE_ICON_URL, Width: pkg.NODE_ICON_SIZE, Height: pkg.NODE_ICON_SIZE},
	}
}

// ColorFor returns the network line colour of a feature type.
func (c Config) ColorFor(tipe datastructure.FeatureType) string {
	switch tipe {
	case datastructure.TUNNEL:
		return c.TunnelColor
	case datastructure.SKYWAY:
		return c.SkywayColor
	default:
		return c.UnknownColor
	}
}

type networkLine struct {
	handle  Handle
	feature int
	style   Style
}

// Renderer projects the walkway network and the current route onto a Surface. one Renderer serves one map mount
// and is not safe for concurrent use.
type Renderer struct {
	surface  Surface
	config   Config
	features []datastructure.LineFeature
	graph    *datastructure.Graph

	lines        []networkLine
	mounted      bool
	nodesVisible bool
}

func NewRenderer(surface Surface, features []datastructure.LineFeature, graph *datastructure.Graph,
	config Config) *Renderer {
	return &Renderer{
		surface:  surface,
		config:   config,
		features: features,
		graph:    graph,
	}
}

// Mount sets the campus viewport, draws every network line coloured by type and places an interactive marker on
// every graph node. onNodeClick receives the coordinate of the clicked node.
func (r *Renderer) Mount(onNodeClick func(node geo.Coordinate)) error {
	if r.mounted {
		return ErrAlreadyMounted
	}

	r.surface.SetView(r.config.Center, r.config.Zoom)

	r.lines = make([]networkLine, 0, len(r.features))
	for i, f := range r.features {
		if len(f.Coordinates) < 2 {
			continue
		}
		style := Style{Color: r.config.ColorFor(f.Type), Opacity: 1, Weight: r.config.LineWeight}
		h := r.surface.DrawPolyline(LAYER_NETWORK, f.Coordinates, style)
		r.lines = append(r.lines, networkLine{handle: h, feature: i, style: style})
	}
	r.surface.AddLayer(LAYER_NETWORK)

	r.graph.ForNodes(func(key string, c geo.Coordinate) {
		var onClick func()
		if onNodeClick != nil {
			onClick = func() { onNodeClick(c) }
		}
		r.surface.PlaceMarker(LAYER_NODES, c, r.config.NodeIcon, onClick)
	})
	r.surface.AddLayer(LAYER_NODES)
	r.nodesVisible = true

	r.surface.AddLayer(LAYER_ROUTE_NODES)
	r.surface.AddLayer(LAYER_ROUTE_LINE)

	r.mounted = true
	return nil
}

// Draw replaces any previously drawn route with route: the all-node layer is hidden, network lines that carry
// no edge of the route are dimmed, every route point gets a non-interactive marker and the path is drawn as one
// polyline. drawing the same route twice leaves the same surface state.
func (r *Renderer) Draw(route datastructure.Route) {
	if !r.mounted {
		return
	}
	if route.IsEmpty() {
		r.Reset()
		return
	}

	r.clearRoute()
	if r.nodesVisible {
		r.surface.RemoveLayer(LAYER_NODES)
		r.nodesVisible = false
	}

	routeEdges := routeEdgeSet(route)
	for _, l := range r.lines {
		style := l.style
		if !r.carriesRouteEdge(r.features[l.feature], routeEdges) {
			style.Opacity = r.config.DimOpacity
		}
		r.surface.SetStyle(l.handle, style)
	}

	for _, p := range route.Path {
		r.surface.PlaceMarker(LAYER_ROUTE_NODES, p, r.config.NodeIcon, nil)
	}
	r.surface.DrawPolyline(LAYER_ROUTE_LINE, route.Path,
		Style{Color: r.config.RouteColor, Opacity: 1, Weight: r.config.LineWeight})
}

// Reset removes the route overlay, shows the all-node layer again and restores full opacity everywhere.
func (r *Renderer) Reset() {
	if !r.mounted {
		return
	}

	r.clearRoute()
	if !r.nodesVisible {
		r.surface.AddLayer(LAYER_NODES)
		r.nodesVisible = true
	}
	for _, l := range r.lines {
		r.surface.SetStyle(l.handle, l.style)
	}
}

// Unmount detaches the map and releases the handles the renderer holds.
func (r *Renderer) Unmount() {
	if !r.mounted {
		return
	}
	r.surface.Remove()
	r.lines = nil
	r.nodesVisible = false
	r.mounted = false
}

func (r *Renderer) IsMounted() bool {
	return r.mounted
}

func (r *Renderer) clearRoute() {
	r.surface.ClearLayer(LAYER_ROUTE_NODES)
	r.surface.ClearLayer(LAYER_ROUTE_LINE)
}

func (r *Renderer) carriesRouteEdge(f datastructure.LineFeature, routeEdges map[[2]string]struct{}) bool {
	found := false
	f.ForEachSegment(func(from, to geo.Coordinate) {
		if found {
			return
		}
		_, found = routeEdges[edgeKey(geo.Key(from), geo.Key(to))]
	})
	return found
}

func routeEdgeSet(route datastructure.Route) map[[2]string]struct{} {
	keys := route.Keys()
	edges := make(map[[2]string]struct{}, len(keys))
	for i := 0; i+1 < len(keys); i++ {
		edges[edgeKey(keys[i], keys[i+1])] = struct{}{}
	}
	return edges
}

func edgeKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}
