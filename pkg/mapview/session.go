package mapview

import (
	"github.com/lintang-b-s/gopherway/pkg/datastructure"
	"github.com/lintang-b-s/gopherway/pkg/geo"
	"github.com/lintang-b-s/gopherway/pkg/render"
	"github.com/lintang-b-s/gopherway/pkg/selection"
	"github.com/lintang-b-s/gopherway/pkg/util"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

type EventType string

const (
	EVENT_SCENE  EventType = "scene"
	EVENT_POPUP  EventType = "popup"
	EVENT_NOTICE EventType = "notice"
)

// Event is one update the client has to show. Center, Zoom and Features are set for scene events, Node for popup
// events (the clicked node, offered as start or destination) and Notice for notice events.
type Event struct {
	Type     EventType
	Center   geo.Coordinate
	Zoom     int
	Features *geojson.FeatureCollection
	Node     geo.Coordinate
	Notice   selection.Notice
}

// Session is one mounted map: a Scene, the Renderer drawing on it and the selection Controller driving both.
// requests of a session must be handled one at a time.
type Session struct {
	scene      *Scene
	renderer   *render.Renderer
	controller *selection.Controller
	graph      *datastructure.Graph
	pending    []Event
	log        *zap.Logger
}

func NewSession(features []datastructure.LineFeature, graph *datastructure.Graph, router selection.Router,
	renderConfig render.Config, walkingSpeedMph float64, log *zap.Logger) *Session {
	s := &Session{
		scene: NewScene(),
		graph: graph,
		log:   log,
	}
	s.renderer = render.NewRenderer(s.scene, features, graph, renderConfig)
	s.controller = selection.NewController(router, s.renderer, s, walkingSpeedMph, log)
	return s
}

// Mount draws the network and returns the initial scene.
func (s *Session) Mount() ([]Event, error) {
	if err := s.renderer.Mount(s.onNodeClick); err != nil {
		return nil, util.WrapErrorf(err, util.ErrConflict, "map session is already mounted")
	}
	return []Event{s.Snapshot()}, nil
}

// Click dispatches a click on the marker h. a click on a node marker answers with a popup for that node.
func (s *Session) Click(h render.Handle) ([]Event, error) {
	if !s.scene.Click(h) {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "handle %d is not a clickable marker", h)
	}
	return s.flush(false), nil
}

func (s *Session) SetStart(nodeKey string) ([]Event, error) {
	node, err := s.node(nodeKey)
	if err != nil {
		return nil, err
	}
	s.controller.SetStart(node)
	return s.flush(true), nil
}

func (s *Session) SetEnd(nodeKey string) ([]Event, error) {
	node, err := s.node(nodeKey)
	if err != nil {
		return nil, err
	}
	s.controller.SetEnd(node)
	return s.flush(true), nil
}

func (s *Session) Clear() []Event {
	s.controller.Clear()
	return s.flush(true)
}

func (s *Session) State() selection.State {
	return s.controller.State()
}

// Snapshot returns the scene as currently drawn.
func (s *Session) Snapshot() Event {
	center, zoom := s.scene.View()
	return Event{
		Type:     EVENT_SCENE,
		Center:   center,
		Zoom:     zoom,
		Features: s.scene.FeatureCollection(),
	}
}

// Close unmounts the map.
func (s *Session) Close() {
	s.renderer.Unmount()
}

// Notify queues a search outcome for the client.
func (s *Session) Notify(notice selection.Notice) {
	s.pending = append(s.pending, Event{Type: EVENT_NOTICE, Notice: notice})
}

func (s *Session) onNodeClick(node geo.Coordinate) {
	s.pending = append(s.pending, Event{Type: EVENT_POPUP, Node: node})
}

// node resolves a designated node key. only graph nodes can be designated, as only they carry markers.
func (s *Session) node(key string) (geo.Coordinate, error) {
	c, ok := s.graph.GetCoordinate(key)
	if ok {
		return c, nil
	}
	if _, err := geo.ParseKey(key); err != nil {
		return geo.Coordinate{}, util.WrapErrorf(err, util.ErrBadParamInput, "invalid node %q", key)
	}
	return geo.Coordinate{}, util.WrapErrorf(nil, util.ErrNotFound, "%s is not a node of the walkway network", key)
}

func (s *Session) flush(withScene bool) []Event {
	events := s.pending
	s.pending = nil
	if withScene {
		events = append(events, s.Snapshot())
	}
	if events == nil {
		events = []Event{}
	}
	return events
}
