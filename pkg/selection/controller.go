package selection

import (
	"fmt"

	"github.com/lintang-b-s/gopherway/pkg"
	"github.com/lintang-b-s/gopherway/pkg/datastructure"
	"github.com/lintang-b-s/gopherway/pkg/geo"
	"go.uber.org/zap"
)

type State uint8

const (
	IDLE State = iota
	PARTIALLY_SELECTED
	READY_FOR_SEARCH
)

func (s State) String() string {
	switch s {
	case IDLE:
		return "idle"
	case PARTIALLY_SELECTED:
		return "partially_selected"
	case READY_FOR_SEARCH:
		return "ready_for_search"
	default:
		return "unknown"
	}
}

type Router interface {
	Route(start, destination geo.Coordinate) (datastructure.Route, error)
}

type Renderer interface {
	Draw(route datastructure.Route)
	Reset()
}

// Notifier shows the outcome of a search to the user.
type Notifier interface {
	Notify(notice Notice)
}

// Summary is the distance and walking time of a found route.
type Summary struct {
	DistanceMiles float64 `json:"distance"`
	ETAMinutes    float64 `json:"eta"`
}

func (s Summary) String() string {
	return fmt.Sprintf("Total route distance: %.2f miles\nETA: %.1f minutes", s.DistanceMiles, s.ETAMinutes)
}

type Notice struct {
	Found   bool
	Summary Summary
	Route   datastructure.Route
	Message string
}

// Controller holds the start/destination selection of one map. every designation that leaves both ends selected
// runs exactly one search and one render. not safe for concurrent use.
type Controller struct {
	router   Router
	renderer Renderer
	notifier Notifier
	speedMph float64
	log      *zap.Logger

	start *geo.Coordinate
	end   *geo.Coordinate
}

func NewController(router Router, renderer Renderer, notifier Notifier, walkingSpeedMph float64,
	log *zap.Logger) *Controller {
	if walkingSpeedMph <= 0 {
		walkingSpeedMph = pkg.WALKING_SPEED_MPH
	}
	return &Controller{
		router:   router,
		renderer: renderer,
		notifier: notifier,
		speedMph: walkingSpeedMph,
		log:      log,
	}
}

func (c *Controller) State() State {
	switch {
	case c.start != nil && c.end != nil:
		return READY_FOR_SEARCH
	case c.start != nil || c.end != nil:
		return PARTIALLY_SELECTED
	default:
		return IDLE
	}
}

// SetStart designates p as the start, keeping any destination.
func (c *Controller) SetStart(p geo.Coordinate) {
	c.start = &p
	c.afterDesignation()
}

// SetEnd designates p as the destination, keeping any start.
func (c *Controller) SetEnd(p geo.Coordinate) {
	c.end = &p
	c.afterDesignation()
}

// Clear drops both ends and removes the drawn route.
func (c *Controller) Clear() {
	c.start = nil
	c.end = nil
	c.renderer.Reset()
}

func (c *Controller) Start() (geo.Coordinate, bool) {
	if c.start == nil {
		return geo.Coordinate{}, false
	}
	return *c.start, true
}

func (c *Controller) End() (geo.Coordinate, bool) {
	if c.end == nil {
		return geo.Coordinate{}, false
	}
	return *c.end, true
}

func (c *Controller) afterDesignation() {
	if c.State() != READY_FOR_SEARCH {
		return
	}

	route, err := c.router.Route(*c.start, *c.end)
	if err != nil {
		c.log.Info("route search failed", zap.String("start", geo.Key(*c.start)),
			zap.String("destination", geo.Key(*c.end)), zap.Error(err))
		c.renderer.Reset()
		c.notifier.Notify(Notice{Found: false, Message: pkg.NO_ROUTE_MESSAGE})
		return
	}

	c.renderer.Draw(route)
	summary := Summary{DistanceMiles: route.Distance, ETAMinutes: route.ETAMinutes(c.speedMph)}
	c.notifier.Notify(Notice{Found: true, Summary: summary, Route: route, Message: summary.String()})
}
