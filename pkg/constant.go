package pkg

const (
	// WALKING_SPEED_MPH is the average walking speed used for route ETAs.
	WALKING_SPEED_MPH float64 = 3.0

	NO_ROUTE_MESSAGE = "no route found"

	ROUTE_COLOR   = "green"
	TUNNEL_COLOR  = "blue"
	SKYWAY_COLOR  = "red"
	UNKNOWN_COLOR = "grey"
	DIM_OPACITY   = 0.1

	// campus viewport
	MAP_CENTER_LAT = 44.973305
	MAP_CENTER_LON = -93.238386
	MAP_ZOOM       = 16

	NODE_ICON_URL  = "/static/nodeIcon.png"
	NODE_ICON_SIZE = 8
)
