package routing

import "errors"

var (
	// ErrPathNotFound. start and destination are graph nodes but lie in different components.
	ErrPathNotFound = errors.New("no route found")
	// ErrNodeNotInGraph. start or destination is not a node of the walkway network.
	ErrNodeNotInGraph = errors.New("coordinate is not a node of the walkway network")
)
