package mapview

import (
	"testing"

	"github.com/lintang-b-s/gopherway/pkg/datastructure"
	"github.com/lintang-b-s/gopherway/pkg/engine"
	"github.com/lintang-b-s/gopherway/pkg/geo"
	"github.com/lintang-b-s/gopherway/pkg/render"
	"github.com/lintang-b-s/gopherway/pkg/selection"
	"github.com/lintang-b-s/gopherway/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	log := zaptest.NewLogger(t)
	eng := engine.NewEngineDirect([]datastructure.LineFeature{
		datastructure.NewLineFeature(0, datastructure.TUNNEL,
			[]geo.Coordinate{geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 1), geo.NewCoordinate(0, 2)}),
		datastructure.NewLineFeature(1, datastructure.SKYWAY,
			[]geo.Coordinate{geo.NewCoordinate(10, 10), geo.NewCoordinate(10, 11)}),
	}, log)
	return NewSession(eng.GetFeatures(), eng.GetGraph(), eng, render.DefaultConfig(), 3, log)
}

func TestSessionMount(t *testing.T) {
	s := newTestSession(t)

	events, err := s.Mount()
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, EVENT_SCENE, events[0].Type)
	assert.Equal(t, 16, events[0].Zoom)
	// 2 network lines and 5 node markers
	assert.Len(t, events[0].Features.Features, 7)

	_, err = s.Mount()
	assert.ErrorIs(t, util.ErrorCode(err), util.ErrConflict)
}

func TestSessionClickOpensPopup(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Mount()
	require.NoError(t, err)

	nodes := s.scene.Handles(render.LAYER_NODES)
	require.Len(t, nodes, 5)

	events, err := s.Click(nodes[2])
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, EVENT_POPUP, events[0].Type)
	assert.Equal(t, geo.NewCoordinate(0, 2), events[0].Node)

	lines := s.scene.Handles(render.LAYER_NETWORK)
	_, err = s.Click(lines[0])
	assert.ErrorIs(t, util.ErrorCode(err), util.ErrBadParamInput)
}

func TestSessionRoute(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Mount()
	require.NoError(t, err)

	events, err := s.SetStart("0,0")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, EVENT_SCENE, events[0].Type)
	assert.Equal(t, selection.PARTIALLY_SELECTED, s.State())

	events, err = s.SetEnd("0,2")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, EVENT_NOTICE, events[0].Type)
	assert.True(t, events[0].Notice.Found)
	assert.Equal(t, "Total route distance: 138.19 miles\nETA: 2763.7 minutes", events[0].Notice.Message)
	assert.Equal(t, EVENT_SCENE, events[1].Type)
	assert.Len(t, s.scene.Handles(render.LAYER_ROUTE_NODES), 3)
	assert.False(t, s.scene.LayerVisible(render.LAYER_NODES))

	events, err = s.SetEnd("10,11")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.False(t, events[0].Notice.Found)
	assert.Equal(t, "no route found", events[0].Notice.Message)
	assert.Empty(t, s.scene.Handles(render.LAYER_ROUTE_NODES))
	assert.True(t, s.scene.LayerVisible(render.LAYER_NODES))

	events = s.Clear()
	require.Len(t, events, 1)
	assert.Equal(t, selection.IDLE, s.State())
}

func TestSessionInvalidNode(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Mount()
	require.NoError(t, err)

	_, err = s.SetStart("not a node")
	assert.ErrorIs(t, util.ErrorCode(err), util.ErrBadParamInput)

	_, err = s.SetEnd("5,5")
	assert.ErrorIs(t, util.ErrorCode(err), util.ErrNotFound)

	assert.Equal(t, selection.IDLE, s.State())
}

func TestSessionClose(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Mount()
	require.NoError(t, err)

	s.Close()
	assert.True(t, s.scene.IsRemoved())
	assert.Empty(t, s.Snapshot().Features.Features)
}
