package router

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/lintang-b-s/gopherway/pkg/datastructure"
	"github.com/lintang-b-s/gopherway/pkg/engine"
	"github.com/lintang-b-s/gopherway/pkg/geo"
	"github.com/lintang-b-s/gopherway/pkg/http/usecases"
	"github.com/lintang-b-s/gopherway/pkg/render"
	"github.com/lintang-b-s/gopherway/pkg/spatialindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

var (
	coffman = geo.NewCoordinate(-93.2359, 44.9728)
	walter  = geo.NewCoordinate(-93.2354, 44.9747)
	keller  = geo.NewCoordinate(-93.2321, 44.9745)
	weisman = geo.NewCoordinate(-93.2370, 44.9734)
	island  = geo.NewCoordinate(-93.2200, 44.9700)
	islandB = geo.NewCoordinate(-93.2195, 44.9702)
)

func newTestHandler(t *testing.T, rateLimit RateLimit) http.Handler {
	t.Helper()
	return newTestHandlerWithLogger(zaptest.NewLogger(t), rateLimit)
}

func newTestHandlerWithLogger(log *zap.Logger, rateLimit RateLimit) http.Handler {
	eng := engine.NewEngineDirect([]datastructure.LineFeature{
		datastructure.NewLineFeature(0, datastructure.TUNNEL, []geo.Coordinate{coffman, walter, keller}),
		datastructure.NewLineFeature(1, datastructure.SKYWAY, []geo.Coordinate{coffman, weisman}),
		datastructure.NewLineFeature(2, datastructure.TUNNEL, []geo.Coordinate{island, islandB}),
	}, log)

	rtree := spatialindex.NewRtree()
	rtree.Build(eng.GetGraph(), 0.05, log)

	service := usecases.NewNavigatorService(log, eng, rtree, render.DefaultConfig(), 3, 0.05, 0.5)
	return NewAPI(log).Handler(rateLimit, service, service)
}

func doGet(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	body := map[string]interface{}{}
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestComputeRoutes(t *testing.T) {
	h := newTestHandler(t, RateLimit{})

	testCases := []struct {
		name     string
		target   string
		wantCode int
		wantPath int
		message  string
	}{
		{
			name:     "exact nodes",
			target:   "/api/computeRoutes?start_lon=-93.2370&start_lat=44.9734&dest_lon=-93.2321&dest_lat=44.9745",
			wantCode: http.StatusOK,
			wantPath: 4,
		},
		{
			name:     "not a node without snapping",
			target:   "/api/computeRoutes?start_lon=-93.2371&start_lat=44.9734&dest_lon=-93.2321&dest_lat=44.9745",
			wantCode: http.StatusNotFound,
			message:  "no route found",
		},
		{
			name: "snapped",
			target: "/api/computeRoutes?start_lon=-93.2371&start_lat=44.9734&dest_lon=-93.2322&dest_lat=44.9745" +
				"&snap=true",
			wantCode: http.StatusOK,
			wantPath: 4,
		},
		{
			name:     "unreachable",
			target:   "/api/computeRoutes?start_lon=-93.2359&start_lat=44.9728&dest_lon=-93.22&dest_lat=44.97",
			wantCode: http.StatusNotFound,
			message:  "no route found",
		},
		{
			name:     "missing param",
			target:   "/api/computeRoutes?start_lon=-93.2359&start_lat=44.9728&dest_lon=-93.22",
			wantCode: http.StatusBadRequest,
			message:  "dest_lat is required and must be a valid float",
		},
		{
			name:     "latitude out of range",
			target:   "/api/computeRoutes?start_lon=-93.2359&start_lat=144.9728&dest_lon=-93.22&dest_lat=44.97",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "invalid snap",
			target:   "/api/computeRoutes?start_lon=-93.2359&start_lat=44.9728&dest_lon=-93.22&dest_lat=44.97&snap=yes",
			wantCode: http.StatusBadRequest,
			message:  "snap must be a boolean",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := doGet(t, h, tt.target)
			require.Equal(t, tt.wantCode, rec.Code)

			if tt.wantCode != http.StatusOK {
				errBody, ok := body["error"].(map[string]interface{})
				require.True(t, ok)
				if tt.message != "" {
					assert.Equal(t, tt.message, errBody["message"])
				}
				return
			}

			data := body["data"].(map[string]interface{})
			coords := data["coordinates"].([]interface{})
			assert.Len(t, coords, tt.wantPath)
			assert.NotEmpty(t, data["path"])
			assert.Greater(t, data["distance"].(float64), 0.0)
			assert.InDelta(t, data["distance"].(float64)/3*60, data["eta"].(float64), 1e-9)
			assert.Contains(t, data["message"], "Total route distance:")

			first := coords[0].(map[string]interface{})
			assert.Equal(t, -93.2370, first["lon"])
			assert.Equal(t, 44.9734, first["lat"])
		})
	}
}

func TestNearestNode(t *testing.T) {
	h := newTestHandler(t, RateLimit{})

	rec, body := doGet(t, h, "/api/nearestNode?lon=-93.2355&lat=44.9746")
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, geo.Key(walter), data["key"])

	rec, _ = doGet(t, h, "/api/nearestNode?lon=-93.1&lat=44.9")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doGet(t, h, "/api/nearestNode?lon=-93.1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNetworkAndNodes(t *testing.T) {
	h := newTestHandler(t, RateLimit{})

	rec, body := doGet(t, h, "/api/network")
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "FeatureCollection", data["type"])
	features := data["features"].([]interface{})
	require.Len(t, features, 3)
	props := features[1].(map[string]interface{})["properties"].(map[string]interface{})
	assert.Equal(t, "s", props["type"])
	assert.Equal(t, "red", props["color"])

	rec, body = doGet(t, h, "/api/nodes")
	require.Equal(t, http.StatusOK, rec.Code)
	nodes := body["data"].([]interface{})
	require.Len(t, nodes, 6)
	assert.Equal(t, geo.Key(coffman), nodes[0].(map[string]interface{})["key"])
}

func TestMiddleware(t *testing.T) {
	h := newTestHandler(t, RateLimit{Enabled: true, RPS: 1, Burst: 2})

	rec, _ := doGet(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ".", rec.Body.String())

	rec, _ = doGet(t, h, "/api/nodes")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = doGet(t, h, "/api/nodes")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = doGet(t, h, "/api/nodes")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/nodes", strings.NewReader("a=b"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	newTestHandler(t, RateLimit{}).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestRealIP(t *testing.T) {
	var got string
	h := RealIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.RemoteAddr
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.7, 10.0.0.1")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "10.0.0.7", got)
}

type wsClient struct {
	conn net.Conn
	r    io.Reader
}

func dialSession(t *testing.T, h http.Handler) *wsClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, br, _, err := ws.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var r io.Reader = conn
	if br != nil {
		r = br
	}
	return &wsClient{conn: conn, r: r}
}

func (c *wsClient) send(t *testing.T, msg string) {
	t.Helper()
	require.NoError(t, wsutil.WriteClientText(c.conn, []byte(msg)))
}

func (c *wsClient) receive(t *testing.T) map[string]interface{} {
	t.Helper()
	require.NoError(t, c.conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	data, err := wsutil.ReadServerText(struct {
		io.Reader
		io.Writer
	}{c.r, c.conn})
	require.NoError(t, err)

	msg := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestWebsocketSession(t *testing.T) {
	// sessions outlive the test body, so they must not log through t
	client := dialSession(t, newTestHandlerWithLogger(zap.NewNop(), RateLimit{}))

	msg := client.receive(t)
	require.Equal(t, "scene", msg["type"])
	scene := msg["scene"].(map[string]interface{})
	assert.Equal(t, 16.0, scene["zoom"])

	// first interactive node marker
	var handle float64
	for _, f := range scene["features"].(map[string]interface{})["features"].([]interface{}) {
		props := f.(map[string]interface{})["properties"].(map[string]interface{})
		if props["layer"] == "nodes" {
			handle = props["handle"].(float64)
			break
		}
	}
	require.NotZero(t, handle)

	client.send(t, `{"action": "click", "handle": `+strconv.FormatFloat(handle, 'f', -1, 64)+`}`)
	msg = client.receive(t)
	require.Equal(t, "popup", msg["type"])
	popup := msg["popup"].(map[string]interface{})
	assert.Equal(t, geo.Key(coffman), popup["node"].(map[string]interface{})["key"])

	client.send(t, `{"action": "set_start", "node": "`+geo.Key(weisman)+`"}`)
	assert.Equal(t, "scene", client.receive(t)["type"])

	client.send(t, `{"action": "set_end", "node": "`+geo.Key(keller)+`"}`)
	msg = client.receive(t)
	require.Equal(t, "notice", msg["type"])
	notice := msg["notice"].(map[string]interface{})
	assert.Equal(t, true, notice["found"])
	assert.Contains(t, notice["message"], "Total route distance:")
	assert.Equal(t, "scene", client.receive(t)["type"])

	client.send(t, `{"action": "set_end", "node": "`+geo.Key(island)+`"}`)
	msg = client.receive(t)
	require.Equal(t, "notice", msg["type"])
	assert.Equal(t, "no route found", msg["notice"].(map[string]interface{})["message"])
	assert.Equal(t, "scene", client.receive(t)["type"])

	client.send(t, `{"action": "fly"}`)
	msg = client.receive(t)
	assert.Equal(t, "Bad Request", msg["error"].(map[string]interface{})["code"])

	client.send(t, `{"action": "set_start", "node": "1,2"}`)
	msg = client.receive(t)
	assert.Equal(t, "Not Found", msg["error"].(map[string]interface{})["code"])

	client.send(t, `{"action": "clear"}`)
	assert.Equal(t, "scene", client.receive(t)["type"])
}

