package router

import (
	"errors"
	"net/http"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// handleWebsocket upgrades the request and serves one map session on the hijacked connection.
func (api *API) handleWebsocket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	conn, _, hs, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		api.log.Info("upgrade error", zap.Error(err), zap.String("remoteAddr", r.RemoteAddr))
		return
	}
	// the server read/write timeouts must not end a long lived session
	_ = conn.SetDeadline(time.Time{})

	user := api.hub.Register(conn)
	api.log.Info("established websocket connection", zap.String("remoteAddr", r.RemoteAddr),
		zap.String("protocol", hs.Protocol))

	go func() {
		err := user.Serve()
		var closed wsutil.ClosedError
		if err != nil && !errors.As(err, &closed) {
			api.log.Info("map session ended", zap.Error(err))
		} else {
			api.log.Info("user disconnected from websocket server")
		}
		api.hub.Remove(user)
	}()
}
