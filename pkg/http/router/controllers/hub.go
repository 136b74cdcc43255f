package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/lintang-b-s/gopherway/pkg/mapview"
	"github.com/lintang-b-s/gopherway/pkg/render"
	"github.com/lintang-b-s/gopherway/pkg/util"
	"go.uber.org/zap"
)

// User is one websocket connection and the map session it drives.
type User struct {
	io      sync.Mutex
	conn    io.ReadWriteCloser
	session *mapview.Session

	id  uint
	hub *Hub
	log *zap.Logger
}

func (u *User) readRequest() (*sessionRequest, error) {
	u.io.Lock()
	defer u.io.Unlock()

	h, r, err := wsutil.NextReader(u.conn, ws.StateServerSide)
	if err != nil {
		return nil, err
	}
	if h.OpCode.IsControl() {
		return nil, wsutil.ControlFrameHandler(u.conn, ws.StateServerSide)(h, r)
	}

	req := &sessionRequest{}
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(req); err != nil {
		_, _ = io.Copy(io.Discard, r)
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "malformed session request")
	}
	return req, nil
}

// Serve mounts the map and handles the user's requests until the connection is closed. the session is only
// touched from here and is unmounted when Serve returns.
func (u *User) Serve() error {
	defer u.session.Close()

	events, err := u.session.Mount()
	if err != nil {
		return err
	}
	if err := u.writeEvents(events); err != nil {
		return err
	}

	for {
		req, err := u.readRequest()
		if err != nil {
			var ierr *util.Error
			if errors.As(err, &ierr) && ierr.Code() == util.ErrBadParamInput {
				if err := u.writeError(http.StatusBadRequest, err.Error()); err != nil {
					return err
				}
				continue
			}
			return err
		}
		if req == nil {
			// control frame
			continue
		}

		if err := u.handle(req); err != nil {
			return err
		}
	}
}

func (u *User) handle(req *sessionRequest) error {
	if err := u.hub.validator.Struct(req); err != nil {
		return u.writeError(http.StatusBadRequest, err.Error())
	}

	var (
		events []mapview.Event
		err    error
	)
	switch req.Action {
	case "click":
		events, err = u.session.Click(render.Handle(req.Handle))
	case "set_start":
		events, err = u.session.SetStart(req.Node)
	case "set_end":
		events, err = u.session.SetEnd(req.Node)
	case "clear":
		events = u.session.Clear()
	case "scene":
		events = []mapview.Event{u.session.Snapshot()}
	}
	if err != nil {
		return u.writeError(statusOf(err), err.Error())
	}
	return u.writeEvents(events)
}

func (u *User) writeEvents(events []mapview.Event) error {
	for _, ev := range events {
		if err := u.write(NewSessionMessage(ev)); err != nil {
			return err
		}
	}
	return nil
}

func (u *User) writeError(status int, message string) error {
	return u.write(errorEnvelope(status, message))
}

func (u *User) write(x interface{}) error {
	w := wsutil.NewWriter(u.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	u.io.Lock()
	defer u.io.Unlock()

	if err := encoder.Encode(x); err != nil {
		return err
	}

	return w.Flush()
}

func statusOf(err error) int {
	switch util.ErrorCode(err) {
	case util.ErrBadParamInput:
		return http.StatusBadRequest
	case util.ErrNotFound:
		return http.StatusNotFound
	case util.ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Hub tracks the connected map sessions.
type Hub struct {
	mu             sync.RWMutex
	seq            uint
	us             []*User
	ns             map[uint]*User
	sessionService SessionService
	validator      *requestValidator
	log            *zap.Logger
}

func NewHub(sessionService SessionService, log *zap.Logger) *Hub {
	return &Hub{
		ns:             make(map[uint]*User),
		us:             make([]*User, 0),
		sessionService: sessionService,
		validator:      newRequestValidator(),
		log:            log,
	}
}

func (h *Hub) Register(conn net.Conn) *User {
	user := &User{
		hub:  h,
		conn: conn,
	}

	h.mu.Lock()
	user.id = h.seq
	user.log = h.log.With(zap.Uint("session", user.id), zap.String("conn", nameConn(conn)))
	user.session = h.sessionService.NewSession(user.log)
	h.ns[user.id] = user
	h.us = append(h.us, user)

	h.seq++
	h.mu.Unlock()

	return user
}

// Remove closes the user's connection, which ends its Serve loop.
func (h *Hub) Remove(user *User) {
	h.mu.Lock()
	if _, ok := h.ns[user.id]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.ns, user.id)

	i := sort.Search(len(h.us), func(i int) bool {
		return h.us[i].id >= user.id
	})

	newUs := make([]*User, len(h.us)-1)
	copy(newUs[:i], h.us[:i])
	copy(newUs[i:], h.us[i+1:])
	h.us = newUs
	h.mu.Unlock()

	_ = user.conn.Close()
}

func (h *Hub) RemoveAllUser() {
	h.mu.RLock()
	users := make([]*User, len(h.us))
	copy(users, h.us)
	h.mu.RUnlock()

	for _, user := range users {
		h.Remove(user)
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.us)
}

func nameConn(conn net.Conn) string {
	return fmt.Sprintf("%s > %s", conn.LocalAddr(), conn.RemoteAddr())
}
