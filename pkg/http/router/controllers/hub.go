package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"sort"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"go.uber.org/zap"
)

// wsBestPathRequest. one best path query per text frame, id is echoed back in the reply
type wsBestPathRequest struct {
	ID string `json:"id"`
	bestPathRequest
}

type User struct {
	io   sync.Mutex
	conn io.ReadWriteCloser

	id  uint
	hub *Hub
}

func (u *User) readRequest() (*wsBestPathRequest, error) {
	u.io.Lock()
	defer u.io.Unlock()

	h, r, err := wsutil.NextReader(u.conn, ws.StateServerSide)
	if err != nil {
		return nil, err
	}
	if h.OpCode.IsControl() {
		return nil, wsutil.ControlFrameHandler(u.conn, ws.StateServerSide)(h, r)
	}

	// whole frame is consumed so the next NextReader starts on a frame boundary
	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	req := &wsBestPathRequest{}
	if err := json.Unmarshal(payload, req); err != nil {
		return nil, errBadFrame
	}
	return req, nil
}

var errBadFrame = errors.New("frame must be a valid json object")

// BestPath. reads one request frame from the connection and writes the reply.
// a nil error with nothing written means a control frame was handled.
func (u *User) BestPath() error {
	req, err := u.readRequest()
	if errors.Is(err, errBadFrame) {
		return u.write(newErrorEnvelope(http.StatusBadRequest, err.Error()))
	}
	if err != nil {
		return err
	}
	if req == nil {
		return nil
	}

	if err := validateRequest(req.bestPathRequest); err != nil {
		resp := newErrorEnvelope(http.StatusBadRequest, err.Error())
		resp["id"] = req.ID
		return u.write(resp)
	}

	res, err := u.hub.routingService.BestPath(req.From, req.To, req.Priority)
	if err != nil {
		status := statusCodeOf(err)
		resp := newErrorEnvelope(status, err.Error())
		resp["id"] = req.ID
		return u.write(resp)
	}

	return u.write(envelope{"id": req.ID, "data": NewBestPathResponse(res)})
}

// Serve. answers requests until the peer closes the connection or a frame cannot be read
func (u *User) Serve() error {
	defer u.hub.Remove(u)
	for {
		if err := u.BestPath(); err != nil {
			var closed wsutil.ClosedError
			if errors.As(err, &closed) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
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

type Hub struct {
	mu             sync.RWMutex
	seq            uint
	us             []*User
	ns             map[uint]*User
	routingService RoutingService
	log            *zap.Logger
}

func NewHub(routingService RoutingService, log *zap.Logger) *Hub {
	return &Hub{
		ns:             make(map[uint]*User),
		us:             make([]*User, 0),
		routingService: routingService,
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
	h.ns[user.id] = user
	h.us = append(h.us, user)

	h.seq++
	h.mu.Unlock()

	return user
}

// Remove. closes the user connection and drops it from the hub. removing twice is a no-op.
func (h *Hub) Remove(user *User) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.ns[user.id]; !ok {
		return
	}
	delete(h.ns, user.id)

	// us is sorted by id
	i := sort.Search(len(h.us), func(i int) bool {
		return h.us[i].id >= user.id
	})

	newUs := make([]*User, len(h.us)-1)
	copy(newUs[:i], h.us[:i])
	copy(newUs[i:], h.us[i+1:])
	h.us = newUs

	if err := user.conn.Close(); err != nil {
		h.log.Debug("close websocket connection", zap.Error(err))
	}
}

func (h *Hub) RemoveAllUser() {
	h.mu.RLock()
	users := append([]*User(nil), h.us...)
	h.mu.RUnlock()

	for _, user := range users {
		h.Remove(user)
	}
}
