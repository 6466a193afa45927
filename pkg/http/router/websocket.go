package router

import (
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gobwas/ws"
	"github.com/lintang-b-s/navigatorx-transit/pkg/concurrent"
	"github.com/lintang-b-s/navigatorx-transit/pkg/http/router/controllers"
	"github.com/mailru/easygo/netpoll"
	"go.uber.org/zap"
)

const (
	wsPoolSize        = 64
	wsPoolQueue       = 16
	wsPoolSpawn       = 8
	wsScheduleTimeout = time.Millisecond
	wsAcceptCooldown  = 5 * time.Millisecond
)

// serveWebsocket. upgrades the connection and answers best path frames on it until the peer leaves.
// each connection gets its own goroutine.
func (api *API) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, _, hs, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		api.log.Info("upgrade error", zap.Error(err), zap.String("remote_addr", r.RemoteAddr))
		return
	}

	api.log.Info("established websocket connection", zap.String("connection name", nameConn(conn)),
		zap.String("protocol", hs.Protocol))

	user := api.hub.Register(conn)

	go func() {
		if err := user.Serve(); err != nil {
			api.log.Error("error serving websocket user", zap.Error(err), zap.String("connection name", nameConn(conn)))
			return
		}
		api.log.Info("user disconnected from websocket server", zap.String("connection name", nameConn(conn)))
	}()
}

// WebsocketServer. websocket api on its own listener. the listener and every user connection are watched
// with epoll, a frame is answered on the goroutine pool only once it is readable, so idle users hold no goroutine.
type WebsocketServer struct {
	ln         net.Listener
	acceptDesc *netpoll.Desc
	poller     netpoll.Poller
	pool       *concurrent.GoroutinePool
	hub        *controllers.Hub
	log        *zap.Logger
}

// ListenWebsocket. listens on addr and serves best path frames through the shared hub.
func (api *API) ListenWebsocket(addr string, routingService controllers.RoutingService) (*WebsocketServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	acceptDesc, err := netpoll.HandleListener(ln, netpoll.EventRead|netpoll.EventOneShot)
	if err != nil {
		ln.Close()
		return nil, err
	}

	poller, err := netpoll.New(nil)
	if err != nil {
		acceptDesc.Close()
		ln.Close()
		return nil, err
	}

	s := &WebsocketServer{
		ln:         ln,
		acceptDesc: acceptDesc,
		poller:     poller,
		pool:       concurrent.NewGoroutinePool(wsPoolSize, wsPoolQueue),
		hub:        api.hubFor(routingService),
		log:        api.log,
	}
	s.pool.Spawn(wsPoolSpawn)

	if err := poller.Start(acceptDesc, s.onAccept); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *WebsocketServer) Addr() net.Addr {
	return s.ln.Addr()
}

// Close. stops accepting new connections. users already registered are closed by Hub.RemoveAllUser.
func (s *WebsocketServer) Close() error {
	s.poller.Stop(s.acceptDesc)
	err := s.ln.Close()
	s.acceptDesc.Close()
	s.pool.Close()
	return err
}

// onAccept. the listener fd is one-shot, so it is resumed after every accept attempt.
func (s *WebsocketServer) onAccept(_ netpoll.Event) {
	defer s.poller.Resume(s.acceptDesc)

	accept := make(chan error, 1)
	err := s.pool.ScheduleTimeout(wsScheduleTimeout, func() {
		conn, err := s.ln.Accept()
		if err != nil {
			accept <- err
			return
		}

		accept <- nil
		s.handle(conn)
	})
	if err == nil {
		err = <-accept
	}
	if err == nil {
		return
	}

	var ne net.Error
	switch {
	case errors.Is(err, net.ErrClosed), errors.Is(err, concurrent.ErrPoolClosed):
	case errors.Is(err, concurrent.ErrScheduleTimeout), errors.As(err, &ne) && ne.Timeout():
		// every goroutine is busy, cool down before the listener fires again
		s.log.Info("accept error, retrying", zap.Error(err), zap.Duration("delay", wsAcceptCooldown))
		time.Sleep(wsAcceptCooldown)
	default:
		s.log.Error("accept error", zap.Error(err))
	}
}

func (s *WebsocketServer) handle(conn net.Conn) {
	hs, err := ws.Upgrade(conn)
	if err != nil {
		s.log.Info("upgrade error", zap.Error(err), zap.String("connection name", nameConn(conn)))
		conn.Close()
		return
	}

	s.log.Info("established websocket connection", zap.String("connection name", nameConn(conn)),
		zap.String("protocol", hs.Protocol))

	user := s.hub.Register(conn)

	desc, err := netpoll.HandleRead(conn)
	if err != nil {
		s.log.Error("watch websocket connection", zap.Error(err))
		s.hub.Remove(user)
		return
	}

	drop := func() {
		s.poller.Stop(desc)
		desc.Close()
		s.hub.Remove(user)
	}

	err = s.poller.Start(desc, func(ev netpoll.Event) {
		if ev&(netpoll.EventReadHup|netpoll.EventHup) != 0 {
			s.log.Info("user disconnected from websocket server", zap.String("connection name", nameConn(conn)))
			drop()
			return
		}

		err := s.pool.Schedule(func() {
			// one frame per read event, a failed read means the connection is gone
			if err := user.BestPath(); err != nil {
				s.log.Debug("websocket user dropped", zap.Error(err))
				drop()
			}
		})
		if err != nil {
			drop()
		}
	})
	if err != nil {
		s.log.Error("watch websocket connection", zap.Error(err))
		desc.Close()
		s.hub.Remove(user)
	}
}

func nameConn(conn net.Conn) string {
	return conn.LocalAddr().String() + " > " + conn.RemoteAddr().String()
}
