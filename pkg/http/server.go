package http

import (
	"context"

	http_router "github.com/lintang-b-s/navigatorx-transit/pkg/http/router"
	"github.com/lintang-b-s/navigatorx-transit/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/navigatorx-transit/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
	g   *errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use. starts the api in the background, Wait blocks until it stops.
func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,

	useRateLimit bool,
	routingService controllers.RoutingService,
) (*Server, error) {
	config := http_server.Config{
		Port:          viper.GetInt("API_PORT"),
		WebsocketPort: viper.GetInt("WEBSOCKET_PORT"),
		Timeout:       viper.GetDuration("API_TIMEOUT"),
	}

	server := http_router.NewAPI(log)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(
			gCtx, config,
			useRateLimit, routingService,
		)
	})
	s.g = g

	return s, nil
}

func (s *Server) Wait() error {
	if s.g == nil {
		return nil
	}
	return s.g.Wait()
}
