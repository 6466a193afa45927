package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/lintang-b-s/navigatorx-transit/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/navigatorx-transit/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/navigatorx-transit/pkg/http/server"
	"github.com/spf13/viper"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/rs/cors"
	"go.uber.org/zap"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "net/http/pprof"
)

type API struct {
	log *zap.Logger
	hub *controllers.Hub
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

// hubFor. the hub is shared by /ws on the api port and the netpoll websocket listener
func (api *API) hubFor(routingService controllers.RoutingService) *controllers.Hub {
	if api.hub == nil {
		api.hub = controllers.NewHub(routingService, api.log)
	}
	return api.hub
}

// Handler. full http handler: REST routes under /api behind the middleware chain, /ws beside it
func (api *API) Handler(useRateLimit bool, routingService controllers.RoutingService) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	router.GET("/doc/*any", swaggerHandler)

	router.Handler(http.MethodGet, "/debug/pprof/*item", http.DefaultServeMux)

	group := router_helper.NewRouteGroup(router, "/api")

	transitRoutes := controllers.New(routingService, api.log)

	transitRoutes.Routes(group)

	var mwChain []alice.Constructor
	if useRateLimit {
		mwChain = append(mwChain, corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
			RealIP, Heartbeat("healthz"), Logger(api.log), Labels, Limit)
	} else {
		mwChain = append(mwChain, corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
			RealIP, Heartbeat("healthz"), Logger(api.log), Labels)
	}
	mainMwChain := alice.New(mwChain...).Then(router)

	api.hubFor(routingService)

	// websocket upgrade needs the raw http.Hijacker, so /ws skips the logging chain
	mux := http.NewServeMux()
	mux.Handle("/ws", alice.New(api.recoverPanic, RealIP).ThenFunc(api.serveWebsocket))
	mux.Handle("/", mainMwChain)
	return mux
}

//	@title			Navigatorx Transit API
//	@version		1.0
//	@description	Best route engine for transit networks: cheapest, shortest or fewest-legs path between stops.

//	@contact.name	Lintang Birda Saputra
//	@contact.url	_
//	@contact.email	lintang.birda.saputra@mail.ugm.ac.id

//	@license.name	BSD License
//	@license.url	https://opensource.org/license/bsd-2-clause

// @host		localhost
// @BasePath	/api
func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	useRateLimit bool,
	routingService controllers.RoutingService,
) error {
	api.log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(useRateLimit, routingService), config)

	if config.WebsocketPort > 0 {
		wsServer, err := api.ListenWebsocket(fmt.Sprintf(":%d", config.WebsocketPort), routingService)
		if err != nil {
			return err
		}
		defer wsServer.Close()
		api.log.Info(fmt.Sprintf("websocket API run on port %d", config.WebsocketPort))
	}

	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		api.hub.RemoveAllUser()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		api.log.Error("HTTP server stopped", zap.Error(err))
		return err

	case <-ctx.Done():
		api.log.Info("Context canceled, shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			viper.GetDuration("HTTP_SERVER_SHUTDOWN_TIMEOUT"))
		defer cancel()

		// hijacked websocket connections are not tracked by Shutdown
		api.hub.RemoveAllUser()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			api.log.Error("graceful shutdown failed", zap.Error(err))
			return err
		}
		return nil
	}
}

func swaggerHandler(res http.ResponseWriter, req *http.Request, p httprouter.Params) {
	httpSwagger.WrapHandler(res, req)
}
