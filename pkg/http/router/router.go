package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/lintang-b-s/gopherway/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/gopherway/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/gopherway/pkg/http/server"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

type RateLimit struct {
	Enabled bool
	RPS     float64
	Burst   int
}

type API struct {
	log *zap.Logger
	hub *controllers.Hub
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

// Handler builds the api handler: the /api routes, the /ws map session endpoint and the middleware chain.
func (api *API) Handler(
	rateLimit RateLimit,
	navigatorService controllers.NavigatorService,
	sessionService controllers.SessionService,
) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	group := router_helper.NewRouteGroup(router, "/api")
	navigatorRoutes := controllers.New(navigatorService, api.log)
	navigatorRoutes.Routes(group)

	api.hub = controllers.NewHub(sessionService, api.log)
	router.GET("/ws", api.handleWebsocket)

	mwChain := []alice.Constructor{corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Logger(api.log)}
	if rateLimit.Enabled {
		mwChain = append(mwChain, Limit(rateLimit.RPS, rateLimit.Burst))
	}
	return alice.New(mwChain...).Then(router)
}

func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	rateLimit RateLimit,
	navigatorService controllers.NavigatorService,
	sessionService controllers.SessionService,
) error {
	api.log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(rateLimit, navigatorService, sessionService), config)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		api.log.Info("HTTP server stopped", zap.Error(err))
		api.hub.RemoveAllUser()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		api.log.Info("Context canceled, shutting down server")
		err := srv.Shutdown(context.Background())
		api.hub.RemoveAllUser()
		return err
	}
}
