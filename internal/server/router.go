package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iudanet/tourplan/internal/server/handlers"
	"github.com/iudanet/tourplan/internal/server/middleware"
	"github.com/iudanet/tourplan/pkg/api"
)

// Частые служебные запросы не логируем
var skipLogPaths = []string{api.HealthPath, api.MetricsPath}

type routerDeps struct {
	logger   *slog.Logger
	auth     *handlers.AuthHandler
	health   *handlers.HealthHandler
	records  *handlers.RecordHandler
	schedule *handlers.ScheduleHandler
	metrics  *middleware.Metrics
	limiter  *middleware.RateLimiter
	jwt      handlers.JWTConfig
}

func newRouter(d routerDeps) *mux.Router {
	r := mux.NewRouter()
	r.Use(d.metrics.Middleware)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlers.SendDetail(w, d.logger, "Not found.", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		handlers.SendDetail(w, d.logger, `Method "`+req.Method+`" not allowed.`, http.StatusMethodNotAllowed)
	})

	// Без авторизации
	r.HandleFunc(api.HealthPath, d.health.Health).Methods(http.MethodGet)
	r.Handle(api.MetricsPath, d.metrics.Handler()).Methods(http.MethodGet)
	r.Handle(api.TokenPath, d.limiter.Middleware(http.HandlerFunc(d.auth.ObtainToken))).Methods(http.MethodPost)

	// API плана, требует токен
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(middleware.AuthMiddleware(d.logger, d.jwt))

	// Служебные пути регистрируются раньше {kind}, иначе их перехватит CRUD
	apiRouter.HandleFunc("/baselocation/", d.schedule.BaseLocation).Methods(http.MethodGet)
	apiRouter.HandleFunc("/drivingtimematrix/", d.schedule.DrivingTimeMatrix).Methods(http.MethodGet)

	apiRouter.HandleFunc("/{kind:[a-z]+}/", d.records.List).Methods(http.MethodGet)
	apiRouter.HandleFunc("/{kind:[a-z]+}/", d.records.Create).Methods(http.MethodPost)
	apiRouter.HandleFunc("/{kind:[a-z]+}/{id:[0-9]+}/", d.records.Retrieve).Methods(http.MethodGet)
	apiRouter.HandleFunc("/{kind:[a-z]+}/{id:[0-9]+}/", d.records.Update).Methods(http.MethodPut)
	apiRouter.HandleFunc("/{kind:[a-z]+}/{id:[0-9]+}/", d.records.Destroy).Methods(http.MethodDelete)

	return r
}
