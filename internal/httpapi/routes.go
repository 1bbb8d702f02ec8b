package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/DoyleJ11/casual-games-backend/internal/bingo"
	"github.com/DoyleJ11/casual-games-backend/internal/hub"
	"github.com/DoyleJ11/casual-games-backend/internal/i18n"
	"github.com/DoyleJ11/casual-games-backend/internal/metrics"
	"github.com/DoyleJ11/casual-games-backend/internal/preference"
	"github.com/DoyleJ11/casual-games-backend/internal/rps"
	"github.com/DoyleJ11/casual-games-backend/internal/ws"
)

type Deps struct {
	Hub         *hub.Hub
	Matches     *rps.Registry
	Machine     *bingo.Machine
	Preferences preference.Store
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	// Gatherer backs /metrics; nil leaves the route out.
	Gatherer prometheus.Gatherer

	DefaultLanguage string
	OriginPatterns  []string
}

func SetupRoutes(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.DefaultLanguage == "" {
		d.DefaultLanguage = i18n.DefaultLanguage
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLog(d.Logger, d.Metrics))

	// Public routes
	r.Get("/healthz", Healthz)
	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/sicbo/tables", func(r chi.Router) {
		r.Post("/", CreateTable(d.Hub, d.Logger))
		r.Get("/{code}", GetTable(d.Hub))
	})
	r.Get("/ws", ws.Handler(d.Hub, ws.Options{Logger: d.Logger, OriginPatterns: d.OriginPatterns}))

	r.Route("/rps/matches", func(r chi.Router) {
		r.Post("/", CreateMatch(d.Matches))
		r.Get("/{id}", GetMatch(d.Matches))
		r.Post("/{id}/throws", ThrowMatch(d.Matches))
		r.Post("/{id}/next", NextMatch(d.Matches))
		r.Post("/{id}/reset", ResetMatch(d.Matches))
	})

	r.Post("/bingo/spins", SpinBingo(d.Machine))

	r.Get("/i18n", GetCatalog)
	r.Get("/i18n/{lang}", GetCatalog)
	r.Get("/preferences/{client}/language", GetLanguage(d.Preferences, d.DefaultLanguage))
	r.Put("/preferences/{client}/language", PutLanguage(d.Preferences))
	return r
}

// requestLog logs every request once it completes and counts it by route
// pattern, so ids in paths do not blow up label cardinality.
func requestLog(log *zap.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			if m != nil {
				m.HttpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			}
			log.Debug("http request",
				zap.String("method", r.Method),
				zap.String("route", route),
				zap.Int("status", status),
				zap.Duration("took", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		})
	}
}
