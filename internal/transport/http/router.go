package http

import (
	"net/http"
	"strings"

	"github.com/gatelink/gatelink/internal/config"
	"github.com/gatelink/gatelink/internal/infrastructure/telemetry"
	"github.com/gatelink/gatelink/internal/processing/admin"
	"github.com/gatelink/gatelink/internal/processing/redirect"
	"github.com/gatelink/gatelink/internal/transport/http/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var spanNames = map[string]string{
	"GET /health":               "health",
	"GET /metrics":              "metrics",
	"POST /api/links":           "links.create",
	"GET /api/links":            "links.list",
	"PATCH /api/links/{code}":   "links.update",
	"DELETE /api/links/{code}":  "links.delete",
	"POST /api/partners":        "partners.create",
	"GET /api/partners":         "partners.list",
	"DELETE /api/partners/{id}": "partners.delete",
	"GET /{code}":               "redirect.resolve",
}

type RouterOptions struct {
	EnableCORS    bool
	EnableLogging bool
	EnableMetrics bool

	// RateLimiter is optional; nil disables admin rate limiting.
	RateLimiter *middleware.RedisFixedWindowLimiter
}

func DefaultRouterOptions() RouterOptions {
	return RouterOptions{
		EnableCORS:    true,
		EnableLogging: true,
		EnableMetrics: true,
	}
}

func NewRouter(cfg *config.Config, pipeline *redirect.Pipeline, adminSvc *admin.Service, pages *Pages) http.Handler {
	return NewRouterWithOptions(cfg, pipeline, adminSvc, pages, DefaultRouterOptions())
}

func NewRouterWithOptions(cfg *config.Config, pipeline *redirect.Pipeline, adminSvc *admin.Service, pages *Pages, opts RouterOptions) http.Handler {
	mux := http.NewServeMux()

	healthHandler := NewHealthHandler()
	redirectHandler := NewRedirectHandler(pipeline, pages)
	linksHandler := NewLinksHandler(cfg, adminSvc)
	partnersHandler := NewPartnersHandler(adminSvc)

	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.Handle("GET /metrics", healthHandler.Metrics())

	adminMiddlewares := []func(http.Handler) http.Handler{
		middleware.AdminKeyMiddleware(cfg.Admin.Keys),
	}
	if opts.RateLimiter != nil {
		adminMiddlewares = append(adminMiddlewares, middleware.RateLimitMiddleware(opts.RateLimiter))
	}

	adminRoutes := map[string]http.HandlerFunc{
		"POST /api/links":           linksHandler.Create,
		"GET /api/links":            linksHandler.List,
		"PATCH /api/links/{code}":   linksHandler.Update,
		"DELETE /api/links/{code}":  linksHandler.Delete,
		"POST /api/partners":        partnersHandler.Create,
		"GET /api/partners":         partnersHandler.List,
		"DELETE /api/partners/{id}": partnersHandler.Delete,
	}
	for pattern, handler := range adminRoutes {
		mux.Handle(pattern, middleware.Chain(handler, adminMiddlewares...))
	}

	mux.HandleFunc("GET /{code}", redirectHandler.Resolve)

	var innerHandler http.Handler = mux
	if opts.EnableCORS {
		innerHandler = middleware.CORSMiddleware(innerHandler)
	}
	if opts.EnableLogging {
		innerHandler = middleware.LoggingMiddleware(innerHandler)
	}
	if opts.EnableMetrics {
		innerHandler = middleware.MetricsMiddleware(innerHandler)
	}

	otelOptions := []otelhttp.Option{
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			key := r.Method + " " + r.Pattern
			if name, ok := spanNames[key]; ok {
				return name
			}
			if r.Pattern != "" {
				return r.Pattern
			}
			path := strings.TrimSpace(r.URL.Path)
			if path == "" {
				path = "/"
			}
			return path
		}),
	}

	if telemetry.TracerProvider != nil {
		otelOptions = append(otelOptions, otelhttp.WithTracerProvider(telemetry.TracerProvider))
	}

	return otelhttp.NewHandler(innerHandler, cfg.App.Name, otelOptions...)
}
